package submit

import (
	"context"

	"github.com/ThabangMark/Brew-Bean/internal/domain"
)

// Submitter delivers a finalized order snapshot to whatever fulfils it.
type Submitter interface {
	Submit(ctx context.Context, order *domain.Order) error
}
