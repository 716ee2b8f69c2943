package cart

import (
	"encoding/json"
	"strings"

	"github.com/ThabangMark/Brew-Bean/internal/domain"
)

// storedItem mirrors the persisted blob layout. Older blobs used the
// unitPrice/imageRef field names, so decoding accepts both spellings.
type storedItem struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Price     *float64 `json:"price"`
	UnitPrice *float64 `json:"unitPrice"`
	Category  string   `json:"category"`
	Image     string   `json:"image"`
	ImageRef  string   `json:"imageRef"`
	Quantity  int      `json:"quantity"`
}

func encodeItems(items []domain.LineItem) ([]byte, error) {
	return json.Marshal(items)
}

// decodeItems parses a persisted cart blob. Entries that violate the cart
// invariants (blank name, negative price, quantity below 1) are dropped
// rather than failing the whole restore.
func decodeItems(data []byte) ([]domain.LineItem, error) {
	var stored []storedItem
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, 0, len(stored))
	for _, st := range stored {
		price := st.Price
		if price == nil {
			price = st.UnitPrice
		}
		image := st.Image
		if image == "" {
			image = st.ImageRef
		}
		name := strings.TrimSpace(st.Name)

		if name == "" || price == nil || *price < 0 || st.Quantity < 1 {
			continue
		}

		items = append(items, domain.LineItem{
			ID:        st.ID,
			Name:      name,
			UnitPrice: *price,
			Category:  st.Category,
			ImageRef:  image,
			Quantity:  st.Quantity,
		})
	}
	return items, nil
}
