package checkout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ThabangMark/Brew-Bean/internal/domain"
	"github.com/google/uuid"
)

// ValidationError reports the first checkout field that is missing or
// malformed. Validation never aggregates; checking stops at the first failure.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q is missing or invalid", e.Field)
}

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
	separators    = strings.NewReplacer(" ", "", "-", "")
)

const minCardDigits = 13

// Validate checks customer fields in a fixed order: the base fields, then the
// email shape, then the delivery fields, then the card fields. The required
// set is conditional on order type and payment method.
func Validate(c domain.CustomerInfo) error {
	if err := required("firstName", c.FirstName); err != nil {
		return err
	}
	if err := required("lastName", c.LastName); err != nil {
		return err
	}
	if err := required("email", c.Email); err != nil {
		return err
	}
	if err := required("phone", c.Phone); err != nil {
		return err
	}
	if !emailPattern.MatchString(strings.TrimSpace(c.Email)) {
		return &ValidationError{Field: "email"}
	}

	if c.OrderType == domain.OrderTypeDelivery {
		if err := required("address", c.Address); err != nil {
			return err
		}
		if err := required("city", c.City); err != nil {
			return err
		}
		if err := required("zipCode", c.ZipCode); err != nil {
			return err
		}
	}

	if c.PaymentMethod == domain.PaymentMethodCard {
		if err := validateCard(c); err != nil {
			return err
		}
	}

	return nil
}

func validateCard(c domain.CustomerInfo) error {
	digits := separators.Replace(strings.TrimSpace(c.CardNumber))
	if len(digits) < minCardDigits || !allDigits(digits) {
		return &ValidationError{Field: "cardNumber"}
	}
	if !expiryPattern.MatchString(strings.TrimSpace(c.ExpiryDate)) {
		return &ValidationError{Field: "expiryDate"}
	}
	if !cvvPattern.MatchString(strings.TrimSpace(c.CVV)) {
		return &ValidationError{Field: "cvv"}
	}
	return nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field}
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NewOrderID generates the identifier for a checkout snapshot.
func NewOrderID() string {
	return uuid.New().String()
}
