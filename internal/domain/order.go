package domain

import "time"

type OrderType string

const (
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
)

func (t OrderType) Valid() bool {
	return t == OrderTypePickup || t == OrderTypeDelivery
}

func (t OrderType) String() string {
	return string(t)
}

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodCard
}

func (m PaymentMethod) String() string {
	return string(m)
}

// CustomerInfo carries the checkout form fields. Address fields are only
// required for delivery orders, card fields only for card payment.
type CustomerInfo struct {
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	OrderType     OrderType     `json:"order_type"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Address       string        `json:"address,omitempty"`
	City          string        `json:"city,omitempty"`
	ZipCode       string        `json:"zip_code,omitempty"`
	CardNumber    string        `json:"-"`
	ExpiryDate    string        `json:"-"`
	CVV           string        `json:"-"`
}

// Order is the immutable snapshot produced at checkout time. It holds a copy
// of the cart items, so later cart mutations do not affect it.
type Order struct {
	ID        string       `json:"order_id"`
	Items     []LineItem   `json:"items"`
	Customer  CustomerInfo `json:"customer"`
	Totals    Totals       `json:"totals"`
	CreatedAt time.Time    `json:"created_at"`

	// Generation records the cart's clear counter at snapshot time, so a
	// completion attempt can detect that the cart was cleared in the interim.
	Generation uint64 `json:"-"`
}
