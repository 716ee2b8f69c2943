package submit

import (
	"testing"
	"time"

	"github.com/ThabangMark/Brew-Bean/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestOrderPayload_Shape(t *testing.T) {
	order := &domain.Order{
		ID: "order-42",
		Items: []domain.LineItem{
			{ID: 1, Name: "Latte", UnitPrice: 4.5, Quantity: 2},
		},
		Customer: domain.CustomerInfo{
			FirstName:     "Thabo",
			LastName:      "Mokoena",
			OrderType:     domain.OrderTypeDelivery,
			PaymentMethod: domain.PaymentMethodCard,
		},
		Totals:    domain.Totals{Subtotal: 9.00, DeliveryFee: 3.99, Tax: 1.04, Total: 14.03},
		CreatedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}

	payload := orderPayload(order)

	assert.Equal(t, "order-42", payload["order_id"])
	assert.Equal(t, "Thabo Mokoena", payload["customer_name"])
	assert.Equal(t, domain.OrderTypeDelivery, payload["order_type"])
	assert.Equal(t, domain.PaymentMethodCard, payload["payment_method"])
	assert.Equal(t, 14.03, payload["total"])
	assert.Equal(t, order.Items, payload["items"])
}
