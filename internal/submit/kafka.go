package submit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThabangMark/Brew-Bean/internal/domain"
	"github.com/segmentio/kafka-go"
)

const orderTopic = "cart-orders"

// Kafka publishes completed orders to a topic for downstream consumers
// (fulfillment, receipts).
type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(brokers ...string) *Kafka {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  orderTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Kafka{writer: w}
}

func (k *Kafka) Submit(ctx context.Context, order *domain.Order) error {
	payload, err := json.Marshal(orderPayload(order))
	if err != nil {
		return fmt.Errorf("failed to marshal order payload: %w", err)
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to publish order: %w", err)
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}

func orderPayload(o *domain.Order) map[string]interface{} {
	return map[string]interface{}{
		"order_id":       o.ID,
		"items":          o.Items,
		"customer_name":  o.Customer.FirstName + " " + o.Customer.LastName,
		"order_type":     o.Customer.OrderType,
		"payment_method": o.Customer.PaymentMethod,
		"subtotal":       o.Totals.Subtotal,
		"delivery_fee":   o.Totals.DeliveryFee,
		"tax":            o.Totals.Tax,
		"total":          o.Totals.Total,
		"created_at":     o.CreatedAt,
	}
}
