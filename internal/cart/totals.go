package cart

import (
	"github.com/ThabangMark/Brew-Bean/internal/domain"
	"github.com/shopspring/decimal"
)

// computeTotals derives the cart totals. Amounts are accumulated with exact
// decimal arithmetic and rounded to two decimals only at the end, so repeated
// additions do not compound floating point error.
func computeTotals(items []domain.LineItem, orderType domain.OrderType, deliveryFee, taxRate float64) domain.Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	fee := decimal.Zero
	if orderType == domain.OrderTypeDelivery {
		fee = decimal.NewFromFloat(deliveryFee)
	}

	tax := subtotal.Add(fee).Mul(decimal.NewFromFloat(taxRate))
	total := subtotal.Add(fee).Add(tax)

	return domain.Totals{
		Subtotal:    toAmount(subtotal),
		DeliveryFee: toAmount(fee),
		Tax:         toAmount(tax),
		Total:       toAmount(total),
	}
}

func toAmount(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
