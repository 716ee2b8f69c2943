package domain

// LineItem is one distinct product/price combination in the cart.
// JSON tags match the persisted blob layout.
type LineItem struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Category  string  `json:"category"`
	ImageRef  string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// ItemCandidate is the resolved input for adding a product to the cart.
// The caller is responsible for resolving all fields up front; the cart
// never guesses at product data.
type ItemCandidate struct {
	Name      string
	UnitPrice float64
	Category  string
	ImageRef  string
}

// Totals holds the derived monetary amounts for the current cart,
// rounded to two decimals for presentation.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}
