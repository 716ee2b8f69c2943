package cart

import "errors"

var (
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrPriceNotFound rejects a candidate whose price could not be resolved
	// to a non-negative amount.
	ErrPriceNotFound = errors.New("price not found")

	// ErrCheckoutSuperseded means the cart was cleared between building an
	// order snapshot and completing it, so the late completion is rejected.
	ErrCheckoutSuperseded = errors.New("cart was cleared while the order was pending")
)
