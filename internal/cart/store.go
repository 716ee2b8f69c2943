package cart

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/ThabangMark/Brew-Bean/internal/checkout"
	"github.com/ThabangMark/Brew-Bean/internal/domain"
	"github.com/ThabangMark/Brew-Bean/internal/storage"
)

const (
	DefaultStorageKey  = "brewbean_cart"
	DefaultTaxRate     = 0.08
	DefaultDeliveryFee = 3.99

	fallbackName     = "Unknown Product"
	fallbackCategory = "Specialty"
	fallbackImage    = "/images/placeholder.svg"
)

// RenderFunc is notified after every successful mutation with a copy of the
// cart and its totals. It must not call back into the Store.
type RenderFunc func(items []domain.LineItem, totals domain.Totals)

// Store is the sole owner of the cart state. Every mutation runs to
// completion in the fixed order mutate, persist, render; persistence
// failures degrade to in-memory operation and are only logged.
type Store struct {
	storage     storage.Storage
	key         string
	render      RenderFunc
	taxRate     float64
	deliveryFee float64

	mu       sync.Mutex
	items    []domain.LineItem
	nextID   int64
	restored bool
	clearGen uint64
}

type Option func(*Store)

func WithRender(fn RenderFunc) Option {
	return func(s *Store) { s.render = fn }
}

func WithStorageKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithTaxRate(rate float64) Option {
	return func(s *Store) { s.taxRate = rate }
}

func WithDeliveryFee(fee float64) Option {
	return func(s *Store) { s.deliveryFee = fee }
}

func New(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		storage:     st,
		key:         DefaultStorageKey,
		taxRate:     DefaultTaxRate,
		deliveryFee: DefaultDeliveryFee,
		nextID:      1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the persisted cart. It runs at most once per Store lifetime;
// later calls are no-ops. Absent or malformed data starts an empty cart and
// is never surfaced as an error.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.restored {
		return
	}
	s.restored = true

	data, err := s.storage.Load(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("cart restore: storage load error: %v", err)
		return
	}

	items, err := decodeItems(data)
	if err != nil {
		log.Printf("cart restore: malformed blob, starting empty: %v", err)
		return
	}

	s.items = items
	for _, item := range items {
		if item.ID >= s.nextID {
			s.nextID = item.ID + 1
		}
	}
}

// AddResult reports the outcome of AddOrIncrement.
type AddResult struct {
	Item    domain.LineItem
	Updated bool // true when an existing line's quantity was incremented
}

// AddOrIncrement merges the candidate into the cart. A candidate matching an
// existing (name, unit price) pair increments that line; anything else is
// appended with quantity 1. A price that cannot be resolved to a
// non-negative amount rejects the call without mutating anything.
func (s *Store) AddOrIncrement(ctx context.Context, c domain.ItemCandidate) (AddResult, error) {
	if math.IsNaN(c.UnitPrice) || c.UnitPrice < 0 {
		return AddResult{}, ErrPriceNotFound
	}

	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = fallbackName
	}
	category := strings.TrimSpace(c.Category)
	if category == "" {
		category = fallbackCategory
	}
	image := strings.TrimSpace(c.ImageRef)
	if image == "" {
		image = fallbackImage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Name == name && s.items[i].UnitPrice == c.UnitPrice {
			s.items[i].Quantity++
			s.persist(ctx)
			s.notify()
			return AddResult{Item: s.items[i], Updated: true}, nil
		}
	}

	item := domain.LineItem{
		ID:        s.nextID,
		Name:      name,
		UnitPrice: c.UnitPrice,
		Category:  category,
		ImageRef:  image,
		Quantity:  1,
	}
	s.nextID++
	s.items = append(s.items, item)
	s.persist(ctx)
	s.notify()
	return AddResult{Item: item}, nil
}

// RemoveResult reports the outcome of Remove.
type RemoveResult struct {
	Found bool
	Name  string
}

// Remove deletes the line with the given id. An unknown id is a no-op, not
// an error, and triggers neither a persistence write nor a render.
func (s *Store) Remove(ctx context.Context, id int64) RemoveResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, id)
}

func (s *Store) removeLocked(ctx context.Context, id int64) RemoveResult {
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			s.notify()
			return RemoveResult{Found: true, Name: item.Name}
		}
	}
	return RemoveResult{}
}

// QuantityResult reports the outcome of a quantity change.
type QuantityResult struct {
	Found   bool
	Removed bool // the change drove the quantity to zero or below
	Item    domain.LineItem
}

// ChangeQuantity applies a signed delta to the line's quantity. A result at
// or below zero removes the line entirely.
func (s *Store) ChangeQuantity(ctx context.Context, id int64, delta int) QuantityResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			return s.applyQuantityLocked(ctx, i, s.items[i].Quantity+delta)
		}
	}
	return QuantityResult{}
}

// SetQuantity sets the line's quantity directly. Zero or below removes.
func (s *Store) SetQuantity(ctx context.Context, id int64, quantity int) QuantityResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			return s.applyQuantityLocked(ctx, i, quantity)
		}
	}
	return QuantityResult{}
}

func (s *Store) applyQuantityLocked(ctx context.Context, i, quantity int) QuantityResult {
	if quantity <= 0 {
		removed := s.items[i]
		res := s.removeLocked(ctx, removed.ID)
		return QuantityResult{Found: res.Found, Removed: true, Item: removed}
	}
	s.items[i].Quantity = quantity
	s.persist(ctx)
	s.notify()
	return QuantityResult{Found: true, Item: s.items[i]}
}

// Clear empties the cart. Clearing an already empty cart is informational:
// it reports false and skips the persistence write and render.
func (s *Store) Clear(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return false
	}
	s.clearLocked(ctx)
	return true
}

func (s *Store) clearLocked(ctx context.Context) {
	s.items = nil
	s.clearGen++
	if err := s.storage.Delete(ctx, s.key); err != nil {
		log.Printf("cart persist: storage delete error: %v", err)
	}
	s.notify()
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItemsLocked()
}

// Count is the total number of units across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

// Totals computes the derived amounts for the current cart. The delivery fee
// applies only to delivery orders.
func (s *Store) Totals(orderType domain.OrderType) domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return computeTotals(s.items, orderType, s.deliveryFee, s.taxRate)
}

// Checkout validates the customer fields and builds an immutable order
// snapshot from the current cart. The cart itself is left untouched;
// clearing happens in CompleteOrder once submission succeeds.
func (s *Store) Checkout(customer domain.CustomerInfo) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := checkout.Validate(customer); err != nil {
		return nil, err
	}

	return &domain.Order{
		ID:         checkout.NewOrderID(),
		Items:      s.copyItemsLocked(),
		Customer:   customer,
		Totals:     computeTotals(s.items, customer.OrderType, s.deliveryFee, s.taxRate),
		CreatedAt:  time.Now(),
		Generation: s.clearGen,
	}, nil
}

// CompleteOrder clears the cart after the caller confirms successful
// submission. If the cart was cleared while the order was in flight the
// completion is rejected and the live cart is left alone.
func (s *Store) CompleteOrder(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.Generation != s.clearGen {
		return ErrCheckoutSuperseded
	}
	s.clearLocked(ctx)
	return nil
}

func (s *Store) copyItemsLocked() []domain.LineItem {
	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) persist(ctx context.Context) {
	data, err := encodeItems(s.items)
	if err != nil {
		log.Printf("cart persist: encode error: %v", err)
		return
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		log.Printf("cart persist: storage save error: %v", err)
	}
}

func (s *Store) notify() {
	if s.render == nil {
		return
	}
	s.render(s.copyItemsLocked(), computeTotals(s.items, domain.OrderTypePickup, s.deliveryFee, s.taxRate))
}
