package handler

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/ThabangMark/Brew-Bean/internal/cart"
	"github.com/ThabangMark/Brew-Bean/internal/domain"
	"github.com/go-chi/chi/v5"
)

const maxQuantity = 99

type CartHandler struct {
	store *cart.Store
}

func NewCartHandler(store *cart.Store) *CartHandler {
	return &CartHandler{store: store}
}

type AddItemRequestDTO struct {
	Name     string          `json:"name"`
	Price    json.RawMessage `json:"price"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
}

type UpdateItemRequestDTO struct {
	Quantity *int `json:"quantity"`
	Delta    *int `json:"delta"`
}

type CartResponseDTO struct {
	Items   []domain.LineItem `json:"items"`
	Totals  domain.Totals     `json:"totals"`
	Count   int               `json:"count"`
	Message string            `json:"message,omitempty"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	orderType := domain.OrderType(r.URL.Query().Get("order_type"))
	if orderType == "" {
		orderType = domain.OrderTypePickup
	}
	if !orderType.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_order_type", "order_type must be pickup or delivery")
		return
	}

	respondJSON(w, http.StatusOK, CartResponseDTO{
		Items:  h.store.Items(),
		Totals: h.store.Totals(orderType),
		Count:  h.store.Count(),
	})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	price, err := resolvePrice(req.Price)
	if err != nil {
		respondError(w, http.StatusBadRequest, "price_not_found", "price not found")
		return
	}

	result, err := h.store.AddOrIncrement(r.Context(), domain.ItemCandidate{
		Name:      req.Name,
		UnitPrice: price,
		Category:  req.Category,
		ImageRef:  req.Image,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, "price_not_found", "price not found")
		return
	}

	status := http.StatusCreated
	message := fmt.Sprintf("%s added to cart!", result.Item.Name)
	if result.Updated {
		status = http.StatusOK
		message = fmt.Sprintf("%s quantity updated to %d", result.Item.Name, result.Item.Quantity)
	}
	respondJSON(w, status, CartResponseDTO{
		Items:   h.store.Items(),
		Totals:  h.store.Totals(domain.OrderTypePickup),
		Count:   h.store.Count(),
		Message: message,
	})
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id must be a positive integer")
		return
	}

	var req UpdateItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if (req.Quantity == nil) == (req.Delta == nil) {
		respondError(w, http.StatusBadRequest, "invalid_request", "exactly one of quantity or delta is required")
		return
	}

	var result cart.QuantityResult
	if req.Quantity != nil {
		if *req.Quantity > maxQuantity {
			respondError(w, http.StatusBadRequest, "invalid_quantity", fmt.Sprintf("quantity must not exceed %d", maxQuantity))
			return
		}
		result = h.store.SetQuantity(r.Context(), id, *req.Quantity)
	} else {
		current, ok := h.currentQuantity(id)
		if !ok {
			respondError(w, http.StatusNotFound, "not_found", "item not found in cart")
			return
		}
		if current+*req.Delta > maxQuantity {
			respondError(w, http.StatusBadRequest, "invalid_quantity", fmt.Sprintf("quantity must not exceed %d", maxQuantity))
			return
		}
		result = h.store.ChangeQuantity(r.Context(), id, *req.Delta)
	}

	if !result.Found {
		respondError(w, http.StatusNotFound, "not_found", "item not found in cart")
		return
	}

	message := fmt.Sprintf("%s quantity updated to %d", result.Item.Name, result.Item.Quantity)
	if result.Removed {
		message = fmt.Sprintf("%s removed from cart", result.Item.Name)
	}
	respondJSON(w, http.StatusOK, CartResponseDTO{
		Items:   h.store.Items(),
		Totals:  h.store.Totals(domain.OrderTypePickup),
		Count:   h.store.Count(),
		Message: message,
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id must be a positive integer")
		return
	}

	result := h.store.Remove(r.Context(), id)
	if !result.Found {
		respondError(w, http.StatusNotFound, "not_found", "item not found in cart")
		return
	}

	respondJSON(w, http.StatusOK, CartResponseDTO{
		Items:   h.store.Items(),
		Totals:  h.store.Totals(domain.OrderTypePickup),
		Count:   h.store.Count(),
		Message: fmt.Sprintf("%s removed from cart", result.Name),
	})
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	message := "Cart cleared"
	if !h.store.Clear(r.Context()) {
		message = "Cart is already empty"
	}

	respondJSON(w, http.StatusOK, CartResponseDTO{
		Items:   h.store.Items(),
		Totals:  h.store.Totals(domain.OrderTypePickup),
		Count:   h.store.Count(),
		Message: message,
	})
}

func (h *CartHandler) currentQuantity(id int64) (int, bool) {
	for _, item := range h.store.Items() {
		if item.ID == id {
			return item.Quantity, true
		}
	}
	return 0, false
}

func itemID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id")
	}
	return id, nil
}

// resolvePrice accepts a JSON number or a price string as it appears on the
// menu page ("4.50" or "$4.50"). Anything else is a resolution failure.
func resolvePrice(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("price missing")
	}

	var price float64
	if err := json.Unmarshal(raw, &price); err == nil {
		return price, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return 0, fmt.Errorf("unsupported price value")
	}
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "$"))
	price, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("unparseable price %q", text)
	}
	return price, nil
}
