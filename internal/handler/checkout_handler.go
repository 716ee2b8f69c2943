package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ThabangMark/Brew-Bean/internal/cart"
	"github.com/ThabangMark/Brew-Bean/internal/checkout"
	"github.com/ThabangMark/Brew-Bean/internal/domain"
	"github.com/ThabangMark/Brew-Bean/internal/submit"
)

type CheckoutHandler struct {
	store     *cart.Store
	submitter submit.Submitter
}

func NewCheckoutHandler(store *cart.Store, submitter submit.Submitter) *CheckoutHandler {
	return &CheckoutHandler{store: store, submitter: submitter}
}

type CheckoutRequestDTO struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	OrderType     string `json:"order_type"`
	PaymentMethod string `json:"payment_method"`
	Address       string `json:"address"`
	City          string `json:"city"`
	ZipCode       string `json:"zip_code"`
	CardNumber    string `json:"card_number"`
	ExpiryDate    string `json:"expiry_date"`
	CVV           string `json:"cvv"`
}

type CheckoutResponseDTO struct {
	OrderID string        `json:"order_id"`
	Totals  domain.Totals `json:"totals"`
	Message string        `json:"message"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	orderType := domain.OrderType(req.OrderType)
	if orderType == "" {
		orderType = domain.OrderTypePickup
	}
	if !orderType.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_order_type", "order_type must be pickup or delivery")
		return
	}

	payment := domain.PaymentMethod(req.PaymentMethod)
	if payment == "" {
		payment = domain.PaymentMethodCash
	}
	if !payment.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "payment_method must be cash or card")
		return
	}

	order, err := h.store.Checkout(domain.CustomerInfo{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		OrderType:     orderType,
		PaymentMethod: payment,
		Address:       req.Address,
		City:          req.City,
		ZipCode:       req.ZipCode,
		CardNumber:    req.CardNumber,
		ExpiryDate:    req.ExpiryDate,
		CVV:           req.CVV,
	})
	if err != nil {
		var vErr *checkout.ValidationError
		switch {
		case errors.As(err, &vErr):
			respondError(w, http.StatusUnprocessableEntity, "validation_failed", vErr.Field+" is required or invalid")
		case errors.Is(err, cart.ErrEmptyCart):
			respondError(w, http.StatusConflict, "empty_cart", "cart is empty, nothing to checkout")
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}

	// The request context cancels the simulated wait if the client goes away.
	if err := h.submitter.Submit(r.Context(), order); err != nil {
		log.Printf("order submission failed for %s: %v", order.ID, err)
		respondError(w, http.StatusBadGateway, "submission_failed", "order submission failed, cart was not changed")
		return
	}

	if err := h.store.CompleteOrder(r.Context(), order); err != nil {
		if errors.Is(err, cart.ErrCheckoutSuperseded) {
			respondError(w, http.StatusConflict, "checkout_superseded", "cart was cleared while the order was pending")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		OrderID: order.ID,
		Totals:  order.Totals,
		Message: "Order placed successfully!",
	})
}
