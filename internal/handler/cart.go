package handler

import (
	"net/http"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

// GetCart возвращает корзину, рассчитанную по актуальному каталогу.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(r.Context(), session.UserID)
	if err != nil {
		h.writeError(w, err, "get cart error")
		return
	}

	h.writeJSON(w, http.StatusOK, cart)
}

type addToCartRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Qty        int64 `json:"qty"`
}

// AddToCart кладёт позицию меню в корзину текущего пользователя.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req addToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.service.AddToCart(r.Context(), session.UserID, req.MenuItemID, req.Qty); err != nil {
		h.writeError(w, err, "add to cart error")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// RemoveFromCart убирает позицию из корзины текущего пользователя.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	menuID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveFromCart(r.Context(), session.UserID, menuID); err != nil {
		h.writeError(w, err, "remove from cart error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type applyPromoRequest struct {
	Code string `json:"code"`
}

type applyPromoResponse struct {
	Code     string `json:"code"`
	Discount int64  `json:"discount"`
}

// ApplyPromo применяет промокод к корзине. Неуспешное применение не трогает
// ранее применённый код.
func (h *Handler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req applyPromoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Code == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	promo, err := h.service.ApplyPromo(r.Context(), session.UserID, req.Code)
	if err != nil {
		h.writeError(w, err, "apply promo error")
		return
	}

	h.writeJSON(w, http.StatusOK, applyPromoResponse{
		Code:     promo.Code,
		Discount: promo.DiscountAmount,
	})
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type checkoutResponse struct {
	OrderID int64 `json:"order_id"`
}

// Checkout оформляет заказ из корзины текущего пользователя.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	orderID, err := h.service.Checkout(r.Context(), session.UserID, model.PaymentMethod(req.PaymentMethod))
	if err != nil {
		h.writeError(w, err, "checkout error")
		return
	}

	h.writeJSON(w, http.StatusCreated, checkoutResponse{OrderID: orderID})
}
