package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

type lineItemResponse struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Qty        int64  `json:"qty"`
}

type orderResponse struct {
	ID            int64              `json:"id"`
	UserID        int64              `json:"user_id"`
	Items         []lineItemResponse `json:"items"`
	Total         int64              `json:"total"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	CreatedAt     string             `json:"created_at"`
}

func toOrderResponse(o model.Order) orderResponse {
	items := make([]lineItemResponse, 0, len(o.Items))
	for _, li := range o.Items {
		items = append(items, lineItemResponse(li))
	}
	return orderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         items,
		Total:         o.Total,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) writeOrders(w http.ResponseWriter, orders []model.Order) {
	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// GetOrders возвращает заказы текущего пользователя, новые первыми.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	orders, err := h.service.GetOrdersByUser(r.Context(), session.UserID)
	if err != nil {
		h.writeError(w, err, "get orders error")
		return
	}

	h.writeOrders(w, orders)
}

// GetOrder возвращает один заказ: владельцу или админу.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	orderID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID, session.UserID, session.Role)
	if err != nil {
		h.writeError(w, err, "get order error")
		return
	}

	h.writeJSON(w, http.StatusOK, toOrderResponse(*order))
}

// GetOrderQR отдаёт PNG с QR-кодом оплаты заказа через QRIS.
func (h *Handler) GetOrderQR(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	orderID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	png, err := h.service.OrderPaymentQR(r.Context(), orderID, session.UserID, session.Role)
	if err != nil {
		h.writeError(w, err, "order qr error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		h.logger.Error("write qr response", zap.Error(err))
	}
}

// GetAllOrders возвращает все заказы. Админская операция.
func (h *Handler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetAllOrders(r.Context())
	if err != nil {
		h.writeError(w, err, "get all orders error")
		return
	}

	h.writeOrders(w, orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus переводит заказ в новый статус. Админская операция;
// недопустимые переходы отклоняются.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.service.UpdateOrderStatus(r.Context(), orderID, model.OrderStatus(req.Status)); err != nil {
		h.writeError(w, err, "update order status error")
		return
	}

	w.WriteHeader(http.StatusOK)
}
