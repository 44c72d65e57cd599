package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

type promoRequest struct {
	Code           string `json:"code"`
	DiscountAmount int64  `json:"discount_amount"`
	Active         bool   `json:"active"`
}

type promoResponse struct {
	ID             int64  `json:"id"`
	Code           string `json:"code"`
	DiscountAmount int64  `json:"discount_amount"`
	Active         bool   `json:"active"`
}

// GetPromos возвращает все промокоды. Админская операция.
func (h *Handler) GetPromos(w http.ResponseWriter, r *http.Request) {
	promos, err := h.service.ListPromos(r.Context())
	if err != nil {
		h.writeError(w, err, "list promos error")
		return
	}

	resp := make([]promoResponse, 0, len(promos))
	for _, p := range promos {
		resp = append(resp, promoResponse{
			ID:             p.ID,
			Code:           p.Code,
			DiscountAmount: p.DiscountAmount,
			Active:         p.Active,
		})
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// CreatePromo создаёт промокод. Админская операция.
func (h *Handler) CreatePromo(w http.ResponseWriter, r *http.Request) {
	var req promoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Code == "" || req.DiscountAmount < 0 {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	id, err := h.service.CreatePromo(r.Context(), req.Code, req.DiscountAmount, req.Active)
	if err != nil {
		h.writeError(w, err, "create promo error")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// UpdatePromo обновляет промокод, включая признак активности. Админская операция.
func (h *Handler) UpdatePromo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req promoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Code == "" || req.DiscountAmount < 0 {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err := h.service.UpdatePromo(r.Context(), model.Promo{
		ID:             id,
		Code:           req.Code,
		DiscountAmount: req.DiscountAmount,
		Active:         req.Active,
	})
	if err != nil {
		h.writeError(w, err, "update promo error")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeletePromo удаляет промокод. Админская операция.
func (h *Handler) DeletePromo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.DeletePromo(r.Context(), id); err != nil {
		h.writeError(w, err, "delete promo error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// GetUsers возвращает всех пользователей без учётных данных. Админская операция.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, err, "list users error")
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse{
			ID:        u.ID,
			Username:  u.Username,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}

	h.writeJSON(w, http.StatusOK, resp)
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser создаёт пользователя с указанной ролью. Админская операция.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Username == "" || req.Password == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	id, err := h.service.CreateUser(r.Context(), req.Username, req.Password, model.Role(req.Role))
	if err != nil {
		h.writeError(w, err, "create user error")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateUserRole меняет роль пользователя. Админская операция.
func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req updateRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.service.UpdateUserRole(r.Context(), username, model.Role(req.Role)); err != nil {
		h.writeError(w, err, "update user role error")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteUser удаляет пользователя. Админская операция.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.service.DeleteUser(r.Context(), username); err != nil {
		h.writeError(w, err, "delete user error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type dailyRevenueResponse struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
}

// GetDailyRevenue возвращает выручку по дням для завершённых заказов.
// Админская операция.
func (h *Handler) GetDailyRevenue(w http.ResponseWriter, r *http.Request) {
	revenue, err := h.service.DailyRevenue(r.Context())
	if err != nil {
		h.writeError(w, err, "daily revenue error")
		return
	}

	resp := make([]dailyRevenueResponse, 0, len(revenue))
	for _, d := range revenue {
		resp = append(resp, dailyRevenueResponse{
			Date:    d.Date.Format("2006-01-02"),
			Revenue: d.Revenue,
		})
	}

	h.writeJSON(w, http.StatusOK, resp)
}

type topItemResponse struct {
	Name string `json:"name"`
	Qty  int64  `json:"qty"`
}

// GetTopSellingItems возвращает рейтинг продаж по завершённым заказам.
// Размер задаётся query-параметром limit. Админская операция.
func (h *Handler) GetTopSellingItems(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	items, err := h.service.TopSellingItems(r.Context(), limit)
	if err != nil {
		h.writeError(w, err, "top selling items error")
		return
	}

	resp := make([]topItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, topItemResponse{Name: it.Name, Qty: it.Qty})
	}

	h.writeJSON(w, http.StatusOK, resp)
}
