package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

type menuItemResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	Available   bool    `json:"available"`
	AvgRating   float64 `json:"average_rating"`
	ReviewCount int64   `json:"review_count"`
	IsFavorite  bool    `json:"is_favorite"`
}

func toMenuItemResponse(it model.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Category:    string(it.Category),
		Description: it.Description,
		Price:       it.Price,
		ImageURL:    it.ImageURL,
		Available:   it.Available,
		AvgRating:   it.AvgRating,
		ReviewCount: it.ReviewCount,
		IsFavorite:  it.IsFavorite,
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// GetMenu возвращает меню с агрегатами отзывов и признаком избранного.
// Поиск по названию через query-параметр search.
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	items, err := h.service.ListMenu(r.Context(), r.URL.Query().Get("search"), session.UserID)
	if err != nil {
		h.writeError(w, err, "list menu error")
		return
	}

	resp := make([]menuItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toMenuItemResponse(it))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// GetMenuItem возвращает одну позицию меню.
func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	item, err := h.service.GetMenuItem(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "get menu item error")
		return
	}

	h.writeJSON(w, http.StatusOK, toMenuItemResponse(*item))
}

type menuItemRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image_url"`
	Available   *bool  `json:"available"`
	// Байты изображения в base64; при наличии загружаются в блоб-хранилище.
	Image     []byte `json:"image,omitempty"`
	ImageName string `json:"image_name,omitempty"`
}

func (req menuItemRequest) toModel(id int64) model.MenuItem {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return model.MenuItem{
		ID:          id,
		Name:        req.Name,
		Category:    model.Category(req.Category),
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   available,
	}
}

// CreateMenuItem создаёт позицию меню. Админская операция.
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Name == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	id, err := h.service.CreateMenuItem(r.Context(), req.toModel(0), req.Image, req.ImageName)
	if err != nil {
		h.writeError(w, err, "create menu item error")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// UpdateMenuItem обновляет позицию меню. Админская операция.
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req menuItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.service.UpdateMenuItem(r.Context(), req.toModel(id), req.Image, req.ImageName); err != nil {
		h.writeError(w, err, "update menu item error")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteMenuItem удаляет позицию меню. Админская операция.
func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteMenuItem(r.Context(), id); err != nil {
		h.writeError(w, err, "delete menu item error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
