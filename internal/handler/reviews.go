package handler

import (
	"net/http"
	"time"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

type reviewResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	MenuID    int64  `json:"menu_id"`
	MenuName  string `json:"menu_name,omitempty"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

func toReviewResponses(reviews []model.Review) []reviewResponse {
	resp := make([]reviewResponse, 0, len(reviews))
	for _, rev := range reviews {
		resp = append(resp, reviewResponse{
			ID:        rev.ID,
			Username:  rev.Username,
			MenuID:    rev.MenuID,
			MenuName:  rev.MenuName,
			Rating:    rev.Rating,
			Text:      rev.Text,
			CreatedAt: rev.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}

// GetMenuReviews возвращает отзывы на позицию меню, новые первыми.
func (h *Handler) GetMenuReviews(w http.ResponseWriter, r *http.Request) {
	menuID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	reviews, err := h.service.GetReviewsForMenu(r.Context(), menuID)
	if err != nil {
		h.writeError(w, err, "get menu reviews error")
		return
	}

	h.writeJSON(w, http.StatusOK, toReviewResponses(reviews))
}

type submitReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// SubmitReview принимает отзыв текущего пользователя на позицию меню.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	menuID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req submitReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	id, err := h.service.SubmitReview(r.Context(), session.UserID, menuID, req.Rating, req.Text)
	if err != nil {
		h.writeError(w, err, "submit review error")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// GetMenuRating возвращает средний рейтинг и число отзывов позиции меню.
func (h *Handler) GetMenuRating(w http.ResponseWriter, r *http.Request) {
	menuID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	rating, err := h.service.GetMenuRating(r.Context(), menuID)
	if err != nil {
		h.writeError(w, err, "get menu rating error")
		return
	}

	h.writeJSON(w, http.StatusOK, rating)
}

// GetAllReviews возвращает все отзывы. Админская операция.
func (h *Handler) GetAllReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetAllReviews(r.Context())
	if err != nil {
		h.writeError(w, err, "get all reviews error")
		return
	}

	h.writeJSON(w, http.StatusOK, toReviewResponses(reviews))
}

// GetFavorites возвращает избранные позиции текущего пользователя.
func (h *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	items, err := h.service.ListFavorites(r.Context(), session.UserID)
	if err != nil {
		h.writeError(w, err, "list favorites error")
		return
	}

	resp := make([]menuItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toMenuItemResponse(it))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// ToggleFavorite добавляет позицию в избранное или убирает её.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	menuID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	favorite, err := h.service.ToggleFavorite(r.Context(), session.UserID, menuID)
	if err != nil {
		h.writeError(w, err, "toggle favorite error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"favorite": favorite})
}
