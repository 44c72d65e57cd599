package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	custommiddleware "github.com/mmeshcher/cafe-order-system/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware системы заказов кафе.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Post("/auth/logout", h.Logout)

			r.Get("/menu", h.GetMenu)
			r.Get("/menu/{id}", h.GetMenuItem)
			r.Get("/menu/{id}/rating", h.GetMenuRating)
			r.Get("/menu/{id}/reviews", h.GetMenuReviews)
			r.Post("/menu/{id}/reviews", h.SubmitReview)
			r.Post("/menu/{id}/favorite", h.ToggleFavorite)

			r.Get("/favorites", h.GetFavorites)

			r.Get("/cart", h.GetCart)
			r.Post("/cart/items", h.AddToCart)
			r.Delete("/cart/items/{id}", h.RemoveFromCart)
			r.Post("/cart/promo", h.ApplyPromo)
			r.Post("/cart/checkout", h.Checkout)

			r.Get("/orders", h.GetOrders)
			r.Get("/orders/{id}", h.GetOrder)
			r.Get("/orders/{id}/qr", h.GetOrderQR)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)
			r.Use(h.authMiddleware.RequireAdmin)

			r.Post("/menu", h.CreateMenuItem)
			r.Put("/menu/{id}", h.UpdateMenuItem)
			r.Delete("/menu/{id}", h.DeleteMenuItem)

			r.Get("/promos", h.GetPromos)
			r.Post("/promos", h.CreatePromo)
			r.Put("/promos/{id}", h.UpdatePromo)
			r.Delete("/promos/{id}", h.DeletePromo)

			r.Get("/orders", h.GetAllOrders)
			r.Patch("/orders/{id}/status", h.UpdateOrderStatus)

			r.Get("/reviews", h.GetAllReviews)

			r.Get("/users", h.GetUsers)
			r.Post("/users", h.CreateUser)
			r.Patch("/users/{username}/role", h.UpdateUserRole)
			r.Delete("/users/{username}", h.DeleteUser)

			r.Get("/analytics/revenue", h.GetDailyRevenue)
			r.Get("/analytics/top-items", h.GetTopSellingItems)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
