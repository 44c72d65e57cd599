// Package handler содержит HTTP-обработчики API системы заказов кафе.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/cafe-order-system/internal/middleware"
	"github.com/mmeshcher/cafe-order-system/internal/model"
	"github.com/mmeshcher/cafe-order-system/internal/repository"
	"github.com/mmeshcher/cafe-order-system/internal/service"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	RegisterUser(ctx context.Context, username, password string) (int64, error)
	CreateUser(ctx context.Context, username, password string, role model.Role) (int64, error)
	AuthenticateUser(ctx context.Context, username, password string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserRole(ctx context.Context, username string, role model.Role) error
	DeleteUser(ctx context.Context, username string) error

	ListMenu(ctx context.Context, search string, userID int64) ([]model.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (*model.MenuItem, error)
	CreateMenuItem(ctx context.Context, item model.MenuItem, image []byte, imageName string) (int64, error)
	UpdateMenuItem(ctx context.Context, item model.MenuItem, image []byte, imageName string) error
	DeleteMenuItem(ctx context.Context, id int64) error

	AddToCart(ctx context.Context, userID, menuID, qty int64) error
	RemoveFromCart(ctx context.Context, userID, menuID int64) error
	ClearCart(ctx context.Context, userID int64) error
	GetCart(ctx context.Context, userID int64) (*model.Cart, error)
	ApplyPromo(ctx context.Context, userID int64, code string) (*model.Promo, error)
	Checkout(ctx context.Context, userID int64, payment model.PaymentMethod) (int64, error)

	ListPromos(ctx context.Context) ([]model.Promo, error)
	CreatePromo(ctx context.Context, code string, discountAmount int64, active bool) (int64, error)
	UpdatePromo(ctx context.Context, p model.Promo) error
	DeletePromo(ctx context.Context, id int64) error

	GetOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, orderID, userID int64, role model.Role) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, next model.OrderStatus) error
	OrderPaymentQR(ctx context.Context, orderID, userID int64, role model.Role) ([]byte, error)

	SubmitReview(ctx context.Context, userID, menuID int64, rating int, text string) (int64, error)
	GetMenuRating(ctx context.Context, menuID int64) (*model.MenuRating, error)
	GetReviewsForMenu(ctx context.Context, menuID int64) ([]model.Review, error)
	GetAllReviews(ctx context.Context) ([]model.Review, error)

	ToggleFavorite(ctx context.Context, userID, menuID int64) (bool, error)
	ListFavorites(ctx context.Context, userID int64) ([]model.MenuItem, error)

	DailyRevenue(ctx context.Context) ([]model.DailyRevenue, error)
	TopSellingItems(ctx context.Context, limit int) ([]model.TopItem, error)
}

// Handler реализует HTTP-обработчики API системы заказов кафе.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

// writeError переводит ошибки сервисного слоя в HTTP-статусы.
// Непредвиденные ошибки логируются и отдаются как 500 без деталей.
func (h *Handler) writeError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrMenuItemNotFound),
		errors.Is(err, repository.ErrPromoNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrUserExists),
		errors.Is(err, repository.ErrPromoExists),
		errors.Is(err, service.ErrItemUnavailable),
		errors.Is(err, service.ErrIllegalTransition),
		errors.Is(err, service.ErrQRNotAvailable),
		errors.Is(err, service.ErrUploadsDisabled):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	case errors.Is(err, service.ErrReviewNotAllowed),
		errors.Is(err, service.ErrAccessDenied):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		h.logger.Error(msg, zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return err
	}
	return nil
}

func sessionFromRequest(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	}
	return session, ok
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register обрабатывает регистрацию нового пользователя.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	userID, err := h.service.RegisterUser(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, err, "register user error")
		return
	}

	h.authMiddleware.SetAuthCookie(w, userID, model.RoleUser)
	w.WriteHeader(http.StatusOK)
}

// Login выполняет аутентификацию пользователя и установку cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	user, err := h.service.AuthenticateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		h.logger.Error("login user error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.authMiddleware.SetAuthCookie(w, user.ID, user.Role)
	w.WriteHeader(http.StatusOK)
}

// Logout снимает cookie авторизации и опустошает корзину сессии.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearCart(r.Context(), session.UserID); err != nil {
		h.logger.Warn("clear cart on logout", zap.Int64("userID", session.UserID), zap.Error(err))
	}

	h.authMiddleware.ClearAuthCookie(w)
	w.WriteHeader(http.StatusOK)
}
