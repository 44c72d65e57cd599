// Package service реализует бизнес-логику системы заказов кафе.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mmeshcher/cafe-order-system/internal/model"
	"github.com/mmeshcher/cafe-order-system/internal/storage"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidQuantity возвращается при попытке положить в корзину количество меньше единицы.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrEmptyCart возвращается при оформлении пустой корзины.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrItemUnavailable возвращается, когда позиция помечена недоступной.
	// Доступность перепроверяется и при добавлении, и при оформлении.
	ErrItemUnavailable = errors.New("menu item is unavailable")
	// ErrInvalidPaymentMethod возвращается при неизвестном способе оплаты.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	// ErrInvalidRating возвращается при оценке вне диапазона 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrReviewNotAllowed возвращается, если у пользователя нет завершённого заказа с позицией.
	ErrReviewNotAllowed = errors.New("review requires a completed order with this item")
	// ErrIllegalTransition возвращается при недопустимом переводе статуса заказа.
	ErrIllegalTransition = errors.New("illegal order status transition")
	// ErrInvalidStatus возвращается при неизвестном статусе заказа.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidCategory возвращается при неизвестной категории меню.
	ErrInvalidCategory = errors.New("invalid menu category")
	// ErrInvalidPrice возвращается при отрицательной цене или скидке.
	ErrInvalidPrice = errors.New("price must not be negative")
	// ErrInvalidRole возвращается при неизвестной роли пользователя.
	ErrInvalidRole = errors.New("invalid user role")
	// ErrAccessDenied возвращается при обращении к чужому заказу.
	ErrAccessDenied = errors.New("access denied")
	// ErrQRNotAvailable возвращается для заказов, оплачиваемых не через QRIS.
	ErrQRNotAvailable = errors.New("order is not payable via QRIS")
	// ErrUploadsDisabled возвращается при загрузке изображения без настроенного блоб-хранилища.
	ErrUploadsDisabled = errors.New("image uploads are not configured")
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error

	CreateUser(ctx context.Context, username string, passwordHash []byte, role model.Role) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserRole(ctx context.Context, username string, role model.Role) error
	DeleteUser(ctx context.Context, username string) error

	CreateMenuItem(ctx context.Context, item model.MenuItem) (int64, error)
	UpdateMenuItem(ctx context.Context, item model.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int64) error
	GetMenuItem(ctx context.Context, id int64) (*model.MenuItem, error)
	ListMenuItems(ctx context.Context, search string, userID int64) ([]model.MenuItem, error)

	GetActivePromo(ctx context.Context, code string) (*model.Promo, error)
	ListPromos(ctx context.Context) ([]model.Promo, error)
	CreatePromo(ctx context.Context, code string, discountAmount int64, active bool) (int64, error)
	UpdatePromo(ctx context.Context, p model.Promo) error
	DeletePromo(ctx context.Context, id int64) error

	CreateOrder(ctx context.Context, userID int64, items []model.LineItem, total int64, payment model.PaymentMethod) (int64, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, next model.OrderStatus, allowedFrom []model.OrderStatus) (bool, error)
	HasCompletedOrderWithItem(ctx context.Context, userID, menuID int64) (bool, error)

	CreateReview(ctx context.Context, userID, menuID int64, rating int, text string) (int64, error)
	GetMenuRating(ctx context.Context, menuID int64) (*model.MenuRating, error)
	ListReviewsForMenu(ctx context.Context, menuID int64) ([]model.Review, error)
	ListAllReviews(ctx context.Context) ([]model.Review, error)

	AddFavorite(ctx context.Context, userID, menuID int64) error
	RemoveFavorite(ctx context.Context, userID, menuID int64) error
	IsFavorite(ctx context.Context, userID, menuID int64) (bool, error)
	ListFavorites(ctx context.Context, userID int64) ([]model.MenuItem, error)

	DailyRevenue(ctx context.Context) ([]model.DailyRevenue, error)
	TopSellingItems(ctx context.Context, limit int) ([]model.TopItem, error)
}

// CartStore описывает контракт серверного хранилища корзин.
type CartStore interface {
	AddItem(ctx context.Context, userID, menuID, qty int64) error
	RemoveItem(ctx context.Context, userID, menuID int64) error
	Items(ctx context.Context, userID int64) (map[int64]int64, error)
	Clear(ctx context.Context, userID int64) error
	SetPromo(ctx context.Context, userID int64, code string) error
	Promo(ctx context.Context, userID int64) (string, error)
}

// Service содержит бизнес-логику системы заказов кафе.
type Service struct {
	repo    Repository
	carts   CartStore
	uploads *storage.Client
	logger  *zap.Logger
}

// NewService создаёт сервис с указанными репозиторием, хранилищем корзин и
// клиентом блоб-хранилища. Клиент хранилища может быть nil — тогда загрузка
// изображений недоступна.
func NewService(repo Repository, carts CartStore, uploads *storage.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		carts:   carts,
		uploads: uploads,
		logger:  logger,
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}
