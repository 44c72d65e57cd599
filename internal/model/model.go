// Package model содержит доменные сущности системы заказов кафе.
package model

import "time"

// Role описывает роль пользователя в системе.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User представляет зарегистрированного пользователя кафе.
type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	Role         Role
	CreatedAt    time.Time
}

// Category описывает категорию позиции меню.
type Category string

const (
	CategoryFood    Category = "Food"
	CategoryDrink   Category = "Drink"
	CategoryDessert Category = "Dessert"
)

// MenuItem описывает позицию меню. Цена хранится в целых рупиях.
type MenuItem struct {
	ID          int64
	Name        string
	Category    Category
	Description string
	Price       int64
	ImageURL    string
	Available   bool
	// Агрегаты отзывов, заполняются при выборке из хранилища.
	AvgRating   float64
	ReviewCount int64
	// Признак избранного для текущего пользователя, заполняется при выборке с userID.
	IsFavorite bool
}

// Promo описывает промокод с фиксированной суммой скидки.
type Promo struct {
	ID             int64
	Code           string
	DiscountAmount int64
	Active         bool
}

// OrderStatus описывает статус выполнения заказа.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// CanTransitionTo сообщает, допустим ли переход статуса заказа.
// Pending → Processing → Completed; Cancelled достижим из Pending и
// Processing. Из терминальных статусов переходов нет.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	default:
		return false
	}
}

// PaymentMethod описывает способ оплаты заказа.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "Cash"
	PaymentQRIS    PaymentMethod = "QRIS"
	PaymentEWallet PaymentMethod = "E-Wallet"
)

// LineItem — строка заказа: снимок названия и цены позиции на момент
// оформления. Форма JSON фиксирована, по ней работает аналитика.
type LineItem struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Qty        int64  `json:"qty"`
}

// Order описывает оформленный заказ.
type Order struct {
	ID            int64
	UserID        int64
	Items         []LineItem
	Total         int64
	Status        OrderStatus
	PaymentMethod PaymentMethod
	CreatedAt     time.Time
}

// Review описывает отзыв пользователя на позицию меню.
type Review struct {
	ID        int64
	UserID    int64
	Username  string
	MenuID    int64
	MenuName  string
	Rating    int
	Text      string
	CreatedAt time.Time
}

// MenuRating содержит агрегат отзывов по позиции меню.
// Average равен нулю, когда отзывов нет.
type MenuRating struct {
	Average float64 `json:"average_rating"`
	Count   int64   `json:"review_count"`
}

// CartLine — строка корзины с актуальными данными каталога.
type CartLine struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Qty        int64  `json:"qty"`
	LineTotal  int64  `json:"line_total"`
}

// Cart — корзина пользователя, рассчитанная по текущему каталогу.
type Cart struct {
	Lines     []CartLine `json:"lines"`
	Subtotal  int64      `json:"subtotal"`
	PromoCode string     `json:"promo_code,omitempty"`
	Discount  int64      `json:"discount"`
	Total     int64      `json:"total"`
}

// DailyRevenue — выручка за календарный день по завершённым заказам.
type DailyRevenue struct {
	Date    time.Time
	Revenue int64
}

// TopItem — суммарное проданное количество по названию позиции
// среди завершённых заказов.
type TopItem struct {
	Name string
	Qty  int64
}
