// Package validation содержит проверки входных значений доменных перечислений.
package validation

import "github.com/mmeshcher/cafe-order-system/internal/model"

// IsValidRating сообщает, входит ли оценка в допустимый диапазон 1..5.
func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// IsValidPaymentMethod проверяет способ оплаты.
func IsValidPaymentMethod(m model.PaymentMethod) bool {
	switch m {
	case model.PaymentCash, model.PaymentQRIS, model.PaymentEWallet:
		return true
	}
	return false
}

// IsValidCategory проверяет категорию позиции меню.
func IsValidCategory(c model.Category) bool {
	switch c {
	case model.CategoryFood, model.CategoryDrink, model.CategoryDessert:
		return true
	}
	return false
}

// IsValidRole проверяет роль пользователя.
func IsValidRole(r model.Role) bool {
	return r == model.RoleUser || r == model.RoleAdmin
}

// IsValidStatus проверяет статус заказа.
func IsValidStatus(s model.OrderStatus) bool {
	switch s {
	case model.OrderStatusPending, model.OrderStatusProcessing,
		model.OrderStatusCompleted, model.OrderStatusCancelled:
		return true
	}
	return false
}
