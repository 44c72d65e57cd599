package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/mmeshcher/cafe-order-system/internal/model"
	"github.com/mmeshcher/cafe-order-system/internal/repository"
	"github.com/mmeshcher/cafe-order-system/internal/validation"
)

// AddToCart кладёт позицию меню в корзину пользователя или увеличивает её
// количество. Недоступные позиции в корзину не попадают.
func (s *Service) AddToCart(ctx context.Context, userID, menuID, qty int64) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	item, err := s.repo.GetMenuItem(ctx, menuID)
	if err != nil {
		return err
	}
	if !item.Available {
		return ErrItemUnavailable
	}

	return s.carts.AddItem(ctx, userID, menuID, qty)
}

// RemoveFromCart убирает позицию из корзины. Отсутствующая позиция — no-op.
func (s *Service) RemoveFromCart(ctx context.Context, userID, menuID int64) error {
	return s.carts.RemoveItem(ctx, userID, menuID)
}

// ClearCart опустошает корзину и сбрасывает промокод. Вызывается при выходе
// из системы.
func (s *Service) ClearCart(ctx context.Context, userID int64) error {
	return s.carts.Clear(ctx, userID)
}

// GetCart разрешает корзину по актуальному каталогу: для каждой строки
// берутся текущие название и цена, считается подытог, применяется скидка.
// Строки удалённых из каталога позиций отбрасываются.
func (s *Service) GetCart(ctx context.Context, userID int64) (*model.Cart, error) {
	snap, err := s.snapshotCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &snap.Cart, nil
}

// ApplyPromo проверяет промокод и запоминает его для корзины пользователя.
// Успешное применение заменяет предыдущий код; неуспешное оставляет его
// нетронутым.
func (s *Service) ApplyPromo(ctx context.Context, userID int64, code string) (*model.Promo, error) {
	promo, err := s.repo.GetActivePromo(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.carts.SetPromo(ctx, userID, promo.Code); err != nil {
		return nil, err
	}

	return promo, nil
}

// Checkout превращает корзину в заказ: снимает актуальные названия и цены,
// перепроверяет доступность, применяет скидку и сохраняет заказ со статусом
// Pending. Корзина очищается только после успешной записи.
func (s *Service) Checkout(ctx context.Context, userID int64, payment model.PaymentMethod) (int64, error) {
	if !validation.IsValidPaymentMethod(payment) {
		return 0, ErrInvalidPaymentMethod
	}

	snap, err := s.snapshotCart(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(snap.Lines) == 0 {
		return 0, ErrEmptyCart
	}
	if snap.HasUnavailable {
		return 0, ErrItemUnavailable
	}

	items := make([]model.LineItem, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		items = append(items, model.LineItem{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Price:      line.Price,
			Qty:        line.Qty,
		})
	}

	orderID, err := s.repo.CreateOrder(ctx, userID, items, snap.Total, payment)
	if err != nil {
		return 0, err
	}

	// Заказ уже записан; неудавшаяся очистка оставит корзину видимой,
	// но повторного заказа сама по себе не создаст.
	if err := s.carts.Clear(ctx, userID); err != nil {
		s.logger.Warn("clear cart after checkout",
			zap.Int64("userID", userID), zap.Int64("orderID", orderID), zap.Error(err))
	}

	return orderID, nil
}

// applyDiscount применяет фиксированную скидку: итог не бывает отрицательным.
func applyDiscount(subtotal, discount int64) int64 {
	total := subtotal - discount
	if total < 0 {
		return 0
	}
	return total
}

type cartSnapshot struct {
	model.Cart
	HasUnavailable bool
}

func (s *Service) snapshotCart(ctx context.Context, userID int64) (*cartSnapshot, error) {
	quantities, err := s.carts.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	menuIDs := make([]int64, 0, len(quantities))
	for id := range quantities {
		menuIDs = append(menuIDs, id)
	}
	sort.Slice(menuIDs, func(i, j int) bool { return menuIDs[i] < menuIDs[j] })

	snap := &cartSnapshot{}
	for _, menuID := range menuIDs {
		item, err := s.repo.GetMenuItem(ctx, menuID)
		if err != nil {
			if errors.Is(err, repository.ErrMenuItemNotFound) {
				continue
			}
			return nil, err
		}

		qty := quantities[menuID]
		snap.Lines = append(snap.Lines, model.CartLine{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Qty:        qty,
			LineTotal:  item.Price * qty,
		})
		snap.Subtotal += item.Price * qty
		if !item.Available {
			snap.HasUnavailable = true
		}
	}

	code, err := s.carts.Promo(ctx, userID)
	if err != nil {
		return nil, err
	}
	if code != "" {
		promo, err := s.repo.GetActivePromo(ctx, code)
		switch {
		case err == nil:
			snap.PromoCode = promo.Code
			snap.Discount = promo.DiscountAmount
		case errors.Is(err, repository.ErrPromoNotFound):
			// Код деактивировали после применения — скидки нет.
		default:
			return nil, err
		}
	}

	snap.Total = applyDiscount(snap.Subtotal, snap.Discount)

	return snap, nil
}
