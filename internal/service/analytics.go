package service

import (
	"context"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

// defaultTopItemsLimit — число позиций в рейтинге продаж по умолчанию.
const defaultTopItemsLimit = 10

// DailyRevenue возвращает выручку по дням. Учитываются только завершённые
// заказы; остальные статусы исключаются целиком.
func (s *Service) DailyRevenue(ctx context.Context) ([]model.DailyRevenue, error) {
	return s.repo.DailyRevenue(ctx)
}

// TopSellingItems возвращает самые продаваемые позиции по снимкам строк
// завершённых заказов. limit <= 0 заменяется значением по умолчанию.
func (s *Service) TopSellingItems(ctx context.Context, limit int) ([]model.TopItem, error) {
	if limit <= 0 {
		limit = defaultTopItemsLimit
	}
	return s.repo.TopSellingItems(ctx, limit)
}
