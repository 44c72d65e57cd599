package service

import (
	"context"
	"fmt"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

// ListPromos возвращает все промокоды для административного интерфейса.
func (s *Service) ListPromos(ctx context.Context) ([]model.Promo, error) {
	promos, err := s.repo.ListPromos(ctx)
	if err != nil {
		return nil, fmt.Errorf("list promos: %w", err)
	}
	return promos, nil
}

// CreatePromo создаёт промокод и возвращает его идентификатор.
func (s *Service) CreatePromo(ctx context.Context, code string, discountAmount int64, active bool) (int64, error) {
	id, err := s.repo.CreatePromo(ctx, code, discountAmount, active)
	if err != nil {
		return 0, fmt.Errorf("create promo: %w", err)
	}
	return id, nil
}

// UpdatePromo обновляет промокод, включая признак активности.
func (s *Service) UpdatePromo(ctx context.Context, p model.Promo) error {
	if err := s.repo.UpdatePromo(ctx, p); err != nil {
		return fmt.Errorf("update promo: %w", err)
	}
	return nil
}

// DeletePromo удаляет промокод. Применённые коды в корзинах при этом не
// очищаются: они перестанут давать скидку при следующем пересчёте.
func (s *Service) DeletePromo(ctx context.Context, id int64) error {
	if err := s.repo.DeletePromo(ctx, id); err != nil {
		return fmt.Errorf("delete promo: %w", err)
	}
	return nil
}
