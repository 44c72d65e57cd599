package service

import (
	"context"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

// ToggleFavorite добавляет позицию в избранное или убирает её, если она уже
// там. Возвращает получившееся состояние. Обе ветки идемпотентны: дубликаты
// исключены ограничением уникальности.
func (s *Service) ToggleFavorite(ctx context.Context, userID, menuID int64) (bool, error) {
	if _, err := s.repo.GetMenuItem(ctx, menuID); err != nil {
		return false, err
	}

	favorite, err := s.repo.IsFavorite(ctx, userID, menuID)
	if err != nil {
		return false, err
	}

	if favorite {
		if err := s.repo.RemoveFavorite(ctx, userID, menuID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.repo.AddFavorite(ctx, userID, menuID); err != nil {
		return false, err
	}
	return true, nil
}

// ListFavorites возвращает избранные позиции пользователя с агрегатами
// отзывов, по алфавиту.
func (s *Service) ListFavorites(ctx context.Context, userID int64) ([]model.MenuItem, error) {
	return s.repo.ListFavorites(ctx, userID)
}
