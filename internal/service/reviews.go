package service

import (
	"context"

	"github.com/mmeshcher/cafe-order-system/internal/model"
	"github.com/mmeshcher/cafe-order-system/internal/validation"
)

// SubmitReview сохраняет отзыв на позицию меню. Требуется хотя бы один
// завершённый заказ пользователя с этой позицией; проверка серверная,
// а не только на уровне интерфейса. Повторные отзывы на ту же позицию
// допускаются.
func (s *Service) SubmitReview(ctx context.Context, userID, menuID int64, rating int, text string) (int64, error) {
	if !validation.IsValidRating(rating) {
		return 0, ErrInvalidRating
	}

	if _, err := s.repo.GetMenuItem(ctx, menuID); err != nil {
		return 0, err
	}

	eligible, err := s.repo.HasCompletedOrderWithItem(ctx, userID, menuID)
	if err != nil {
		return 0, err
	}
	if !eligible {
		return 0, ErrReviewNotAllowed
	}

	return s.repo.CreateReview(ctx, userID, menuID, rating, text)
}

// GetMenuRating возвращает средний рейтинг и число отзывов позиции.
// Для позиции без отзывов среднее равно нулю, не NULL.
func (s *Service) GetMenuRating(ctx context.Context, menuID int64) (*model.MenuRating, error) {
	return s.repo.GetMenuRating(ctx, menuID)
}

// GetReviewsForMenu возвращает отзывы на позицию меню, новые первыми.
func (s *Service) GetReviewsForMenu(ctx context.Context, menuID int64) ([]model.Review, error) {
	return s.repo.ListReviewsForMenu(ctx, menuID)
}

// GetAllReviews возвращает все отзывы. Админская операция.
func (s *Service) GetAllReviews(ctx context.Context) ([]model.Review, error) {
	return s.repo.ListAllReviews(ctx)
}
