package repository

import (
	"context"
	"fmt"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

// CreateReview сохраняет отзыв и возвращает его идентификатор.
// Уникальность пары (пользователь, позиция) не требуется: повторные отзывы
// допустимы, как в исходной системе.
func (r *PostgresRepository) CreateReview(ctx context.Context, userID, menuID int64, rating int, text string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO reviews (user_id, menu_id, rating, review_text) VALUES ($1, $2, $3, $4) RETURNING id`,
		userID, menuID, rating, text,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create review: %w", err)
	}
	return id, nil
}

// GetMenuRating возвращает средний рейтинг и число отзывов позиции меню.
// Для позиции без отзывов среднее равно нулю.
func (r *PostgresRepository) GetMenuRating(ctx context.Context, menuID int64) (*model.MenuRating, error) {
	var rating model.MenuRating
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE menu_id = $1`,
		menuID,
	).Scan(&rating.Average, &rating.Count)
	if err != nil {
		return nil, fmt.Errorf("menu rating: %w", err)
	}
	return &rating, nil
}

// ListReviewsForMenu возвращает отзывы на позицию меню, новые первыми.
func (r *PostgresRepository) ListReviewsForMenu(ctx context.Context, menuID int64) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.user_id, COALESCE(u.username, ''), r.menu_id, r.rating, r.review_text, r.created_at
		 FROM reviews r
		 LEFT JOIN users u ON u.id = r.user_id
		 WHERE r.menu_id = $1
		 ORDER BY r.created_at DESC`,
		menuID,
	)
	if err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.Username, &rev.MenuID, &rev.Rating, &rev.Text, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reviews, nil
}

// ListAllReviews возвращает все отзывы с именами пользователей и позиций,
// новые первыми. Используется в админском обзоре.
func (r *PostgresRepository) ListAllReviews(ctx context.Context) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.user_id, COALESCE(u.username, ''), r.menu_id, COALESCE(m.name, ''), r.rating, r.review_text, r.created_at
		 FROM reviews r
		 LEFT JOIN users u ON u.id = r.user_id
		 LEFT JOIN menu m ON m.id = r.menu_id
		 ORDER BY r.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.Username, &rev.MenuID, &rev.MenuName, &rev.Rating, &rev.Text, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reviews, nil
}
