package repository

import (
	"context"
	"fmt"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

// AddFavorite добавляет позицию меню в избранное пользователя.
// Повторное добавление — no-op за счёт ON CONFLICT, дубликатов не бывает.
func (r *PostgresRepository) AddFavorite(ctx context.Context, userID, menuID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO favorites (user_id, menu_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, menu_id) DO NOTHING`,
		userID, menuID,
	)
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite убирает позицию из избранного. Отсутствие записи — no-op.
func (r *PostgresRepository) RemoveFavorite(ctx context.Context, userID, menuID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND menu_id = $2`,
		userID, menuID,
	)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// IsFavorite сообщает, находится ли позиция в избранном пользователя.
func (r *PostgresRepository) IsFavorite(ctx context.Context, userID, menuID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND menu_id = $2)`,
		userID, menuID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return exists, nil
}

// ListFavorites возвращает избранные позиции пользователя с агрегатами
// отзывов, отсортированные по названию.
func (r *PostgresRepository) ListFavorites(ctx context.Context, userID int64) ([]model.MenuItem, error) {
	rows, err := r.pool.Query(ctx, menuSelect+`
		JOIN favorites f ON f.menu_id = m.id
		WHERE f.user_id = $1
		GROUP BY m.id
		ORDER BY m.name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select favorites: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		it, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		it.IsFavorite = true
		items = append(items, *it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}
