package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

// Агрегаты отзывов считаются прямо в выборке: среднее приводится к нулю
// через COALESCE, чтобы позиция без отзывов не отдавала NULL.
const menuSelect = `
	SELECT m.id, m.name, m.category, m.description, m.price, m.image_url, m.available,
	       COALESCE(AVG(r.rating), 0) AS avg_rating,
	       COUNT(r.id) AS review_count
	FROM menu m
	LEFT JOIN reviews r ON r.menu_id = m.id`

// CreateMenuItem создаёт позицию меню и возвращает её идентификатор.
func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item model.MenuItem) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO menu (name, category, description, price, image_url, available)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		item.Name, string(item.Category), item.Description, item.Price, item.ImageURL, item.Available,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create menu item: %w", err)
	}
	return id, nil
}

// UpdateMenuItem обновляет позицию меню, включая признак доступности.
func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item model.MenuItem) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE menu SET name = $2, category = $3, description = $4, price = $5, image_url = $6, available = $7
		 WHERE id = $1`,
		item.ID, item.Name, string(item.Category), item.Description, item.Price, item.ImageURL, item.Available,
	)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

// DeleteMenuItem удаляет позицию меню. Исторические заказы не затрагиваются:
// они хранят собственный снимок названия и цены.
func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menu WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

// GetMenuItem возвращает позицию меню с агрегатами отзывов.
func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int64) (*model.MenuItem, error) {
	row := r.pool.QueryRow(ctx, menuSelect+`
		WHERE m.id = $1
		GROUP BY m.id`,
		id,
	)

	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return item, nil
}

// ListMenuItems возвращает меню, отсортированное по категории и названию.
// Поиск по названию регистронезависимый. При userID > 0 каждая позиция
// получает признак избранного для этого пользователя.
func (r *PostgresRepository) ListMenuItems(ctx context.Context, search string, userID int64) ([]model.MenuItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.name, m.category, m.description, m.price, m.image_url, m.available,
		       COALESCE(AVG(r.rating), 0) AS avg_rating,
		       COUNT(r.id) AS review_count,
		       ($2::bigint > 0 AND f.menu_id IS NOT NULL) AS is_favorite
		FROM menu m
		LEFT JOIN reviews r ON r.menu_id = m.id
		LEFT JOIN favorites f ON f.menu_id = m.id AND f.user_id = $2
		WHERE $1 = '' OR LOWER(m.name) LIKE '%' || LOWER($1) || '%'
		GROUP BY m.id, f.menu_id
		ORDER BY m.category, m.name`,
		search, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select menu: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var it model.MenuItem
		var category string
		err := rows.Scan(&it.ID, &it.Name, &category, &it.Description, &it.Price,
			&it.ImageURL, &it.Available, &it.AvgRating, &it.ReviewCount, &it.IsFavorite)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		it.Category = model.Category(category)
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}

func scanMenuItem(row pgx.Row) (*model.MenuItem, error) {
	var it model.MenuItem
	var category string
	err := row.Scan(&it.ID, &it.Name, &category, &it.Description, &it.Price,
		&it.ImageURL, &it.Available, &it.AvgRating, &it.ReviewCount)
	if err != nil {
		return nil, err
	}
	it.Category = model.Category(category)
	return &it, nil
}
