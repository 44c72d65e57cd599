package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

// GetActivePromo возвращает промокод по точному совпадению кода среди активных.
// Неактивный код неотличим от несуществующего.
func (r *PostgresRepository) GetActivePromo(ctx context.Context, code string) (*model.Promo, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, code, discount_amount, active FROM promo WHERE code = $1 AND active = TRUE`,
		code,
	)

	var p model.Promo
	err := row.Scan(&p.ID, &p.Code, &p.DiscountAmount, &p.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromoNotFound
		}
		return nil, fmt.Errorf("get promo: %w", err)
	}

	return &p, nil
}

// ListPromos возвращает все промокоды, новые первыми.
func (r *PostgresRepository) ListPromos(ctx context.Context) ([]model.Promo, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, discount_amount, active FROM promo ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("select promos: %w", err)
	}
	defer rows.Close()

	var promos []model.Promo
	for rows.Next() {
		var p model.Promo
		if err := rows.Scan(&p.ID, &p.Code, &p.DiscountAmount, &p.Active); err != nil {
			return nil, fmt.Errorf("scan promo: %w", err)
		}
		promos = append(promos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return promos, nil
}

// CreatePromo создаёт промокод и возвращает его идентификатор.
func (r *PostgresRepository) CreatePromo(ctx context.Context, code string, discountAmount int64, active bool) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO promo (code, discount_amount, active) VALUES ($1, $2, $3) RETURNING id`,
		code, discountAmount, active,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", ErrPromoExists, code)
		}
		return 0, fmt.Errorf("create promo: %w", err)
	}
	return id, nil
}

// UpdatePromo обновляет промокод, включая признак активности.
func (r *PostgresRepository) UpdatePromo(ctx context.Context, p model.Promo) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE promo SET code = $2, discount_amount = $3, active = $4 WHERE id = $1`,
		p.ID, p.Code, p.DiscountAmount, p.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrPromoExists, p.Code)
		}
		return fmt.Errorf("update promo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPromoNotFound
	}
	return nil
}

// DeletePromo удаляет промокод.
func (r *PostgresRepository) DeletePromo(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM promo WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete promo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPromoNotFound
	}
	return nil
}
