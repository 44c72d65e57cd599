package repository

import (
	"context"
	"fmt"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

// DailyRevenue возвращает выручку по календарным дням создания заказов,
// по возрастанию даты. Учитываются только завершённые заказы; заказ,
// завершённый позже, остаётся в дне своего создания.
func (r *PostgresRepository) DailyRevenue(ctx context.Context) ([]model.DailyRevenue, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT created_at::date AS day, SUM(total_price)
		 FROM orders
		 WHERE status = $1
		 GROUP BY day
		 ORDER BY day`,
		string(model.OrderStatusCompleted),
	)
	if err != nil {
		return nil, fmt.Errorf("select daily revenue: %w", err)
	}
	defer rows.Close()

	var res []model.DailyRevenue
	for rows.Next() {
		var d model.DailyRevenue
		if err := rows.Scan(&d.Date, &d.Revenue); err != nil {
			return nil, fmt.Errorf("scan daily revenue: %w", err)
		}
		res = append(res, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// TopSellingItems разворачивает снимки строк завершённых заказов и суммирует
// количество по снятому названию. Переименованная позиция делит историю
// между старым и новым названием.
func (r *PostgresRepository) TopSellingItems(ctx context.Context, limit int) ([]model.TopItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT li->>'name' AS name, SUM((li->>'qty')::bigint) AS sold
		 FROM orders, jsonb_array_elements(items_json) AS li
		 WHERE status = $1
		 GROUP BY name
		 ORDER BY sold DESC, name
		 LIMIT $2`,
		string(model.OrderStatusCompleted), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select top items: %w", err)
	}
	defer rows.Close()

	var res []model.TopItem
	for rows.Next() {
		var t model.TopItem
		if err := rows.Scan(&t.Name, &t.Qty); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		res = append(res, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}
