package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

// CreateOrder сохраняет заказ со снимком строк и возвращает его идентификатор.
// Статус нового заказа всегда Pending, время выставляет сервер БД.
func (r *PostgresRepository) CreateOrder(ctx context.Context, userID int64, items []model.LineItem, total int64, payment model.PaymentMethod) (int64, error) {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return 0, fmt.Errorf("marshal line items: %w", err)
	}

	var id int64
	err = r.pool.QueryRow(ctx,
		`INSERT INTO orders (user_id, items_json, total_price, status, payment_method)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		userID, itemsJSON, total, string(model.OrderStatusPending), string(payment),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	return id, nil
}

// GetOrder возвращает заказ по идентификатору.
func (r *PostgresRepository) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, user_id, items_json, total_price, status, payment_method, created_at
		 FROM orders WHERE id = $1`,
		id,
	)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListOrders возвращает все заказы, новые первыми. Равное время создания
// упорядочивается по убыванию идентификатора.
func (r *PostgresRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	return r.listOrders(ctx,
		`SELECT id, user_id, items_json, total_price, status, payment_method, created_at
		 FROM orders ORDER BY created_at DESC, id DESC`)
}

// ListOrdersByUser возвращает заказы пользователя, новые первыми.
func (r *PostgresRepository) ListOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return r.listOrders(ctx,
		`SELECT id, user_id, items_json, total_price, status, payment_method, created_at
		 FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID)
}

func (r *PostgresRepository) listOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return orders, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o         model.Order
		itemsJSON []byte
		status    string
		payment   string
		createdAt time.Time
	)
	err := row.Scan(&o.ID, &o.UserID, &itemsJSON, &o.Total, &status, &payment, &createdAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal line items: %w", err)
	}

	o.Status = model.OrderStatus(status)
	o.PaymentMethod = model.PaymentMethod(payment)
	o.CreatedAt = createdAt

	return &o, nil
}

// UpdateOrderStatus переводит заказ в новый статус, если текущий статус входит
// в allowedFrom. Проверка выполняется внутри UPDATE, поэтому параллельные
// переводы не могут обойти машину состояний. Возвращает признак применения.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int64, next model.OrderStatus, allowedFrom []model.OrderStatus) (bool, error) {
	from := make([]string, 0, len(allowedFrom))
	for _, s := range allowedFrom {
		from = append(from, string(s))
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1 AND status = ANY($3)`,
		id, string(next), from,
	)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// HasCompletedOrderWithItem сообщает, есть ли у пользователя завершённый заказ,
// содержащий указанную позицию меню. Используется как серверная проверка
// права на отзыв.
func (r *PostgresRepository) HasCompletedOrderWithItem(ctx context.Context, userID, menuID int64) (bool, error) {
	probe, err := json.Marshal([]map[string]int64{{"menu_item_id": menuID}})
	if err != nil {
		return false, fmt.Errorf("marshal probe: %w", err)
	}

	var exists bool
	err = r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM orders
		     WHERE user_id = $1 AND status = $2 AND items_json @> $3
		 )`,
		userID, string(model.OrderStatusCompleted), probe,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check completed order: %w", err)
	}

	return exists, nil
}
