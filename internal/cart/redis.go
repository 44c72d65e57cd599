// Package cart хранит серверные корзины пользователей в Redis.
//
// Корзина — хеш menuID → количество с TTL; применённый промокод лежит в
// соседнем ключе с тем же сроком жизни. Цены и названия здесь не кэшируются:
// корзина разрешается по актуальному каталогу при каждом чтении.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store предоставляет доступ к корзинам в Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создаёт хранилище корзин с указанным сроком жизни ключей.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func cartKey(userID int64) string {
	return "cart:" + strconv.FormatInt(userID, 10)
}

func promoKey(userID int64) string {
	return cartKey(userID) + ":promo"
}

// AddItem увеличивает количество позиции в корзине пользователя.
func (s *Store) AddItem(ctx context.Context, userID, menuID, qty int64) error {
	key := cartKey(userID)

	pipe := s.client.TxPipeline()
	pipe.HIncrBy(ctx, key, strconv.FormatInt(menuID, 10), qty)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}

	return nil
}

// RemoveItem удаляет позицию из корзины. Отсутствующая позиция — no-op.
func (s *Store) RemoveItem(ctx context.Context, userID, menuID int64) error {
	if err := s.client.HDel(ctx, cartKey(userID), strconv.FormatInt(menuID, 10)).Err(); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// Items возвращает содержимое корзины: menuID → количество.
func (s *Store) Items(ctx context.Context, userID int64) (map[int64]int64, error) {
	raw, err := s.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}

	items := make(map[int64]int64, len(raw))
	for field, value := range raw {
		menuID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse cart field %q: %w", field, err)
		}
		qty, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse cart qty %q: %w", value, err)
		}
		items[menuID] = qty
	}

	return items, nil
}

// Clear удаляет корзину и применённый промокод.
func (s *Store) Clear(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, cartKey(userID), promoKey(userID)).Err(); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// SetPromo запоминает применённый промокод, заменяя предыдущий.
func (s *Store) SetPromo(ctx context.Context, userID int64, code string) error {
	if err := s.client.Set(ctx, promoKey(userID), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("set cart promo: %w", err)
	}
	return nil
}

// Promo возвращает применённый промокод; пустая строка — промокода нет.
func (s *Store) Promo(ctx context.Context, userID int64) (string, error) {
	code, err := s.client.Get(ctx, promoKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("read cart promo: %w", err)
	}
	return code, nil
}
