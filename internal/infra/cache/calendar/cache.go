package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheUnavailable возвращается при ошибках обращения к redis
	ErrCacheUnavailable = errors.New("calendar.cache: cache unavailable")
)

// Cache кэш ответов календарной сетки в redis
// Кэш best-effort: его недоступность не должна ломать чтение календаря
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кэш календарной сетки
func NewCache(addr, password string, db int, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("%w: ping failed: %v", ErrCacheUnavailable, err)
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// Close закрывает соединение с redis
func (c *Cache) Close() error {
	return c.client.Close()
}

// GridKey ключ кэша сетки месяца
// Роль входит в ключ: админ и клиент видят разные агрегаты
func GridKey(ownerID int64, year int, month time.Month, timezone, role string) string {
	return fmt.Sprintf("calendar:%d:%04d-%02d:%s:%s", ownerID, year, int(month), timezone, role)
}

// Get читает закэшированное значение по ключу
// Возвращает false, если значения нет
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %q: %v", ErrCacheUnavailable, key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("%w: decode %q: %v", ErrCacheUnavailable, key, err)
	}

	return true, nil
}

// Set сохраняет значение по ключу с настроенным TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %q: %v", ErrCacheUnavailable, key, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %q: %v", ErrCacheUnavailable, key, err)
	}

	return nil
}

// InvalidateOwner удаляет все закэшированные сетки владельца
// Вызывается после каждой мутации календаря владельца
func (c *Cache) InvalidateOwner(ctx context.Context, ownerID int64) error {
	pattern := fmt.Sprintf("calendar:%d:*", ownerID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: scan %q: %v", ErrCacheUnavailable, pattern, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCacheUnavailable, err)
	}

	return nil
}
