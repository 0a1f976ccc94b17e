// Package cache JSON-кэш поверх Redis
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName            = "cache"
	otelCacheKeyAttribute = "cache.key"
)

// ErrMiss возвращается, когда ключ отсутствует в кэше
var ErrMiss = errors.New("cache: miss")

// RedisCache кэш значений, сериализуемых в JSON
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache создает кэш поверх клиента Redis
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get читает значение по ключу в value; при отсутствии ключа возвращает ErrMiss
func (c *RedisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, tracerName+".Get")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String(otelCacheKeyAttribute, key))

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if err = json.Unmarshal(raw, value); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

// Save сохраняет значение с TTL; ttl <= 0 означает без ограничения
func (c *RedisCache) Save(ctx context.Context, key string, value any, ttl time.Duration) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, tracerName+".Save")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String(otelCacheKeyAttribute, key))

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if ttl < 0 {
		ttl = 0
	}

	if err = c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache value: %w", err)
	}

	return nil
}

// Delete удаляет ключи
func (c *RedisCache) Delete(ctx context.Context, keys ...string) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, tracerName+".Delete")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.StringSlice(otelCacheKeyAttribute, keys))

	if len(keys) == 0 {
		return nil
	}

	if err = c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

// Generation возвращает счетчик поколения по ключу, 0 если счетчика еще нет
func (c *RedisCache) Generation(ctx context.Context, key string) (gen int64, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, tracerName+".Generation")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String(otelCacheKeyAttribute, key))

	gen, err = c.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get cache generation: %w", err)
	}

	return gen, nil
}

// BumpGeneration атомарно увеличивает счетчик поколения и возвращает новое значение
func (c *RedisCache) BumpGeneration(ctx context.Context, key string) (gen int64, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, tracerName+".BumpGeneration")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String(otelCacheKeyAttribute, key))

	gen, err = c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to bump cache generation: %w", err)
	}

	return gen, nil
}

// VersionedKey ключ значения, записанного в поколении gen.
// Значение, сохраненное читателем после смены поколения, попадает в старый ключ и больше не читается
func VersionedKey(key string, gen int64) string {
	return fmt.Sprintf("%s:v%d", key, gen)
}

// Ping проверяет доступность Redis
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, ErrMiss) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Nop кэш, который ничего не хранит (кэширование выключено)
type Nop struct{}

func (Nop) Get(context.Context, string, any) error                 { return ErrMiss }
func (Nop) Save(context.Context, string, any, time.Duration) error { return nil }
func (Nop) Delete(context.Context, ...string) error                { return nil }
func (Nop) Generation(context.Context, string) (int64, error)      { return 0, nil }
func (Nop) BumpGeneration(context.Context, string) (int64, error)  { return 0, nil }
