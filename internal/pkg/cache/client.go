package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client define o contrato de cache usado pelo rate limiter.
type Client interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Close() error
}

// RedisClient é a implementação concreta da interface Client, usando Redis.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient conecta ao Redis e confirma a conexão com PING.
func NewRedisClient(ctx context.Context, addr string) (Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr, // Endereço do Redis (e.g., "localhost:6379")
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}

	return &RedisClient{rdb: rdb}, nil
}

// Incr incrementa o contador da chave (criando-a com 1) e devolve o novo valor.
func (c *RedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

// Expire define o tempo de vida da chave.
func (c *RedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return c.rdb.Expire(ctx, key, expiration).Err()
}

// Close encerra o pool de conexões.
func (c *RedisClient) Close() error {
	return c.rdb.Close()
}
