package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/cadena-api/internal/application/condition"
	"github.com/jhoicas/cadena-api/internal/application/dto"
	"github.com/jhoicas/cadena-api/pkg/config"
)

var _ condition.StatsCache = (*StatsCache)(nil)

// StatsCache caché TTL en Redis para las estadísticas de condición.
// Los valores se serializan como JSON.
type StatsCache struct {
	client *goredis.Client
}

// NewStatsCache conecta con Redis y verifica la conexión.
func NewStatsCache(ctx context.Context, cfg config.RedisConfig) (*StatsCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &StatsCache{client: client}, nil
}

// Get devuelve la entrada si existe; (nil, false, nil) en miss.
func (c *StatsCache) Get(ctx context.Context, key string) (*dto.ConditionStatsResponse, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var value dto.ConditionStatsResponse
	if err := json.Unmarshal(raw, &value); err != nil {
		// Entrada corrupta: tratar como miss, se sobreescribe en el próximo Set.
		return nil, false, nil
	}
	return &value, true, nil
}

// Set guarda la entrada con el TTL indicado.
func (c *StatsCache) Set(ctx context.Context, key string, value *dto.ConditionStatsResponse, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close cierra la conexión con Redis.
func (c *StatsCache) Close() error {
	return c.client.Close()
}
