package condition

import (
	"context"
	"time"

	"github.com/jhoicas/cadena-api/internal/application/dto"
)

// StatsCache puerto de caché TTL para las estadísticas de condición (lectura
// frecuente, tolerante a datos de hasta un minuto de antigüedad).
type StatsCache interface {
	Get(ctx context.Context, key string) (*dto.ConditionStatsResponse, bool, error)
	Set(ctx context.Context, key string, value *dto.ConditionStatsResponse, ttl time.Duration) error
}

// NoopStatsCache implementación nula: sin Redis configurado, cada consulta va
// a la base de datos.
type NoopStatsCache struct{}

func (NoopStatsCache) Get(_ context.Context, _ string) (*dto.ConditionStatsResponse, bool, error) {
	return nil, false, nil
}

func (NoopStatsCache) Set(_ context.Context, _ string, _ *dto.ConditionStatsResponse, _ time.Duration) error {
	return nil
}
