package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadena-api/internal/domain/entity"
)

// ActionStatsResult agrega los registros de condición de una sucursal por
// tipo de acción en un rango de fechas.
type ActionStatsResult struct {
	ActionType string
	Count      int64
	Quantity   decimal.Decimal
	CashAmount decimal.Decimal
}

// ConditionLogRepository define el puerto del ledger de condición.
// Insert-only: no expone update ni delete.
type ConditionLogRepository interface {
	Create(l *entity.ConditionLog) error
	// Statistics agrupa por tipo de acción sumando cantidad y efecto de caja.
	Statistics(ctx context.Context, branchID string, from, to time.Time) ([]ActionStatsResult, error)
}
