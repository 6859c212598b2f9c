package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/cadena-api/internal/domain/entity"
	"github.com/jhoicas/cadena-api/internal/domain/repository"
)

var _ repository.ConditionLogRepository = (*ConditionLogRepo)(nil)

// ConditionLogRepo implementación del ledger de condición (usable con pool o tx).
// Insert-only: las filas nunca se actualizan ni se borran.
type ConditionLogRepo struct {
	q Querier
}

// NewConditionLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConditionLogRepository(q Querier) *ConditionLogRepo {
	return &ConditionLogRepo{q: q}
}

// Create inserta una fila del ledger de condición.
func (r *ConditionLogRepo) Create(l *entity.ConditionLog) error {
	query := `
		INSERT INTO condition_logs (id, product_id, branch_id, action_type,
			quantity, cash_amount, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.ProductID, l.BranchID, l.ActionType,
		l.Quantity, l.CashAmount, l.Description, l.CreatedBy, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert condition log: %w", err)
	}
	return nil
}

// Statistics agrupa los registros de la sucursal por tipo de acción en el
// rango dado, sumando cantidad y efecto de caja.
func (r *ConditionLogRepo) Statistics(ctx context.Context, branchID string, from, to time.Time) ([]repository.ActionStatsResult, error) {
	query := `
		SELECT action_type, COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(cash_amount), 0)
		FROM condition_logs
		WHERE branch_id = $1 AND created_at >= $2 AND created_at <= $3
		GROUP BY action_type
		ORDER BY action_type`
	rows, err := r.q.Query(ctx, query, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("condition statistics: %w", err)
	}
	defer rows.Close()
	var results []repository.ActionStatsResult
	for rows.Next() {
		var res repository.ActionStatsResult
		if err := rows.Scan(&res.ActionType, &res.Count, &res.Quantity, &res.CashAmount); err != nil {
			return nil, fmt.Errorf("scan condition stats: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
