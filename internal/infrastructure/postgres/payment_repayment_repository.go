package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cadena-api/internal/domain/entity"
	"github.com/jhoicas/cadena-api/internal/domain/repository"
)

var _ repository.PaymentRepaymentRepository = (*PaymentRepaymentRepo)(nil)

// PaymentRepaymentRepo implementación del ledger de abonos (usable con pool o tx).
// Insert-only: las filas nunca se actualizan ni se borran.
type PaymentRepaymentRepo struct {
	q Querier
}

// NewPaymentRepaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepaymentRepository(q Querier) *PaymentRepaymentRepo {
	return &PaymentRepaymentRepo{q: q}
}

// Create inserta una fila del ledger de abonos.
func (r *PaymentRepaymentRepo) Create(p *entity.PaymentRepayment) error {
	query := `
		INSERT INTO payment_repayments (id, transaction_id, schedule_id, branch_id,
			amount, channel, paid_at, paid_by_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.TransactionID, p.ScheduleID, p.BranchID,
		p.Amount, p.Channel, p.PaidAt, p.PaidByUserID, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment repayment: %w", err)
	}
	return nil
}

// ListBySchedule lista los abonos de una cuota en orden cronológico.
func (r *PaymentRepaymentRepo) ListBySchedule(scheduleID string) ([]*entity.PaymentRepayment, error) {
	query := `
		SELECT id, transaction_id, schedule_id, branch_id, amount, channel,
			paid_at, paid_by_user_id, created_at
		FROM payment_repayments WHERE schedule_id = $1 ORDER BY paid_at`
	rows, err := r.q.Query(context.Background(), query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("list payment repayments: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentRepayment
	for rows.Next() {
		var p entity.PaymentRepayment
		if err := rows.Scan(&p.ID, &p.TransactionID, &p.ScheduleID, &p.BranchID, &p.Amount, &p.Channel,
			&p.PaidAt, &p.PaidByUserID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment repayment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
