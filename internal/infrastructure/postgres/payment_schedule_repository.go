package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cadena-api/internal/domain"
	"github.com/jhoicas/cadena-api/internal/domain/entity"
	"github.com/jhoicas/cadena-api/internal/domain/repository"
)

var _ repository.PaymentScheduleRepository = (*PaymentScheduleRepo)(nil)

const scheduleColumns = `id, transaction_id, month_index, payment, paid_amount,
		is_paid, paid_at, paid_channel, paid_by_user_id, rating, created_at, updated_at`

// PaymentScheduleRepo implementación de PaymentScheduleRepository (usable con pool o tx).
type PaymentScheduleRepo struct {
	q Querier
}

// NewPaymentScheduleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentScheduleRepository(q Querier) *PaymentScheduleRepo {
	return &PaymentScheduleRepo{q: q}
}

// GetByID obtiene una cuota por ID.
func (r *PaymentScheduleRepo) GetByID(id string) (*entity.PaymentSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM payment_schedules WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate bloquea la fila de la cuota dentro de la transacción en curso.
func (r *PaymentScheduleRepo) GetForUpdate(id string) (*entity.PaymentSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM payment_schedules WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update persiste los campos mutables de la cuota.
func (r *PaymentScheduleRepo) Update(s *entity.PaymentSchedule) error {
	query := `
		UPDATE payment_schedules
		SET paid_amount = $2, is_paid = $3, paid_at = $4, paid_channel = $5,
			paid_by_user_id = $6, rating = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		s.ID, s.PaidAmount, s.IsPaid, s.PaidAt, s.PaidChannel,
		s.PaidByUserID, s.Rating, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByTransaction lista las cuotas de una transacción en orden de mes.
func (r *PaymentScheduleRepo) ListByTransaction(transactionID string) ([]*entity.PaymentSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM payment_schedules
		WHERE transaction_id = $1 ORDER BY month_index`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list payment schedules: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentSchedule
	for rows.Next() {
		var s entity.PaymentSchedule
		if err := rows.Scan(&s.ID, &s.TransactionID, &s.MonthIndex, &s.Payment, &s.PaidAmount,
			&s.IsPaid, &s.PaidAt, &s.PaidChannel, &s.PaidByUserID, &s.Rating, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan payment schedule: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *PaymentScheduleRepo) scanOne(row pgx.Row) (*entity.PaymentSchedule, error) {
	var s entity.PaymentSchedule
	err := row.Scan(&s.ID, &s.TransactionID, &s.MonthIndex, &s.Payment, &s.PaidAmount,
		&s.IsPaid, &s.PaidAt, &s.PaidChannel, &s.PaidByUserID, &s.Rating, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment schedule: %w", err)
	}
	return &s, nil
}
