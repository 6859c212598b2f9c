package repository

import "github.com/jhoicas/cadena-api/internal/domain/entity"

// PaymentRepaymentRepository define el puerto del ledger de abonos.
// Insert-only: no expone update ni delete; la reconciliación de caja se
// recalcula desde estas filas como fuente de verdad.
type PaymentRepaymentRepository interface {
	Create(r *entity.PaymentRepayment) error
	ListBySchedule(scheduleID string) ([]*entity.PaymentRepayment, error)
}
