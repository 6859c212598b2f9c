package repository

import "github.com/jhoicas/cadena-api/internal/domain/entity"

// PaymentScheduleRepository define el puerto de persistencia para cuotas.
// Las filas las crea el generador de cronogramas (externo); aquí solo se leen
// y se actualizan incrementalmente.
type PaymentScheduleRepository interface {
	GetByID(id string) (*entity.PaymentSchedule, error)
	// GetForUpdate bloquea la fila de la cuota dentro de la transacción en
	// curso: dos abonos concurrentes sobre la misma cuota se serializan y el
	// delta se calcula siempre sobre el acumulado comprometido.
	GetForUpdate(id string) (*entity.PaymentSchedule, error)
	Update(s *entity.PaymentSchedule) error
	ListByTransaction(transactionID string) ([]*entity.PaymentSchedule, error)
}
