package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canales de pago de un abono. Solo CASH mueve el efectivo de la sucursal;
// los demás quedan registrados en el ledger sin afectar caja física.
const (
	ChannelCash     = "CASH"
	ChannelCard     = "CARD"
	ChannelTransfer = "TRANSFER"
)

// PaymentSchedule representa una cuota mensual de una venta a crédito.
// Las filas las crea el generador de cronogramas (colaborador externo);
// este núcleo solo las muta de forma incremental con abonos.
// Invariante: PaidAmount es monótonamente no decreciente.
type PaymentSchedule struct {
	ID            string
	TransactionID string
	MonthIndex    int
	Payment       decimal.Decimal // monto de la cuota
	PaidAmount    decimal.Decimal
	IsPaid        bool
	PaidAt        *time.Time
	PaidChannel   *string
	PaidByUserID  *string
	Rating        *string // etiqueta cualitativa del pagador (puntual, moroso, ...)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentRepayment es una fila inmutable del ledger de abonos (append-only).
// BranchID es la sucursal acreditada, para poder reconciliar caja desde el ledger.
type PaymentRepayment struct {
	ID            string
	TransactionID string
	ScheduleID    string
	BranchID      string
	Amount        decimal.Decimal
	Channel       string
	PaidAt        time.Time
	PaidByUserID  *string
	CreatedAt     time.Time
}
