package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConditionLog es una fila inmutable del ledger de cambios de condición de
// producto (append-only): defectuoso, arreglado, devolución o cambio.
// CashAmount lleva signo y es el efecto exacto aplicado a la caja de la sucursal.
type ConditionLog struct {
	ID          string
	ProductID   string
	BranchID    string
	ActionType  string
	Quantity    decimal.Decimal
	CashAmount  decimal.Decimal
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}
