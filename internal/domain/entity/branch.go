package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Branch representa una sucursal de la cadena.
// CashBalance es un acumulado con signo: la suma de todos los abonos CASH y
// de los montos de los registros de condición aplicados a la sucursal.
type Branch struct {
	ID          string
	Name        string
	Address     string
	Phone       string
	CashBalance decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
