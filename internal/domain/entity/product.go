package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto. El estado es un resumen derivado de las cantidades;
// la fuente de verdad son los buckets (Quantity, DefectiveQuantity, etc.).
const (
	ProductStatusInStore     = "IN_STORE"
	ProductStatusInWarehouse = "IN_WAREHOUSE"
	ProductStatusSold        = "SOLD"
	ProductStatusDefective   = "DEFECTIVE"
	ProductStatusFixed       = "FIXED"
	ProductStatusReturned    = "RETURNED"
	ProductStatusExchanged   = "EXCHANGED"
	ProductStatusPreOrder    = "PRE_ORDER"
)

// Product representa un producto de una sucursal con sus buckets de cantidad.
// Invariante: Quantity >= 0 siempre; los buckets son mutuamente excluyentes.
type Product struct {
	ID                string
	BranchID          string
	Name              string
	Model             string
	Price             decimal.Decimal // precio de venta unitario
	Quantity          decimal.Decimal // unidades en tienda
	DefectiveQuantity decimal.Decimal
	ReturnedQuantity  decimal.Decimal
	ExchangedQuantity decimal.Decimal
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
