package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etiquetas del historial de stock.
const (
	StockHistoryInflow      = "INFLOW"
	StockHistoryOutflow     = "OUTFLOW"
	StockHistoryReturn      = "RETURN"
	StockHistoryAdjustment  = "ADJUSTMENT"
	StockHistoryTransferIn  = "TRANSFER_IN"
	StockHistoryTransferOut = "TRANSFER_OUT"
)

// StockHistoryEntry es una fila inmutable del historial de movimientos de
// stock (append-only): el núcleo nunca la actualiza ni la borra.
type StockHistoryEntry struct {
	ID            string
	ProductID     string
	BranchID      string
	TransactionID *string
	Quantity      decimal.Decimal // con signo: positivo entrada, negativo salida
	Type          string
	CreatedBy     string
	CreatedAt     time.Time
}
