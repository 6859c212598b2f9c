package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadena-api/internal/domain"
	"github.com/jhoicas/cadena-api/internal/domain/entity"
)

// Movement describe el efecto planificado de una línea de transacción sobre
// el stock de la sucursal origen: delta con signo y etiqueta de historial.
type Movement struct {
	Delta       decimal.Decimal // se suma al bucket Quantity del producto
	HistoryType string
}

// IsOutbound indica si el tipo de transacción descuenta stock de la sucursal
// origen (y por tanto exige chequeo de suficiencia sobre la fila bloqueada).
func IsOutbound(txType string) bool {
	switch txType {
	case entity.TransactionTypeSale, entity.TransactionTypeWriteOff, entity.TransactionTypeTransfer:
		return true
	}
	return false
}

// Plan calcula el movimiento de la sucursal origen para un tipo de
// transacción y una cantidad solicitada.
// Reglas:
//   - SALE, WRITE_OFF, TRANSFER: cantidad > 0; delta negativo.
//   - PURCHASE, RETURN: cantidad > 0; delta positivo.
//   - STOCK_ADJUSTMENT: la cantidad ya viene con signo; delta tal cual.
//
// La suficiencia (delta no deja Quantity < 0) se verifica contra la fila
// bloqueada dentro de la transacción, no aquí.
func Plan(txType string, quantity decimal.Decimal) (Movement, error) {
	switch txType {
	case entity.TransactionTypeSale, entity.TransactionTypeWriteOff:
		if !quantity.GreaterThan(decimal.Zero) {
			return Movement{}, domain.ErrInvalidInput
		}
		return Movement{Delta: quantity.Neg(), HistoryType: entity.StockHistoryOutflow}, nil
	case entity.TransactionTypeTransfer:
		if !quantity.GreaterThan(decimal.Zero) {
			return Movement{}, domain.ErrInvalidInput
		}
		return Movement{Delta: quantity.Neg(), HistoryType: entity.StockHistoryTransferOut}, nil
	case entity.TransactionTypePurchase:
		if !quantity.GreaterThan(decimal.Zero) {
			return Movement{}, domain.ErrInvalidInput
		}
		return Movement{Delta: quantity, HistoryType: entity.StockHistoryInflow}, nil
	case entity.TransactionTypeReturn:
		if !quantity.GreaterThan(decimal.Zero) {
			return Movement{}, domain.ErrInvalidInput
		}
		return Movement{Delta: quantity, HistoryType: entity.StockHistoryReturn}, nil
	case entity.TransactionTypeStockAdjustment:
		if quantity.IsZero() {
			return Movement{}, domain.ErrInvalidInput
		}
		return Movement{Delta: quantity, HistoryType: entity.StockHistoryAdjustment}, nil
	}
	return Movement{}, domain.ErrInvalidInput
}
