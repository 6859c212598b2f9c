package credit

import "github.com/shopspring/decimal"

// ResolveDelta calcula el abono efectivo de una actualización de cuota
// (servicio de dominio).
//
// Prioridad: si viene amountDelta se usa max(0, amountDelta); si no, y viene
// paidAmount (acumulado), se usa max(0, paidAmount - pagadoActual); si no
// viene ninguno, el abono es cero.
//
// Los deltas negativos se recortan a cero: los abonos son monótonos y reducir
// el acumulado por debajo del valor previo no tiene efecto en el ledger
// (solo se actualizan los metadatos de la cuota).
func ResolveDelta(currentPaid decimal.Decimal, paidAmount, amountDelta *decimal.Decimal) decimal.Decimal {
	if amountDelta != nil {
		if amountDelta.GreaterThan(decimal.Zero) {
			return *amountDelta
		}
		return decimal.Zero
	}
	if paidAmount != nil {
		diff := paidAmount.Sub(currentPaid)
		if diff.GreaterThan(decimal.Zero) {
			return diff
		}
	}
	return decimal.Zero
}
