package condition

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadena-api/internal/domain"
	"github.com/jhoicas/cadena-api/internal/domain/entity"
)

// Acciones de condición de producto.
const (
	ActionDefective = "DEFECTIVE"
	ActionFixed     = "FIXED"
	ActionReturn    = "RETURN"
	ActionExchange  = "EXCHANGE"
)

// Direcciones del override de caja dado por el cajero.
const (
	CashDirectionIn  = "IN"
	CashDirectionOut = "OUT"
)

// CashOverride permite al cajero fijar el efecto de caja de un RETURN o
// EXCHANGE en lugar de la fórmula precio × cantidad.
type CashOverride struct {
	Direction string // IN suma a caja, OUT resta
	Amount    decimal.Decimal
}

// Input agrupa los datos que las reglas necesitan para resolver una acción.
type Input struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
	// FromSale marca un DEFECTIVE originado en una venta ya completada: el
	// stock en tienda ya se descontó en esa venta, así que no se vuelve a
	// descontar ni se exige suficiencia. Precondición del caller.
	FromSale bool
	Override *CashOverride
}

// Current es el estado de buckets del producto en el momento de aplicar la
// acción (leído con la fila bloqueada).
type Current struct {
	InStore   decimal.Decimal
	Defective decimal.Decimal
}

// Effect es el resultado de resolver una acción: deltas por bucket, efecto de
// caja con signo y estado resultante del producto.
type Effect struct {
	CashAmount     decimal.Decimal
	DeltaInStore   decimal.Decimal
	DeltaDefective decimal.Decimal
	DeltaReturned  decimal.Decimal
	DeltaExchanged decimal.Decimal
	Status         string
}

// rule resuelve una acción concreta. Tabla cerrada: una entrada por acción.
type rule func(in Input, cur Current) (Effect, error)

var rules = map[string]rule{
	ActionDefective: resolveDefective,
	ActionFixed:     resolveFixed,
	ActionReturn:    resolveReturn,
	ActionExchange:  resolveExchange,
}

// Resolve aplica la tabla de reglas a una acción. Devuelve ErrInvalidInput
// para acciones desconocidas o cantidades no positivas, y
// ErrInsufficientStock cuando un DEFECTIVE sin FromSale excede el stock en tienda.
func Resolve(action string, in Input, cur Current) (Effect, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return Effect{}, domain.ErrInvalidInput
	}
	r, ok := rules[action]
	if !ok {
		return Effect{}, domain.ErrInvalidInput
	}
	return r(in, cur)
}

// resolveDefective: caja -precio×cant; defective += cant; en tienda -= cant
// salvo FromSale. Estado DEFECTIVE si la tienda queda en cero.
func resolveDefective(in Input, cur Current) (Effect, error) {
	eff := Effect{
		CashAmount:     in.Price.Mul(in.Quantity).Neg(),
		DeltaDefective: in.Quantity,
	}
	remaining := cur.InStore
	if !in.FromSale {
		if in.Quantity.GreaterThan(cur.InStore) {
			return Effect{}, domain.ErrInsufficientStock
		}
		eff.DeltaInStore = in.Quantity.Neg()
		remaining = cur.InStore.Sub(in.Quantity)
	}
	if remaining.IsZero() {
		eff.Status = entity.ProductStatusDefective
	} else {
		eff.Status = entity.ProductStatusInStore
	}
	return eff, nil
}

// resolveFixed: caja +precio×cant; defective -= cant con piso en cero;
// en tienda += cant; estado IN_STORE.
func resolveFixed(in Input, cur Current) (Effect, error) {
	fixed := in.Quantity
	if fixed.GreaterThan(cur.Defective) {
		fixed = cur.Defective // piso 0: nunca dejar defective negativo
	}
	return Effect{
		CashAmount:     in.Price.Mul(in.Quantity),
		DeltaInStore:   in.Quantity,
		DeltaDefective: fixed.Neg(),
		Status:         entity.ProductStatusInStore,
	}, nil
}

// resolveReturn: caja del override si viene, si no -precio×cant;
// returned += cant; en tienda += cant; estado RETURNED.
func resolveReturn(in Input, _ Current) (Effect, error) {
	cash := in.Price.Mul(in.Quantity).Neg()
	if in.Override != nil {
		var err error
		if cash, err = overrideAmount(in.Override); err != nil {
			return Effect{}, err
		}
	}
	return Effect{
		CashAmount:    cash,
		DeltaInStore:  in.Quantity,
		DeltaReturned: in.Quantity,
		Status:        entity.ProductStatusReturned,
	}, nil
}

// resolveExchange: caja del override si viene, si no +precio×cant;
// exchanged += cant; en tienda += cant; estado EXCHANGED. El descuento del
// producto de reemplazo lo aplica el caso de uso (segunda fila bloqueada).
func resolveExchange(in Input, _ Current) (Effect, error) {
	cash := in.Price.Mul(in.Quantity)
	if in.Override != nil {
		var err error
		if cash, err = overrideAmount(in.Override); err != nil {
			return Effect{}, err
		}
	}
	return Effect{
		CashAmount:     cash,
		DeltaInStore:   in.Quantity,
		DeltaExchanged: in.Quantity,
		Status:         entity.ProductStatusExchanged,
	}, nil
}

func overrideAmount(o *CashOverride) (decimal.Decimal, error) {
	if o.Amount.LessThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	switch o.Direction {
	case CashDirectionIn:
		return o.Amount, nil
	case CashDirectionOut:
		return o.Amount.Neg(), nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}
