package condition_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cadena-api/internal/domain"
	"github.com/jhoicas/cadena-api/internal/domain/condition"
	"github.com/jhoicas/cadena-api/internal/domain/entity"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ──────────────────────────────────────────────────────────────────────────────
// DEFECTIVE
// ──────────────────────────────────────────────────────────────────────────────

// Marcar defectuoso desde tienda: caja -precio×cant, tienda baja, defective sube.
func TestResolve_DefectiveDesdeTienda(t *testing.T) {
	eff, err := condition.Resolve(condition.ActionDefective,
		condition.Input{Price: dec(100), Quantity: dec(2)},
		condition.Current{InStore: dec(5), Defective: decimal.Zero},
	)
	require.NoError(t, err)

	assert.True(t, eff.CashAmount.Equal(dec(-200)), "la caja baja precio×cantidad")
	assert.True(t, eff.DeltaInStore.Equal(dec(-2)))
	assert.True(t, eff.DeltaDefective.Equal(dec(2)))
	assert.True(t, eff.DeltaReturned.IsZero())
	assert.Equal(t, entity.ProductStatusInStore, eff.Status, "quedan 3 en tienda")
}

// Si la tienda queda en cero, el estado del producto pasa a DEFECTIVE.
func TestResolve_DefectiveAgotaTiendaCambiaEstado(t *testing.T) {
	eff, err := condition.Resolve(condition.ActionDefective,
		condition.Input{Price: dec(100), Quantity: dec(5)},
		condition.Current{InStore: dec(5)},
	)
	require.NoError(t, err)

	assert.Equal(t, entity.ProductStatusDefective, eff.Status)
	assert.True(t, eff.DeltaInStore.Equal(dec(-5)))
}

// Sin stock suficiente el DEFECTIVE se rechaza y no produce efecto alguno.
func TestResolve_DefectiveSinStockSuficiente(t *testing.T) {
	_, err := condition.Resolve(condition.ActionDefective,
		condition.Input{Price: dec(100), Quantity: dec(6)},
		condition.Current{InStore: dec(5)},
	)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// FromSale: el stock ya se descontó en la venta, no se vuelve a descontar ni
// se exige suficiencia (la tienda puede estar en cero).
func TestResolve_DefectiveDesdeVentaNoTocaTienda(t *testing.T) {
	eff, err := condition.Resolve(condition.ActionDefective,
		condition.Input{Price: dec(100), Quantity: dec(1), FromSale: true},
		condition.Current{InStore: decimal.Zero},
	)
	require.NoError(t, err)

	assert.True(t, eff.DeltaInStore.IsZero(), "FromSale no descuenta tienda")
	assert.True(t, eff.DeltaDefective.Equal(dec(1)))
	assert.True(t, eff.CashAmount.Equal(dec(-100)))
	assert.Equal(t, entity.ProductStatusDefective, eff.Status, "tienda en cero → DEFECTIVE")
}

// ──────────────────────────────────────────────────────────────────────────────
// FIXED
// ──────────────────────────────────────────────────────────────────────────────

// Arreglado: caja +precio×cant, defective baja, tienda sube, estado IN_STORE.
func TestResolve_FixedReingresaATienda(t *testing.T) {
	eff, err := condition.Resolve(condition.ActionFixed,
		condition.Input{Price: dec(100), Quantity: dec(2)},
		condition.Current{InStore: dec(1), Defective: dec(3)},
	)
	require.NoError(t, err)

	assert.True(t, eff.CashAmount.Equal(dec(200)))
	assert.True(t, eff.DeltaInStore.Equal(dec(2)))
	assert.True(t, eff.DeltaDefective.Equal(dec(-2)))
	assert.Equal(t, entity.ProductStatusInStore, eff.Status)
}

// El bucket defective nunca queda negativo: el decremento se acota a lo que hay.
func TestResolve_FixedConPisoEnCero(t *testing.T) {
	eff, err := condition.Resolve(condition.ActionFixed,
		condition.Input{Price: dec(100), Quantity: dec(5)},
		condition.Current{InStore: decimal.Zero, Defective: dec(2)},
	)
	require.NoError(t, err)

	assert.True(t, eff.DeltaDefective.Equal(dec(-2)), "solo se descuentan los 2 defectuosos que existen")
	assert.True(t, eff.DeltaInStore.Equal(dec(5)), "a tienda entran las 5 unidades arregladas")
}

// ──────────────────────────────────────────────────────────────────────────────
// RETURN
// ──────────────────────────────────────────────────────────────────────────────

// Devolución sin override: se reembolsa precio×cantidad.
func TestResolve_ReturnReembolsaPorDefecto(t *testing.T) {
	eff, err := condition.Resolve(condition.ActionReturn,
		condition.Input{Price: dec(80), Quantity: dec(1)},
		condition.Current{},
	)
	require.NoError(t, err)

	assert.True(t, eff.CashAmount.Equal(dec(-80)), "la devolución saca dinero de caja")
	assert.True(t, eff.DeltaInStore.Equal(dec(1)))
	assert.True(t, eff.DeltaReturned.Equal(dec(1)))
	assert.Equal(t, entity.ProductStatusReturned, eff.Status)
}

// Override OUT: el cajero fija el monto exacto devuelto.
func TestResolve_ReturnConOverrideOut(t *testing.T) {
	eff, err := condition.Resolve(condition.ActionReturn,
		condition.Input{
			Price:    dec(80),
			Quantity: dec(1),
			Override: &condition.CashOverride{Direction: condition.CashDirectionOut, Amount: dec(50)},
		},
		condition.Current{},
	)
	require.NoError(t, err)
	assert.True(t, eff.CashAmount.Equal(dec(-50)), "manda el monto del cajero, no la fórmula")
}

// Override IN en una devolución (ej. penalidad que ingresa dinero) también vale.
func TestResolve_ReturnConOverrideIn(t *testing.T) {
	eff, err := condition.Resolve(condition.ActionReturn,
		condition.Input{
			Price:    dec(80),
			Quantity: dec(1),
			Override: &condition.CashOverride{Direction: condition.CashDirectionIn, Amount: dec(10)},
		},
		condition.Current{},
	)
	require.NoError(t, err)
	assert.True(t, eff.CashAmount.Equal(dec(10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// EXCHANGE
// ──────────────────────────────────────────────────────────────────────────────

// Cambio sin override: ingresa precio×cantidad y el devuelto entra a exchanged.
func TestResolve_ExchangeIngresaPorDefecto(t *testing.T) {
	eff, err := condition.Resolve(condition.ActionExchange,
		condition.Input{Price: dec(120), Quantity: dec(1)},
		condition.Current{},
	)
	require.NoError(t, err)

	assert.True(t, eff.CashAmount.Equal(dec(120)))
	assert.True(t, eff.DeltaInStore.Equal(dec(1)))
	assert.True(t, eff.DeltaExchanged.Equal(dec(1)))
	assert.Equal(t, entity.ProductStatusExchanged, eff.Status)
}

func TestResolve_ExchangeConOverride(t *testing.T) {
	eff, err := condition.Resolve(condition.ActionExchange,
		condition.Input{
			Price:    dec(120),
			Quantity: dec(1),
			Override: &condition.CashOverride{Direction: condition.CashDirectionOut, Amount: dec(20)},
		},
		condition.Current{},
	)
	require.NoError(t, err)
	assert.True(t, eff.CashAmount.Equal(dec(-20)), "un cambio puede devolver diferencia al cliente")
}

// ── Errores de validación ─────────────────────────────────────────────────────

func TestResolve_AccionDesconocida(t *testing.T) {
	_, err := condition.Resolve("LOST", condition.Input{Quantity: dec(1)}, condition.Current{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolve_CantidadNoPositiva(t *testing.T) {
	_, err := condition.Resolve(condition.ActionReturn, condition.Input{Quantity: decimal.Zero}, condition.Current{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = condition.Resolve(condition.ActionReturn, condition.Input{Quantity: dec(-1)}, condition.Current{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolve_OverrideInvalido(t *testing.T) {
	_, err := condition.Resolve(condition.ActionReturn,
		condition.Input{
			Price:    dec(80),
			Quantity: dec(1),
			Override: &condition.CashOverride{Direction: "SIDEWAYS", Amount: dec(10)},
		},
		condition.Current{},
	)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "dirección desconocida debe rechazarse")

	_, err = condition.Resolve(condition.ActionReturn,
		condition.Input{
			Price:    dec(80),
			Quantity: dec(1),
			Override: &condition.CashOverride{Direction: condition.CashDirectionIn, Amount: dec(-10)},
		},
		condition.Current{},
	)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto negativo en el override debe rechazarse")
}
