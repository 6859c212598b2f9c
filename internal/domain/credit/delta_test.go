package credit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cadena-api/internal/domain/credit"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

// ──────────────────────────────────────────────────────────────────────────────
// Tests de ResolveDelta — abono efectivo de una actualización de cuota
// ──────────────────────────────────────────────────────────────────────────────

// Modo acumulado: el abono efectivo es la diferencia contra lo ya pagado.
func TestResolveDelta_AcumuladoSubeProduceDiferencia(t *testing.T) {
	delta := credit.ResolveDelta(dec(100), ptr(dec(150)), nil)
	assert.True(t, delta.Equal(dec(50)), "de 100 a 150 pagados el abono es 50")
}

// Reenviar el mismo acumulado es idempotente: delta cero, sin ledger ni caja.
func TestResolveDelta_AcumuladoIgualEsIdempotente(t *testing.T) {
	delta := credit.ResolveDelta(dec(150), ptr(dec(150)), nil)
	assert.True(t, delta.IsZero(), "reenviar el mismo paid_amount no debe producir abono")
}

// Un acumulado menor al actual no revierte nada: se recorta a cero.
func TestResolveDelta_AcumuladoMenorSeRecortaACero(t *testing.T) {
	delta := credit.ResolveDelta(dec(150), ptr(dec(100)), nil)
	assert.True(t, delta.IsZero(), "los abonos son monótonos: bajar el acumulado no tiene efecto")
}

// Modo incremental: amount_delta se usa tal cual.
func TestResolveDelta_DeltaIncremental(t *testing.T) {
	delta := credit.ResolveDelta(dec(100), nil, ptr(dec(30)))
	assert.True(t, delta.Equal(dec(30)))
}

// amount_delta tiene prioridad si vienen ambos campos.
func TestResolveDelta_DeltaTienePrioridadSobreAcumulado(t *testing.T) {
	delta := credit.ResolveDelta(dec(100), ptr(dec(500)), ptr(dec(25)))
	assert.True(t, delta.Equal(dec(25)), "amount_delta manda sobre paid_amount")
}

// Deltas incrementales negativos o cero se recortan a cero.
func TestResolveDelta_DeltaNegativoSeRecortaACero(t *testing.T) {
	assert.True(t, credit.ResolveDelta(dec(100), nil, ptr(dec(-10))).IsZero())
	assert.True(t, credit.ResolveDelta(dec(100), nil, ptr(decimal.Zero)).IsZero())
}

// Sin campos de monto la actualización es solo de metadatos.
func TestResolveDelta_SinMontosEsCero(t *testing.T) {
	delta := credit.ResolveDelta(dec(100), nil, nil)
	assert.True(t, delta.IsZero())
}

// Abonos con centavos: la aritmética decimal no pierde precisión.
func TestResolveDelta_CentavosExactos(t *testing.T) {
	current := decimal.RequireFromString("33.33")
	paid := decimal.RequireFromString("66.66")
	delta := credit.ResolveDelta(current, &paid, nil)
	assert.True(t, delta.Equal(decimal.RequireFromString("33.33")))
}
