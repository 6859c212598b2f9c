package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadena-api/internal/domain/entity"
)

// QuantityDelta son los incrementos con signo a aplicar de forma atómica a
// los buckets de un producto. Los tres componentes del núcleo pasan por esta
// API estrecha en lugar de leer-modificar-escribir, para que la pérdida de
// actualizaciones sea estructuralmente imposible.
type QuantityDelta struct {
	InStore   decimal.Decimal
	Defective decimal.Decimal
	Returned  decimal.Decimal
	Exchanged decimal.Decimal
}

// ProductRepository define el puerto de persistencia para productos.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	// GetByBranch obtiene el producto solo si pertenece a la sucursal.
	GetByBranch(id, branchID string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de
	// la transacción en curso; serializa chequeo y descuento de stock.
	GetForUpdate(id, branchID string) (*entity.Product, error)
	// FindByNameModel localiza el producto espejo en la sucursal destino de
	// un traslado (clave natural nombre+modelo).
	FindByNameModel(branchID, name, model string) (*entity.Product, error)
	Create(p *entity.Product) error
	// AdjustQuantities aplica los deltas con UPDATE atómico. La no
	// negatividad de Quantity se exige en SQL: devuelve ErrConflict si el
	// resultado la violaría.
	AdjustQuantities(id string, d QuantityDelta, status string) error
}
