package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadena-api/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para sucursales.
// La caja solo se muta vía AdjustCash (incremento atómico): nunca se expone
// un "set" del saldo.
type BranchRepository interface {
	GetByID(id string) (*entity.Branch, error)
	// AdjustCash suma delta (con signo) a la caja con UPDATE atómico.
	AdjustCash(id string, delta decimal.Decimal) error
}
