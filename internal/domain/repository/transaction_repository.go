package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadena-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para transacciones y
// sus líneas.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	CreateItem(item *entity.TransactionItem) error
	GetByID(id string) (*entity.Transaction, error)
	GetItems(transactionID string) ([]entity.TransactionItem, error)
	List(branchID string, from, to *time.Time, limit, offset int) ([]*entity.Transaction, error)
	Delete(id string) error
	DeleteItems(transactionID string) error
	// ApplyRepayment suma delta a AmountPaid, recalcula RemainingBalance
	// (FinalTotal - AmountPaid) y estampa LastRepaymentDate, en un solo
	// UPDATE atómico.
	ApplyRepayment(id string, delta decimal.Decimal, paidAt time.Time) error
}
