package repository

import (
	"time"

	"github.com/jhoicas/cadena-api/internal/domain/entity"
)

// StockHistoryRepository define el puerto del historial de stock.
// Append-only: el núcleo nunca actualiza filas; el único borrado existente es
// el de Remove(transacción), que elimina el rastro completo de la transacción.
type StockHistoryRepository interface {
	Create(e *entity.StockHistoryEntry) error
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockHistoryEntry, error)
	DeleteByTransaction(transactionID string) error
}
