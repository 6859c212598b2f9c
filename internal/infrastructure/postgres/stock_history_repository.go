package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/cadena-api/internal/domain/entity"
	"github.com/jhoicas/cadena-api/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo implementación de StockHistoryRepository (usable con pool o tx).
type StockHistoryRepo struct {
	q Querier
}

// NewStockHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockHistoryRepository(q Querier) *StockHistoryRepo {
	return &StockHistoryRepo{q: q}
}

// Create inserta una fila de historial.
func (r *StockHistoryRepo) Create(e *entity.StockHistoryEntry) error {
	query := `
		INSERT INTO stock_history (id, product_id, branch_id, transaction_id,
			quantity, type, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ProductID, e.BranchID, e.TransactionID,
		e.Quantity, e.Type, e.CreatedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock history: %w", err)
	}
	return nil
}

// ListByProduct lista el historial de un producto con filtro de fechas
// opcional, del movimiento más reciente al más antiguo.
func (r *StockHistoryRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockHistoryEntry, error) {
	query := `
		SELECT id, product_id, branch_id, transaction_id, quantity, type, created_by, created_at
		FROM stock_history
		WHERE product_id = $1
			AND ($2::timestamptz IS NULL OR created_at >= $2)
			AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, productID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock history: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockHistoryEntry
	for rows.Next() {
		var e entity.StockHistoryEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.BranchID, &e.TransactionID,
			&e.Quantity, &e.Type, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock history: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// DeleteByTransaction elimina el rastro de historial de una transacción.
func (r *StockHistoryRepo) DeleteByTransaction(transactionID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_history WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("delete stock history: %w", err)
	}
	return nil
}
