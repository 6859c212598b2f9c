package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadena-api/internal/domain"
	"github.com/jhoicas/cadena-api/internal/domain/entity"
	"github.com/jhoicas/cadena-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, type, status, from_branch_id, to_branch_id,
		customer_id, total, discount, final_total, payment_type, amount_paid,
		remaining_balance, last_repayment_date, created_by, created_at, updated_at`

// TransactionRepo implementación de TransactionRepository (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste la cabecera de una transacción.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, type, status, from_branch_id, to_branch_id,
			customer_id, total, discount, final_total, payment_type, amount_paid,
			remaining_balance, last_repayment_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.Type, tx.Status, tx.FromBranchID, tx.ToBranchID,
		tx.CustomerID, tx.Total, tx.Discount, tx.FinalTotal, tx.PaymentType, tx.AmountPaid,
		tx.RemainingBalance, tx.LastRepaymentDate, tx.CreatedBy, tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la transacción.
func (r *TransactionRepo) CreateItem(item *entity.TransactionItem) error {
	query := `
		INSERT INTO transaction_items (id, transaction_id, product_id, quantity,
			price, total, credit_months, credit_percent, monthly_payment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TransactionID, item.ProductID, item.Quantity,
		item.Price, item.Total, item.CreditMonths, item.CreditPercent, item.MonthlyPayment, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una transacción por ID (sin líneas).
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	var tx entity.Transaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&tx.ID, &tx.Type, &tx.Status, &tx.FromBranchID, &tx.ToBranchID,
		&tx.CustomerID, &tx.Total, &tx.Discount, &tx.FinalTotal, &tx.PaymentType, &tx.AmountPaid,
		&tx.RemainingBalance, &tx.LastRepaymentDate, &tx.CreatedBy, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &tx, nil
}

// GetItems obtiene las líneas de una transacción.
func (r *TransactionRepo) GetItems(transactionID string) ([]entity.TransactionItem, error) {
	query := `
		SELECT id, transaction_id, product_id, quantity, price, total,
			credit_months, credit_percent, monthly_payment, created_at
		FROM transaction_items WHERE transaction_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()
	var items []entity.TransactionItem
	for rows.Next() {
		var it entity.TransactionItem
		if err := rows.Scan(&it.ID, &it.TransactionID, &it.ProductID, &it.Quantity, &it.Price, &it.Total,
			&it.CreditMonths, &it.CreditPercent, &it.MonthlyPayment, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List lista transacciones de una sucursal (origen o destino) con filtro de
// fechas opcional y paginación, de la más reciente a la más antigua.
func (r *TransactionRepo) List(branchID string, from, to *time.Time, limit, offset int) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE (from_branch_id = $1 OR to_branch_id = $1)
			AND ($2::timestamptz IS NULL OR created_at >= $2)
			AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, branchID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var tx entity.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.Type, &tx.Status, &tx.FromBranchID, &tx.ToBranchID,
			&tx.CustomerID, &tx.Total, &tx.Discount, &tx.FinalTotal, &tx.PaymentType, &tx.AmountPaid,
			&tx.RemainingBalance, &tx.LastRepaymentDate, &tx.CreatedBy, &tx.CreatedAt, &tx.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &tx)
	}
	return list, rows.Err()
}

// Delete elimina la cabecera de una transacción.
func (r *TransactionRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItems elimina las líneas de una transacción.
func (r *TransactionRepo) DeleteItems(transactionID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM transaction_items WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("delete transaction items: %w", err)
	}
	return nil
}

// ApplyRepayment acumula un abono sobre la cabecera en un solo UPDATE:
// amount_paid sube, remaining_balance se recalcula desde final_total y se
// estampa la fecha del último abono.
func (r *TransactionRepo) ApplyRepayment(id string, delta decimal.Decimal, paidAt time.Time) error {
	query := `
		UPDATE transactions
		SET amount_paid = amount_paid + $2,
			remaining_balance = final_total - (amount_paid + $2),
			last_repayment_date = $3,
			updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, delta, paidAt)
	if err != nil {
		return fmt.Errorf("apply repayment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
