package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cadena-api/internal/application/condition"
	"github.com/jhoicas/cadena-api/internal/application/credit"
	"github.com/jhoicas/cadena-api/internal/application/stock"
	"github.com/jhoicas/cadena-api/internal/domain/repository"
)

// TxRunner satisface los runners de los tres casos de uso.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ credit.TxRunner = (*TxRunner)(nil)
var _ condition.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción para movimientos de stock, ejecuta fn con repos
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	historyRepo repository.StockHistoryRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := NewTransactionRepository(tx)
	historyRepo := NewStockHistoryRepository(tx)
	productRepo := NewProductRepository(tx)
	customerRepo := NewCustomerRepository(tx)

	if err := fn(txRepo, historyRepo, productRepo, customerRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRepayment inicia una transacción con los repos de un abono de cuota.
func (r *TxRunner) RunRepayment(ctx context.Context, fn func(
	scheduleRepo repository.PaymentScheduleRepository,
	repaymentRepo repository.PaymentRepaymentRepository,
	txRepo repository.TransactionRepository,
	branchRepo repository.BranchRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	scheduleRepo := NewPaymentScheduleRepository(tx)
	repaymentRepo := NewPaymentRepaymentRepository(tx)
	txRepo := NewTransactionRepository(tx)
	branchRepo := NewBranchRepository(tx)

	if err := fn(scheduleRepo, repaymentRepo, txRepo, branchRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCondition inicia una transacción con los repos de un cambio de condición.
func (r *TxRunner) RunCondition(ctx context.Context, fn func(
	logRepo repository.ConditionLogRepository,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	logRepo := NewConditionLogRepository(tx)
	productRepo := NewProductRepository(tx)
	branchRepo := NewBranchRepository(tx)

	if err := fn(logRepo, productRepo, branchRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
