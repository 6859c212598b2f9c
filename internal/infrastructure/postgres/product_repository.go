package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cadena-api/internal/domain"
	"github.com/jhoicas/cadena-api/internal/domain/entity"
	"github.com/jhoicas/cadena-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, branch_id, name, model, price, quantity,
		defective_quantity, returned_quantity, exchanged_quantity, status,
		created_at, updated_at`

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, branch_id, name, model, price, quantity,
			defective_quantity, returned_quantity, exchanged_quantity, status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.BranchID, p.Name, p.Model, p.Price, p.Quantity,
		p.DefectiveQuantity, p.ReturnedQuantity, p.ExchangedQuantity, p.Status,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByBranch obtiene el producto solo si pertenece a la sucursal.
func (r *ProductRepo) GetByBranch(id, branchID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND branch_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id, branchID))
}

// GetForUpdate bloquea la fila del producto dentro de la transacción en curso.
func (r *ProductRepo) GetForUpdate(id, branchID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND branch_id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id, branchID))
}

// FindByNameModel localiza el producto espejo de la sucursal por nombre+modelo.
func (r *ProductRepo) FindByNameModel(branchID, name, model string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE branch_id = $1 AND name = $2 AND model = $3`
	return r.scanOne(r.q.QueryRow(context.Background(), query, branchID, name, model))
}

// AdjustQuantities aplica los deltas de buckets y el estado en un solo UPDATE.
// La no negatividad de quantity se exige en el WHERE: si el guard no se
// cumple no se toca la fila y se devuelve ErrConflict (los callers bloquean
// la fila antes, así que cero filas nunca es "no existe").
func (r *ProductRepo) AdjustQuantities(id string, d repository.QuantityDelta, status string) error {
	query := `
		UPDATE products
		SET quantity = quantity + $2,
			defective_quantity = defective_quantity + $3,
			returned_quantity = returned_quantity + $4,
			exchanged_quantity = exchanged_quantity + $5,
			status = $6,
			updated_at = NOW()
		WHERE id = $1 AND quantity + $2 >= 0`
	tag, err := r.q.Exec(context.Background(), query,
		id, d.InStore, d.Defective, d.Returned, d.Exchanged, status,
	)
	if err != nil {
		return fmt.Errorf("adjust product quantities: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.BranchID, &p.Name, &p.Model, &p.Price, &p.Quantity,
		&p.DefectiveQuantity, &p.ReturnedQuantity, &p.ExchangedQuantity, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
