package stock

import (
	"context"
	"time"

	"github.com/jhoicas/cadena-api/internal/application/dto"
	"github.com/jhoicas/cadena-api/internal/domain"
	"github.com/jhoicas/cadena-api/internal/domain/repository"
)

// Remove elimina la transacción, sus líneas y sus filas de historial en una
// unidad atómica.
//
// Comportamiento heredado del sistema: NO revierte el efecto sobre las
// cantidades de producto aplicado en la creación. El stock puede quedar
// desincronizado del ledger; cualquier corrección requiere una operación
// nueva de signo opuesto (STOCK_ADJUSTMENT).
func (uc *CreateTransactionUseCase) Remove(ctx context.Context, id string) error {
	existing, err := uc.txRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		historyRepo repository.StockHistoryRepository,
		_ repository.ProductRepository,
		_ repository.CustomerRepository,
	) error {
		if err := txRepo.DeleteItems(id); err != nil {
			return err
		}
		if err := historyRepo.DeleteByTransaction(id); err != nil {
			return err
		}
		return txRepo.Delete(id)
	})
}

// GetByID obtiene una transacción con sus líneas y el nombre del cliente.
func (uc *CreateTransactionUseCase) GetByID(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	tx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.txRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	tx.Items = items
	customerName := ""
	if tx.CustomerID != nil {
		if c, err := uc.customerRepo.GetByID(*tx.CustomerID); err == nil && c != nil {
			customerName = c.FullName
		}
	}
	return toTransactionResponse(tx, customerName), nil
}

// List lista transacciones de una sucursal en un rango de fechas.
func (uc *CreateTransactionUseCase) List(ctx context.Context, branchID string, from, to *time.Time, page dto.PageRequest) ([]*dto.TransactionResponse, error) {
	page.DefaultPage()
	list, err := uc.txRepo.List(branchID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		out = append(out, toTransactionResponse(tx, ""))
	}
	return out, nil
}

// ProductHistory lista el historial de stock de un producto.
func (uc *CreateTransactionUseCase) ProductHistory(ctx context.Context, productID string, from, to *time.Time, page dto.PageRequest) ([]dto.StockHistoryResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	entries, err := uc.historyRepo.ListByProduct(productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockHistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.StockHistoryResponse{
			ID:            e.ID,
			ProductID:     e.ProductID,
			BranchID:      e.BranchID,
			TransactionID: e.TransactionID,
			Quantity:      e.Quantity,
			Type:          e.Type,
			CreatedBy:     e.CreatedBy,
			CreatedAt:     e.CreatedAt,
		})
	}
	return out, nil
}
