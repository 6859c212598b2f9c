package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadena-api/internal/application/dto"
	"github.com/jhoicas/cadena-api/internal/domain"
	"github.com/jhoicas/cadena-api/internal/domain/entity"
	"github.com/jhoicas/cadena-api/internal/domain/repository"
	domstock "github.com/jhoicas/cadena-api/internal/domain/stock"
)

// TxRunner abre una transacción SQL y entrega repositorios atados a ella.
// Commit si fn retorna nil; Rollback en caso contrario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		historyRepo repository.StockHistoryRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// CreateTransactionUseCase registra transacciones de inventario tipadas
// (SALE, PURCHASE, TRANSFER, WRITE_OFF, RETURN, STOCK_ADJUSTMENT) de forma
// transaccional, con bloqueo de fila por producto y un rastro append-only en
// stock_history.
type CreateTransactionUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	branchRepo   repository.BranchRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	txRepo       repository.TransactionRepository
	historyRepo  repository.StockHistoryRepository
}

// NewCreateTransactionUseCase construye el caso de uso.
func NewCreateTransactionUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	txRepo repository.TransactionRepository,
	historyRepo repository.StockHistoryRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		branchRepo:   branchRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		txRepo:       txRepo,
		historyRepo:  historyRepo,
	}
}

// Create valida y aplica una transacción completa: cabecera + líneas +
// mutaciones de cantidad + filas de historial, todo en una unidad atómica
// (dos sucursales en el caso de TRANSFER). Cualquier fallo intermedio hace
// rollback sin dejar filas escritas.
func (uc *CreateTransactionUseCase) Create(ctx context.Context, actorID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	actor, err := uc.userRepo.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrNotFound
	}
	if len(in.Items) == 0 || in.FromBranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	fromBranch, err := uc.branchRepo.GetByID(in.FromBranchID)
	if err != nil {
		return nil, err
	}
	if fromBranch == nil {
		return nil, domain.ErrNotFound
	}

	var toBranchID *string
	if in.Type == entity.TransactionTypeTransfer {
		if in.ToBranchID == "" {
			return nil, domain.ErrInvalidInput
		}
		if in.ToBranchID == in.FromBranchID {
			return nil, domain.ErrInvalidInput
		}
		toBranch, err := uc.branchRepo.GetByID(in.ToBranchID)
		if err != nil {
			return nil, err
		}
		if toBranch == nil {
			return nil, domain.ErrNotFound
		}
		toBranchID = &in.ToBranchID
	}

	// Validar cliente por ID fuera de la tx (solo lectura). El find-or-create
	// por teléfono se hace dentro de la tx para que sea atómico con la venta.
	if in.CustomerID != "" {
		existing, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrNotFound
		}
	} else if in.Customer != nil && in.Customer.Phone == "" {
		return nil, domain.ErrInvalidInput
	}

	// Validar líneas y planear movimientos fuera de la tx (solo lectura). La
	// suficiencia se reverifica dentro de la tx sobre la fila bloqueada.
	type plannedItem struct {
		req      dto.TransactionItemRequest
		movement domstock.Movement
		price    decimal.Decimal
	}
	planned := make([]plannedItem, 0, len(in.Items))
	var total decimal.Decimal
	for _, item := range in.Items {
		if item.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByBranch(item.ProductID, in.FromBranchID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		mov, err := domstock.Plan(in.Type, item.Quantity)
		if err != nil {
			return nil, err
		}
		price := item.UnitPrice
		if price.IsZero() {
			price = product.Price
		}
		if price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(item.Quantity.Abs().Mul(price))
		planned = append(planned, plannedItem{req: item, movement: mov, price: price})
	}
	finalTotal := total.Sub(in.Discount)
	if finalTotal.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	txID := uuid.New().String()
	var created *entity.Transaction
	var customerName string

	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		historyRepo repository.StockHistoryRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error {
		customerID, name, err := uc.resolveCustomer(customerRepo, in, now)
		if err != nil {
			return err
		}
		customerName = name

		amountPaid := decimal.Zero
		var paymentType *string
		if in.PaymentType != "" {
			pt := in.PaymentType
			paymentType = &pt
			// CASH y CARD pagan al contado; CREDIT/INSTALLMENT quedan con
			// saldo pendiente que el ledger de abonos irá cubriendo.
			if pt == entity.PaymentTypeCash || pt == entity.PaymentTypeCard {
				amountPaid = finalTotal
			}
		}

		created = &entity.Transaction{
			ID:               txID,
			Type:             in.Type,
			Status:           entity.TransactionStatusPending,
			FromBranchID:     in.FromBranchID,
			ToBranchID:       toBranchID,
			CustomerID:       customerID,
			Total:            total,
			Discount:         in.Discount,
			FinalTotal:       finalTotal,
			PaymentType:      paymentType,
			AmountPaid:       amountPaid,
			RemainingBalance: finalTotal.Sub(amountPaid),
			CreatedBy:        actorID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := txRepo.Create(created); err != nil {
			return err
		}

		// Aplicación secuencial por línea: la fila del producto queda
		// bloqueada, así el chequeo de suficiencia acumula correctamente
		// cuando la misma transacción repite producto.
		for _, p := range planned {
			if err := uc.applyItem(txRepo, historyRepo, productRepo, created, p.req, p.movement, p.price, actorID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	items, err := uc.txRepo.GetItems(txID)
	if err != nil {
		return nil, err
	}
	created.Items = items
	return toTransactionResponse(created, customerName), nil
}

// resolveCustomer devuelve el ID del cliente de la transacción: el recibido,
// el encontrado por teléfono, o uno nuevo creado con los datos inline. SALE
// sin cliente es válido (venta de mostrador).
func (uc *CreateTransactionUseCase) resolveCustomer(
	customerRepo repository.CustomerRepository,
	in dto.CreateTransactionRequest,
	now time.Time,
) (*string, string, error) {
	if in.CustomerID != "" {
		c, err := customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, "", err
		}
		if c == nil {
			return nil, "", domain.ErrNotFound
		}
		return &c.ID, c.FullName, nil
	}
	if in.Customer == nil {
		return nil, "", nil
	}
	c, err := customerRepo.GetByPhone(in.Customer.Phone)
	if err != nil {
		return nil, "", err
	}
	if c == nil {
		c = &entity.Customer{
			ID:        uuid.New().String(),
			FullName:  in.Customer.FullName,
			Phone:     in.Customer.Phone,
			Address:   in.Customer.Address,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := customerRepo.Create(c); err != nil {
			return nil, "", err
		}
	}
	return &c.ID, c.FullName, nil
}

// applyItem bloquea la fila del producto en la sucursal origen, verifica
// suficiencia/no negatividad, aplica el delta, guarda la línea y el registro
// de historial. Para TRANSFER replica la entrada en la sucursal destino.
func (uc *CreateTransactionUseCase) applyItem(
	txRepo repository.TransactionRepository,
	historyRepo repository.StockHistoryRepository,
	productRepo repository.ProductRepository,
	tx *entity.Transaction,
	req dto.TransactionItemRequest,
	mov domstock.Movement,
	price decimal.Decimal,
	actorID string,
	now time.Time,
) error {
	product, err := productRepo.GetForUpdate(req.ProductID, tx.FromBranchID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	remaining := product.Quantity.Add(mov.Delta)
	if remaining.LessThan(decimal.Zero) {
		if domstock.IsOutbound(tx.Type) {
			return domain.ErrInsufficientStock
		}
		return domain.ErrConflict // ajuste negativo que dejaría stock < 0
	}

	status := product.Status
	if remaining.IsZero() && tx.Type == entity.TransactionTypeSale {
		status = entity.ProductStatusSold
	} else if remaining.GreaterThan(decimal.Zero) {
		status = entity.ProductStatusInStore
	}

	item := &entity.TransactionItem{
		ID:            uuid.New().String(),
		TransactionID: tx.ID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		Price:         price,
		Total:         req.Quantity.Abs().Mul(price),
		CreatedAt:     now,
	}
	if err := txRepo.CreateItem(item); err != nil {
		return err
	}

	if err := productRepo.AdjustQuantities(product.ID, repository.QuantityDelta{InStore: mov.Delta}, status); err != nil {
		return err
	}
	if err := historyRepo.Create(&entity.StockHistoryEntry{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		BranchID:      tx.FromBranchID,
		TransactionID: &tx.ID,
		Quantity:      mov.Delta,
		Type:          mov.HistoryType,
		CreatedBy:     actorID,
		CreatedAt:     now,
	}); err != nil {
		return err
	}

	if tx.Type != entity.TransactionTypeTransfer {
		return nil
	}
	return uc.applyTransferIn(historyRepo, productRepo, tx, product, req.Quantity, actorID, now)
}

// applyTransferIn suma la cantidad trasladada en la sucursal destino: busca
// el producto espejo por nombre+modelo, lo crea si no existe, y registra la
// fila TRANSFER_IN del destino.
func (uc *CreateTransactionUseCase) applyTransferIn(
	historyRepo repository.StockHistoryRepository,
	productRepo repository.ProductRepository,
	tx *entity.Transaction,
	source *entity.Product,
	quantity decimal.Decimal,
	actorID string,
	now time.Time,
) error {
	mirror, err := productRepo.FindByNameModel(*tx.ToBranchID, source.Name, source.Model)
	if err != nil {
		return err
	}
	if mirror == nil {
		mirror = &entity.Product{
			ID:        uuid.New().String(),
			BranchID:  *tx.ToBranchID,
			Name:      source.Name,
			Model:     source.Model,
			Price:     source.Price,
			Quantity:  quantity,
			Status:    entity.ProductStatusInStore,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := productRepo.Create(mirror); err != nil {
			return err
		}
	} else {
		if err := productRepo.AdjustQuantities(mirror.ID, repository.QuantityDelta{InStore: quantity}, entity.ProductStatusInStore); err != nil {
			return err
		}
	}
	return historyRepo.Create(&entity.StockHistoryEntry{
		ID:            uuid.New().String(),
		ProductID:     mirror.ID,
		BranchID:      *tx.ToBranchID,
		TransactionID: &tx.ID,
		Quantity:      quantity,
		Type:          entity.StockHistoryTransferIn,
		CreatedBy:     actorID,
		CreatedAt:     now,
	})
}

func toTransactionResponse(tx *entity.Transaction, customerName string) *dto.TransactionResponse {
	resp := &dto.TransactionResponse{
		ID:                tx.ID,
		Type:              tx.Type,
		Status:            tx.Status,
		FromBranchID:      tx.FromBranchID,
		ToBranchID:        tx.ToBranchID,
		CustomerID:        tx.CustomerID,
		CustomerName:      customerName,
		Total:             tx.Total,
		Discount:          tx.Discount,
		FinalTotal:        tx.FinalTotal,
		PaymentType:       tx.PaymentType,
		AmountPaid:        tx.AmountPaid,
		RemainingBalance:  tx.RemainingBalance,
		LastRepaymentDate: tx.LastRepaymentDate,
		CreatedAt:         tx.CreatedAt,
		Items:             make([]dto.TransactionItemResponse, 0, len(tx.Items)),
	}
	for _, it := range tx.Items {
		resp.Items = append(resp.Items, dto.TransactionItemResponse{
			ID:             it.ID,
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			Price:          it.Price,
			Total:          it.Total,
			CreditMonths:   it.CreditMonths,
			CreditPercent:  it.CreditPercent,
			MonthlyPayment: it.MonthlyPayment,
		})
	}
	return resp
}
