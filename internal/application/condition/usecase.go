package condition

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadena-api/internal/application/dto"
	"github.com/jhoicas/cadena-api/internal/domain"
	domcondition "github.com/jhoicas/cadena-api/internal/domain/condition"
	"github.com/jhoicas/cadena-api/internal/domain/entity"
	"github.com/jhoicas/cadena-api/internal/domain/repository"
)

// TxRunner abre una transacción SQL con los repositorios que necesita un
// cambio de condición. Commit si fn retorna nil; Rollback en caso contrario.
type TxRunner interface {
	RunCondition(ctx context.Context, fn func(
		logRepo repository.ConditionLogRepository,
		productRepo repository.ProductRepository,
		branchRepo repository.BranchRepository,
	) error) error
}

// ApplyUseCase aplica acciones de condición de producto (DEFECTIVE, FIXED,
// RETURN, EXCHANGE): una fila inmutable en condition_logs, los deltas de
// buckets del producto (y del producto de reemplazo en EXCHANGE) y el efecto
// de caja con signo en la sucursal, en una unidad atómica.
type ApplyUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
	logRepo     repository.ConditionLogRepository
	cache       StatsCache
}

// NewApplyUseCase construye el caso de uso.
func NewApplyUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	logRepo repository.ConditionLogRepository,
	cache StatsCache,
) *ApplyUseCase {
	if cache == nil {
		cache = NoopStatsCache{}
	}
	return &ApplyUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		branchRepo:  branchRepo,
		logRepo:     logRepo,
		cache:       cache,
	}
}

// Apply valida y aplica una acción de condición. La resolución de efectos es
// la tabla cerrada de internal/domain/condition; aquí solo se orquesta la
// unidad atómica sobre las filas bloqueadas.
func (uc *ApplyUseCase) Apply(ctx context.Context, actorID string, in dto.ApplyConditionRequest) (*dto.ConditionLogResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.ProductID == "" || in.BranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.ExchangeTarget != nil {
		if in.ActionType != domcondition.ActionExchange {
			return nil, domain.ErrInvalidInput
		}
		if in.ExchangeTarget.ProductID == "" || !in.ExchangeTarget.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	branch, err := uc.branchRepo.GetByID(in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByBranch(in.ProductID, in.BranchID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var override *domcondition.CashOverride
	if in.CashOverride != nil {
		override = &domcondition.CashOverride{
			Direction: in.CashOverride.Direction,
			Amount:    in.CashOverride.Amount,
		}
	}

	now := time.Now()
	var log *entity.ConditionLog
	var state dto.ProductStateResponse

	err = uc.txRunner.RunCondition(ctx, func(
		logRepo repository.ConditionLogRepository,
		productRepo repository.ProductRepository,
		branchRepo repository.BranchRepository,
	) error {
		locked, err := productRepo.GetForUpdate(in.ProductID, in.BranchID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}

		eff, err := domcondition.Resolve(in.ActionType, domcondition.Input{
			Price:    locked.Price,
			Quantity: in.Quantity,
			FromSale: in.FromSale,
			Override: override,
		}, domcondition.Current{
			InStore:   locked.Quantity,
			Defective: locked.DefectiveQuantity,
		})
		if err != nil {
			return err
		}

		if err := productRepo.AdjustQuantities(locked.ID, repository.QuantityDelta{
			InStore:   eff.DeltaInStore,
			Defective: eff.DeltaDefective,
			Returned:  eff.DeltaReturned,
			Exchanged: eff.DeltaExchanged,
		}, eff.Status); err != nil {
			return err
		}

		if in.ExchangeTarget != nil {
			if err := uc.applyExchangeTarget(productRepo, in); err != nil {
				return err
			}
		}

		log = &entity.ConditionLog{
			ID:          uuid.New().String(),
			ProductID:   locked.ID,
			BranchID:    in.BranchID,
			ActionType:  in.ActionType,
			Quantity:    in.Quantity,
			CashAmount:  eff.CashAmount,
			Description: in.Description,
			CreatedBy:   actorID,
			CreatedAt:   now,
		}
		if err := logRepo.Create(log); err != nil {
			return err
		}
		if err := branchRepo.AdjustCash(in.BranchID, eff.CashAmount); err != nil {
			return err
		}

		state = dto.ProductStateResponse{
			ID:                locked.ID,
			BranchID:          locked.BranchID,
			Name:              locked.Name,
			Model:             locked.Model,
			Price:             locked.Price,
			Quantity:          locked.Quantity.Add(eff.DeltaInStore),
			DefectiveQuantity: locked.DefectiveQuantity.Add(eff.DeltaDefective),
			ReturnedQuantity:  locked.ReturnedQuantity.Add(eff.DeltaReturned),
			ExchangedQuantity: locked.ExchangedQuantity.Add(eff.DeltaExchanged),
			Status:            eff.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.ConditionLogResponse{
		ID:          log.ID,
		ProductID:   log.ProductID,
		BranchID:    log.BranchID,
		ActionType:  log.ActionType,
		Quantity:    log.Quantity,
		CashAmount:  log.CashAmount,
		Description: log.Description,
		CreatedBy:   log.CreatedBy,
		CreatedAt:   log.CreatedAt,
		Product:     state,
	}, nil
}

// applyExchangeTarget descuenta del producto de reemplazo la cantidad
// entregada, acotada por su propia disponibilidad (fila bloqueada).
func (uc *ApplyUseCase) applyExchangeTarget(productRepo repository.ProductRepository, in dto.ApplyConditionRequest) error {
	target, err := productRepo.GetForUpdate(in.ExchangeTarget.ProductID, in.BranchID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrNotFound
	}
	if in.ExchangeTarget.Quantity.GreaterThan(target.Quantity) {
		return domain.ErrInsufficientStock
	}
	return productRepo.AdjustQuantities(target.ID, repository.QuantityDelta{
		InStore: in.ExchangeTarget.Quantity.Neg(),
	}, target.Status)
}
