package credit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadena-api/internal/application/dto"
	"github.com/jhoicas/cadena-api/internal/domain"
	domcredit "github.com/jhoicas/cadena-api/internal/domain/credit"
	"github.com/jhoicas/cadena-api/internal/domain/entity"
	"github.com/jhoicas/cadena-api/internal/domain/repository"
)

// TxRunner abre una transacción SQL con los repositorios que necesita un
// abono. Commit si fn retorna nil; Rollback en caso contrario.
type TxRunner interface {
	RunRepayment(ctx context.Context, fn func(
		scheduleRepo repository.PaymentScheduleRepository,
		repaymentRepo repository.PaymentRepaymentRepository,
		txRepo repository.TransactionRepository,
		branchRepo repository.BranchRepository,
	) error) error
}

// UpdateScheduleUseCase aplica abonos parciales sobre cuotas de crédito:
// actualiza la cuota, inserta la fila inmutable del ledger de abonos y
// acredita la caja de la sucursal cuando el canal es CASH, todo en una unidad
// atómica con la fila de la cuota bloqueada.
type UpdateScheduleUseCase struct {
	txRunner     TxRunner
	scheduleRepo repository.PaymentScheduleRepository
	txRepo       repository.TransactionRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
}

// NewUpdateScheduleUseCase construye el caso de uso.
func NewUpdateScheduleUseCase(
	txRunner TxRunner,
	scheduleRepo repository.PaymentScheduleRepository,
	txRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
) *UpdateScheduleUseCase {
	return &UpdateScheduleUseCase{
		txRunner:     txRunner,
		scheduleRepo: scheduleRepo,
		txRepo:       txRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
	}
}

// Update aplica una actualización de cuota. El abono efectivo se resuelve con
// credit.ResolveDelta sobre la fila bloqueada: reenviar el mismo paid_amount
// acumulado produce delta cero y no toca el ledger ni la caja (idempotente).
// El modo amount_delta inserta una fila por cada llamada aceptada; la
// deduplicación de reintentos es responsabilidad del caller.
func (uc *UpdateScheduleUseCase) Update(ctx context.Context, actorID, scheduleID string, in dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if scheduleID == "" {
		return nil, domain.ErrInvalidInput
	}
	channel := entity.ChannelCash
	if in.PaidChannel != nil {
		switch *in.PaidChannel {
		case entity.ChannelCash, entity.ChannelCard, entity.ChannelTransfer:
			channel = *in.PaidChannel
		default:
			return nil, domain.ErrInvalidInput
		}
	}

	existing, err := uc.scheduleRepo.GetByID(scheduleID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	parent, err := uc.txRepo.GetByID(existing.TransactionID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrNotFound
	}

	// Sucursal a acreditar: la base del usuario que cobra si la tiene, si no
	// la sucursal origen de la transacción.
	payerID := actorID
	if in.PaidByUserID != nil && *in.PaidByUserID != "" {
		payerID = *in.PaidByUserID
	}
	creditBranchID := parent.FromBranchID
	if payer, err := uc.userRepo.GetByID(payerID); err != nil {
		return nil, err
	} else if payer != nil && payer.BranchID != nil {
		creditBranchID = *payer.BranchID
	}

	now := time.Now()
	var updated *entity.PaymentSchedule

	err = uc.txRunner.RunRepayment(ctx, func(
		scheduleRepo repository.PaymentScheduleRepository,
		repaymentRepo repository.PaymentRepaymentRepository,
		txRepo repository.TransactionRepository,
		branchRepo repository.BranchRepository,
	) error {
		sched, err := scheduleRepo.GetForUpdate(scheduleID)
		if err != nil {
			return err
		}
		if sched == nil {
			return domain.ErrNotFound
		}

		deltaPaid := domcredit.ResolveDelta(sched.PaidAmount, in.PaidAmount, in.AmountDelta)

		// Sin movimiento financiero no se cambia la marca temporal.
		var effectivePaidAt *time.Time
		if in.PaidAt != nil {
			effectivePaidAt = in.PaidAt
		} else if deltaPaid.GreaterThan(decimal.Zero) {
			effectivePaidAt = &now
		}

		if deltaPaid.GreaterThan(decimal.Zero) {
			sched.PaidAmount = sched.PaidAmount.Add(deltaPaid)
		}
		if in.IsPaid != nil {
			sched.IsPaid = *in.IsPaid
		}
		if effectivePaidAt != nil {
			sched.PaidAt = effectivePaidAt
		}
		if in.PaidChannel != nil {
			sched.PaidChannel = in.PaidChannel
		}
		if in.Rating != nil {
			sched.Rating = in.Rating
		}
		sched.PaidByUserID = &payerID
		sched.UpdatedAt = now
		if err := scheduleRepo.Update(sched); err != nil {
			return err
		}
		updated = sched

		if !deltaPaid.GreaterThan(decimal.Zero) {
			return nil // no-op de ledger: solo metadatos
		}

		paidAt := now
		if effectivePaidAt != nil {
			paidAt = *effectivePaidAt
		}
		if err := repaymentRepo.Create(&entity.PaymentRepayment{
			ID:            uuid.New().String(),
			TransactionID: sched.TransactionID,
			ScheduleID:    sched.ID,
			BranchID:      creditBranchID,
			Amount:        deltaPaid,
			Channel:       channel,
			PaidAt:        paidAt,
			PaidByUserID:  &payerID,
			CreatedAt:     now,
		}); err != nil {
			return err
		}
		// Solo CASH mueve el efectivo físico; tarjeta y transferencia quedan
		// en el ledger sin tocar caja.
		if channel == entity.ChannelCash {
			if err := branchRepo.AdjustCash(creditBranchID, deltaPaid); err != nil {
				return err
			}
		}
		return txRepo.ApplyRepayment(sched.TransactionID, deltaPaid, paidAt)
	})
	if err != nil {
		return nil, err
	}

	return uc.buildResponse(updated)
}

// GetByID devuelve una cuota con su transacción, cliente y líneas.
func (uc *UpdateScheduleUseCase) GetByID(ctx context.Context, scheduleID string) (*dto.ScheduleResponse, error) {
	sched, err := uc.scheduleRepo.GetByID(scheduleID)
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, domain.ErrNotFound
	}
	return uc.buildResponse(sched)
}

func (uc *UpdateScheduleUseCase) buildResponse(sched *entity.PaymentSchedule) (*dto.ScheduleResponse, error) {
	resp := &dto.ScheduleResponse{
		ID:            sched.ID,
		TransactionID: sched.TransactionID,
		MonthIndex:    sched.MonthIndex,
		Payment:       sched.Payment,
		PaidAmount:    sched.PaidAmount,
		IsPaid:        sched.IsPaid,
		PaidAt:        sched.PaidAt,
		PaidChannel:   sched.PaidChannel,
		PaidByUserID:  sched.PaidByUserID,
		Rating:        sched.Rating,
	}
	tx, err := uc.txRepo.GetByID(sched.TransactionID)
	if err != nil || tx == nil {
		return resp, err
	}
	items, err := uc.txRepo.GetItems(tx.ID)
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
	resp.Transaction = toTransactionDTO(tx, customerName)
	return resp, nil
}

func toTransactionDTO(tx *entity.Transaction, customerName string) *dto.TransactionResponse {
	out := &dto.TransactionResponse{
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
		out.Items = append(out.Items, dto.TransactionItemResponse{
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
	return out
}
