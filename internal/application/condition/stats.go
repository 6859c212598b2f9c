package condition

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadena-api/internal/application/dto"
	"github.com/jhoicas/cadena-api/internal/domain"
)

// statsCacheTTL vida de una entrada de estadísticas en caché.
const statsCacheTTL = time.Minute

// Statistics agrega los registros de condición de una sucursal por tipo de
// acción en un rango de fechas, con el flujo de caja total del período.
// Lectura simple sobre condition_logs con caché TTL por delante.
func (uc *ApplyUseCase) Statistics(ctx context.Context, branchID string, from, to time.Time) (*dto.ConditionStatsResponse, error) {
	if branchID == "" || to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}

	key := fmt.Sprintf("condition:stats:%s:%d:%d", branchID, from.Unix(), to.Unix())
	if cached, ok, err := uc.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	}

	rows, err := uc.logRepo.Statistics(ctx, branchID, from, to)
	if err != nil {
		return nil, err
	}
	resp := &dto.ConditionStatsResponse{
		BranchID:      branchID,
		StartDate:     from,
		EndDate:       to,
		Actions:       make([]dto.ActionStatsDTO, 0, len(rows)),
		TotalCashFlow: decimal.Zero,
	}
	for _, r := range rows {
		resp.Actions = append(resp.Actions, dto.ActionStatsDTO{
			ActionType: r.ActionType,
			Count:      r.Count,
			Quantity:   r.Quantity,
			CashAmount: r.CashAmount,
		})
		resp.TotalCashFlow = resp.TotalCashFlow.Add(r.CashAmount)
	}

	_ = uc.cache.Set(ctx, key, resp, statsCacheTTL) // caché best-effort
	return resp, nil
}
