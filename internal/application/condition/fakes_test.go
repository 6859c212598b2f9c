package condition_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	appcondition "github.com/jhoicas/cadena-api/internal/application/condition"
	"github.com/jhoicas/cadena-api/internal/application/dto"
	"github.com/jhoicas/cadena-api/internal/domain"
	"github.com/jhoicas/cadena-api/internal/domain/entity"
	"github.com/jhoicas/cadena-api/internal/domain/repository"
)

// memStore estado en memoria para los fakes de condición. Los repos guardan y
// devuelven copias, igual que un driver real.
type memStore struct {
	products map[string]entity.Product
	branches map[string]entity.Branch
	logs     []entity.ConditionLog
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]entity.Product{},
		branches: map[string]entity.Branch{},
	}
}

func (s *memStore) clone() *memStore {
	cp := newMemStore()
	for k, v := range s.products {
		cp.products[k] = v
	}
	for k, v := range s.branches {
		cp.branches[k] = v
	}
	cp.logs = append([]entity.ConditionLog(nil), s.logs...)
	return cp
}

// memTxRunner snapshot antes de fn, restauración completa si fn falla.
type memTxRunner struct{ s *memStore }

func (r memTxRunner) RunCondition(_ context.Context, fn func(
	logRepo repository.ConditionLogRepository,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
) error) error {
	snap := r.s.clone()
	err := fn(memLogs{r.s}, memProducts{r.s}, memBranches{r.s})
	if err != nil {
		*r.s = *snap
	}
	return err
}

// ── repos ─────────────────────────────────────────────────────────────────────

type memProducts struct{ s *memStore }

func (r memProducts) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r memProducts) GetByBranch(id, branchID string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok && p.BranchID == branchID {
		return &p, nil
	}
	return nil, nil
}

func (r memProducts) GetForUpdate(id, branchID string) (*entity.Product, error) {
	return r.GetByBranch(id, branchID)
}

func (r memProducts) FindByNameModel(branchID, name, model string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.BranchID == branchID && p.Name == name && p.Model == model {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memProducts) Create(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r memProducts) AdjustQuantities(id string, d repository.QuantityDelta, status string) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrConflict
	}
	newQty := p.Quantity.Add(d.InStore)
	if newQty.LessThan(decimal.Zero) {
		return domain.ErrConflict
	}
	p.Quantity = newQty
	p.DefectiveQuantity = p.DefectiveQuantity.Add(d.Defective)
	p.ReturnedQuantity = p.ReturnedQuantity.Add(d.Returned)
	p.ExchangedQuantity = p.ExchangedQuantity.Add(d.Exchanged)
	p.Status = status
	r.s.products[id] = p
	return nil
}

type memBranches struct{ s *memStore }

func (r memBranches) GetByID(id string) (*entity.Branch, error) {
	if b, ok := r.s.branches[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r memBranches) AdjustCash(id string, delta decimal.Decimal) error {
	b, ok := r.s.branches[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.CashBalance = b.CashBalance.Add(delta)
	r.s.branches[id] = b
	return nil
}

type memLogs struct{ s *memStore }

func (r memLogs) Create(l *entity.ConditionLog) error {
	r.s.logs = append(r.s.logs, *l)
	return nil
}

func (r memLogs) Statistics(_ context.Context, branchID string, from, to time.Time) ([]repository.ActionStatsResult, error) {
	byAction := map[string]*repository.ActionStatsResult{}
	for _, l := range r.s.logs {
		if l.BranchID != branchID || l.CreatedAt.Before(from) || l.CreatedAt.After(to) {
			continue
		}
		agg, ok := byAction[l.ActionType]
		if !ok {
			agg = &repository.ActionStatsResult{ActionType: l.ActionType}
			byAction[l.ActionType] = agg
		}
		agg.Count++
		agg.Quantity = agg.Quantity.Add(l.Quantity)
		agg.CashAmount = agg.CashAmount.Add(l.CashAmount)
	}
	out := make([]repository.ActionStatsResult, 0, len(byAction))
	for _, agg := range byAction {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ActionType < out[j].ActionType })
	return out, nil
}

// memStatsCache caché que registra cuántas veces se consultó y escribió.
type memStatsCache struct {
	entries map[string]*dto.ConditionStatsResponse
	gets    int
	sets    int
}

var _ appcondition.StatsCache = (*memStatsCache)(nil)

func newMemStatsCache() *memStatsCache {
	return &memStatsCache{entries: map[string]*dto.ConditionStatsResponse{}}
}

func (c *memStatsCache) Get(_ context.Context, key string) (*dto.ConditionStatsResponse, bool, error) {
	c.gets++
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *memStatsCache) Set(_ context.Context, key string, value *dto.ConditionStatsResponse, _ time.Duration) error {
	c.sets++
	c.entries[key] = value
	return nil
}
