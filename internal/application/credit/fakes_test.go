package credit_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadena-api/internal/domain"
	"github.com/jhoicas/cadena-api/internal/domain/entity"
	"github.com/jhoicas/cadena-api/internal/domain/repository"
)

// memStore estado en memoria para los fakes de abonos. Los repos guardan y
// devuelven copias, igual que un driver real.
type memStore struct {
	schedules    map[string]entity.PaymentSchedule
	repayments   []entity.PaymentRepayment
	transactions map[string]entity.Transaction
	items        []entity.TransactionItem
	branches     map[string]entity.Branch
	customers    map[string]entity.Customer
	users        map[string]entity.User
}

func newMemStore() *memStore {
	return &memStore{
		schedules:    map[string]entity.PaymentSchedule{},
		transactions: map[string]entity.Transaction{},
		branches:     map[string]entity.Branch{},
		customers:    map[string]entity.Customer{},
		users:        map[string]entity.User{},
	}
}

func (s *memStore) clone() *memStore {
	cp := newMemStore()
	for k, v := range s.schedules {
		cp.schedules[k] = v
	}
	for k, v := range s.transactions {
		cp.transactions[k] = v
	}
	for k, v := range s.branches {
		cp.branches[k] = v
	}
	for k, v := range s.customers {
		cp.customers[k] = v
	}
	for k, v := range s.users {
		cp.users[k] = v
	}
	cp.repayments = append([]entity.PaymentRepayment(nil), s.repayments...)
	cp.items = append([]entity.TransactionItem(nil), s.items...)
	return cp
}

// memTxRunner snapshot antes de fn, restauración completa si fn falla.
type memTxRunner struct{ s *memStore }

func (r memTxRunner) RunRepayment(_ context.Context, fn func(
	scheduleRepo repository.PaymentScheduleRepository,
	repaymentRepo repository.PaymentRepaymentRepository,
	txRepo repository.TransactionRepository,
	branchRepo repository.BranchRepository,
) error) error {
	snap := r.s.clone()
	err := fn(memSchedules{r.s}, memRepayments{r.s}, memTransactions{r.s}, memBranches{r.s})
	if err != nil {
		*r.s = *snap
	}
	return err
}

// ── repos ─────────────────────────────────────────────────────────────────────

type memSchedules struct{ s *memStore }

func (r memSchedules) GetByID(id string) (*entity.PaymentSchedule, error) {
	if sc, ok := r.s.schedules[id]; ok {
		return &sc, nil
	}
	return nil, nil
}

func (r memSchedules) GetForUpdate(id string) (*entity.PaymentSchedule, error) {
	return r.GetByID(id)
}

func (r memSchedules) Update(sc *entity.PaymentSchedule) error {
	if _, ok := r.s.schedules[sc.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.schedules[sc.ID] = *sc
	return nil
}

func (r memSchedules) ListByTransaction(transactionID string) ([]*entity.PaymentSchedule, error) {
	var out []*entity.PaymentSchedule
	for _, sc := range r.s.schedules {
		if sc.TransactionID == transactionID {
			cp := sc
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memRepayments struct{ s *memStore }

func (r memRepayments) Create(p *entity.PaymentRepayment) error {
	r.s.repayments = append(r.s.repayments, *p)
	return nil
}

func (r memRepayments) ListBySchedule(scheduleID string) ([]*entity.PaymentRepayment, error) {
	var out []*entity.PaymentRepayment
	for _, p := range r.s.repayments {
		if p.ScheduleID == scheduleID {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memTransactions struct{ s *memStore }

func (r memTransactions) Create(tx *entity.Transaction) error {
	r.s.transactions[tx.ID] = *tx
	return nil
}

func (r memTransactions) CreateItem(item *entity.TransactionItem) error {
	r.s.items = append(r.s.items, *item)
	return nil
}

func (r memTransactions) GetByID(id string) (*entity.Transaction, error) {
	if tx, ok := r.s.transactions[id]; ok {
		return &tx, nil
	}
	return nil, nil
}

func (r memTransactions) GetItems(transactionID string) ([]entity.TransactionItem, error) {
	var out []entity.TransactionItem
	for _, it := range r.s.items {
		if it.TransactionID == transactionID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r memTransactions) List(string, *time.Time, *time.Time, int, int) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r memTransactions) Delete(id string) error {
	delete(r.s.transactions, id)
	return nil
}

func (r memTransactions) DeleteItems(string) error { return nil }

func (r memTransactions) ApplyRepayment(id string, delta decimal.Decimal, paidAt time.Time) error {
	tx, ok := r.s.transactions[id]
	if !ok {
		return domain.ErrNotFound
	}
	tx.AmountPaid = tx.AmountPaid.Add(delta)
	tx.RemainingBalance = tx.FinalTotal.Sub(tx.AmountPaid)
	tx.LastRepaymentDate = &paidAt
	r.s.transactions[id] = tx
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

type memCustomers struct{ s *memStore }

func (r memCustomers) GetByID(id string) (*entity.Customer, error) {
	if c, ok := r.s.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r memCustomers) GetByPhone(string) (*entity.Customer, error) { return nil, nil }

func (r memCustomers) Create(c *entity.Customer) error {
	r.s.customers[c.ID] = *c
	return nil
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(u *entity.User) error {
	r.s.users[u.ID] = *u
	return nil
}

func (r memUsers) GetByID(id string) (*entity.User, error) {
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r memUsers) FindByEmail(string) (*entity.User, error) { return nil, nil }
