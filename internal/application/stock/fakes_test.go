package stock_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadena-api/internal/domain"
	"github.com/jhoicas/cadena-api/internal/domain/entity"
	"github.com/jhoicas/cadena-api/internal/domain/repository"
)

// memStore estado compartido en memoria para los fakes. Los repos guardan y
// devuelven copias, igual que un driver real.
type memStore struct {
	products     map[string]entity.Product
	branches     map[string]entity.Branch
	customers    map[string]entity.Customer
	users        map[string]entity.User
	transactions map[string]entity.Transaction
	items        []entity.TransactionItem
	history      []entity.StockHistoryEntry
}

func newMemStore() *memStore {
	return &memStore{
		products:     map[string]entity.Product{},
		branches:     map[string]entity.Branch{},
		customers:    map[string]entity.Customer{},
		users:        map[string]entity.User{},
		transactions: map[string]entity.Transaction{},
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
	for k, v := range s.customers {
		cp.customers[k] = v
	}
	for k, v := range s.users {
		cp.users[k] = v
	}
	for k, v := range s.transactions {
		cp.transactions[k] = v
	}
	cp.items = append([]entity.TransactionItem(nil), s.items...)
	cp.history = append([]entity.StockHistoryEntry(nil), s.history...)
	return cp
}

// memTxRunner emula la semántica transaccional: snapshot antes de fn y
// restauración completa si fn falla.
type memTxRunner struct{ s *memStore }

func (r memTxRunner) Run(_ context.Context, fn func(
	txRepo repository.TransactionRepository,
	historyRepo repository.StockHistoryRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	snap := r.s.clone()
	err := fn(memTransactions{r.s}, memHistory{r.s}, memProducts{r.s}, memCustomers{r.s})
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

type memCustomers struct{ s *memStore }

func (r memCustomers) GetByID(id string) (*entity.Customer, error) {
	if c, ok := r.s.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r memCustomers) GetByPhone(phone string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.Phone == phone {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

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

func (r memUsers) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
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

func (r memTransactions) List(branchID string, from, to *time.Time, limit, offset int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range r.s.transactions {
		if tx.FromBranchID != branchID && (tx.ToBranchID == nil || *tx.ToBranchID != branchID) {
			continue
		}
		if from != nil && tx.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && tx.CreatedAt.After(*to) {
			continue
		}
		cp := tx
		out = append(out, &cp)
	}
	return out, nil
}

func (r memTransactions) Delete(id string) error {
	if _, ok := r.s.transactions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.transactions, id)
	return nil
}

func (r memTransactions) DeleteItems(transactionID string) error {
	kept := r.s.items[:0]
	for _, it := range r.s.items {
		if it.TransactionID != transactionID {
			kept = append(kept, it)
		}
	}
	r.s.items = kept
	return nil
}

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

type memHistory struct{ s *memStore }

func (r memHistory) Create(e *entity.StockHistoryEntry) error {
	r.s.history = append(r.s.history, *e)
	return nil
}

func (r memHistory) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockHistoryEntry, error) {
	var out []*entity.StockHistoryEntry
	for _, e := range r.s.history {
		if e.ProductID != productID {
			continue
		}
		if from != nil && e.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && e.CreatedAt.After(*to) {
			continue
		}
		cp := e
		out = append(out, &cp)
	}
	return out, nil
}

func (r memHistory) DeleteByTransaction(transactionID string) error {
	kept := r.s.history[:0]
	for _, e := range r.s.history {
		if e.TransactionID == nil || *e.TransactionID != transactionID {
			kept = append(kept, e)
		}
	}
	r.s.history = kept
	return nil
}
