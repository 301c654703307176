//go:generate go run go.uber.org/mock/mockgen -source=account.go -destination=../mocks/mock_account_repository.go -package=mocks
package repositories

import (
	"fmt"
	"ledger-lab/domain"
	"ledger-lab/errors"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type IAccountRepository interface {
	CreateAccount(account domain.Account) error
	GetAccount(id domain.AccountID) (domain.Account, error)
	ListAccounts() []domain.Account
	TryWithdraw(id domain.AccountID, amount decimal.Decimal) (domain.Account, bool)
	TryDeposit(id domain.AccountID, amount decimal.Decimal) (domain.Account, bool)
	ClearAccounts()
}

// balanceCell owns the balance of a single account.
// The decimal behind the pointer is never mutated: every update swaps in a new value.
type balanceCell struct {
	balance atomic.Pointer[decimal.Decimal]
}

func newBalanceCell(initial decimal.Decimal) *balanceCell {
	cell := &balanceCell{}
	cell.balance.Store(&initial)
	return cell
}

func (c *balanceCell) load() decimal.Decimal {
	return *c.balance.Load()
}

// update applies fn as one indivisible read-modify-write.
// fn returns false to leave the balance untouched.
// A failed CompareAndSwap means another update on this cell succeeded, so the loop
// always makes global progress.
func (c *balanceCell) update(fn func(current decimal.Decimal) (decimal.Decimal, bool)) (decimal.Decimal, bool) {
	for {
		old := c.balance.Load()
		next, ok := fn(*old)
		if !ok {
			return *old, false
		}
		if c.balance.CompareAndSwap(old, &next) {
			return next, true
		}
	}
}

// AccountRepositoryInMemory is the single source of truth for balances.
// Operations on different accounts never block each other: the map only guards
// key insertion, and each balance is updated through its own cell.
type AccountRepositoryInMemory struct {
	accounts sync.Map // domain.AccountID -> *balanceCell
}

func NewAccountRepository() *AccountRepositoryInMemory {
	return &AccountRepositoryInMemory{}
}

// CreateAccount stores a new account.
// Concurrent creations of the same id have exactly one winner, whose balance is kept.
func (r *AccountRepositoryInMemory) CreateAccount(account domain.Account) error {
	if domain.IsNegative(account.Balance) {
		return fmt.Errorf("%w: initial balance %s", errors.ErrInvalidAmount, account.Balance)
	}
	if _, loaded := r.accounts.LoadOrStore(account.ID, newBalanceCell(account.Balance)); loaded {
		return fmt.Errorf("%w: account id %s", errors.ErrDuplicateAccount, account.ID)
	}
	return nil
}

func (r *AccountRepositoryInMemory) GetAccount(id domain.AccountID) (domain.Account, error) {
	cell, ok := r.cell(id)
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: account id %s", errors.ErrAccountNotFound, id)
	}
	return domain.NewAccount(id, cell.load()), nil
}

// ListAccounts returns a snapshot of every account.
// Balances are read one by one, so the list is not a consistent cut across accounts.
func (r *AccountRepositoryInMemory) ListAccounts() []domain.Account {
	var accounts []domain.Account
	r.accounts.Range(func(key, value any) bool {
		accounts = append(accounts, domain.NewAccount(key.(domain.AccountID), value.(*balanceCell).load()))
		return true
	})
	return lo.Ternary(accounts == nil, []domain.Account{}, accounts)
}

// TryWithdraw subtracts amount when the account exists and holds at least amount.
// A missing account and insufficient funds are both reported as not applied.
func (r *AccountRepositoryInMemory) TryWithdraw(id domain.AccountID, amount decimal.Decimal) (domain.Account, bool) {
	if !domain.IsPositive(amount) {
		return domain.Account{}, false
	}
	cell, ok := r.cell(id)
	if !ok {
		return domain.Account{}, false
	}
	balance, applied := cell.update(func(current decimal.Decimal) (decimal.Decimal, bool) {
		if current.LessThan(amount) {
			return current, false
		}
		return current.Sub(amount), true
	})
	return domain.NewAccount(id, balance), applied
}

// TryDeposit adds amount when the account exists.
func (r *AccountRepositoryInMemory) TryDeposit(id domain.AccountID, amount decimal.Decimal) (domain.Account, bool) {
	if !domain.IsPositive(amount) {
		return domain.Account{}, false
	}
	cell, ok := r.cell(id)
	if !ok {
		return domain.Account{}, false
	}
	balance, applied := cell.update(func(current decimal.Decimal) (decimal.Decimal, bool) {
		return current.Add(amount), true
	})
	return domain.NewAccount(id, balance), applied
}

// ClearAccounts drops every account. Only meant to isolate test scenarios.
func (r *AccountRepositoryInMemory) ClearAccounts() {
	r.accounts.Clear()
}

func (r *AccountRepositoryInMemory) cell(id domain.AccountID) (*balanceCell, bool) {
	value, ok := r.accounts.Load(id)
	if !ok {
		return nil, false
	}
	return value.(*balanceCell), true
}
