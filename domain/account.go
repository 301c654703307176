// Package domain contains the core concepts of the ledger.
// Accounts are exposed as immutable snapshots: the only place where a balance
// can change is the account repository.
package domain

import "github.com/shopspring/decimal"

type AccountID string

func (id AccountID) String() string {
	return string(id)
}

// Account is a point-in-time view of a balance.
// It may be stale as soon as it is returned.
type Account struct {
	ID      AccountID
	Balance decimal.Decimal
}

func NewAccount(id AccountID, balance decimal.Decimal) Account {
	return Account{ID: id, Balance: balance}
}
