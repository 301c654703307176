package domain

import (
	"fmt"
	"ledger-lab/errors"

	"github.com/shopspring/decimal"
)

// IsPositive reports whether amount is strictly greater than zero.
func IsPositive(amount decimal.Decimal) bool {
	return amount.IsPositive()
}

// IsNegative reports whether amount is strictly lower than zero.
func IsNegative(amount decimal.Decimal) bool {
	return amount.IsNegative()
}

// ParseAmount converts a textual amount ("50.01") into an exact decimal.
// Binary floating point never enters the ledger.
func ParseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", errors.ErrInvalidAmount, value)
	}
	return amount, nil
}

// MustParseAmount is ParseAmount for literals known to be valid.
func MustParseAmount(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// Sum adds every balance of the given accounts.
func Sum(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.Balance)
	}
	return total
}
