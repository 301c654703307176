//go:generate go run go.uber.org/mock/mockgen -source=transfer_engine.go -destination=../mocks/mock_transfer_engine.go -package=mocks
package services

import (
	"fmt"
	"ledger-lab/domain"
	"ledger-lab/errors"
	"ledger-lab/observability"
	"ledger-lab/repositories"
	"log/slog"
)

type ITransferEngine interface {
	Transfer(cmd domain.TransferCommand) (domain.Account, error)
}

// TransferEngine composes two single-account updates into one transfer.
// It never holds two accounts at once: the debit and the credit are independent
// atomic steps, and a failed credit is undone by crediting the source back.
type TransferEngine struct {
	accounts   repositories.IAccountRepository
	log        *slog.Logger
	monitoring *observability.MonitoringManager
}

func NewTransferEngine(log *slog.Logger, accounts repositories.IAccountRepository,
	monitoring *observability.MonitoringManager) *TransferEngine {
	return &TransferEngine{accounts: accounts, log: log, monitoring: monitoring}
}

// Transfer debits the source then credits the destination.
// On success it returns the source balance right after the transfer.
// On failure both balances are left as they were and the error is one of
// ErrInvalidAmount or ErrInsufficientFundsOrUnknownAccount.
// The call is a single attempt: retrying is the caller's business.
func (e *TransferEngine) Transfer(cmd domain.TransferCommand) (domain.Account, error) {
	if !domain.IsPositive(cmd.Amount) {
		return domain.Account{}, fmt.Errorf("%w: got %s", errors.ErrInvalidAmount, cmd.Amount)
	}

	source, ok := e.accounts.TryWithdraw(cmd.Source, cmd.Amount)
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: account %s", errors.ErrInsufficientFundsOrUnknownAccount, cmd.Source)
	}

	destination, ok := e.accounts.TryDeposit(cmd.Destination, cmd.Amount)
	if !ok {
		e.compensate(cmd)
		return domain.Account{}, fmt.Errorf("%w: %w: account %s",
			errors.ErrInsufficientFundsOrUnknownAccount, errors.ErrDestinationUnavailable, cmd.Destination)
	}

	if cmd.IsSelfTransfer() {
		// The credit landed on the source itself, so it holds the latest balance
		return destination, nil
	}
	return source, nil
}

// compensate gives the debited amount back to the source.
// A deposit of a positive amount only fails if the source vanished, which can
// only happen when accounts are cleared between scenarios.
func (e *TransferEngine) compensate(cmd domain.TransferCommand) {
	e.monitoring.IncrCompensated()
	if _, ok := e.accounts.TryDeposit(cmd.Source, cmd.Amount); !ok {
		e.log.Error("Compensation failed, source account vanished",
			"source", cmd.Source, "destination", cmd.Destination, "amount", cmd.Amount.String())
		return
	}
	e.log.Debug("Transfer compensated",
		"source", cmd.Source, "destination", cmd.Destination, "amount", cmd.Amount.String())
}
