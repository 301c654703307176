//go:generate go run go.uber.org/mock/mockgen -source=accounts_service.go -destination=../mocks/mock_accounts_service.go -package=mocks
package services

import (
	"context"
	"ledger-lab/contract"
	"ledger-lab/domain"
	"ledger-lab/domain/event"
	"ledger-lab/observability"
	"ledger-lab/repositories"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type IAccountsService interface {
	CreateAccount(account domain.Account) error
	GetAccount(id domain.AccountID) (domain.Account, error)
	AmountTransfer(ctx context.Context, cmd domain.TransferCommand) (domain.Account, error)
	GetTransfers(id domain.AccountID, cursor *string) ([]repositories.TransferRecord, *string, error)
	ClearAccounts()
}

type AccountsService struct {
	log        *slog.Logger
	accounts   repositories.IAccountRepository
	transfers  repositories.ITransferRepository
	engine     ITransferEngine
	notifier   contract.INotifier
	monitoring *observability.MonitoringManager
}

func NewAccountsService(log *slog.Logger,
	accounts repositories.IAccountRepository,
	transfers repositories.ITransferRepository,
	engine ITransferEngine,
	notifier contract.INotifier,
	monitoring *observability.MonitoringManager) *AccountsService {
	return &AccountsService{
		log:        log,
		accounts:   accounts,
		transfers:  transfers,
		engine:     engine,
		notifier:   notifier,
		monitoring: monitoring,
	}
}

func (s *AccountsService) CreateAccount(account domain.Account) error {
	return s.accounts.CreateAccount(account)
}

func (s *AccountsService) GetAccount(id domain.AccountID) (domain.Account, error) {
	return s.accounts.GetAccount(id)
}

func (s *AccountsService) GetTransfers(id domain.AccountID, cursor *string) ([]repositories.TransferRecord, *string, error) {
	if _, err := s.accounts.GetAccount(id); err != nil {
		return nil, nil, err
	}
	return s.transfers.GetTransfers(id, cursor)
}

func (s *AccountsService) ClearAccounts() {
	s.accounts.ClearAccounts()
}

// AmountTransfer runs the transfer and, once it is committed, notifies about it.
// The notification is sent after both balances are final; if it fails the
// transfer stays committed and the failure is only logged.
func (s *AccountsService) AmountTransfer(ctx context.Context, cmd domain.TransferCommand) (domain.Account, error) {
	if err := cmd.Validate(); err != nil {
		s.monitoring.IncrRejected()
		return domain.Account{}, err
	}

	source, err := s.engine.Transfer(cmd)
	if err != nil {
		s.monitoring.IncrRejected()
		s.log.Info("Transfer not processed",
			"source", cmd.Source, "destination", cmd.Destination,
			"amount", cmd.Amount.String(), "error", err)
		return domain.Account{}, err
	}

	evt := toTransferCompleted(cmd, source)
	s.monitoring.IncrCommitted()
	s.monitoring.AddRecentTransfer(evt.ID.String(), cmd.Source.String(), cmd.Destination.String(), cmd.Amount.String())

	// The caller may hang up once the transfer is committed, the notification must still go out
	if err = s.notifier.NotifyAboutTransfer(context.WithoutCancel(ctx), evt); err != nil {
		s.log.Warn("Transfer committed but notification failed",
			"transfer_id", evt.ID, "source", cmd.Source, "error", err)
	}
	return source, nil
}

func toTransferCompleted(cmd domain.TransferCommand, source domain.Account) event.TransferCompleted {
	return event.TransferCompleted{
		ID:            uuid.New(),
		Source:        cmd.Source,
		Destination:   cmd.Destination,
		Amount:        cmd.Amount,
		SourceBalance: source.Balance,
		Description:   domain.TransferDescription(cmd),
		At:            time.Now().UTC(),
	}
}
