package services

import (
	"context"
	"fmt"
	"ledger-lab/domain"
	"ledger-lab/domain/event"
	"ledger-lab/errors"
	"ledger-lab/mocks"
	"ledger-lab/observability"
	"ledger-lab/repositories"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceFixture struct {
	service    *AccountsService
	accounts   *repositories.AccountRepositoryInMemory
	transfers  *mocks.MockITransferRepository
	notifier   *mocks.MockINotifier
	monitoring *observability.MonitoringManager
}

func newServiceFixture(t *testing.T, accounts ...domain.Account) serviceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	repository := repositories.NewAccountRepository()
	for _, account := range accounts {
		require.NoError(t, repository.CreateAccount(account))
	}
	monitoring := observability.NewMonitoringManager()
	transfers := mocks.NewMockITransferRepository(ctrl)
	notifier := mocks.NewMockINotifier(ctrl)
	engine := NewTransferEngine(log, repository, monitoring)
	return serviceFixture{
		service:    NewAccountsService(log, repository, transfers, engine, notifier, monitoring),
		accounts:   repository,
		transfers:  transfers,
		notifier:   notifier,
		monitoring: monitoring,
	}
}

func TestAccountsService_AmountTransfer_NotifiesOnce(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t,
		domain.NewAccount("Id-1", amount("100")),
		domain.NewAccount("Id-2", amount("0")))

	var received event.TransferCompleted
	// Given the notifier expects exactly one call
	f.notifier.EXPECT().
		NotifyAboutTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, evt event.TransferCompleted) error {
			// Then both balances are already final when the notifier runs
			req.True(balanceOf(t, f.accounts, "Id-1").Equal(amount("75")))
			req.True(balanceOf(t, f.accounts, "Id-2").Equal(amount("25")))
			received = evt
			return nil
		}).
		Times(1)

	// When a transfer is executed
	source, err := f.service.AmountTransfer(context.Background(), domain.NewTransferCommand("Id-1", "Id-2", amount("25")))

	// Then the notification carries the source snapshot and the description
	req.NoError(err)
	req.True(source.Balance.Equal(amount("75")))
	req.Equal(domain.AccountID("Id-1"), received.SourceAccount().ID)
	req.True(received.SourceAccount().Balance.Equal(amount("75")))
	req.Equal("An amount of 25 was transferred from account Id-1 to account Id-2", received.Description)
	req.Contains(received.Description, "Id-1")
	req.Contains(received.Description, "Id-2")
	req.Equal(uint64(1), f.monitoring.Snapshot().TransfersCommitted)
	req.Len(f.monitoring.Snapshot().RecentTransfers, 1)
}

func TestAccountsService_AmountTransfer_NoNotificationOnFailure(t *testing.T) {
	tests := []struct {
		name string
		cmd  domain.TransferCommand
		err  error
	}{
		{
			name: "insufficient funds",
			cmd:  domain.NewTransferCommand("Id-1", "Id-2", amount("500")),
			err:  errors.ErrInsufficientFundsOrUnknownAccount,
		},
		{
			name: "unknown destination",
			cmd:  domain.NewTransferCommand("Id-1", "Id-unknown", amount("5")),
			err:  errors.ErrInsufficientFundsOrUnknownAccount,
		},
		{
			name: "zero amount",
			cmd:  domain.NewTransferCommand("Id-1", "Id-2", amount("0")),
			err:  errors.ErrInvalidAmount,
		},
		{
			name: "missing source",
			cmd:  domain.NewTransferCommand("", "Id-2", amount("5")),
			err:  errors.ErrInvalidPayload,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			f := newServiceFixture(t,
				domain.NewAccount("Id-1", amount("100")),
				domain.NewAccount("Id-2", amount("0")))

			// Given the notifier must never be called
			f.notifier.EXPECT().NotifyAboutTransfer(gomock.Any(), gomock.Any()).Times(0)

			_, err := f.service.AmountTransfer(context.Background(), tt.cmd)

			req.ErrorIs(err, tt.err)
			req.True(balanceOf(t, f.accounts, "Id-1").Equal(amount("100")))
			req.True(balanceOf(t, f.accounts, "Id-2").IsZero())
			req.Equal(uint64(1), f.monitoring.Snapshot().TransfersRejected)
		})
	}
}

func TestAccountsService_AmountTransfer_NotifierFailureKeepsTransfer(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t,
		domain.NewAccount("Id-1", amount("100")),
		domain.NewAccount("Id-2", amount("0")))

	// Given a notifier that fails
	f.notifier.EXPECT().
		NotifyAboutTransfer(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("smtp down")).
		Times(1)

	// When a transfer is executed
	_, err := f.service.AmountTransfer(context.Background(), domain.NewTransferCommand("Id-1", "Id-2", amount("40")))

	// Then the transfer is still committed
	req.NoError(err)
	req.True(balanceOf(t, f.accounts, "Id-1").Equal(amount("60")))
	req.True(balanceOf(t, f.accounts, "Id-2").Equal(amount("40")))
}

func TestAccountsService_GetTransfers(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t, domain.NewAccount("Id-1", amount("100")))

	records := []repositories.TransferRecord{{AccountID: "Id-1", Direction: repositories.DEBIT}}
	// Given the journal holds one record for the account
	f.transfers.EXPECT().GetTransfers(domain.AccountID("Id-1"), gomock.Nil()).Return(records, lo.ToPtr("next"), nil).Times(1)

	got, cursor, err := f.service.GetTransfers("Id-1", nil)

	req.NoError(err)
	req.Equal(records, got)
	req.Equal("next", *cursor)
}

func TestAccountsService_GetTransfers_UnknownAccount(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	// Given the journal is never queried for an unknown account
	f.transfers.EXPECT().GetTransfers(gomock.Any(), gomock.Any()).Times(0)

	_, _, err := f.service.GetTransfers("Id-unknown", nil)

	req.ErrorIs(err, errors.ErrAccountNotFound)
}

func TestAccountsService_CreateGetClear(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	req.NoError(f.service.CreateAccount(domain.NewAccount("Id-1", amount("12.50"))))
	req.ErrorIs(f.service.CreateAccount(domain.NewAccount("Id-1", amount("1"))), errors.ErrDuplicateAccount)

	account, err := f.service.GetAccount("Id-1")
	req.NoError(err)
	req.True(account.Balance.Equal(amount("12.5")))

	f.service.ClearAccounts()
	_, err = f.service.GetAccount("Id-1")
	req.ErrorIs(err, errors.ErrAccountNotFound)
}

func TestAccountsService_AmountTransfer_CallerGone(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t,
		domain.NewAccount("Id-1", amount("100")),
		domain.NewAccount("Id-2", amount("0")))

	// Given a caller that hung up before the transfer ran
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Then the notifier still gets a live context
	f.notifier.EXPECT().
		NotifyAboutTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, evt event.TransferCompleted) error {
			return ctx.Err()
		}).
		Times(1)

	// When the transfer is executed
	_, err := f.service.AmountTransfer(ctx, domain.NewTransferCommand("Id-1", "Id-2", amount("10")))

	req.NoError(err)
	req.True(balanceOf(t, f.accounts, "Id-2").Equal(amount("10")))
}

func TestAccountsService_AmountTransfer_EngineOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	cmd := domain.NewTransferCommand("Id-1", "Id-2", amount("10"))

	t.Run("refused", func(t *testing.T) {
		req := require.New(t)
		engine := mocks.NewMockITransferEngine(ctrl)
		notifier := mocks.NewMockINotifier(ctrl)
		monitoring := observability.NewMonitoringManager()
		service := NewAccountsService(log, repositories.NewAccountRepository(),
			mocks.NewMockITransferRepository(ctrl), engine, notifier, monitoring)

		// Given an engine refusing the transfer
		engine.EXPECT().Transfer(cmd).
			Return(domain.Account{}, fmt.Errorf("%w: account Id-1", errors.ErrInsufficientFundsOrUnknownAccount)).
			Times(1)
		notifier.EXPECT().NotifyAboutTransfer(gomock.Any(), gomock.Any()).Times(0)

		_, err := service.AmountTransfer(context.Background(), cmd)

		// Then the refusal is returned untouched and counted
		req.ErrorIs(err, errors.ErrInsufficientFundsOrUnknownAccount)
		req.Equal(uint64(1), monitoring.Snapshot().TransfersRejected)
		req.Zero(monitoring.Snapshot().TransfersCommitted)
	})

	t.Run("committed", func(t *testing.T) {
		req := require.New(t)
		engine := mocks.NewMockITransferEngine(ctrl)
		notifier := mocks.NewMockINotifier(ctrl)
		monitoring := observability.NewMonitoringManager()
		service := NewAccountsService(log, repositories.NewAccountRepository(),
			mocks.NewMockITransferRepository(ctrl), engine, notifier, monitoring)

		// Given an engine committing the transfer
		engine.EXPECT().Transfer(cmd).Return(domain.NewAccount("Id-1", amount("90")), nil).Times(1)
		var received event.TransferCompleted
		notifier.EXPECT().NotifyAboutTransfer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, evt event.TransferCompleted) error {
				received = evt
				return nil
			}).
			Times(1)

		source, err := service.AmountTransfer(context.Background(), cmd)

		// Then the engine snapshot is both returned and notified
		req.NoError(err)
		req.True(source.Balance.Equal(amount("90")))
		req.True(received.SourceBalance.Equal(amount("90")))
		req.Equal(uint64(1), monitoring.Snapshot().TransfersCommitted)
	})
}
