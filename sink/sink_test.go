package sink_test

import (
	"bytes"
	"context"
	"fmt"
	"ledger-lab/domain"
	"ledger-lab/domain/event"
	"ledger-lab/mocks"
	"ledger-lab/repositories"
	"ledger-lab/sink"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func aTransferCompleted() event.TransferCompleted {
	return event.TransferCompleted{
		ID:            uuid.New(),
		Source:        "Id-1",
		Destination:   "Id-2",
		Amount:        domain.MustParseAmount("10.25"),
		SourceBalance: domain.MustParseAmount("89.75"),
		Description:   "An amount of 10.25 was transferred from account Id-1 to account Id-2",
		At:            time.Now().UTC(),
	}
}

func TestJournalSink_Consume(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockITransferRepository(ctrl)
	evt := aTransferCompleted()

	// Expect one call holding the debit and the credit side
	mockRepo.EXPECT().
		StoreTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(records ...repositories.TransferRecord) error {
			req.Len(records, 2)
			debit, credit := records[0], records[1]
			req.Equal(repositories.DEBIT, debit.Direction)
			req.Equal(domain.AccountID("Id-1"), debit.AccountID)
			req.Equal(domain.AccountID("Id-2"), debit.Counterparty)
			req.Equal(repositories.CREDIT, credit.Direction)
			req.Equal(domain.AccountID("Id-2"), credit.AccountID)
			req.Equal(domain.AccountID("Id-1"), credit.Counterparty)
			req.Equal(evt.ID, debit.TransferID)
			req.Equal(evt.ID, credit.TransferID)
			req.NotEqual(debit.ID, credit.ID)
			req.True(credit.Amount.Equal(evt.Amount))
			return nil
		}).Times(1)

	req.NoError(sink.NewJournalSink(mockRepo).Consume(context.Background(), evt))
}

func TestJournalSink_Consume_Error(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockITransferRepository(ctrl)

	mockRepo.EXPECT().StoreTransfer(gomock.Any(), gomock.Any()).Return(fmt.Errorf("disk full")).Times(1)

	req.Error(sink.NewJournalSink(mockRepo).Consume(context.Background(), aTransferCompleted()))
}

func TestJournalSink_Consume_SelfTransferKeepsBothSides(t *testing.T) {
	req := require.New(t)
	db, err := repositories.OpenJournal()
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })
	repository := repositories.NewTransferRepository(db, slog.Default(), nil)

	// Given a transfer from an account to itself
	evt := aTransferCompleted()
	evt.Destination = evt.Source

	req.NoError(sink.NewJournalSink(repository).Consume(context.Background(), evt))

	// Then the journal holds a debit and a credit
	records, _, err := repository.GetTransfers("Id-1", nil)
	req.NoError(err)
	req.Len(records, 2)
}

func TestJournalSink_Consume_ExpiredContext(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockITransferRepository(ctrl)
	mockRepo.EXPECT().StoreTransfer(gomock.Any()).Times(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req.ErrorIs(sink.NewJournalSink(mockRepo).Consume(ctx, aTransferCompleted()), context.Canceled)
}

func TestLogSink_Consume(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	req.NoError(sink.NewLogSink(logger).Consume(context.Background(), aTransferCompleted()))

	req.Contains(buf.String(), "account=Id-1")
	req.Contains(buf.String(), "balance=89.75")
	req.Contains(buf.String(), "was transferred from account Id-1 to account Id-2")
}
