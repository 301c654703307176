package sink

import (
	"context"
	"ledger-lab/domain/event"
	"ledger-lab/repositories"

	"github.com/google/uuid"
)

// JournalSink writes both sides of a committed transfer to the transfer journal.
type JournalSink struct {
	repository repositories.ITransferRepository
}

func NewJournalSink(repository repositories.ITransferRepository) JournalSink {
	return JournalSink{repository: repository}
}

func (j JournalSink) Consume(ctx context.Context, evt event.TransferCompleted) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return j.repository.StoreTransfer(toTransferRecords(evt)...)
}

func toTransferRecords(evt event.TransferCompleted) []repositories.TransferRecord {
	debit := repositories.TransferRecord{
		ID:           uuid.New(),
		TransferID:   evt.ID,
		AccountID:    evt.Source,
		Counterparty: evt.Destination,
		Direction:    repositories.DEBIT,
		Amount:       evt.Amount,
		Description:  evt.Description,
		At:           evt.At,
	}
	credit := debit
	credit.ID = uuid.New()
	credit.AccountID = evt.Destination
	credit.Counterparty = evt.Source
	credit.Direction = repositories.CREDIT
	return []repositories.TransferRecord{debit, credit}
}
