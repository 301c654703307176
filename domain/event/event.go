package event

import (
	"ledger-lab/domain"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferCompleted is emitted once a transfer has been committed on both accounts.
// SourceBalance is the balance of the source right after the transfer.
type TransferCompleted struct {
	ID            uuid.UUID
	Source        domain.AccountID
	Destination   domain.AccountID
	Amount        decimal.Decimal
	SourceBalance decimal.Decimal
	Description   string
	At            time.Time
}

func (t TransferCompleted) SourceAccount() domain.Account {
	return domain.NewAccount(t.Source, t.SourceBalance)
}
