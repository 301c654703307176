package repositories

import (
	"ledger-lab/domain"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newRecord(accountID, counterparty domain.AccountID, direction Direction, value string, at time.Time) TransferRecord {
	return TransferRecord{
		ID:           uuid.New(),
		AccountID:    accountID,
		Counterparty: counterparty,
		Direction:    direction,
		Amount:       amount(value),
		Description:  "transfer",
		At:           at,
	}
}

func TestTransferRepository_Store_And_Get_Sorted(t *testing.T) {
	req := require.New(t)
	repository := NewTransferRepository(openTestJournal(t), slog.Default(), nil)
	at := time.Now().UTC()

	// Given three transfers recorded for account A, out of order
	records := []TransferRecord{
		newRecord("A", "B", DEBIT, "10", at.Add(1*time.Minute)),
		newRecord("A", "C", CREDIT, "20", at),
		newRecord("A", "B", DEBIT, "30", at.Add(2*time.Minute)),
	}
	req.NoError(repository.StoreTransfer(records...))
	// And one transfer belonging to another account
	req.NoError(repository.StoreTransfer(newRecord("B", "A", CREDIT, "10", at)))

	// When fetching the journal of A
	fetched, cursor, err := repository.GetTransfers("A", nil)

	// Then only A's records are returned, newest first
	req.NoError(err)
	req.NotNil(cursor)
	req.Len(fetched, 3)
	req.True(fetched[0].Amount.Equal(amount("30")))
	req.True(fetched[1].Amount.Equal(amount("10")))
	req.True(fetched[2].Amount.Equal(amount("20")))
	req.Equal(CREDIT, fetched[2].Direction)
	req.Equal(domain.AccountID("C"), fetched[2].Counterparty)
	req.True(fetched[2].At.Equal(at))
}

func TestTransferRepository_Pagination(t *testing.T) {
	req := require.New(t)
	limit := 2
	repository := NewTransferRepository(openTestJournal(t), slog.Default(), &limit)
	at := time.Now().UTC()

	for i := 0; i < 5; i++ {
		req.NoError(repository.StoreTransfer(newRecord("A", "B", DEBIT, "1", at.Add(time.Duration(i)*time.Second))))
	}

	// When reading page after page
	var all []TransferRecord
	var cursor *string
	for {
		page, next, err := repository.GetTransfers("A", cursor)
		req.NoError(err)
		if len(page) == 0 {
			req.Nil(next)
			break
		}
		req.LessOrEqual(len(page), limit)
		all = append(all, page...)
		cursor = next
	}

	// Then every record is seen exactly once, newest first
	req.Len(all, 5)
	for i := 1; i < len(all); i++ {
		req.True(all[i-1].At.After(all[i].At))
	}
}

func TestTransferRepository_UnknownAccount(t *testing.T) {
	req := require.New(t)
	repository := NewTransferRepository(openTestJournal(t), slog.Default(), nil)

	records, cursor, err := repository.GetTransfers("nobody", nil)

	req.NoError(err)
	req.Empty(records)
	req.Nil(cursor)
}

func TestJournalKey_EscapesAccountID(t *testing.T) {
	req := require.New(t)
	record := newRecord("a:b", "c", DEBIT, "1", time.Unix(0, 42))

	req.Equal("transfer:a%3Ab:0000000000000000042:"+record.ID.String(), JournalKey(record))
}
