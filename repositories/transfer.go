//go:generate go run go.uber.org/mock/mockgen -source=transfer.go -destination=../mocks/mock_transfer_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"ledger-lab/domain"
	"log/slog"
	"net/url"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const transferPrefix = "transfer:"

type Direction string

const (
	DEBIT  Direction = "DEBIT"
	CREDIT Direction = "CREDIT"
)

type ITransferRepository interface {
	StoreTransfer(records ...TransferRecord) error
	GetTransfers(accountID domain.AccountID, cursor *string) ([]TransferRecord, *string, error)
}

// TransferRecord is one side of a committed transfer, as seen by AccountID.
// Both sides of a transfer share TransferID and have their own ID.
type TransferRecord struct {
	ID           uuid.UUID        `json:"id"`
	TransferID   uuid.UUID        `json:"transfer_id"`
	AccountID    domain.AccountID `json:"account_id"`
	Counterparty domain.AccountID `json:"counterparty"`
	Direction    Direction        `json:"direction"`
	Amount       decimal.Decimal  `json:"amount"`
	Description  string           `json:"description"`
	At           time.Time        `json:"at"`
}

type TransferRepository struct {
	db             *badger.DB
	log            *slog.Logger
	limitTransfers *int
}

func NewTransferRepository(db *badger.DB, log *slog.Logger, limitTransfers *int) TransferRepository {
	return TransferRepository{db: db, log: log, limitTransfers: limitTransfers}
}

// JournalOptions are the badger options of the transfer journal.
// The journal lives in memory only: it disappears with the process, like the balances.
func JournalOptions() badger.Options {
	return badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.WARNING)
}

func OpenJournal() (*badger.DB, error) {
	return badger.Open(JournalOptions())
}

// JournalKey formats "transfer:{account}:{timestamp_padded}:{uuid}".
// The 19-digit padding keeps keys of one account in chronological order and the
// uuid separates two sides recorded at the same nanosecond.
func JournalKey(record TransferRecord) string {
	return fmt.Sprintf("%s%s:%019d:%s",
		transferPrefix,
		url.QueryEscape(record.AccountID.String()),
		record.At.UnixNano(),
		record.ID,
	)
}

// StoreTransfer writes every record in a single badger transaction.
func (t TransferRepository) StoreTransfer(records ...TransferRecord) error {
	return t.db.Update(func(txn *badger.Txn) error {
		for _, record := range records {
			bytes, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("marshal failed: %w", err)
			}
			if err = txn.Set([]byte(JournalKey(record)), bytes); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetTransfers returns the journal of one account, newest first.
// The returned cursor can be passed back to fetch the following page; it is nil
// once nothing was read.
func (t TransferRepository) GetTransfers(accountID domain.AccountID, cursor *string) ([]TransferRecord, *string, error) {
	var records []TransferRecord
	var lastKey string
	err := t.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("%s%s:", transferPrefix, url.QueryEscape(accountID.String()))
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Reverse iteration starts past the newest possible key of the account
			seekKey = append([]byte(prefixStr), []byte("9999999999999999999")...)
		default:
			seekKey = append([]byte(prefixStr), []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()) == string(seekKey) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if t.limitTransfers != nil && len(records) == *t.limitTransfers {
				t.log.Debug(fmt.Sprintf("Maximum of %d transfers reached", *t.limitTransfers))
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefixStr):])
			err := item.Value(func(value []byte) error {
				var record TransferRecord
				if err := json.Unmarshal(value, &record); err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if lastKey == "" {
		return records, nil, nil
	}
	return records, &lastKey, nil
}
