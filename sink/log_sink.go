package sink

import (
	"context"
	"ledger-lab/domain/event"
	"log/slog"
)

// LogSink notifies the owner of the source account by writing the notice to the log.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) LogSink {
	return LogSink{log: log}
}

func (s LogSink) Consume(ctx context.Context, evt event.TransferCompleted) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	account := evt.SourceAccount()
	s.log.Info("Sending notification to owner",
		"account", account.ID,
		"balance", account.Balance.String(),
		"transfer_id", evt.ID,
		"description", evt.Description)
	return nil
}
