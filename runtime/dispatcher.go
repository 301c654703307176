// Package runtime carries committed transfers out of the request path.
// It wires the background workers together without holding any ledger rule.
package runtime

import (
	"context"
	"fmt"
	"ledger-lab/contract"
	"ledger-lab/domain/event"
	"ledger-lab/errors"
	"ledger-lab/observability"
	"ledger-lab/repositories"
	"ledger-lab/runtime/workers"
	"log/slog"
	"sync"
	"time"
)

// Dispatcher is the notifier handed to the accounts service.
// NotifyAboutTransfer never blocks: the event is queued, or dropped when the
// queue is full. The queue is drained by a NotificationFanout worker.
type Dispatcher struct {
	mu            sync.Mutex
	log           *slog.Logger
	supervisor    contract.ISupervisor
	accounts      repositories.IAccountRepository
	monitoring    *observability.MonitoringManager
	notifications chan event.TransferCompleted
	sinks         []contract.EventSink
	sinkTimeout   time.Duration
	statsInterval time.Duration
}

func NewDispatcher(log *slog.Logger, supervisor contract.ISupervisor,
	accounts repositories.IAccountRepository, monitoring *observability.MonitoringManager,
	bufferSize int, sinkTimeout, statsInterval time.Duration) *Dispatcher {
	monitoring.UpdateQueue(0, bufferSize)
	return &Dispatcher{
		log:           log,
		supervisor:    supervisor,
		accounts:      accounts,
		monitoring:    monitoring,
		notifications: make(chan event.TransferCompleted, bufferSize),
		sinkTimeout:   sinkTimeout,
		statsInterval: statsInterval,
	}
}

// Add registers sinks. Sinks added after Start are not served.
func (d *Dispatcher) Add(sinks ...contract.EventSink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sinks = append(d.sinks, sinks...)
}

// NotifyAboutTransfer queues the event whatever the state of ctx.
func (d *Dispatcher) NotifyAboutTransfer(_ context.Context, evt event.TransferCompleted) error {
	select {
	case d.notifications <- evt:
		d.monitoring.UpdateQueue(len(d.notifications), cap(d.notifications))
		return nil
	default:
		d.monitoring.IncrDropped()
		d.log.Warn("Notification queue full, dropping notification",
			"transfer_id", evt.ID, "source", evt.Source, "capacity", cap(d.notifications))
		return fmt.Errorf("%w: transfer %s", errors.ErrNotificationQueueFull, evt.ID)
	}
}

// Start registers the fanout and stats workers on the supervisor and blocks
// until ctx is cancelled or Stop is called.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	sinks := make([]contract.EventSink, len(d.sinks))
	copy(sinks, d.sinks)
	d.supervisor.Add(
		workers.NewNotificationFanout(d.log, d.notifications, sinks, d.sinkTimeout, d.monitoring),
		workers.NewLedgerStatsWorker(d.log, d.accounts, d.monitoring, d.statsInterval),
	)
	d.mu.Unlock()

	d.log.Info("Starting dispatcher and all supervised workers", "sinks", len(sinks))
	d.supervisor.Run(ctx)
}

func (d *Dispatcher) Stop() {
	d.log.Info("Requesting dispatcher shutdown")
	d.supervisor.Stop()
}
