package workers

import (
	"context"
	"ledger-lab/contract"
	"ledger-lab/domain/event"
	"ledger-lab/observability"
	"log/slog"
	"sync"
	"time"
)

// NotificationFanout delivers every committed transfer to each registered sink.
//
// Delivery is best effort: a sink gets sinkTimeout per event, its failures are
// counted and logged, and nothing is retried. Sinks of one event run
// concurrently; the next event is read once all of them returned.
// On cancellation the events already queued are still delivered.
type NotificationFanout struct {
	log           *slog.Logger
	notifications <-chan event.TransferCompleted
	sinks         []contract.EventSink
	sinkTimeout   time.Duration
	monitoring    *observability.MonitoringManager
}

func NewNotificationFanout(log *slog.Logger, notifications <-chan event.TransferCompleted,
	sinks []contract.EventSink, sinkTimeout time.Duration,
	monitoring *observability.MonitoringManager) *NotificationFanout {
	return &NotificationFanout{
		log:           log,
		notifications: notifications,
		sinks:         sinks,
		sinkTimeout:   sinkTimeout,
		monitoring:    monitoring,
	}
}

// Run delivers until ctx is cancelled. Deliveries are bounded by the sink
// timeout only, so a shutdown never cuts a notification halfway.
func (w *NotificationFanout) Run(ctx context.Context) error {
	deliveryCtx := context.WithoutCancel(ctx)
	for {
		select {
		case evt := <-w.notifications:
			w.monitoring.UpdateQueue(len(w.notifications), cap(w.notifications))
			w.Fanout(deliveryCtx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, draining notifications", "pending", len(w.notifications))
			w.drain(deliveryCtx)
			return nil
		}
	}
}

// drain delivers what is already queued. Each sink keeps its own timeout.
func (w *NotificationFanout) drain(ctx context.Context) {
	for {
		select {
		case evt := <-w.notifications:
			w.Fanout(ctx, evt)
		default:
			return
		}
	}
}

// Fanout hands one event to every sink and waits for all of them.
func (w *NotificationFanout) Fanout(ctx context.Context, evt event.TransferCompleted) {
	var wg sync.WaitGroup
	for _, sink := range w.sinks {
		wg.Add(1)
		go func(s contract.EventSink) {
			defer wg.Done()
			sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			defer cancel()

			if err := s.Consume(sinkCtx, evt); err != nil {
				w.monitoring.IncrFailed()
				w.log.Warn("Notification not delivered",
					"sink", contract.GetTypeName(s), "transfer_id", evt.ID, "error", err)
				return
			}
			w.monitoring.IncrDelivered()
		}(sink)
	}
	wg.Wait()
}
