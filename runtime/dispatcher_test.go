package runtime

import (
	"context"
	"ledger-lab/domain"
	"ledger-lab/domain/event"
	"ledger-lab/errors"
	"ledger-lab/mocks"
	"ledger-lab/observability"
	"ledger-lab/repositories"
	"ledger-lab/runtime/workers"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func aTransferCompleted() event.TransferCompleted {
	return event.TransferCompleted{
		ID:            uuid.New(),
		Source:        "Id-1",
		Destination:   "Id-2",
		Amount:        domain.MustParseAmount("5"),
		SourceBalance: domain.MustParseAmount("95"),
		At:            time.Now().UTC(),
	}
}

func TestDispatcher_NotifyAboutTransfer_DropsWhenFull(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	monitoring := observability.NewMonitoringManager()
	ctrl := gomock.NewController(t)
	supervisor := mocks.NewMockISupervisor(ctrl)

	// Given a queue of one slot and nobody draining it
	dispatcher := NewDispatcher(log, supervisor, repositories.NewAccountRepository(), monitoring, 1, time.Second, time.Minute)

	// When two notifications are sent
	req.NoError(dispatcher.NotifyAboutTransfer(context.Background(), aTransferCompleted()))
	err := dispatcher.NotifyAboutTransfer(context.Background(), aTransferCompleted())

	// Then the second one is dropped without blocking
	req.ErrorIs(err, errors.ErrNotificationQueueFull)
	stats := monitoring.Snapshot()
	req.Equal(uint64(1), stats.NotificationsDropped)
	req.Equal(1, stats.CurrentQueueSize)
	req.Equal(1, stats.MaxQueueCapacity)
}

func TestDispatcher_NotifyAboutTransfer_CancelledContext(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	monitoring := observability.NewMonitoringManager()
	dispatcher := NewDispatcher(log, mocks.NewMockISupervisor(ctrl), repositories.NewAccountRepository(),
		monitoring, 1, time.Second, time.Minute)

	// Given a caller that already went away
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When a committed transfer is notified
	err := dispatcher.NotifyAboutTransfer(ctx, aTransferCompleted())

	// Then it is still queued for the sinks
	req.NoError(err)
	req.Equal(1, monitoring.Snapshot().CurrentQueueSize)
	req.Zero(monitoring.Snapshot().NotificationsDropped)
}

func TestDispatcher_Start_RegistersWorkers(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	supervisor := mocks.NewMockISupervisor(ctrl)

	// Given a supervisor expecting the fanout and stats workers
	supervisor.EXPECT().Add(gomock.Any(), gomock.Any()).Return(supervisor).Times(1)
	supervisor.EXPECT().Run(gomock.Any()).Times(1)

	dispatcher := NewDispatcher(log, supervisor, repositories.NewAccountRepository(),
		observability.NewMonitoringManager(), 8, time.Second, time.Minute)

	dispatcher.Start(context.Background())
}

func TestDispatcher_DeliversToSinks(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	monitoring := observability.NewMonitoringManager()
	sink := mocks.NewMockEventSink(ctrl)

	evt := aTransferCompleted()
	delivered := make(chan struct{})
	// Given a sink expecting the event once
	sink.EXPECT().Consume(gomock.Any(), evt).
		Do(func(ctx context.Context, e event.TransferCompleted) { close(delivered) }).
		Return(nil).
		Times(1)

	dispatcher := NewDispatcher(log, workers.NewSupervisor(log, 10*time.Millisecond),
		repositories.NewAccountRepository(), monitoring, 8, time.Second, time.Minute)
	dispatcher.Add(sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stopped := make(chan struct{})
	go func() {
		dispatcher.Start(ctx)
		close(stopped)
	}()

	// When a transfer is notified
	req.NoError(dispatcher.NotifyAboutTransfer(ctx, evt))

	// Then the sink receives it
	select {
	case <-delivered:
	case <-time.After(time.Second):
		req.Fail("Notification was not delivered in time")
	}

	dispatcher.Stop()
	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		req.Fail("Dispatcher did not stop")
	}
}

func TestDispatcher_StopBeforeStart(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	dispatcher := NewDispatcher(log, workers.NewSupervisor(log, 10*time.Millisecond),
		repositories.NewAccountRepository(), observability.NewMonitoringManager(), 8, time.Second, time.Minute)

	// Given a shutdown requested before the dispatcher started
	dispatcher.Stop()

	// When it starts afterwards
	stopped := make(chan struct{})
	go func() {
		dispatcher.Start(context.Background())
		close(stopped)
	}()

	// Then it returns instead of running forever
	select {
	case <-stopped:
	case <-time.After(time.Second):
		req.Fail("Dispatcher never stopped after Stop")
	}
}
