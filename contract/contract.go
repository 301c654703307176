//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"ledger-lab/domain/event"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	return GetTypeName(w)
}

// GetTypeName returns the name of the dynamic type behind v, pointers removed.
func GetTypeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "nil"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// INotifier is told about every committed transfer.
// It is called outside any balance update, and its failure never undoes the transfer.
type INotifier interface {
	NotifyAboutTransfer(ctx context.Context, evt event.TransferCompleted) error
}

type EventSink interface {
	Consume(ctx context.Context, evt event.TransferCompleted) error
}
