// internal/core/ports/sink.go
package ports

import (
	"context"

	"harvestx/internal/core/domain"
)

// EventSink recibe cada evento producido durante un escaneo (listener).
// El host llama Notify desde una sola goroutine.
type EventSink interface {
	Notify(ctx context.Context, event *domain.Event) error
	Close() error
}

// ErrorReporter recibe los errores de los módulos.
type ErrorReporter func(module string, event *domain.Event, err error)

// EventRepository persiste eventos por escaneo.
type EventRepository interface {
	SaveEvent(ctx context.Context, scanID string, event *domain.Event) error
	ListEvents(ctx context.Context, scanID string) ([]StoredEvent, error)
	Close() error
}

// StoredEvent es un evento leído del repositorio; Source se reduce a su ID.
type StoredEvent struct {
	ScanID   string
	ID       string
	Type     domain.EventType
	Data     string
	Module   string
	SourceID string
}
