// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"sync"
	"sync/atomic"

	"harvestx/internal/core/domain"
	"harvestx/internal/core/ports"
)

// mockModule es un módulo configurable para los tests del host
type mockModule struct {
	name     string
	watched  []domain.EventType
	produced []domain.EventType

	// handleFunc decide la salida; por defecto no produce nada
	handleFunc func(ctx context.Context, ev *domain.Event) ([]*domain.Event, error)

	mu       sync.Mutex
	received []*domain.Event

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newMockModule(name string, watched ...domain.EventType) *mockModule {
	return &mockModule{name: name, watched: watched}
}

func (m *mockModule) Name() string { return m.name }

func (m *mockModule) Metadata() ports.ModuleMetadata {
	return ports.ModuleMetadata{Name: m.name}
}

func (m *mockModule) WatchedEvents() []domain.EventType { return m.watched }

func (m *mockModule) ProducedEvents() []domain.EventType { return m.produced }

func (m *mockModule) Handle(ctx context.Context, ev *domain.Event) ([]*domain.Event, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		cur := m.maxInFlight.Load()
		if n <= cur || m.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}

	m.mu.Lock()
	m.received = append(m.received, ev)
	m.mu.Unlock()

	if m.handleFunc != nil {
		return m.handleFunc(ctx, ev)
	}
	return nil, nil
}

func (m *mockModule) events() []*domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Event(nil), m.received...)
}

// emits retorna un handleFunc que produce un evento kind por cada valor.
func emits(module string, kind domain.EventType, values ...string) func(context.Context, *domain.Event) ([]*domain.Event, error) {
	return func(_ context.Context, ev *domain.Event) ([]*domain.Event, error) {
		out := make([]*domain.Event, 0, len(values))
		for _, v := range values {
			out = append(out, domain.NewEvent(kind, v, module, ev))
		}
		return out, nil
	}
}

// recordingSink guarda los eventos notificados; failWith hace fallar cada Notify.
type recordingSink struct {
	mu       sync.Mutex
	events   []*domain.Event
	failWith error
	closed   bool
}

func (s *recordingSink) Notify(_ context.Context, ev *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
