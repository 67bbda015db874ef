// internal/adapters/output/streaming.go
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"harvestx/internal/core/domain"
	"harvestx/internal/core/ports"
)

var (
	_ ports.EventSink = (*NDJSONSink)(nil)
	_ ports.EventSink = (*CollectorSink)(nil)
)

// NDJSONSink escribe cada evento como una línea JSON en cuanto se produce,
// de forma que un escaneo interrumpido conserva lo ya descubierto.
type NDJSONSink struct {
	mu     sync.Mutex
	enc    *json.Encoder
	closer io.Closer
	count  int
}

// NewNDJSONSink escribe en w. Close no cierra w.
func NewNDJSONSink(w io.Writer) *NDJSONSink {
	return &NDJSONSink{enc: json.NewEncoder(w)}
}

// NewNDJSONFileSink crea dir/{target_sanitizado}/harvestx_{target}_{ts}.ndjson.
// Close cierra el archivo. Retorna también la ruta creada.
func NewNDJSONFileSink(dir, target string) (*NDJSONSink, string, error) {
	if dir == "" {
		dir = "."
	}
	fullDir := filepath.Join(dir, sanitizeDomainName(target))
	if err := os.MkdirAll(fullDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := fmt.Sprintf("harvestx_%s_%s.ndjson", target, time.Now().Format("20060102_150405"))
	path := filepath.Join(fullDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create stream file: %w", err)
	}
	return &NDJSONSink{enc: json.NewEncoder(f), closer: f}, path, nil
}

// Notify escribe una línea por evento.
func (s *NDJSONSink) Notify(_ context.Context, event *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	s.count++
	return nil
}

// Count retorna cuántos eventos se han escrito.
func (s *NDJSONSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Close cierra el archivo subyacente si el sink lo abrió.
func (s *NDJSONSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// CollectorSink guarda los eventos en memoria.
type CollectorSink struct {
	mu     sync.Mutex
	events []*domain.Event
}

// NewCollectorSink crea un collector vacío.
func NewCollectorSink() *CollectorSink {
	return &CollectorSink{}
}

func (c *CollectorSink) Notify(_ context.Context, event *domain.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

// Events retorna una copia de los eventos recibidos, en orden.
func (c *CollectorSink) Events() []*domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*domain.Event(nil), c.events...)
}

// ByType filtra los eventos recibidos por tipo.
func (c *CollectorSink) ByType(t domain.EventType) []*domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*domain.Event
	for _, e := range c.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (c *CollectorSink) Close() error { return nil }
