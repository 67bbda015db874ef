// Package sqlite persiste los eventos de cada escaneo en SQLite (driver pure Go).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"harvestx/internal/core/domain"
	"harvestx/internal/core/ports"
)

var _ ports.EventRepository = (*Store)(nil)

// timeLayout tiene ancho fijo para que generated_at ordene lexicográficamente.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store guarda eventos por escaneo. Seguro para uso concurrente.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open abre (o crea) la base de datos en path y aplica el esquema.
// ":memory:" usa una base en memoria compartida por el pool.
func Open(path string) (*Store, error) {
	connStr := path
	if path == ":memory:" {
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		scan_id TEXT NOT NULL,
		type TEXT NOT NULL,
		data TEXT NOT NULL,
		module TEXT NOT NULL,
		source_id TEXT,
		generated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_scan ON events(scan_id);
	CREATE INDEX IF NOT EXISTS idx_events_type ON events(scan_id, type);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close cierra la conexión.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveEvent guarda un evento. Un ID repetido se ignora.
func (s *Store) SaveEvent(ctx context.Context, scanID string, event *domain.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO events (id, scan_id, type, data, module, source_id, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID, scanID, string(event.Type), event.Data, event.Module, event.SourceID(),
		event.Generated.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert event %s: %w", event.ID, err)
	}
	return nil
}

// ListEvents retorna los eventos de un escaneo en orden de generación.
func (s *Store) ListEvents(ctx context.Context, scanID string) ([]ports.StoredEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, data, module, COALESCE(source_id, '')
		FROM events WHERE scan_id = ?
		ORDER BY generated_at, rowid`, scanID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []ports.StoredEvent
	for rows.Next() {
		e := ports.StoredEvent{ScanID: scanID}
		var typ string
		if err := rows.Scan(&e.ID, &typ, &e.Data, &e.Module, &e.SourceID); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		e.Type = domain.EventType(typ)
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountByType cuenta los eventos de un escaneo por tipo.
func (s *Store) CountByType(ctx context.Context, scanID string) (map[domain.EventType]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT type, COUNT(*) FROM events WHERE scan_id = ? GROUP BY type`, scanID)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.EventType]int)
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out[domain.EventType(typ)] = n
	}
	return out, rows.Err()
}

// Sink adapta el store a un EventSink para un escaneo concreto.
// Cerrar el sink no cierra el store.
func (s *Store) Sink(scanID string) ports.EventSink {
	return &storeSink{store: s, scanID: scanID}
}

type storeSink struct {
	store  *Store
	scanID string
}

func (k *storeSink) Notify(ctx context.Context, event *domain.Event) error {
	return k.store.SaveEvent(ctx, k.scanID, event)
}

func (k *storeSink) Close() error { return nil }
