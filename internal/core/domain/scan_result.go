// internal/core/domain/scan_result.go
package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ScanResult representa el resultado completo de un escaneo.
// Es seguro para uso concurrente.
type ScanResult struct {
	mu sync.Mutex

	// ID identificador único del escaneo
	ID string `json:"scan_id"`

	// Target objetivo del escaneo
	Target Target `json:"target"`

	// Events eventos producidos por los módulos (sin ROOT ni semillas)
	Events []*Event `json:"events"`

	// Seeds evento ROOT y semillas del escaneo; los source_id de Events apuntan aquí
	Seeds []*Event `json:"seeds"`

	// Warnings advertencias no críticas durante el escaneo
	Warnings []Warning `json:"warnings"`

	// Errors errores reportados por los módulos
	Errors []Error `json:"errors"`

	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// Warning representa una advertencia no crítica durante el escaneo.
type Warning struct {
	Source    string    `json:"source"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Error representa un error reportado por un módulo.
type Error struct {
	// Module módulo que falló
	Module string `json:"module"`

	// EventID evento que se estaba procesando
	EventID string `json:"event_id,omitempty"`

	// Message descripción del error
	Message string `json:"message"`

	Timestamp time.Time `json:"timestamp"`
}

// NewScanResult crea un nuevo resultado de escaneo.
func NewScanResult(target Target) *ScanResult {
	return &ScanResult{
		ID:        uuid.NewString(),
		Target:    target,
		Events:    []*Event{},
		Seeds:     []*Event{},
		Warnings:  []Warning{},
		Errors:    []Error{},
		StartTime: time.Now(),
	}
}

// AddEvent añade un evento al resultado.
func (r *ScanResult) AddEvent(e *Event) {
	if e == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, e)
}

// AddSeed registra un evento ROOT o semilla. No cuenta en Stats ni TotalEvents.
func (r *ScanResult) AddSeed(e *Event) {
	if e == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Seeds = append(r.Seeds, e)
}

// AddWarning añade una advertencia al resultado.
func (r *ScanResult) AddWarning(source, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, Warning{
		Source:    source,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// AddError añade un error al resultado.
func (r *ScanResult) AddError(module string, event *Event, err error) {
	if err == nil {
		return
	}
	eventID := ""
	if event != nil {
		eventID = event.ID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, Error{
		Module:    module,
		EventID:   eventID,
		Message:   err.Error(),
		Timestamp: time.Now(),
	})
}

// Finalize marca el escaneo como completado.
func (r *ScanResult) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}

// Stats retorna el número de eventos por tipo.
func (r *ScanResult) Stats() map[EventType]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := make(map[EventType]int)
	for _, e := range r.Events {
		stats[e.Type]++
	}
	return stats
}

// TotalEvents retorna el número total de eventos producidos.
func (r *ScanResult) TotalEvents() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Events)
}

// HasErrors indica si hubo errores durante el escaneo.
func (r *ScanResult) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Errors) > 0
}

// Summary retorna un resumen legible del resultado.
func (r *ScanResult) Summary() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf(
		"ScanResult{target=%s, events=%d, warnings=%d, errors=%d, duration=%s}",
		r.Target.Root,
		len(r.Events),
		len(r.Warnings),
		len(r.Errors),
		r.Duration,
	)
}
