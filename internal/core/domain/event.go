// internal/core/domain/event.go
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UIModuleName is the module name carried by events submitted directly by
// the controlling interface rather than discovered by another module.
const UIModuleName = "SpiderFoot UI"

// Event es la unidad de trabajo del pipeline: un dato tipado más su procedencia.
// Un Event no se modifica después de creado.
type Event struct {
	// ID identificador único
	ID string

	// Type tipo de dato
	Type EventType

	// Data valor (dominio, email, IP, ...)
	Data string

	// Module módulo que produjo el evento ("" para ROOT, UIModuleName para semillas)
	Module string

	// Source evento que originó este (nil para ROOT)
	Source *Event

	// Generated momento de creación
	Generated time.Time
}

// NewEvent crea un evento enlazado a su evento origen.
func NewEvent(eventType EventType, data, module string, source *Event) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Data:      data,
		Module:    module,
		Source:    source,
		Generated: time.Now().UTC(),
	}
}

// NewRootEvent crea el evento raíz de un escaneo.
func NewRootEvent(target string) *Event {
	return NewEvent(EventTypeRoot, target, "", nil)
}

// SourceID retorna el ID del evento origen o "".
func (e *Event) SourceID() string {
	if e == nil || e.Source == nil {
		return ""
	}
	return e.Source.ID
}

// Depth cuenta los saltos hasta el evento raíz.
func (e *Event) Depth() int {
	d := 0
	for cur := e.Source; cur != nil; cur = cur.Source {
		d++
	}
	return d
}

// Validate verifica los campos obligatorios.
func (e *Event) Validate() error {
	if e == nil {
		return fmt.Errorf("%w: nil", ErrInvalidEvent)
	}
	if !e.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	if e.Data == "" {
		return fmt.Errorf("%w: empty data", ErrInvalidEvent)
	}
	if e.Type != EventTypeRoot && e.Source == nil {
		return fmt.Errorf("%w: %s event without source", ErrInvalidEvent, e.Type)
	}
	return nil
}

// String retorna una representación legible del evento.
func (e *Event) String() string {
	return fmt.Sprintf("Event{type=%s, data=%s, module=%s}", e.Type, e.Data, e.Module)
}

type eventJSON struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Data      string    `json:"data"`
	Module    string    `json:"module"`
	SourceID  string    `json:"source_id,omitempty"`
	Generated time.Time `json:"generated"`
}

// MarshalJSON aplana el evento origen a su ID para evitar serializar la cadena completa.
func (e *Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventJSON{
		ID:        e.ID,
		Type:      e.Type,
		Data:      e.Data,
		Module:    e.Module,
		SourceID:  e.SourceID(),
		Generated: e.Generated,
	})
}
