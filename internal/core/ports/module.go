// internal/core/ports/module.go
package ports

import (
	"context"

	"harvestx/internal/core/domain"
)

// Module es el port primario para los módulos del pipeline.
// El host entrega a cada instancia los eventos cuyo tipo aparece en WatchedEvents,
// uno a la vez, y reenvía lo que Handle retorna al resto del pipeline.
type Module interface {
	// Name retorna el nombre único del módulo; se usa como Event.Module en sus salidas
	Name() string

	// Metadata retorna información descriptiva del módulo
	Metadata() ModuleMetadata

	// WatchedEvents tipos de evento que el módulo consume
	WatchedEvents() []domain.EventType

	// ProducedEvents tipos de evento que el módulo puede emitir
	ProducedEvents() []domain.EventType

	// Handle procesa un evento y retorna los eventos producidos.
	// Un error nunca viene acompañado de eventos parciales.
	Handle(ctx context.Context, event *domain.Event) ([]*domain.Event, error)
}

// ModuleMetadata contiene metadatos sobre un módulo.
type ModuleMetadata struct {
	Name        string
	DisplayName string
	Summary     string
	Flags       []string
	UseCases    []string
	Categories  []string
	Tool        *ToolDetails

	// Options opciones reconocidas y su descripción
	Options map[string]string
}

// ToolDetails describe la herramienta externa que envuelve un módulo.
type ToolDetails struct {
	Name        string
	Description string
	Website     string
	Repository  string
}

// HarvestClient consulta el servicio de harvesting para un dominio.
type HarvestClient interface {
	Query(ctx context.Context, domainName string) (domain.RawHarvestResult, error)
}

// Watches reports whether m is interested in events of type t.
func Watches(m Module, t domain.EventType) bool {
	for _, w := range m.WatchedEvents() {
		if w == t || w == domain.EventTypeAny {
			return true
		}
	}
	return false
}
