// internal/platform/registry/module_registry.go
package registry

import (
	"fmt"
	"sort"
	"sync"

	"harvestx/internal/core/domain"
	"harvestx/internal/core/ports"
	"harvestx/internal/platform/logx"
)

// ModuleRegistry gestiona el registro y construcción de módulos.
// Implementa el patrón Registry + Factory para que el host no conozca
// los detalles internos de cada módulo.
type ModuleRegistry struct {
	mu        sync.RWMutex
	factories map[string]ModuleFactory
	metadata  map[string]ports.ModuleMetadata
	logger    logx.Logger
}

// ModuleFactory crea una instancia nueva de un módulo a partir de sus opciones.
// Cada escaneo debe construir instancias propias (el estado no se comparte).
type ModuleFactory func(opts map[string]string, logger logx.Logger) (ports.Module, error)

var (
	globalRegistry *ModuleRegistry
	once           sync.Once
)

// Global retorna la instancia global del registry.
func Global() *ModuleRegistry {
	once.Do(func() {
		globalRegistry = NewModuleRegistry(logx.NewSilent())
	})
	return globalRegistry
}

// NewModuleRegistry crea un nuevo registry de módulos.
func NewModuleRegistry(logger logx.Logger) *ModuleRegistry {
	return &ModuleRegistry{
		factories: make(map[string]ModuleFactory),
		metadata:  make(map[string]ports.ModuleMetadata),
		logger:    logger.With("component", "module-registry"),
	}
}

// Register registra una factory con su metadata.
// Típicamente llamado desde init() de cada paquete de módulo.
func (r *ModuleRegistry) Register(name string, factory ModuleFactory, meta ports.ModuleMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return fmt.Errorf("module name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil for module %s", name)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("module %s is already registered", name)
	}

	r.factories[name] = factory
	r.metadata[name] = meta
	r.logger.Debug("module registered", "name", name)
	return nil
}

// Build construye una instancia de cada módulo pedido, en el orden dado.
// opts contiene las opciones por nombre de módulo (puede faltar una entrada).
func (r *ModuleRegistry) Build(names []string, opts map[string]map[string]string, logger logx.Logger) ([]ports.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if len(names) == 0 {
		return nil, domain.ErrNoModulesEnabled
	}

	modules := make([]ports.Module, 0, len(names))
	for _, name := range names {
		factory, exists := r.factories[name]
		if !exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrModuleNotFound, name)
		}

		m, err := factory(opts[name], logger)
		if err != nil {
			return nil, fmt.Errorf("failed to build module %s: %w", name, err)
		}

		modules = append(modules, m)
		r.logger.Debug("module built", "name", name,
			"watched", m.WatchedEvents(),
			"produced", m.ProducedEvents(),
		)
	}

	return modules, nil
}

// List retorna los nombres de todos los módulos registrados, ordenados.
func (r *ModuleRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetMetadata retorna el metadata de un módulo.
func (r *ModuleRegistry) GetMetadata(name string) (ports.ModuleMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, exists := r.metadata[name]
	return meta, exists
}

// IsRegistered verifica si un módulo está registrado.
func (r *ModuleRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}
