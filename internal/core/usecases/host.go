// internal/core/usecases/host.go
package usecases

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"harvestx/internal/core/domain"
	"harvestx/internal/core/ports"
	"harvestx/internal/platform/logx"
)

// Host enruta eventos entre módulos durante un escaneo.
// Los eventos se procesan por oleadas (breadth-first): cada evento se entrega a
// todos los módulos que lo observan, salvo al módulo que lo produjo.
type Host struct {
	modules    []ports.Module
	sinks      []ports.EventSink
	logger     logx.Logger
	maxWorkers int
	onError    ports.ErrorReporter
	scanID     string
}

// HostOptions configura el host.
type HostOptions struct {
	Modules []ports.Module
	Sinks   []ports.EventSink
	Logger  logx.Logger

	// MaxWorkers limita cuántos módulos procesan a la vez dentro de una oleada
	MaxWorkers int

	// OnError se invoca por cada error de módulo (opcional)
	OnError ports.ErrorReporter

	// ScanID fija el ID del resultado; si está vacío se genera uno
	ScanID string
}

// NewHost crea un nuevo host.
func NewHost(opts HostOptions) *Host {
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = 4
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}

	return &Host{
		modules:    opts.Modules,
		sinks:      opts.Sinks,
		logger:     opts.Logger.With("component", "host"),
		maxWorkers: opts.MaxWorkers,
		onError:    opts.OnError,
		scanID:     opts.ScanID,
	}
}

// delivery es el trabajo de un módulo en una oleada: sus eventos, en orden.
type delivery struct {
	module ports.Module
	events []*domain.Event
	out    []*domain.Event
}

// Run ejecuta un escaneo completo sobre target.
// Un error de módulo no detiene el escaneo; se registra en el resultado.
// Si ctx se cancela se retorna el resultado parcial junto con el error del contexto.
func (h *Host) Run(ctx context.Context, target domain.Target) (*domain.ScanResult, error) {
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("invalid target: %w", err)
	}
	if len(h.modules) == 0 {
		return nil, domain.ErrNoModulesEnabled
	}

	result := domain.NewScanResult(target)
	if h.scanID != "" {
		result.ID = h.scanID
	}
	defer result.Finalize()

	h.logger.Info("starting scan",
		"scan_id", result.ID,
		"target", target.Root,
		"modules", len(h.modules),
		"workers", h.maxWorkers,
	)

	root := domain.NewRootEvent(target.Root)
	seed := domain.NewEvent(domain.EventTypeDomainName, target.Root, domain.UIModuleName, root)

	// ROOT y la semilla se publican para que los source_id de las salidas resuelvan
	for _, ev := range []*domain.Event{root, seed} {
		result.AddSeed(ev)
		h.publish(ctx, ev, result)
	}

	queue := []*domain.Event{seed}
	waves := 0
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			h.logger.Warn("scan cancelled", "scan_id", result.ID, "pending", len(queue))
			return result, err
		}

		waves++
		produced := h.runWave(ctx, queue, result)

		queue = queue[:0:0]
		for _, ev := range produced {
			if err := ev.Validate(); err != nil {
				result.AddWarning(ev.Module, err.Error())
				continue
			}
			result.AddEvent(ev)
			h.publish(ctx, ev, result)
			queue = append(queue, ev)
		}
	}

	h.logger.Info("scan completed",
		"scan_id", result.ID,
		"events", result.TotalEvents(),
		"waves", waves,
		"errors", len(result.Errors),
	)
	return result, nil
}

// runWave entrega una oleada de eventos y retorna lo producido, en orden de
// módulo y de evento. Cada módulo procesa sus eventos en serie en una sola goroutine.
func (h *Host) runWave(ctx context.Context, wave []*domain.Event, result *domain.ScanResult) []*domain.Event {
	deliveries := h.route(wave)
	if len(deliveries) == 0 {
		return nil
	}

	var g errgroup.Group
	g.SetLimit(h.maxWorkers)

	for _, d := range deliveries {
		g.Go(func() error {
			for _, ev := range d.events {
				if ctx.Err() != nil {
					return nil
				}
				out, err := d.module.Handle(ctx, ev)
				if err != nil {
					h.reportError(d.module.Name(), ev, err, result)
					continue
				}
				d.out = append(d.out, out...)
			}
			return nil
		})
	}
	_ = g.Wait()

	var produced []*domain.Event
	for _, d := range deliveries {
		produced = append(produced, d.out...)
	}
	return produced
}

// route agrupa los eventos de la oleada por módulo destino.
func (h *Host) route(wave []*domain.Event) []*delivery {
	var out []*delivery
	for _, m := range h.modules {
		d := &delivery{module: m}
		for _, ev := range wave {
			if ev.Module == m.Name() || !ports.Watches(m, ev.Type) {
				continue
			}
			d.events = append(d.events, ev)
		}
		if len(d.events) > 0 {
			out = append(out, d)
		}
	}
	return out
}

func (h *Host) reportError(module string, ev *domain.Event, err error, result *domain.ScanResult) {
	h.logger.Warn("module failed", "module", module, "event", ev.Data, "error", err.Error())
	result.AddError(module, ev, err)
	if h.onError != nil {
		h.onError(module, ev, err)
	}
}

// publish notifica a los sinks. Solo se llama desde la goroutine de Run.
func (h *Host) publish(ctx context.Context, ev *domain.Event, result *domain.ScanResult) {
	for _, s := range h.sinks {
		if err := s.Notify(ctx, ev); err != nil {
			h.logger.Warn("sink failed", "event", ev.ID, "error", err.Error())
			result.AddWarning("sink", fmt.Sprintf("event %s: %v", ev.ID, err))
		}
	}
}
