// Package theharvester implements the theHarvester adapter module: it watches
// DOMAIN_NAME events submitted from the UI, queries a theHarvester service for
// each new domain and turns the response into typed artifact events.
package theharvester

import (
	"context"

	"harvestx/internal/core/domain"
	"harvestx/internal/core/ports"
	"harvestx/internal/platform/logx"
)

// ModuleName identifies the module in the registry and in produced events.
const ModuleName = "theharvester"

// Module is the event dispatcher. One instance serves one scan.
type Module struct {
	opts   Options
	client ports.HarvestClient
	seen   *SeenSet
	logger logx.Logger
}

// New creates a module instance with its own, empty seen set.
func New(opts Options, client ports.HarvestClient, logger logx.Logger) *Module {
	return &Module{
		opts:   opts,
		client: client,
		seen:   NewSeenSet(),
		logger: logger.With("module", ModuleName),
	}
}

// Name returns the registry name, "theharvester".
func (m *Module) Name() string { return ModuleName }

// Metadata returns the descriptive metadata shown by the modules command.
func (m *Module) Metadata() ports.ModuleMetadata { return metadata() }

// WatchedEvents returns the event types the module receives: DOMAIN_NAME only.
func (m *Module) WatchedEvents() []domain.EventType {
	return []domain.EventType{domain.EventTypeDomainName}
}

// ProducedEvents returns the five artifact kinds.
func (m *Module) ProducedEvents() []domain.EventType {
	return domain.ArtifactKinds()
}

// Options returns the configuration the module was built with.
func (m *Module) Options() Options { return m.opts }

// Handle processes one inbound event.
//
// Inputs already seen are skipped. Only DOMAIN_NAME events coming straight
// from the UI are harvested; domains discovered by other modules (including
// this one) are remembered but never queried. On a harvest failure the error
// is returned and nothing is emitted.
func (m *Module) Handle(ctx context.Context, event *domain.Event) ([]*domain.Event, error) {
	if !m.seen.ShouldProcess(event.Data) {
		m.logger.Debug("skipping, already checked", "data", event.Data)
		return nil, nil
	}
	m.seen.MarkProcessed(event.Data)

	m.logger.Debug("received event", "type", event.Type, "from", event.Module)

	if event.Type != domain.EventTypeDomainName || event.Module != domain.UIModuleName {
		return nil, nil
	}

	raw, err := m.client.Query(ctx, event.Data)
	if err != nil {
		if m.opts.MarkPolicy == MarkOnSuccess {
			m.seen.Forget(event.Data)
		}
		m.logger.Err(err, "domain", event.Data)
		return nil, err
	}

	if dropped := unrecognized(raw); len(dropped) > 0 {
		m.logger.Debug("ignoring unclassified categories", "categories", dropped)
	}

	buckets := Classify(raw)
	out := make([]*domain.Event, 0, buckets.Total())
	for _, kind := range domain.ArtifactKinds() {
		for _, value := range buckets[kind].Sorted() {
			out = append(out, domain.NewEvent(kind, value, m.Name(), event))
		}
	}

	m.logger.Info("harvest completed", "domain", event.Data, "artifacts", len(out))
	return out, nil
}
