package theharvester

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"harvestx/internal/core/domain"
	"harvestx/internal/core/ports"
	"harvestx/internal/platform/logx"
	"harvestx/internal/testutil"
)

// fakeClient registra las consultas y responde con result/err.
type fakeClient struct {
	mu      sync.Mutex
	result  domain.RawHarvestResult
	err     error
	queries []string
}

func (f *fakeClient) Query(_ context.Context, domainName string) (domain.RawHarvestResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, domainName)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

var _ ports.HarvestClient = (*fakeClient)(nil)

func newTestModule(t *testing.T, policy MarkPolicy, client ports.HarvestClient) *Module {
	t.Helper()
	opts := DefaultOptions()
	opts.MarkPolicy = policy
	return New(opts, client, logx.NewNop())
}

func uiDomainEvent(data string) *domain.Event {
	root := domain.NewRootEvent(data)
	return domain.NewEvent(domain.EventTypeDomainName, data, domain.UIModuleName, root)
}

func TestModule_Interface(t *testing.T) {
	var m ports.Module = newTestModule(t, MarkOnReceipt, &fakeClient{})

	testutil.AssertEqual(t, m.Name(), ModuleName, "name")
	testutil.AssertDiff(t, m.WatchedEvents(), []domain.EventType{domain.EventTypeDomainName}, "watched")
	testutil.AssertEqual(t, len(m.ProducedEvents()), 5, "produced kinds")
	testutil.AssertTrue(t, ports.Watches(m, domain.EventTypeDomainName), "watches DOMAIN_NAME")
	testutil.AssertFalse(t, ports.Watches(m, domain.EventTypeEmailAddr), "does not watch EMAILADDR")
	testutil.AssertEqual(t, m.Metadata().Tool.Name, "theHarvester", "tool details")
}

func TestModule_Handle_EndToEnd(t *testing.T) {
	client := &fakeClient{result: domain.RawHarvestResult{
		"emails": {"a@example.com"},
		"ips":    {"9.9.9.9"},
	}}
	m := newTestModule(t, MarkOnReceipt, client)
	in := uiDomainEvent("example.com")

	out, err := m.Handle(context.Background(), in)
	testutil.AssertNoError(t, err, "handle")
	testutil.AssertEqual(t, len(out), 2, "two events")

	got := map[domain.EventType]string{}
	for _, ev := range out {
		got[ev.Type] = ev.Data
		testutil.AssertTrue(t, ev.Source == in, "source is the inbound event")
		testutil.AssertEqual(t, ev.Module, ModuleName, "module")
		testutil.AssertNoError(t, ev.Validate(), "valid event")
	}
	testutil.AssertDiff(t, got, map[domain.EventType]string{
		domain.EventTypeEmailAddr: "a@example.com",
		domain.EventTypeIPAddress: "9.9.9.9",
	}, "emitted artifacts")
	testutil.AssertDiff(t, client.queries, []string{"example.com"}, "single query")
}

func TestModule_Handle_Order(t *testing.T) {
	client := &fakeClient{result: domain.RawHarvestResult{
		"hosts":          {"www.example.com", "api.example.com"},
		"ips":            {"9.9.9.9"},
		"emails":         {"b@example.com", "a@example.com"},
		"twitter_people": {"Jane Doe"},
		"trello_urls":    {"https://trello.com/b/x"},
	}}
	m := newTestModule(t, MarkOnReceipt, client)

	out, err := m.Handle(context.Background(), uiDomainEvent("example.com"))
	testutil.AssertNoError(t, err, "handle")

	var got []string
	for _, ev := range out {
		got = append(got, fmt.Sprintf("%s:%s", ev.Type, ev.Data))
	}
	testutil.AssertDiff(t, got, []string{
		"HUMAN_NAME:Jane Doe",
		"EMAILADDR:a@example.com",
		"EMAILADDR:b@example.com",
		"DOMAIN_NAME:api.example.com",
		"DOMAIN_NAME:www.example.com",
		"URL_STATIC:https://trello.com/b/x",
		"IP_ADDRESS:9.9.9.9",
	}, "kind order then sorted values")
}

func TestModule_Handle_SkipsNonUISource(t *testing.T) {
	client := &fakeClient{result: domain.RawHarvestResult{"emails": {"a@example.com"}}}
	m := newTestModule(t, MarkOnReceipt, client)

	root := domain.NewRootEvent("example.com")
	discovered := domain.NewEvent(domain.EventTypeDomainName, "www.example.com", "sfp_dnsresolve", root)

	out, err := m.Handle(context.Background(), discovered)
	testutil.AssertNoError(t, err, "handle")
	testutil.AssertEqual(t, len(out), 0, "no events")
	testutil.AssertEqual(t, client.calls(), 0, "no query")

	// el dato queda marcado aunque no se consulte
	out, err = m.Handle(context.Background(), uiDomainEvent("www.example.com"))
	testutil.AssertNoError(t, err, "handle UI event for same data")
	testutil.AssertEqual(t, len(out), 0, "already seen")
	testutil.AssertEqual(t, client.calls(), 0, "still no query")
}

func TestModule_Handle_SkipsOwnDiscoveries(t *testing.T) {
	client := &fakeClient{result: domain.RawHarvestResult{"hosts": {"mail.example.com"}}}
	m := newTestModule(t, MarkOnReceipt, client)

	out, err := m.Handle(context.Background(), uiDomainEvent("example.com"))
	testutil.AssertNoError(t, err, "handle")
	testutil.AssertEqual(t, len(out), 1, "one discovered host")

	again, err := m.Handle(context.Background(), out[0])
	testutil.AssertNoError(t, err, "handle own event")
	testutil.AssertEqual(t, len(again), 0, "own discoveries are not harvested")
	testutil.AssertEqual(t, client.calls(), 1, "only the UI domain was queried")
}

func TestModule_Handle_Duplicate(t *testing.T) {
	client := &fakeClient{result: domain.RawHarvestResult{"emails": {"a@example.com"}}}
	m := newTestModule(t, MarkOnReceipt, client)

	_, err := m.Handle(context.Background(), uiDomainEvent("example.com"))
	testutil.AssertNoError(t, err, "first")

	out, err := m.Handle(context.Background(), uiDomainEvent("example.com"))
	testutil.AssertNoError(t, err, "second")
	testutil.AssertEqual(t, len(out), 0, "duplicate emits nothing")
	testutil.AssertEqual(t, client.calls(), 1, "queried once")
}

func TestModule_Handle_Failure(t *testing.T) {
	serviceErr := &domain.HarvestServiceError{Domain: "example.com", StatusCode: http.StatusInternalServerError, Err: errors.New("boom")}

	tests := []struct {
		name       string
		policy     MarkPolicy
		wantCalls  int
		wantSecond int
	}{
		{name: "mark on receipt never retries", policy: MarkOnReceipt, wantCalls: 1, wantSecond: 0},
		{name: "mark on success retries", policy: MarkOnSuccess, wantCalls: 2, wantSecond: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{err: serviceErr}
			m := newTestModule(t, tt.policy, client)

			out, err := m.Handle(context.Background(), uiDomainEvent("example.com"))
			testutil.AssertError(t, err, "failure surfaced")
			testutil.AssertTrue(t, errors.Is(err, domain.ErrHarvestService), "harvest service error")
			testutil.AssertEqual(t, len(out), 0, "no partial events")

			// el servicio se recupera
			client.mu.Lock()
			client.err = nil
			client.result = domain.RawHarvestResult{"ips": {"9.9.9.9"}}
			client.mu.Unlock()

			out, err = m.Handle(context.Background(), uiDomainEvent("example.com"))
			testutil.AssertNoError(t, err, "second attempt")
			testutil.AssertEqual(t, len(out), tt.wantSecond, "events on second attempt")
			testutil.AssertEqual(t, client.calls(), tt.wantCalls, "queries")
		})
	}
}

func TestModule_Handle_EmptyResult(t *testing.T) {
	client := &fakeClient{result: domain.RawHarvestResult{"asns": {"AS1"}, "emails": {}}}
	m := newTestModule(t, MarkOnReceipt, client)

	out, err := m.Handle(context.Background(), uiDomainEvent("example.com"))
	testutil.AssertNoError(t, err, "handle")
	testutil.AssertEqual(t, len(out), 0, "nothing classifiable")
}

func TestModule_InstancesAreIndependent(t *testing.T) {
	client := &fakeClient{result: domain.RawHarvestResult{"ips": {"9.9.9.9"}}}
	a := newTestModule(t, MarkOnReceipt, client)
	b := newTestModule(t, MarkOnReceipt, client)

	_, err := a.Handle(context.Background(), uiDomainEvent("example.com"))
	testutil.AssertNoError(t, err, "a")
	out, err := b.Handle(context.Background(), uiDomainEvent("example.com"))
	testutil.AssertNoError(t, err, "b")

	testutil.AssertEqual(t, len(out), 1, "second instance harvests again")
	testutil.AssertEqual(t, client.calls(), 2, "one query per instance")
}
