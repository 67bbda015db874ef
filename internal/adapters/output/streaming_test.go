package output

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"harvestx/internal/core/domain"
	"harvestx/internal/testutil"
)

func TestNDJSONSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewNDJSONSink(&buf)
	result := sampleResult()

	for _, ev := range result.Events {
		testutil.AssertNoError(t, sink.Notify(context.Background(), ev), "notify")
	}
	testutil.AssertNoError(t, sink.Close(), "close")
	testutil.AssertEqual(t, sink.Count(), 4, "count")

	scanner := bufio.NewScanner(&buf)
	var lines []map[string]any
	for scanner.Scan() {
		var m map[string]any
		testutil.AssertNoError(t, json.Unmarshal(scanner.Bytes(), &m), "line is JSON")
		lines = append(lines, m)
	}
	testutil.AssertEqual(t, len(lines), 4, "one line per event")
	testutil.AssertEqual(t, lines[0]["type"], "IP_ADDRESS", "first type")
	testutil.AssertEqual(t, lines[0]["module"], "theharvester", "module")
	testutil.AssertNotNil(t, lines[0]["source_id"], "source id")
}

func TestNDJSONFileSink(t *testing.T) {
	dir := t.TempDir()
	sink, path, err := NewNDJSONFileSink(dir, "example.com")
	testutil.AssertNoError(t, err, "create")

	root := domain.NewRootEvent("example.com")
	ev := domain.NewEvent(domain.EventTypeURLStatic, "https://example.com/login", "theharvester", root)
	testutil.AssertNoError(t, sink.Notify(context.Background(), ev), "notify")
	testutil.AssertNoError(t, sink.Close(), "close")
	testutil.AssertNoError(t, sink.Close(), "second close is a no-op")

	testutil.AssertEqual(t, filepath.Dir(path), filepath.Join(dir, "example_com"), "dir")
	testutil.AssertTrue(t, strings.HasSuffix(path, ".ndjson"), "extension")

	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err, "read")
	testutil.AssertContains(t, string(data), "https://example.com/login", "event written")
}

func TestCollectorSink(t *testing.T) {
	c := NewCollectorSink()
	for _, ev := range sampleResult().Events {
		testutil.AssertNoError(t, c.Notify(context.Background(), ev), "notify")
	}

	testutil.AssertEqual(t, len(c.Events()), 4, "all events")
	testutil.AssertEqual(t, len(c.ByType(domain.EventTypeEmailAddr)), 2, "emails")
	testutil.AssertEqual(t, len(c.ByType(domain.EventTypeURLStatic)), 0, "no urls")
	testutil.AssertNoError(t, c.Close(), "close")
}
