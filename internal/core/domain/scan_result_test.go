// internal/core/domain/scan_result_test.go
package domain

import (
	"errors"
	"strings"
	"testing"

	"harvestx/internal/testutil"
)

func TestScanResult(t *testing.T) {
	target := NewTarget("example.com")
	result := NewScanResult(*target)
	root := NewRootEvent("example.com")

	result.AddEvent(NewEvent(EventTypeEmailAddr, "a@example.com", "m", root))
	result.AddEvent(NewEvent(EventTypeEmailAddr, "b@example.com", "m", root))
	result.AddEvent(NewEvent(EventTypeIPAddress, "9.9.9.9", "m", root))
	result.AddEvent(nil)
	result.AddSeed(root)
	result.AddSeed(nil)
	result.AddError("m", root, errors.New("boom"))
	result.AddError("m", root, nil)
	result.AddWarning("sink", "disk full")
	result.Finalize()

	testutil.AssertTrue(t, result.ID != "", "scan id assigned")
	testutil.AssertEqual(t, result.TotalEvents(), 3, "nil events ignored")
	testutil.AssertEqual(t, len(result.Seeds), 1, "root kept as seed")
	testutil.AssertTrue(t, result.HasErrors(), "has errors")
	testutil.AssertEqual(t, len(result.Errors), 1, "nil errors ignored")
	testutil.AssertEqual(t, result.Errors[0].EventID, root.ID, "error linked to event")
	testutil.AssertEqual(t, len(result.Warnings), 1, "warning recorded")
	testutil.AssertDiff(t, result.Stats(), map[EventType]int{EventTypeEmailAddr: 2, EventTypeIPAddress: 1}, "stats")
	testutil.AssertFalse(t, result.EndTime.IsZero(), "finalized")
	testutil.AssertTrue(t, strings.Contains(result.Summary(), "events=3"), "summary")
}
