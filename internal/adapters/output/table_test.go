package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pterm/pterm"

	"harvestx/internal/core/domain"
	"harvestx/internal/testutil"
)

func init() {
	pterm.DisableStyling()
}

func TestOutputTable(t *testing.T) {
	var buf bytes.Buffer
	result := sampleResult()
	result.AddError("theharvester", result.Events[0], errors.New("service down"))
	result.AddWarning("sink", "disk full")

	testutil.AssertNoError(t, OutputTable(&buf, result), "render")
	out := buf.String()

	for _, want := range []string{
		"example.com",
		"admin@example.com",
		"93.184.216.34",
		"Jane Doe",
		"Artifacts by Type",
		"Warnings (1)",
		"[sink] disk full",
		"Errors (1)",
		"[theharvester] service down",
	} {
		testutil.AssertContains(t, out, want, "table output")
	}

	// HUMAN_NAME se lista antes que IP_ADDRESS
	testutil.AssertTrue(t, strings.Index(out, "Jane Doe") < strings.Index(out, "93.184.216.34"), "kind order")
}

func TestOutputTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	result := domain.NewScanResult(*domain.NewTarget("example.com"))

	testutil.AssertNoError(t, OutputTable(&buf, result), "render")
	testutil.AssertContains(t, buf.String(), "No artifacts discovered.", "empty message")
}

func TestSortedEvents(t *testing.T) {
	in := sampleResult().Events
	got := sortedEvents(in)

	var order []string
	for _, e := range got {
		order = append(order, e.Data)
	}
	testutil.AssertDiff(t, order, []string{"Jane Doe", "admin@example.com", "info@example.com", "93.184.216.34"}, "sorted")
	testutil.AssertEqual(t, in[0].Data, "93.184.216.34", "input untouched")
}
