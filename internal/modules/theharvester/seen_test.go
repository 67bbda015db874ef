package theharvester

import (
	"testing"

	"harvestx/internal/testutil"
)

func TestSeenSet(t *testing.T) {
	s := NewSeenSet()

	testutil.AssertTrue(t, s.ShouldProcess("example.com"), "first check")
	testutil.AssertTrue(t, s.ShouldProcess("example.com"), "checking does not mark")
	testutil.AssertEqual(t, s.Len(), 0, "nothing marked")

	s.MarkProcessed("example.com")
	testutil.AssertFalse(t, s.ShouldProcess("example.com"), "marked key is skipped")
	testutil.AssertFalse(t, s.ShouldProcess("example.com"), "still skipped")
	testutil.AssertTrue(t, s.ShouldProcess("other.com"), "other keys unaffected")

	s.MarkProcessed("example.com")
	testutil.AssertEqual(t, s.Len(), 1, "marking twice is idempotent")

	s.Forget("example.com")
	testutil.AssertTrue(t, s.ShouldProcess("example.com"), "forgotten key is processed again")
}

func TestSeenSet_PerInstance(t *testing.T) {
	a, b := NewSeenSet(), NewSeenSet()
	a.MarkProcessed("example.com")

	testutil.AssertTrue(t, b.ShouldProcess("example.com"), "sets are not shared")
}
