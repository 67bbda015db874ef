package registry

import (
	"testing"

	"harvestx/internal/testutil"
)

func TestOptionHelpers(t *testing.T) {
	opts := map[string]string{
		"host":    " localhost ",
		"blank":   "  ",
		"port":    "5000",
		"badport": "x",
		"flag":    "yes",
		"list":    " bing, ,otx ,",
		"empty":   ",,",
	}

	testutil.AssertEqual(t, GetString(opts, "host", "d"), "localhost", "trimmed string")
	testutil.AssertEqual(t, GetString(opts, "blank", "d"), "d", "blank falls back")
	testutil.AssertEqual(t, GetString(nil, "host", "d"), "d", "nil map")
	testutil.AssertEqual(t, GetInt(opts, "port", 1), 5000, "int")
	testutil.AssertEqual(t, GetInt(opts, "badport", 1), 1, "bad int falls back")
	testutil.AssertTrue(t, GetBool(opts, "flag", false), "bool")
	testutil.AssertTrue(t, GetBool(opts, "missing", true), "missing bool falls back")
	testutil.AssertDiff(t, GetList(opts, "list", nil), []string{"bing", "otx"}, "list trimmed")
	testutil.AssertDiff(t, GetList(opts, "empty", []string{"d"}), []string{"d"}, "empty list falls back")
}
