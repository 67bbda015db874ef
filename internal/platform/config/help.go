// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"runtime"
)

// ScanExamples se muestra en la ayuda del comando scan.
const ScanExamples = `  Basic scan against a local theHarvester service:
    harvestx scan -t example.com

  Remote service with custom sources:
    harvestx scan -t example.com --th-host harvester.internal --th-port 8080 --th-sources "bing,crtsh,otx"

  Retry domains after a failed harvest within the same scan:
    harvestx scan -t example.com -O theharvester.th_mark_policy=success

  Quiet mode, events streamed to NDJSON and stored in SQLite:
    harvestx scan -t example.com --no-table --stream --db harvestx.db

  Using a configuration file:
    harvestx scan -c harvestx.yaml`

// EnvHelp documenta las variables de entorno reconocidas.
const EnvHelp = `ENVIRONMENT VARIABLES:
  HARVESTX_TARGET                   Target domain
  HARVESTX_MODULES=theharvester     Enabled modules, CSV
  HARVESTX_WORKERS=8                Max modules running at once
  HARVESTX_TIMEOUT=60               Global scan timeout in seconds
  HARVESTX_LOG_LEVEL=debug          Log level
  HARVESTX_OUTPUT_DIR=/path         Output directory
  HARVESTX_JSON=false               Skip the JSON report
  HARVESTX_STREAM=true              Stream events as NDJSON
  HARVESTX_NO_TABLE=true            Disable table output
  HARVESTX_DB=/path/events.db       SQLite event store

  Module options (applied to every enabled module):
  HARVESTX_OPT_TH_HOST=harvester.internal
  HARVESTX_OPT_TH_PORT=5000

  Precedence: defaults < config file < environment < flags.`

// PrintVersion escribe la información de versión en w.
func PrintVersion(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "harvestx %s\n", version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", runtime.Version())
}
