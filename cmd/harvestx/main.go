// cmd/harvestx/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"harvestx/internal/platform/config"

	// Registro de módulos (auto-registro via init)
	_ "harvestx/internal/modules/theharvester"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "harvestx",
		Short: "harvestx - theHarvester-driven OSINT recon pipeline",
		Long: `harvestx runs a scan over a target domain: the domain is handed to every
enabled module, and each artifact a module discovers (names, emails, hosts,
URLs, IPs) is routed to the modules that watch its type.

The bundled theharvester module queries a theHarvester REST service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newScanCmd(), newModulesCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			config.PrintVersion(cmd.OutOrStdout(), version, commit, date)
		},
	}
}
