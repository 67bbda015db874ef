// cmd/harvestx/modules.go
package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"harvestx/internal/core/domain"
	"harvestx/internal/platform/logx"
	"harvestx/internal/platform/registry"
)

func newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List registered modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := registry.Global()
			names := reg.List()

			// instancias con opciones por defecto, solo para leer watched/produced
			modules, err := reg.Build(names, nil, logx.NewNop())
			if err != nil {
				return err
			}

			data := pterm.TableData{{"Name", "Description", "Watches", "Produces"}}
			for _, m := range modules {
				meta, _ := reg.GetMetadata(m.Name())
				data = append(data, []string{
					m.Name(),
					meta.DisplayName,
					joinTypes(m.WatchedEvents()),
					joinTypes(m.ProducedEvents()),
				})
			}

			s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func joinTypes(types []domain.EventType) string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return strings.Join(out, ", ")
}
