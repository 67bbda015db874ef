// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/pterm/pterm"

	"harvestx/internal/core/domain"
)

// OutputTable imprime el resultado como tablas legibles en w.
func OutputTable(w io.Writer, result *domain.ScanResult) error {
	fmt.Fprintln(w, pterm.DefaultSection.Sprint("harvestx scan results"))
	fmt.Fprintf(w, "Target:   %s\n", result.Target.Root)
	fmt.Fprintf(w, "Scan ID:  %s\n", result.ID)
	fmt.Fprintf(w, "Duration: %s\n", result.Duration)
	fmt.Fprintf(w, "Events:   %d\n\n", result.TotalEvents())

	if len(result.Events) == 0 {
		fmt.Fprintln(w, "No artifacts discovered.")
	} else {
		events := pterm.TableData{{"Type", "Value", "Module"}}
		for _, e := range sortedEvents(result.Events) {
			events = append(events, []string{string(e.Type), e.Data, e.Module})
		}
		if err := renderTable(w, events); err != nil {
			return err
		}

		fmt.Fprintln(w, pterm.DefaultSection.WithLevel(2).Sprint("Artifacts by Type"))
		stats := pterm.TableData{{"Type", "Count"}}
		counts := result.Stats()
		for _, kind := range domain.ArtifactKinds() {
			if n := counts[kind]; n > 0 {
				stats = append(stats, []string{string(kind), fmt.Sprintf("%d", n)})
			}
		}
		if err := renderTable(w, stats); err != nil {
			return err
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings (%d):\n", len(result.Warnings))
		for i, warning := range result.Warnings {
			fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, warning.Source, warning.Message)
		}
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors (%d):\n", len(result.Errors))
		for i, err := range result.Errors {
			fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, err.Module, err.Message)
		}
	}

	fmt.Fprintln(w)
	return nil
}

func renderTable(w io.Writer, data pterm.TableData) error {
	s, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	fmt.Fprintln(w, s)
	return nil
}

// sortedEvents ordena por tipo de artefacto y luego por valor, sin modificar la entrada.
func sortedEvents(events []*domain.Event) []*domain.Event {
	rank := make(map[domain.EventType]int)
	for i, k := range domain.ArtifactKinds() {
		rank[k] = i
	}
	out := append([]*domain.Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, iok := rank[out[i].Type]
		rj, jok := rank[out[j].Type]
		if iok != jok {
			return iok
		}
		if ri != rj {
			return ri < rj
		}
		return out[i].Data < out[j].Data
	})
	return out
}
