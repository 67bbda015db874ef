// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"harvestx/internal/core/domain"
)

// sanitizeDomainName convierte un nombre de dominio en un nombre de carpeta válido.
// Ejemplo: "example.com" -> "example_com"
func sanitizeDomainName(domain string) string {
	sanitized := strings.ReplaceAll(domain, ".", "_")
	sanitized = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, sanitized)
	return sanitized
}

// Report es el documento JSON de un escaneo terminado.
type Report struct {
	ScanID      string                   `json:"scan_id"`
	Target      string                   `json:"target"`
	StartTime   time.Time                `json:"start_time"`
	EndTime     time.Time                `json:"end_time"`
	DurationMS  int64                    `json:"duration_ms"`
	TotalEvents int                      `json:"total_events"`
	Stats       map[domain.EventType]int `json:"stats"`
	Events      []*domain.Event          `json:"events"`
	Seeds       []*domain.Event          `json:"seeds"`
	Warnings    []domain.Warning         `json:"warnings"`
	Errors      []domain.Error           `json:"errors"`
}

// BuildReport construye el documento de salida desde un ScanResult.
func BuildReport(result *domain.ScanResult) Report {
	return Report{
		ScanID:      result.ID,
		Target:      result.Target.Root,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		DurationMS:  result.Duration.Milliseconds(),
		TotalEvents: result.TotalEvents(),
		Stats:       result.Stats(),
		Events:      result.Events,
		Seeds:       result.Seeds,
		Warnings:    result.Warnings,
		Errors:      result.Errors,
	}
}

// OutputJSON exporta el resultado en formato JSON bajo dir/{target_sanitizado}/.
// Retorna la ruta del archivo escrito.
func OutputJSON(dir string, result *domain.ScanResult) (string, error) {
	if dir == "" {
		dir = "."
	}

	fullDir := filepath.Join(dir, sanitizeDomainName(result.Target.Root))
	if err := os.MkdirAll(fullDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("harvestx_%s_%s.json", result.Target.Root, timestamp)
	path := filepath.Join(fullDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, result, true); err != nil {
		return "", err
	}
	return path, nil
}

// WriteJSON escribe el reporte en w.
func WriteJSON(w io.Writer, result *domain.ScanResult, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(BuildReport(result)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
