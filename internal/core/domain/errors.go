// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio comunes.
var (
	// Target errors
	ErrEmptyTarget   = errors.New("target cannot be empty")
	ErrInvalidDomain = errors.New("invalid domain format")

	// Event errors
	ErrInvalidEvent = errors.New("invalid event")

	// Module errors
	ErrModuleNotFound   = errors.New("module not found")
	ErrNoModulesEnabled = errors.New("no modules enabled")

	// ErrHarvestService is matched by every HarvestServiceError.
	ErrHarvestService = errors.New("harvest service error")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// HarvestServiceError reports a failed call to the harvesting service:
// network failure, non-2xx status or a malformed JSON body.
type HarvestServiceError struct {
	Domain     string
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *HarvestServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("harvest %s via %s: status %d: %v", e.Domain, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("harvest %s via %s: %v", e.Domain, e.URL, e.Err)
}

func (e *HarvestServiceError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrHarvestService) true for any HarvestServiceError.
func (e *HarvestServiceError) Is(target error) bool {
	return target == ErrHarvestService
}
