// internal/core/domain/target.go
package domain

import (
	"fmt"

	"harvestx/internal/platform/validator"
)

// Target representa el objetivo del escaneo.
type Target struct {
	// Root es el dominio raíz objetivo (forma ASCII/punycode tras Validate)
	Root string `json:"root"`

	// Input es el valor tal como lo introdujo el usuario
	Input string `json:"input,omitempty"`
}

// NewTarget crea un nuevo target sin validar.
func NewTarget(root string) *Target {
	return &Target{Root: root, Input: root}
}

// Validate normaliza Root y verifica que sea un dominio válido.
func (t *Target) Validate() error {
	if t.Root == "" {
		return ErrEmptyTarget
	}

	ascii, err := validator.ToASCII(t.Root)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDomain, t.Root, err)
	}
	t.Root = ascii

	if !validator.IsDomain(t.Root) {
		return fmt.Errorf("%w: %s", ErrInvalidDomain, t.Root)
	}
	return nil
}

// Registrable retorna el eTLD+1 del target.
func (t *Target) Registrable() string {
	return validator.RegistrableDomain(t.Root)
}

// String retorna una representación legible del target.
func (t *Target) String() string {
	return fmt.Sprintf("Target{root=%s}", t.Root)
}
