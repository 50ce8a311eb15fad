package types

import "fmt"

// ViewMode selects how the filtered, sorted rows are presented.
type ViewMode string

// View modes.
const (
	ModeTable   ViewMode = "table"
	ModeCard    ViewMode = "card"
	ModeCompact ViewMode = "compact"
)

// Density selects row spacing.
type Density string

// Densities.
const (
	DensityComfortable Density = "comfortable"
	DensityDense       Density = "dense"
)

// ViewState holds the presentation settings. Neither field affects which
// rows are shown or their order.
type ViewState struct {
	Mode    ViewMode `json:"mode"`
	Density Density  `json:"density"`
}

// EffectiveDensity returns the density renderers should use. Compact mode
// always renders dense; the stored Density is kept for when the mode changes
// back.
func (v ViewState) EffectiveDensity() Density {
	if v.Mode == ModeCompact {
		return DensityDense
	}
	return v.Density
}

// ParseViewMode maps a mode name to a ViewMode.
// Returns ErrInvalidViewMode for unknown names.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ModeTable, ModeCard, ModeCompact:
		return ViewMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
}

// ParseDensity maps a density name to a Density.
// Returns ErrInvalidDensity for unknown names.
func ParseDensity(s string) (Density, error) {
	switch Density(s) {
	case DensityComfortable, DensityDense:
		return Density(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDensity, s)
	}
}
