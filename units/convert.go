package units

import (
	"errors"
	"fmt"
	"math"
)

// ErrIncompatibleDimensions is returned when converting between units of
// different physical dimensions.
var ErrIncompatibleDimensions = errors.New("incompatible dimensions")

// ToBase converts a value expressed in the composite unit to the
// canonical SI base magnitude of its dimension. The additive offset is
// applied only for a single-component power-1 unit (absolute temperature
// scales); inside any larger composite an offset unit contributes its
// multiplier alone.
func ToBase(value float64, c Composite) float64 {
	if def, ok := c.SinglePart(); ok && def.HasOffset() {
		return value*def.Multiplier + def.Offset
	}

	factor := 1.0
	for _, p := range c.Parts() {
		factor *= math.Pow(p.Def.Multiplier, float64(p.Power))
	}

	return value * factor
}

// FromBase converts a canonical base magnitude into the given composite
// unit.
func FromBase(base float64, c Composite) float64 {
	if def, ok := c.SinglePart(); ok && def.HasOffset() {
		return (base - def.Offset) / def.Multiplier
	}

	factor := 1.0
	for _, p := range c.Parts() {
		factor *= math.Pow(p.Def.Multiplier, float64(p.Power))
	}

	return base / factor
}

// Convert re-expresses a value from one composite unit in another.
// Cross-dimension conversion is an error.
func Convert(value float64, from, to Composite) (float64, error) {
	if from.Dimension() != to.Dimension() {
		return 0, fmt.Errorf("%w: cannot convert %s (%s) to %s (%s)",
			ErrIncompatibleDimensions,
			from.String(), from.Dimension(), to.String(), to.Dimension())
	}

	return FromBase(ToBase(value, from), to), nil
}
