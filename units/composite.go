package units

import (
	"sort"
	"strconv"
	"strings"
)

// Part is one component of a composite unit: a unit definition raised to
// an integer power.
type Part struct {
	Def   *Definition
	Power int
}

// Composite is a product of unit parts. It is always stored simplified:
// parts with the same symbol are merged and zero-power parts dropped, so
// two equal composites compare equal part by part.
type Composite struct {
	parts []Part
}

// NewComposite builds a simplified composite from the given parts.
func NewComposite(parts ...Part) Composite {
	return Composite{parts: simplifyParts(parts)}
}

// Single wraps one definition at power 1.
func Single(def *Definition) Composite {
	return Composite{parts: []Part{{Def: def, Power: 1}}}
}

// Parts returns the simplified component list.
func (c Composite) Parts() []Part {
	return c.parts
}

// IsEmpty reports whether the composite has no parts (a dimensionless bare
// number).
func (c Composite) IsEmpty() bool {
	return len(c.parts) == 0
}

// SinglePart returns the sole part when the composite consists of exactly
// one unit at power 1.
func (c Composite) SinglePart() (*Definition, bool) {
	if len(c.parts) == 1 && c.parts[0].Power == 1 {
		return c.parts[0].Def, true
	}

	return nil, false
}

// Dimension sums each component's dimension scaled by its power.
func (c Composite) Dimension() Dimension {
	dim := Dimensionless
	for _, p := range c.parts {
		dim = dim.Mul(p.Def.Dimension.Pow(p.Power))
	}

	return dim
}

// Mul concatenates the two component lists and re-simplifies.
func (c Composite) Mul(other Composite) Composite {
	parts := make([]Part, 0, len(c.parts)+len(other.parts))
	parts = append(parts, c.parts...)
	parts = append(parts, other.parts...)

	return NewComposite(parts...)
}

// Div negates the right-hand powers, concatenates, and re-simplifies.
func (c Composite) Div(other Composite) Composite {
	parts := make([]Part, 0, len(c.parts)+len(other.parts))
	parts = append(parts, c.parts...)

	for _, p := range other.parts {
		parts = append(parts, Part{Def: p.Def, Power: -p.Power})
	}

	return NewComposite(parts...)
}

// Pow scales every component's exponent by n. Pow(0) yields the empty
// (dimensionless) composite.
func (c Composite) Pow(n int) Composite {
	if n == 0 {
		return Composite{}
	}

	parts := make([]Part, 0, len(c.parts))
	for _, p := range c.parts {
		parts = append(parts, Part{Def: p.Def, Power: p.Power * n})
	}

	return NewComposite(parts...)
}

// Equal reports whether both composites hold the same simplified parts in
// the same order.
func (c Composite) Equal(other Composite) bool {
	if len(c.parts) != len(other.parts) {
		return false
	}

	for i, p := range c.parts {
		o := other.parts[i]
		if p.Def.Symbol != o.Def.Symbol || p.Power != o.Power {
			return false
		}
	}

	return true
}

// String renders the raw symbolic form (no derived-unit matching); see
// Display for the user-facing form.
func (c Composite) String() string {
	var b strings.Builder

	for i, p := range c.parts {
		if i > 0 {
			b.WriteString("*")
		}

		b.WriteString(p.Def.Symbol)

		if p.Power != 1 {
			b.WriteString("^")
			b.WriteString(strconv.Itoa(p.Power))
		}
	}

	return b.String()
}

// simplifyParts merges parts with the same symbol, drops zero powers, and
// orders positive powers before negative ones so rendering is stable.
func simplifyParts(parts []Part) []Part {
	merged := make([]Part, 0, len(parts))
	index := make(map[string]int, len(parts))

	for _, p := range parts {
		if p.Def == nil || p.Power == 0 {
			continue
		}

		if i, ok := index[p.Def.Symbol]; ok {
			merged[i].Power += p.Power
		} else {
			index[p.Def.Symbol] = len(merged)
			merged = append(merged, p)
		}
	}

	result := merged[:0]
	for _, p := range merged {
		if p.Power != 0 {
			result = append(result, p)
		}
	}

	// stable: keep first-seen order within numerator and denominator, but
	// put all positive powers first
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Power > 0 && result[j].Power < 0
	})

	if len(result) == 0 {
		return nil
	}

	return result
}
