package units

import (
	"fmt"
	"strings"
)

// Dimension is a vector of the seven SI base dimension exponents plus
// an information axis for data quantities. Two quantities are
// compatible for addition exactly when their dimensions are equal
// component by component.
type Dimension struct {
	Length      int
	Mass        int
	Time        int
	Current     int
	Temperature int
	Amount      int
	Luminosity  int
	Information int
}

// Dimensionless is the zero dimension vector.
var Dimensionless = Dimension{}

// Mul returns the dimension of the product of two quantities.
func (d Dimension) Mul(other Dimension) Dimension {
	return Dimension{
		Length:      d.Length + other.Length,
		Mass:        d.Mass + other.Mass,
		Time:        d.Time + other.Time,
		Current:     d.Current + other.Current,
		Temperature: d.Temperature + other.Temperature,
		Amount:      d.Amount + other.Amount,
		Luminosity:  d.Luminosity + other.Luminosity,
		Information: d.Information + other.Information,
	}
}

// Div returns the dimension of the quotient of two quantities.
func (d Dimension) Div(other Dimension) Dimension {
	return d.Mul(other.Pow(-1))
}

// Pow returns the dimension scaled by an integer exponent.
func (d Dimension) Pow(n int) Dimension {
	return Dimension{
		Length:      d.Length * n,
		Mass:        d.Mass * n,
		Time:        d.Time * n,
		Current:     d.Current * n,
		Temperature: d.Temperature * n,
		Amount:      d.Amount * n,
		Luminosity:  d.Luminosity * n,
		Information: d.Information * n,
	}
}

// IsDimensionless reports whether every exponent is zero.
func (d Dimension) IsDimensionless() bool {
	return d == Dimensionless
}

// String renders the dimension in exponent notation, e.g. "L^1*M^1*T^-2".
// Used only for error messages and debugging.
func (d Dimension) String() string {
	if d.IsDimensionless() {
		return "dimensionless"
	}

	names := []struct {
		label string
		exp   int
	}{
		{"L", d.Length},
		{"M", d.Mass},
		{"T", d.Time},
		{"I", d.Current},
		{"Θ", d.Temperature},
		{"N", d.Amount},
		{"J", d.Luminosity},
		{"D", d.Information},
	}

	parts := make([]string, 0, 8)
	for _, n := range names {
		if n.exp != 0 {
			parts = append(parts, fmt.Sprintf("%s^%d", n.label, n.exp))
		}
	}

	return strings.Join(parts, "*")
}
