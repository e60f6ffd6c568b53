package units

import (
	"strconv"
	"strings"
)

// derivedDisplay maps dimension signatures to the compact derived-unit
// symbol preferred when displaying multi-component composites.
var derivedDisplay = []struct {
	dim    Dimension
	symbol string
}{
	{dimFrequency, "Hz"},
	{dimForce, "N"},
	{dimPressure, "Pa"},
	{dimEnergy, "J"},
	{dimPower, "W"},
	{dimVoltage, "V"},
	{dimResistance, "Ω"},
}

// DerivedMatch returns the compact symbol for a composite whose dimension
// signature equals a known derived unit. It only applies to composites
// with more than one component; a plain "s^-1" entered as such stays as
// entered.
func DerivedMatch(c Composite) (string, bool) {
	if len(c.Parts()) < 2 {
		return "", false
	}

	dim := c.Dimension()
	for _, d := range derivedDisplay {
		if d.dim == dim {
			return d.symbol, true
		}
	}

	return "", false
}

// Display renders the composite for presentation: derived-unit match
// first, then explicit numerator/denominator form such as "kg*m/s^2",
// with multi-term denominators grouped in parentheses.
func Display(c Composite) string {
	if symbol, ok := DerivedMatch(c); ok {
		return symbol
	}

	var numerator, denominator []string

	for _, p := range c.Parts() {
		if p.Power > 0 {
			numerator = append(numerator, partString(p.Def.Symbol, p.Power))
		} else {
			denominator = append(denominator, partString(p.Def.Symbol, -p.Power))
		}
	}

	num := strings.Join(numerator, "*")
	if num == "" && len(denominator) > 0 {
		num = "1"
	}

	switch len(denominator) {
	case 0:
		return num
	case 1:
		return num + "/" + denominator[0]
	default:
		return num + "/(" + strings.Join(denominator, "*") + ")"
	}
}

func partString(symbol string, power int) string {
	if power == 1 {
		return symbol
	}

	return symbol + "^" + strconv.Itoa(power)
}
