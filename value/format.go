package value

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DisplayOptions controls numeric rendering. The zero value is not
// usable; call DefaultDisplayOptions or fill every field.
type DisplayOptions struct {
	// Precision is the maximum number of fraction digits.
	Precision int
	// SciUpper and SciLower bound the magnitudes rendered in plain
	// notation; values at or above SciUpper, or non-zero values below
	// SciLower, switch to trimmed scientific notation.
	SciUpper float64
	SciLower float64
	// GroupDigits renders thousands separators via golang.org/x/text.
	GroupDigits bool
	// Locale selects the separator convention when grouping.
	Locale language.Tag
}

// DefaultDisplayOptions returns the rendering defaults used when no
// configuration is supplied.
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{
		Precision: 10,
		SciUpper:  1e15,
		SciLower:  1e-9,
		Locale:    language.English,
	}
}

// FormatFloat renders a float per the display rules: integers without
// decimals, very large/small magnitudes in trimmed scientific notation,
// everything else rounded to Precision with trailing zeros removed.
func FormatFloat(v float64, opts DisplayOptions) string {
	if math.IsNaN(v) {
		return "NaN"
	}

	if math.IsInf(v, 1) {
		return "∞"
	}

	if math.IsInf(v, -1) {
		return "-∞"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs >= opts.SciUpper || abs < opts.SciLower) {
		return trimmedScientific(v, opts.Precision)
	}

	rounded := roundTo(v, opts.Precision)

	if opts.GroupDigits {
		p := message.NewPrinter(opts.Locale)
		return p.Sprint(number.Decimal(rounded,
			number.MaxFractionDigits(opts.Precision),
			number.MinFractionDigits(0)))
	}

	s := strconv.FormatFloat(rounded, 'f', -1, 64)

	return s
}

// trimmedScientific formats in e-notation and strips trailing mantissa
// zeros, e.g. 1.2300e+21 -> 1.23e+21.
func trimmedScientific(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'e', precision, 64)

	mantissa, exponent, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}

	if strings.Contains(mantissa, ".") {
		mantissa = strings.TrimRight(mantissa, "0")
		mantissa = strings.TrimSuffix(mantissa, ".")
	}

	return mantissa + "e" + exponent
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
