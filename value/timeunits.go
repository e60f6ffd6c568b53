package value

import "github.com/shibukawa/calcpad/units"

var timeDimension = units.Dimension{Time: 1}

// AsDuration converts a time-dimensioned unit quantity into a duration,
// preserving the named part when the unit is a single calendar unit
// ("2 weeks" stays weeks rather than collapsing to seconds).
func (u *Unit) AsDuration() (*Duration, bool) {
	if u.Units.Dimension() != timeDimension {
		return nil, false
	}

	if def, ok := u.Units.SinglePart(); ok {
		switch def.Name {
		case "year":
			return &Duration{Years: u.V}, true
		case "month":
			return &Duration{Months: u.V}, true
		case "week":
			return &Duration{Weeks: u.V}, true
		case "day":
			return &Duration{Days: u.V}, true
		case "hour":
			return &Duration{Hours: u.V}, true
		case "minute":
			return &Duration{Minutes: u.V}, true
		case "second":
			return &Duration{Seconds: u.V}, true
		}
	}

	return durationFromSeconds(units.ToBase(u.V, u.Units)), true
}

// asDurationOperand widens durations and time-dimensioned units into a
// common *Duration operand for calendar arithmetic.
func asDurationOperand(v Value) (*Duration, bool) {
	switch o := v.(type) {
	case *Duration:
		return o, true
	case *Unit:
		return o.AsDuration()
	default:
		return nil, false
	}
}
