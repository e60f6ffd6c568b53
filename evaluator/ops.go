package evaluator

import (
	"github.com/shibukawa/calcpad/units"
	"github.com/shibukawa/calcpad/value"
)

const maxRangeLength = 10000

// applyPercentOp handles of/on/off when the left operand's percentage
// type is only known at runtime, e.g. "discount off base price".
func applyPercentOp(op string, left, right value.Value) value.Value {
	pct, ok := left.(*value.Percentage)
	if !ok {
		// "5 of 20" reads as a ratio, which "is %" then turns into 25%
		if _, isNumber := left.(*value.Number); isNumber && op == "of" {
			return left.Div(right)
		}

		return value.Errorf(value.CategorySemantic,
			"left side of %q must be a percentage, got %s", op, left.Kind())
	}

	switch op {
	case "of":
		return pct.Of(right)
	case "on":
		return pct.On(right)
	default:
		return pct.Off(right)
	}
}

// toPercent implements "as %" and "is %": a dimensionless ratio becomes
// a percentage.
func toPercent(v value.Value) value.Value {
	switch t := v.(type) {
	case *value.Percentage:
		return t
	case *value.Number:
		return value.NewPercentageFromFraction(t.V)
	default:
		return value.Errorf(value.CategorySemantic,
			"cannot express %s as a percentage", v.Kind())
	}
}

// ordering returns -1, 0, or 1 for comparable value pairs.
func ordering(a, b value.Value) (int, *value.Error) {
	sign := func(d float64) int {
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		default:
			return 0
		}
	}

	switch av := a.(type) {
	case *value.Number:
		switch bv := b.(type) {
		case *value.Number:
			return sign(av.V - bv.V), nil
		case *value.Percentage:
			return sign(av.V - bv.Fraction()), nil
		}

	case *value.Percentage:
		switch bv := b.(type) {
		case *value.Percentage:
			return sign(av.Fraction() - bv.Fraction()), nil
		case *value.Number:
			return sign(av.Fraction() - bv.V), nil
		}

	case *value.Unit:
		if bv, ok := b.(*value.Unit); ok {
			if av.Units.Dimension() != bv.Units.Dimension() {
				return 0, value.Errorf(value.CategoryRuntime,
					"cannot compare %s and %s", av.Format(value.DefaultDisplayOptions()), bv.Format(value.DefaultDisplayOptions()))
			}

			return sign(units.ToBase(av.V, av.Units) - units.ToBase(bv.V, bv.Units)), nil
		}

	case *value.Currency:
		if bv, ok := b.(*value.Currency); ok {
			if av.Symbol != bv.Symbol {
				return 0, value.Errorf(value.CategoryRuntime,
					"cannot compare %s and %s amounts", av.Symbol, bv.Symbol)
			}

			return av.Amount.Cmp(bv.Amount), nil
		}

	case *value.Date:
		if bv, ok := b.(*value.Date); ok {
			switch {
			case av.Time.Before(bv.Time):
				return -1, nil
			case av.Time.After(bv.Time):
				return 1, nil
			default:
				return 0, nil
			}
		}

	case *value.TimeOfDay:
		if bv, ok := b.(*value.TimeOfDay); ok {
			return sign(av.Seconds - bv.Seconds), nil
		}

	case *value.Duration:
		if bv, ok := b.(*value.Duration); ok {
			return sign(av.TotalSeconds() - bv.TotalSeconds()), nil
		}
	}

	return 0, value.Errorf(value.CategorySemantic,
		"cannot compare %s and %s", a.Kind(), b.Kind())
}

// compareValues evaluates a comparison operator to 1 or 0.
func compareValues(op string, a, b value.Value) value.Value {
	cmp, err := ordering(a, b)
	if err != nil {
		return err
	}

	var result bool

	switch op {
	case "==", "is":
		result = cmp == 0
	case "!=":
		result = cmp != 0
	case "<":
		result = cmp < 0
	case ">":
		result = cmp > 0
	case "<=":
		result = cmp <= 0
	default:
		result = cmp >= 0
	}

	if result {
		return value.NewNumber(1)
	}

	return value.NewNumber(0)
}

func convertCurrency(left value.Value, target string, ctx *Context) value.Value {
	cur, ok := left.(*value.Currency)
	if !ok {
		return value.Errorf(value.CategorySemantic,
			"cannot convert %s to currency %s", left.Kind(), target)
	}

	if ctx.Rates == nil {
		return value.NewError(value.CategoryRuntime, "no exchange rates configured")
	}

	return value.ConvertCurrency(cur, target, ctx.Rates)
}

var timeDimension = units.Dimension{Time: 1}

func convertUnit(left value.Value, target units.Composite) value.Value {
	switch v := left.(type) {
	case *value.Unit:
		return v.Convert(target)

	case *value.Duration:
		if target.Dimension() != timeDimension {
			return value.Errorf(value.CategoryRuntime,
				"cannot convert a duration to %s", units.Display(target))
		}

		return value.NewUnit(units.FromBase(v.TotalSeconds(), target), target)

	default:
		return value.Errorf(value.CategorySemantic,
			"%s has no unit to convert", left.Kind())
	}
}

// expandRange materializes "start..end [step s]" as a list. Numeric
// bounds take an integer step; date bounds require a duration step.
func expandRange(left, right, step value.Value) value.Value {
	if ln, ok := left.(*value.Number); ok {
		rn, ok := right.(*value.Number)
		if !ok {
			return value.Errorf(value.CategorySemantic,
				"range bounds must both be numbers, got %s and %s", left.Kind(), right.Kind())
		}

		return expandNumericRange(ln.V, rn.V, step)
	}

	if ld, ok := left.(*value.Date); ok {
		rd, ok := right.(*value.Date)
		if !ok {
			return value.Errorf(value.CategorySemantic,
				"range bounds must both be dates, got %s and %s", left.Kind(), right.Kind())
		}

		return expandDateRange(ld, rd, step)
	}

	return value.Errorf(value.CategorySemantic,
		"range bounds must be numbers or dates, got %s", left.Kind())
}

func expandNumericRange(start, end float64, step value.Value) value.Value {
	increment := 1.0

	if step != nil {
		sn, ok := step.(*value.Number)
		if !ok || sn.V <= 0 || sn.V != float64(int(sn.V)) {
			return value.NewError(value.CategorySemantic,
				"range step must be a positive whole number")
		}

		increment = sn.V
	}

	if end < start {
		increment = -increment
	}

	var elems []value.Value

	for v := start; (increment > 0 && v <= end) || (increment < 0 && v >= end); v += increment {
		if len(elems) >= maxRangeLength {
			return value.Errorf(value.CategoryRuntime,
				"range produces more than %d elements", maxRangeLength)
		}

		elems = append(elems, value.NewNumber(v))
	}

	return value.NewList(elems)
}

func expandDateRange(start, end *value.Date, step value.Value) value.Value {
	if step == nil {
		return value.NewError(value.CategorySemantic,
			"date ranges require a duration step")
	}

	switch s := step.(type) {
	case *value.Duration:
	case *value.Unit:
		if _, ok := s.AsDuration(); !ok {
			return value.NewError(value.CategorySemantic,
				"date ranges require a duration step")
		}
	default:
		return value.NewError(value.CategorySemantic,
			"date ranges require a duration step")
	}

	if end.Time.Before(start.Time) {
		return value.NewError(value.CategorySemantic,
			"date range end precedes its start")
	}

	var elems []value.Value

	cur := start

	for !cur.Time.After(end.Time) {
		if len(elems) >= maxRangeLength {
			return value.Errorf(value.CategoryRuntime,
				"range produces more than %d elements", maxRangeLength)
		}

		elems = append(elems, cur)

		next, ok := cur.Add(step).(*value.Date)
		if !ok {
			return value.NewError(value.CategoryRuntime, "date range step did not advance the date")
		}

		if !next.Time.After(cur.Time) {
			return value.NewError(value.CategorySemantic, "date range step must move forward")
		}

		cur = next
	}

	return value.NewList(elems)
}
