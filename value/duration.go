package value

import (
	"math"
	"strings"
	"time"
)

// Average-month and Julian-year lengths in seconds, matching the time
// unit multipliers in the units registry.
const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerWeek   = 604800
	secondsPerMonth  = 2629800
	secondsPerYear   = 31557600
)

// Duration is a signed span of time kept in named calendar parts. Parts
// stay as entered ("2 weeks 3 days" is not collapsed to days); the total
// is derived on demand for comparisons and time-of-day arithmetic.
type Duration struct {
	Years   float64
	Months  float64
	Weeks   float64
	Days    float64
	Hours   float64
	Minutes float64
	Seconds float64
	Millis  float64
}

// durationFromSeconds builds a duration decomposed into the largest whole
// parts below a week.
func durationFromSeconds(seconds float64) *Duration {
	d := &Duration{}
	sign := 1.0

	if seconds < 0 {
		sign = -1
		seconds = -seconds
	}

	d.Days = sign * math.Floor(seconds/secondsPerDay)
	seconds -= math.Abs(d.Days) * secondsPerDay
	d.Hours = sign * math.Floor(seconds/secondsPerHour)
	seconds -= math.Abs(d.Hours) * secondsPerHour
	d.Minutes = sign * math.Floor(seconds/secondsPerMinute)
	seconds -= math.Abs(d.Minutes) * secondsPerMinute
	d.Seconds = sign * seconds

	return d
}

// durationBetween decomposes the span from a to b.
func durationBetween(a, b time.Time) *Duration {
	return durationFromSeconds(b.Sub(a).Seconds())
}

// TotalSeconds flattens the duration to seconds using the calendar
// averages for months and years.
func (d *Duration) TotalSeconds() float64 {
	return d.totalSeconds()
}

func (d *Duration) totalSeconds() float64 {
	return d.Years*secondsPerYear +
		d.Months*secondsPerMonth +
		d.Weeks*secondsPerWeek +
		d.Days*secondsPerDay +
		d.Hours*secondsPerHour +
		d.Minutes*secondsPerMinute +
		d.Seconds +
		d.Millis/1000
}

// addToDate applies the duration to a date. Whole year/month parts move
// the calendar; the remainder is applied as absolute time.
func (d *Duration) addToDate(date *Date, sign int) Value {
	years := int(d.Years) * sign
	months := int(d.Months) * sign

	t := date.Time.AddDate(years, months, 0)

	rest := (d.Years-math.Trunc(d.Years))*secondsPerYear +
		(d.Months-math.Trunc(d.Months))*secondsPerMonth +
		d.Weeks*secondsPerWeek +
		d.Days*secondsPerDay +
		d.Hours*secondsPerHour +
		d.Minutes*secondsPerMinute +
		d.Seconds +
		d.Millis/1000

	t = t.Add(time.Duration(float64(sign) * rest * float64(time.Second)))

	hasTime := date.HasTime || d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 || d.Millis != 0

	return NewDate(t, hasTime)
}

func (d *Duration) scale(factor float64) *Duration {
	return &Duration{
		Years:   d.Years * factor,
		Months:  d.Months * factor,
		Weeks:   d.Weeks * factor,
		Days:    d.Days * factor,
		Hours:   d.Hours * factor,
		Minutes: d.Minutes * factor,
		Seconds: d.Seconds * factor,
		Millis:  d.Millis * factor,
	}
}

func (d *Duration) Kind() Kind      { return KindDuration }
func (d *Duration) IsNumeric() bool { return false }

func (d *Duration) Add(other Value) Value {
	if e, ok := propagate(d, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Duration:
		return &Duration{
			Years:   d.Years + o.Years,
			Months:  d.Months + o.Months,
			Weeks:   d.Weeks + o.Weeks,
			Days:    d.Days + o.Days,
			Hours:   d.Hours + o.Hours,
			Minutes: d.Minutes + o.Minutes,
			Seconds: d.Seconds + o.Seconds,
			Millis:  d.Millis + o.Millis,
		}
	case *Date:
		return d.addToDate(o, 1)
	case *TimeOfDay:
		return o.Add(d)
	case *Unit:
		if dur, ok := o.AsDuration(); ok {
			return d.Add(dur)
		}
		return incompatible("add", d, other)
	case *Symbolic:
		return o.combineLeft(d, "+")
	default:
		return incompatible("add", d, other)
	}
}

func (d *Duration) Sub(other Value) Value {
	if e, ok := propagate(d, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Duration:
		return d.Add(o.scale(-1))
	case *Unit:
		if dur, ok := o.AsDuration(); ok {
			return d.Add(dur.scale(-1))
		}
		return incompatible("subtract", d, other)
	case *Symbolic:
		return o.combineLeft(d, "-")
	default:
		return incompatible("subtract", d, other)
	}
}

func (d *Duration) Mul(other Value) Value {
	if e, ok := propagate(d, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Number:
		return d.scale(o.V)
	case *Symbolic:
		return o.combineLeft(d, "*")
	default:
		return incompatible("multiply", d, other)
	}
}

func (d *Duration) Div(other Value) Value {
	if e, ok := propagate(d, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Number:
		if o.V == 0 {
			return NewError(CategoryRuntime, "division by zero")
		}
		return d.scale(1 / o.V)
	case *Duration:
		total := o.totalSeconds()
		if total == 0 {
			return NewError(CategoryRuntime, "division by zero")
		}
		return NewNumber(d.totalSeconds() / total)
	case *Symbolic:
		return o.combineLeft(d, "/")
	default:
		return incompatible("divide", d, other)
	}
}

func (d *Duration) Pow(other Value) Value {
	if e, ok := propagate(d, other); ok {
		return e
	}

	return incompatible("raise", d, other)
}

func (d *Duration) Equals(other Value, tolerance float64) bool {
	o, ok := other.(*Duration)
	return ok && math.Abs(d.totalSeconds()-o.totalSeconds()) <= tolerance
}

func (d *Duration) Format(opts DisplayOptions) string {
	parts := []struct {
		amount   float64
		singular string
	}{
		{d.Years, "year"},
		{d.Months, "month"},
		{d.Weeks, "week"},
		{d.Days, "day"},
		{d.Hours, "hour"},
		{d.Minutes, "minute"},
		{d.Seconds, "second"},
		{d.Millis, "millisecond"},
	}

	rendered := make([]string, 0, 4)
	for _, p := range parts {
		if p.amount == 0 {
			continue
		}

		label := p.singular
		if p.amount != 1 && p.amount != -1 {
			label += "s"
		}

		rendered = append(rendered, FormatFloat(p.amount, opts)+" "+label)
	}

	if len(rendered) == 0 {
		return "0 seconds"
	}

	return strings.Join(rendered, " ")
}

// compile-time interface checks for every concrete semantic value
var (
	_ Value = (*Number)(nil)
	_ Value = (*Percentage)(nil)
	_ Value = (*Currency)(nil)
	_ Value = (*Unit)(nil)
	_ Value = (*Date)(nil)
	_ Value = (*TimeOfDay)(nil)
	_ Value = (*Duration)(nil)
	_ Value = (*List)(nil)
	_ Value = (*Symbolic)(nil)
	_ Value = (*Error)(nil)
)
