package value

import (
	"fmt"
	"math"
	"time"
)

// Date is a calendar instant. HasTime distinguishes "Mar 3, 2026" from
// "Mar 3, 2026 14:30" for both arithmetic granularity and display.
type Date struct {
	Time    time.Time
	HasTime bool
}

// NewDate builds a date value.
func NewDate(t time.Time, hasTime bool) *Date {
	return &Date{Time: t, HasTime: hasTime}
}

func (d *Date) Kind() Kind      { return KindDate }
func (d *Date) IsNumeric() bool { return false }

func (d *Date) Add(other Value) Value {
	if e, ok := propagate(d, other); ok {
		return e
	}

	if dur, ok := asDurationOperand(other); ok {
		return dur.addToDate(d, 1)
	}

	switch o := other.(type) {
	case *TimeOfDay:
		shifted := d.Time.Add(time.Duration(o.Seconds * float64(time.Second)))
		return NewDate(shifted, true)
	case *Symbolic:
		return o.combineLeft(d, "+")
	default:
		return incompatible("add", d, other)
	}
}

func (d *Date) Sub(other Value) Value {
	if e, ok := propagate(d, other); ok {
		return e
	}

	if dur, ok := asDurationOperand(other); ok {
		return dur.addToDate(d, -1)
	}

	switch o := other.(type) {
	case *Date:
		return durationBetween(o.Time, d.Time)
	case *Symbolic:
		return o.combineLeft(d, "-")
	default:
		return incompatible("subtract", d, other)
	}
}

func (d *Date) Mul(other Value) Value {
	if e, ok := propagate(d, other); ok {
		return e
	}

	return incompatible("multiply", d, other)
}

func (d *Date) Div(other Value) Value {
	if e, ok := propagate(d, other); ok {
		return e
	}

	return incompatible("divide", d, other)
}

func (d *Date) Pow(other Value) Value {
	if e, ok := propagate(d, other); ok {
		return e
	}

	return incompatible("raise", d, other)
}

func (d *Date) Equals(other Value, tolerance float64) bool {
	o, ok := other.(*Date)
	if !ok {
		return false
	}

	diff := math.Abs(d.Time.Sub(o.Time).Seconds())

	return diff <= tolerance
}

func (d *Date) Format(DisplayOptions) string {
	if d.HasTime {
		return d.Time.Format("Jan 2, 2006 15:04")
	}

	return d.Time.Format("Jan 2, 2006")
}

// TimeOfDay is a clock time independent of any date. Rollover marks that
// an arithmetic result crossed midnight; DayDelta counts the crossings.
type TimeOfDay struct {
	Seconds  float64
	Rollover bool
	DayDelta int
}

const secondsPerDay = 86400

// NewTimeOfDay normalizes seconds into [0, 86400) and records rollover.
func NewTimeOfDay(seconds float64) *TimeOfDay {
	delta := int(math.Floor(seconds / secondsPerDay))
	normalized := seconds - float64(delta)*secondsPerDay

	return &TimeOfDay{
		Seconds:  normalized,
		Rollover: delta != 0,
		DayDelta: delta,
	}
}

func (t *TimeOfDay) Kind() Kind      { return KindTime }
func (t *TimeOfDay) IsNumeric() bool { return false }

func (t *TimeOfDay) Add(other Value) Value {
	if e, ok := propagate(t, other); ok {
		return e
	}

	if dur, ok := asDurationOperand(other); ok {
		shifted := NewTimeOfDay(t.Seconds + dur.totalSeconds())
		shifted.DayDelta += t.DayDelta

		return shifted
	}

	switch o := other.(type) {
	case *Symbolic:
		return o.combineLeft(t, "+")
	default:
		return incompatible("add", t, other)
	}
}

func (t *TimeOfDay) Sub(other Value) Value {
	if e, ok := propagate(t, other); ok {
		return e
	}

	if _, isTime := other.(*TimeOfDay); !isTime {
		if dur, ok := asDurationOperand(other); ok {
			shifted := NewTimeOfDay(t.Seconds - dur.totalSeconds())
			shifted.DayDelta += t.DayDelta

			return shifted
		}
	}

	switch o := other.(type) {
	case *TimeOfDay:
		return durationFromSeconds(t.Seconds - o.Seconds)
	case *Symbolic:
		return o.combineLeft(t, "-")
	default:
		return incompatible("subtract", t, other)
	}
}

func (t *TimeOfDay) Mul(other Value) Value {
	if e, ok := propagate(t, other); ok {
		return e
	}

	return incompatible("multiply", t, other)
}

func (t *TimeOfDay) Div(other Value) Value {
	if e, ok := propagate(t, other); ok {
		return e
	}

	return incompatible("divide", t, other)
}

func (t *TimeOfDay) Pow(other Value) Value {
	if e, ok := propagate(t, other); ok {
		return e
	}

	return incompatible("raise", t, other)
}

func (t *TimeOfDay) Equals(other Value, tolerance float64) bool {
	o, ok := other.(*TimeOfDay)
	return ok && math.Abs(t.Seconds-o.Seconds) <= tolerance
}

func (t *TimeOfDay) Format(DisplayOptions) string {
	total := int(math.Round(t.Seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	rendered := fmt.Sprintf("%02d:%02d", h, m)
	if s != 0 {
		rendered = fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}

	switch {
	case t.DayDelta == 1:
		rendered += " (+1 day)"
	case t.DayDelta == -1:
		rendered += " (-1 day)"
	case t.DayDelta != 0:
		rendered += fmt.Sprintf(" (%+d days)", t.DayDelta)
	}

	return rendered
}
