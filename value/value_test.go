package value

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/calcpad/units"
)

func opts() DisplayOptions {
	return DefaultDisplayOptions()
}

func TestNumberArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Value
		want string
	}{
		{"add", NewNumber(2).Add(NewNumber(3)), "5"},
		{"sub", NewNumber(2).Sub(NewNumber(5)), "-3"},
		{"mul", NewNumber(4).Mul(NewNumber(2.5)), "10"},
		{"div", NewNumber(1).Div(NewNumber(4)), "0.25"},
		{"pow", NewNumber(2).Pow(NewNumber(10)), "1024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got.Format(opts()))
		})
	}
}

func TestNumberDomainErrors(t *testing.T) {
	divZero := NewNumber(1).Div(NewNumber(0))
	err, ok := divZero.(*Error)
	assert.True(t, ok)
	assert.Equal(t, CategoryRuntime, err.Category)
	assert.Equal(t, "division by zero", err.Message)

	sqrtNeg := NewNumber(-4).Pow(NewNumber(0.5))
	_, ok = sqrtNeg.(*Error)
	assert.True(t, ok)
}

func TestErrorPropagation(t *testing.T) {
	upstream := NewError(CategoryRuntime, "boom")

	result := NewNumber(1).Add(upstream).Mul(NewNumber(2)).Sub(NewNumber(3))
	err, ok := result.(*Error)
	assert.True(t, ok)
	assert.Equal(t, "boom", err.Message)
}

func TestPercentageGroundTruth(t *testing.T) {
	p := NewPercentage(15)
	base := NewNumber(200)

	assert.Equal(t, "30", p.Of(base).Format(opts()))
	assert.Equal(t, "230", p.On(base).Format(opts()))
	assert.Equal(t, "170", p.Off(base).Format(opts()))

	// consistency between display percent and fraction
	assert.Equal(t, 0.15, p.Fraction())
}

func TestPercentageOnCurrency(t *testing.T) {
	price := NewCurrency("$", 120.50)
	discount := NewPercentage(15)

	result := discount.Off(price)
	assert.Equal(t, "$102.425", result.Format(opts()))
}

func TestCurrencyArithmetic(t *testing.T) {
	a := NewCurrency("$", 10)
	b := NewCurrency("$", 2.5)

	assert.Equal(t, "$12.5", a.Add(b).Format(opts()))
	assert.Equal(t, "$7.5", a.Sub(b).Format(opts()))
	assert.Equal(t, "$25", a.Mul(NewNumber(2.5)).Format(opts()))
	assert.Equal(t, "4", a.Div(b).Format(opts()))
}

func TestCurrencyMismatch(t *testing.T) {
	usd := NewCurrency("$", 10)
	eur := NewCurrency("€", 10)

	result := usd.Add(eur)
	err, ok := result.(*Error)
	assert.True(t, ok)
	assert.Contains(t, err.Message, "$")
	assert.Contains(t, err.Message, "€")
}

func TestUnitAddition(t *testing.T) {
	r := units.NewRegistry()
	km := units.Single(r.Get("km"))
	m := units.Single(r.Get("m"))

	result := NewUnit(2, km).Add(NewUnit(300, m))
	assert.Equal(t, "2.3 km", result.Format(opts()))

	// result unit follows the larger-magnitude operand
	result = NewUnit(300, m).Add(NewUnit(2, km))
	assert.Equal(t, "2.3 km", result.Format(opts()))
}

func TestUnitIncompatibleAddition(t *testing.T) {
	r := units.NewRegistry()
	m := units.Single(r.Get("m"))
	kg := units.Single(r.Get("kg"))

	result := NewUnit(1, m).Add(NewUnit(1, kg))
	err, ok := result.(*Error)
	assert.True(t, ok)
	assert.Contains(t, err.Message, "incompatible dimensions")

	// zero dimensionless operand is an implicit zero of the dimension
	sum := NewUnit(5, m).Add(NewNumber(0))
	assert.Equal(t, "5 m", sum.Format(opts()))

	// non-zero dimensionless operand is not
	_, isErr := NewUnit(5, m).Add(NewNumber(3)).(*Error)
	assert.True(t, isErr)
}

func TestUnitMultiplication(t *testing.T) {
	r := units.NewRegistry()
	m := units.Single(r.Get("m"))
	s := units.Single(r.Get("s"))

	speed := NewUnit(100, m).Div(NewUnit(10, s))
	assert.Equal(t, "10 m/s", speed.Format(opts()))

	area := NewUnit(3, m).Mul(NewUnit(4, m))
	assert.Equal(t, "12 m^2", area.Format(opts()))

	// unit cancels completely, collapsing to a plain number
	ratio := NewUnit(10, m).Div(NewUnit(5, m))
	assert.Equal(t, KindNumber, ratio.Kind())
	assert.Equal(t, "2", ratio.Format(opts()))
}

func TestUnitPluralization(t *testing.T) {
	r := units.NewRegistry()
	day := units.Single(r.Get("day"))
	m := units.Single(r.Get("m"))

	assert.Equal(t, "3 days", NewUnit(3, day).Format(opts()))
	assert.Equal(t, "1 day", NewUnit(1, day).Format(opts()))
	assert.Equal(t, "3 m", NewUnit(3, m).Format(opts()))
}

func TestListBroadcast(t *testing.T) {
	list := NewList([]Value{NewNumber(1), NewNumber(2), NewNumber(3)})

	doubled := list.Mul(NewNumber(2))
	assert.Equal(t, "2, 4, 6", doubled.Format(opts()))

	shifted := list.Add(NewNumber(10))
	assert.Equal(t, "11, 12, 13", shifted.Format(opts()))
}

func TestListNestingRejected(t *testing.T) {
	inner := NewList([]Value{NewNumber(1)})

	nested := NewList([]Value{inner, NewNumber(2)})
	err, ok := nested.(*Error)
	assert.True(t, ok)
	assert.Equal(t, CategorySemantic, err.Category)
}

func TestDateArithmetic(t *testing.T) {
	base := NewDate(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), false)
	twoWeeks := &Duration{Weeks: 2}

	later := base.Add(twoWeeks)
	d, ok := later.(*Date)
	assert.True(t, ok)
	assert.Equal(t, "Mar 17, 2026", d.Format(opts()))

	span := later.Sub(base)
	dur, ok := span.(*Duration)
	assert.True(t, ok)
	assert.Equal(t, float64(14), dur.Days)
}

func TestTimeRollover(t *testing.T) {
	t1 := NewTimeOfDay(23 * 3600) // 23:00
	shifted := t1.Add(&Duration{Hours: 2})

	tod, ok := shifted.(*TimeOfDay)
	assert.True(t, ok)
	assert.True(t, tod.Rollover)
	assert.Equal(t, 1, tod.DayDelta)
	assert.Equal(t, "01:00 (+1 day)", tod.Format(opts()))
}

func TestDurationFormat(t *testing.T) {
	d := &Duration{Weeks: 2, Days: 3}
	assert.Equal(t, "2 weeks 3 days", d.Format(opts()))

	one := &Duration{Hours: 1}
	assert.Equal(t, "1 hour", one.Format(opts()))
}

func TestFormatFloatRules(t *testing.T) {
	o := opts()

	tests := []struct {
		name string
		v    float64
		want string
	}{
		{"integer without decimals", 42, "42"},
		{"trimmed fraction", 0.25, "0.25"},
		{"precision rounding", 1.0 / 3.0, "0.3333333333"},
		{"large scientific", 1.23e21, "1.23e+21"},
		{"small scientific", 4.2e-12, "4.2e-12"},
		{"zero stays plain", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.v, o))
		})
	}
}

func TestFormatGrouping(t *testing.T) {
	o := opts()
	o.GroupDigits = true

	assert.Equal(t, "1,234,567", FormatFloat(1234567, o))
}

func TestSymbolicCarriesExpression(t *testing.T) {
	s := NewSymbolic("x + 1")

	combined := s.Mul(NewNumber(2))
	sym, ok := combined.(*Symbolic)
	assert.True(t, ok)
	assert.Equal(t, "x + 1 * 2", sym.Expr)
}
