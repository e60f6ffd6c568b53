package units

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCompositeSimplification(t *testing.T) {
	r := NewRegistry()
	m := r.Get("m")
	s := r.Get("s")

	// m*s * m/s -> m^2
	a := NewComposite(Part{m, 1}, Part{s, 1})
	b := NewComposite(Part{m, 1}, Part{s, -1})
	product := a.Mul(b)

	assert.Equal(t, "m^2", product.String())
	assert.Equal(t, Dimension{Length: 2}, product.Dimension())

	// dividing a unit by itself cancels completely
	assert.True(t, Single(m).Div(Single(m)).IsEmpty())
}

func TestCompositeSimplifyIdempotent(t *testing.T) {
	r := NewRegistry()
	kg := r.Get("kg")
	m := r.Get("m")
	s := r.Get("s")

	c := NewComposite(Part{kg, 1}, Part{m, 1}, Part{s, -2})
	again := NewComposite(c.Parts()...)

	assert.True(t, c.Equal(again))
	assert.Equal(t, c.String(), again.String())
}

func TestCompositePow(t *testing.T) {
	r := NewRegistry()
	m := r.Get("m")
	s := r.Get("s")

	v := NewComposite(Part{m, 1}, Part{s, -1})

	squared := v.Pow(2)
	assert.Equal(t, "m^2*s^-2", squared.String())
	assert.Equal(t, Dimension{Length: 2, Time: -2}, squared.Dimension())

	assert.True(t, v.Pow(0).IsEmpty())
}

func TestCompositeDisplay(t *testing.T) {
	r := NewRegistry()
	kg := r.Get("kg")
	m := r.Get("m")
	s := r.Get("s")

	tests := []struct {
		name string
		c    Composite
		want string
	}{
		{"single", Single(m), "m"},
		{"velocity", NewComposite(Part{m, 1}, Part{s, -1}), "m/s"},
		{"force matches newton", NewComposite(Part{kg, 1}, Part{m, 1}, Part{s, -2}), "N"},
		{"reciprocal", NewComposite(Part{s, -1}), "1/s"},
		{"grouped denominator", NewComposite(Part{m, 1}, Part{kg, -1}, Part{s, -1}), "m/(kg*s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(tt.c))
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name  string
		from  string
		to    string
		value float64
	}{
		{"km to mi", "km", "mi", 42},
		{"kg to lb", "kg", "lb", 3.5},
		{"h to s", "h", "s", 1.25},
		{"celsius to fahrenheit", "°C", "°F", 36.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := Single(r.Get(tt.from))
			to := Single(r.Get(tt.to))

			converted, err := Convert(tt.value, from, to)
			assert.NoError(t, err)

			back, err := Convert(converted, to, from)
			assert.NoError(t, err)

			assert.True(t, abs(back-tt.value) < 1e-9)
		})
	}
}

func TestConvertValues(t *testing.T) {
	r := NewRegistry()

	celsius, err := Convert(0, Single(r.Get("°C")), Single(r.Get("°F")))
	assert.NoError(t, err)
	assert.True(t, abs(celsius-32) < 1e-9)

	meters, err := Convert(2, Single(r.Get("km")), Single(r.Get("m")))
	assert.NoError(t, err)
	assert.True(t, abs(meters-2000) < 1e-9)
}

func TestConvertIncompatible(t *testing.T) {
	r := NewRegistry()

	_, err := Convert(1, Single(r.Get("m")), Single(r.Get("kg")))
	assert.IsError(t, err, ErrIncompatibleDimensions)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
