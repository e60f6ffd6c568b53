package units

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestRegistryDirectLookup(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name   string
		symbol string
		want   string
	}{
		{"si base", "m", "meter"},
		{"derived", "N", "newton"},
		{"alias singular", "meter", "meter"},
		{"alias plural", "meters", "meter"},
		{"temperature", "°C", "celsius"},
		{"temperature alias", "celsius", "celsius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := r.Get(tt.symbol)
			assert.NotZero(t, def)
			assert.Equal(t, tt.want, def.Name)
		})
	}
}

func TestRegistryPrefixResolution(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name       string
		symbol     string
		multiplier float64
	}{
		{"kilometer", "km", 1000},
		{"millimeter", "mm", 0.001},
		{"kilogram", "kg", 1},
		{"microsecond", "µs", 1e-6},
		{"ascii micro", "us", 1e-6},
		{"decameter", "dam", 10},
		{"megawatt", "MW", 1e6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := r.Get(tt.symbol)
			assert.NotZero(t, def)
			assert.Equal(t, tt.multiplier, def.Multiplier)
		})
	}
}

func TestRegistryDataUnits(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name       string
		symbol     string
		multiplier float64
	}{
		{"bit", "bit", 1},
		{"bit plural", "bits", 1},
		{"byte", "B", 8},
		{"byte word", "bytes", 8},
		{"kilobyte", "kB", 8000},
		{"megabyte", "MB", 8e6},
		{"kibibyte", "KiB", 8 * 1024},
		{"mebibyte", "MiB", 8 * 1024 * 1024},
		{"gibibyte", "GiB", 8 * 1024 * 1024 * 1024},
		{"kibibit", "Kibit", 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := r.Get(tt.symbol)
			assert.NotZero(t, def)
			assert.Equal(t, dimInformation, def.Dimension)
			assert.Equal(t, tt.multiplier, def.Multiplier)
		})
	}

	// binary prefixes attach to data units only
	assert.Zero(t, r.Get("Kim"))
	assert.Zero(t, r.Get("Gis"))
}

func TestRegistryRejectsInvalidSymbols(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name   string
		symbol string
	}{
		{"unknown word", "flibbers"},
		{"double prefix", "kkm"},
		{"prefixed offset unit", "m°C"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Zero(t, r.Get(tt.symbol))
		})
	}
}

func TestRegistryCustomUnits(t *testing.T) {
	r := NewRegistry()

	err := r.Register(Definition{
		Symbol:     "furlong",
		Name:       "furlong",
		Dimension:  Dimension{Length: 1},
		Multiplier: 201.168,
	})
	assert.NoError(t, err)

	def := r.Get("furlong")
	assert.NotZero(t, def)
	assert.Equal(t, 201.168, def.Multiplier)

	// duplicate registration fails
	err = r.Register(Definition{Symbol: "furlong"})
	assert.IsError(t, err, ErrDuplicateUnit)

	// aliases must target a registered symbol
	err = r.RegisterAlias("furlongs", "furlong")
	assert.NoError(t, err)
	assert.NotZero(t, r.Get("furlongs"))

	err = r.RegisterAlias("x", "nosuch")
	assert.IsError(t, err, ErrUnknownUnit)
}
