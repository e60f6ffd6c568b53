package calcpad

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "calcpad.yaml")
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)

	return path
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(t, err)

	assert.Equal(t, 10, config.Display.Precision)
	assert.Equal(t, "en", config.Display.Locale)
	assert.Equal(t, 1e15, config.Display.ScientificUpper)
	assert.Equal(t, 0, len(config.Currency.Rates))
}

func TestLoadConfigParsesFullFile(t *testing.T) {
	path := writeConfig(t, `
display:
  precision: 4
  group_digits: true
  locale: de

units:
  custom:
    - symbol: floz
      name: fluid ounce
      dimension:
        length: 3
      multiplier: 0.0000295735
  aliases:
    klick: km

currency:
  base: usd
  rates:
    eur: 0.9
    gbp: 0.78

constants:
  gravity: 9.81
`)

	config, err := LoadConfig(path)
	assert.NoError(t, err)

	assert.Equal(t, 4, config.Display.Precision)
	assert.True(t, config.Display.GroupDigits)
	assert.Equal(t, "de", config.Display.Locale)

	// currency codes are canonicalized to uppercase
	assert.Equal(t, "USD", config.Currency.Base)
	assert.Equal(t, 0.9, config.Currency.Rates["EUR"])

	assert.Equal(t, 9.81, config.Constants["gravity"])
	assert.Equal(t, 1, len(config.Units.Custom))
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
display:
  precison: 4
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "precision out of range",
			content: "display:\n  precision: 20\n",
		},
		{
			name:    "unknown locale",
			content: "display:\n  locale: not-a-locale-tag-at-all\n",
		},
		{
			name:    "rates without base",
			content: "currency:\n  rates:\n    EUR: 0.9\n",
		},
		{
			name:    "negative rate",
			content: "currency:\n  base: USD\n  rates:\n    EUR: -1\n",
		},
		{
			name:    "bad currency code",
			content: "currency:\n  base: USD\n  rates:\n    EURO: 0.9\n",
		},
		{
			name:    "unit without dimension",
			content: "units:\n  custom:\n    - symbol: blob\n      multiplier: 2\n",
		},
		{
			name:    "unit with unknown axis",
			content: "units:\n  custom:\n    - symbol: blob\n      multiplier: 2\n      dimension:\n        flavor: 1\n",
		},
		{
			name:    "unit with zero multiplier",
			content: "units:\n  custom:\n    - symbol: blob\n      multiplier: 0\n      dimension:\n        mass: 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			_, err := LoadConfig(path)
			assert.Error(t, err)
			assert.IsError(t, err, ErrConfigValidation)
		})
	}
}

func TestLoadConfigExpandsEnvVars(t *testing.T) {
	t.Setenv("CALCPAD_BASE", "CHF")

	path := writeConfig(t, `
currency:
  base: ${CALCPAD_BASE}
  rates:
    EUR: 1.05
`)

	config, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "CHF", config.Currency.Base)
}

func TestUnitRegistryFromConfig(t *testing.T) {
	config := getDefaultConfig()
	config.Units.Custom = []CustomUnit{
		{
			Symbol:     "furlong",
			Name:       "furlong",
			Dimension:  map[string]int{"length": 1},
			Multiplier: 201.168,
			Pluralizes: true,
		},
	}
	config.Units.Aliases = map[string]string{"klick": "km"}

	registry, err := config.UnitRegistry()
	assert.NoError(t, err)

	def := registry.Get("furlong")
	assert.NotZero(t, def)
	assert.Equal(t, 201.168, def.Multiplier)
	assert.Equal(t, 1, def.Dimension.Length)

	// aliases resolve through prefixed builtins too
	assert.NotZero(t, registry.Get("klick"))
}

func TestUnitRegistryRejectsCollision(t *testing.T) {
	config := getDefaultConfig()
	config.Units.Custom = []CustomUnit{
		{Symbol: "m", Dimension: map[string]int{"length": 1}, Multiplier: 2},
	}

	_, err := config.UnitRegistry()
	assert.Error(t, err)
}

func TestStaticRatesCrossRate(t *testing.T) {
	rates := NewStaticRates("USD", map[string]float64{
		"EUR": 0.9,
		"GBP": 0.78,
	})

	r, ok := rates.Rate("USD", "EUR")
	assert.True(t, ok)
	assert.True(t, r.Equal(decimal.NewFromFloat(0.9)))

	// cross rate goes through the base
	r, ok = rates.Rate("EUR", "GBP")
	assert.True(t, ok)

	expected := decimal.NewFromFloat(0.78).Div(decimal.NewFromFloat(0.9))
	assert.True(t, r.Equal(expected))

	_, ok = rates.Rate("EUR", "JPY")
	assert.False(t, ok)

	r, ok = rates.Rate("JPY", "JPY")
	assert.True(t, ok)
	assert.True(t, r.Equal(decimal.NewFromInt(1)))
}

func TestDocumentFromConfig(t *testing.T) {
	config := getDefaultConfig()
	config.Currency.Base = "USD"
	config.Currency.Rates = map[string]float64{"EUR": 0.9}
	config.Constants["gravity"] = 9.81

	doc, err := config.Document()
	assert.NoError(t, err)

	rn := doc.SetLine(1, "100 USD in EUR =>")
	assert.False(t, rn.IsError())
	assert.Equal(t, "90 EUR", rn.Result)

	rn = doc.SetLine(2, "gravity * 2 =>")
	assert.False(t, rn.IsError())
	assert.Equal(t, "19.62", rn.Result)
}
