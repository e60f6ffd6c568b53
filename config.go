// Package calcpad wires configuration into the expression engine: display
// formatting, custom units, constants, and a static exchange-rate table,
// loaded from a YAML file with environment variable expansion.
package calcpad

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/shibukawa/calcpad/engine"
	"github.com/shibukawa/calcpad/units"
	"github.com/shibukawa/calcpad/value"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// Config represents the calcpad configuration
type Config struct {
	Display   DisplayConfig      `yaml:"display"`
	Units     UnitsConfig        `yaml:"units"`
	Currency  CurrencyConfig     `yaml:"currency"`
	Constants map[string]float64 `yaml:"constants"`
}

// DisplayConfig represents result formatting settings
type DisplayConfig struct {
	Precision int `yaml:"precision"`
	// GroupDigits renders thousands separators in the locale's convention
	GroupDigits bool   `yaml:"group_digits"`
	Locale      string `yaml:"locale"`
	// ScientificUpper and ScientificLower bound the magnitudes shown in
	// plain notation; outside them results switch to scientific notation
	ScientificUpper float64 `yaml:"scientific_upper"`
	ScientificLower float64 `yaml:"scientific_lower"`
}

// UnitsConfig represents custom unit definitions and spellings
type UnitsConfig struct {
	Custom  []CustomUnit      `yaml:"custom"`
	Aliases map[string]string `yaml:"aliases"`
}

// CustomUnit defines one user unit in terms of the SI base scale.
// Dimension maps axis names (length, mass, time, current, temperature,
// amount, luminosity) to integer exponents.
type CustomUnit struct {
	Symbol     string         `yaml:"symbol"`
	Name       string         `yaml:"name"`
	Dimension  map[string]int `yaml:"dimension"`
	Multiplier float64        `yaml:"multiplier"`
	Offset     float64        `yaml:"offset"`
	Pluralizes bool           `yaml:"pluralizes"`
}

// CurrencyConfig holds a static exchange-rate snapshot. Rates quote one
// unit of the base currency in each listed currency.
type CurrencyConfig struct {
	Base  string             `yaml:"base"`
	Rates map[string]float64 `yaml:"rates"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Check if config file exists
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		// Return default configuration if file doesn't exist
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Expand environment variables before validation so expanded values
	// are what gets checked
	expandConfigEnvVars(&config)

	// Validate the configuration
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	// Apply defaults for missing values
	applyDefaults(&config)

	return &config, nil
}

var currencyCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// dimensionAxes maps configuration axis names onto Dimension fields.
var dimensionAxes = map[string]func(*units.Dimension, int){
	"length":      func(d *units.Dimension, n int) { d.Length = n },
	"mass":        func(d *units.Dimension, n int) { d.Mass = n },
	"time":        func(d *units.Dimension, n int) { d.Time = n },
	"current":     func(d *units.Dimension, n int) { d.Current = n },
	"temperature": func(d *units.Dimension, n int) { d.Temperature = n },
	"amount":      func(d *units.Dimension, n int) { d.Amount = n },
	"luminosity":  func(d *units.Dimension, n int) { d.Luminosity = n },
	"information": func(d *units.Dimension, n int) { d.Information = n },
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	// Validate display settings
	if config.Display.Precision < 0 || config.Display.Precision > 15 {
		return fmt.Errorf("%w: %w: display.precision must be between 0 and 15, got %d",
			ErrConfigValidation, ErrInvalidPrecision, config.Display.Precision)
	}

	if config.Display.ScientificUpper < 0 || config.Display.ScientificLower < 0 {
		return fmt.Errorf("%w: %w", ErrConfigValidation, ErrInvalidSciBounds)
	}

	if config.Display.ScientificUpper != 0 && config.Display.ScientificLower != 0 &&
		config.Display.ScientificLower >= config.Display.ScientificUpper {
		return fmt.Errorf("%w: %w", ErrConfigValidation, ErrInvalidSciBounds)
	}

	if config.Display.Locale != "" {
		if _, err := language.Parse(config.Display.Locale); err != nil {
			return fmt.Errorf("%w: %w: %q", ErrConfigValidation, ErrUnknownLocale, config.Display.Locale)
		}
	}

	// Validate custom units
	for _, cu := range config.Units.Custom {
		if cu.Symbol == "" {
			return fmt.Errorf("%w: custom unit: symbol is required", ErrConfigValidation)
		}

		if cu.Multiplier <= 0 {
			return fmt.Errorf("%w: %w: unit %q", ErrConfigValidation, ErrInvalidMultiplier, cu.Symbol)
		}

		if len(cu.Dimension) == 0 {
			return fmt.Errorf("%w: %w: unit %q", ErrConfigValidation, ErrDimensionlessUnit, cu.Symbol)
		}

		for axis := range cu.Dimension {
			if _, ok := dimensionAxes[axis]; !ok {
				return fmt.Errorf("%w: %w: %q in unit %q", ErrConfigValidation, ErrUnknownDimension, axis, cu.Symbol)
			}
		}
	}

	// Validate alias targets
	for alias, target := range config.Units.Aliases {
		if alias == "" || target == "" {
			return fmt.Errorf("%w: unit alias entries need both a spelling and a target symbol", ErrConfigValidation)
		}
	}

	// Validate exchange rates
	if len(config.Currency.Rates) > 0 && config.Currency.Base == "" {
		return fmt.Errorf("%w: %w", ErrConfigValidation, ErrMissingBaseCurrency)
	}

	if config.Currency.Base != "" && !currencyCodePattern.MatchString(config.Currency.Base) {
		return fmt.Errorf("%w: %w: %q", ErrConfigValidation, ErrInvalidCurrencyCode, config.Currency.Base)
	}

	for code, rate := range config.Currency.Rates {
		if !currencyCodePattern.MatchString(code) {
			return fmt.Errorf("%w: %w: %q", ErrConfigValidation, ErrInvalidCurrencyCode, code)
		}

		if rate <= 0 {
			return fmt.Errorf("%w: %w: %s", ErrConfigValidation, ErrInvalidRate, code)
		}
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Precision:       10,
			GroupDigits:     false,
			Locale:          "en",
			ScientificUpper: 1e15,
			ScientificLower: 1e-9,
		},
		Units: UnitsConfig{
			Aliases: map[string]string{},
		},
		Constants: map[string]float64{},
	}
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	if config.Display.Precision == 0 {
		config.Display.Precision = 10
	}

	if config.Display.Locale == "" {
		config.Display.Locale = "en"
	}

	if config.Display.ScientificUpper == 0 {
		config.Display.ScientificUpper = 1e15
	}

	if config.Display.ScientificLower == 0 {
		config.Display.ScientificLower = 1e-9
	}

	if config.Units.Aliases == nil {
		config.Units.Aliases = map[string]string{}
	}

	if config.Constants == nil {
		config.Constants = map[string]float64{}
	}

	// Currency codes are case-insensitive in the file but canonical
	// uppercase everywhere else
	config.Currency.Base = strings.ToUpper(config.Currency.Base)

	if len(config.Currency.Rates) > 0 {
		normalized := make(map[string]float64, len(config.Currency.Rates))
		for code, rate := range config.Currency.Rates {
			normalized[strings.ToUpper(code)] = rate
		}

		config.Currency.Rates = normalized
	}
}

// DisplayOptions converts the display section into rendering options. The
// locale has been validated, so parse failures fall back to English.
func (c *Config) DisplayOptions() value.DisplayOptions {
	opts := value.DefaultDisplayOptions()

	opts.Precision = c.Display.Precision
	opts.GroupDigits = c.Display.GroupDigits
	opts.SciUpper = c.Display.ScientificUpper
	opts.SciLower = c.Display.ScientificLower

	if tag, err := language.Parse(c.Display.Locale); err == nil {
		opts.Locale = tag
	}

	return opts
}

// UnitRegistry builds a unit registry seeded with the builtin table plus
// the configured custom units and aliases.
func (c *Config) UnitRegistry() (*units.Registry, error) {
	registry := units.NewRegistry()

	for _, cu := range c.Units.Custom {
		var dim units.Dimension
		for axis, power := range cu.Dimension {
			dimensionAxes[axis](&dim, power)
		}

		err := registry.Register(units.Definition{
			Symbol:     cu.Symbol,
			Name:       cu.Name,
			Dimension:  dim,
			Multiplier: cu.Multiplier,
			Offset:     cu.Offset,
			Pluralizes: cu.Pluralizes,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to register custom unit %q: %w", cu.Symbol, err)
		}
	}

	for alias, target := range c.Units.Aliases {
		if err := registry.RegisterAlias(alias, target); err != nil {
			return nil, fmt.Errorf("failed to register unit alias %q: %w", alias, err)
		}
	}

	return registry, nil
}

// ExchangeRates returns the static rate table, or nil when no rates are
// configured so currency conversion reports rates as unavailable.
func (c *Config) ExchangeRates() value.RateProvider {
	if len(c.Currency.Rates) == 0 {
		return nil
	}

	return NewStaticRates(c.Currency.Base, c.Currency.Rates)
}

// Document builds a live document wired with this configuration. Extra
// engine options, such as a fixed clock, are applied after the
// configuration-derived ones.
func (c *Config) Document(options ...engine.Option) (*engine.Document, error) {
	registry, err := c.UnitRegistry()
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithUnits(registry),
		engine.WithDisplay(c.DisplayOptions()),
	}

	if rates := c.ExchangeRates(); rates != nil {
		opts = append(opts, engine.WithRates(rates))
	}

	opts = append(opts, options...)

	doc := engine.New(opts...)

	for name, v := range c.Constants {
		doc.Define(name, value.NewNumber(v), "")
	}

	return doc, nil
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	// Try to load .env file from current directory
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	// Pattern for ${VAR} format
	re1 := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re1.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		return os.Getenv(varName)
	})

	// Pattern for $VAR format (word boundaries)
	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		return os.Getenv(varName)
	})

	return s
}

// expandConfigEnvVars expands environment variables in config
func expandConfigEnvVars(config *Config) {
	config.Display.Locale = expandEnvVars(config.Display.Locale)
	config.Currency.Base = expandEnvVars(config.Currency.Base)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
