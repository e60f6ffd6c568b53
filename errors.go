package calcpad

import "errors"

// Common errors used throughout the calcpad package
var (
	// Unit configuration errors

	// ErrUnknownDimension is returned when a custom unit names a dimension axis
	// that does not exist.
	ErrUnknownDimension = errors.New("unknown dimension axis")
	// ErrDimensionlessUnit indicates a custom unit declared no dimension at all.
	ErrDimensionlessUnit = errors.New("custom unit must declare at least one dimension axis")
	// ErrInvalidMultiplier indicates a custom unit multiplier that is zero or negative.
	ErrInvalidMultiplier = errors.New("custom unit multiplier must be positive")

	// Display configuration errors

	// ErrUnknownLocale is returned when the display locale cannot be parsed as a BCP 47 tag.
	ErrUnknownLocale = errors.New("unknown display locale")
	// ErrInvalidPrecision indicates a precision outside the supported range.
	ErrInvalidPrecision = errors.New("display precision out of range")
	// ErrInvalidSciBounds indicates scientific notation bounds that are not positive
	// or are inverted.
	ErrInvalidSciBounds = errors.New("scientific notation bounds must be positive with lower below upper")

	// Currency configuration errors

	// ErrInvalidRate is returned when an exchange rate is zero or negative.
	ErrInvalidRate = errors.New("exchange rate must be positive")
	// ErrInvalidCurrencyCode indicates a currency code that is not three letters.
	ErrInvalidCurrencyCode = errors.New("currency code must be a three letter ISO code")
	// ErrMissingBaseCurrency indicates rates were configured without a base currency.
	ErrMissingBaseCurrency = errors.New("exchange rates require a base currency")
)
