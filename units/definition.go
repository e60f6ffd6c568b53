package units

// Definition describes a single named unit and how it maps onto the SI
// base scale of its dimension.
//
// Conversion to the base magnitude is value*Multiplier + Offset. Offset is
// non-zero only for absolute temperature scales (°C, °F); offset units can
// never take an SI prefix and never participate in composite units beyond
// power 1.
type Definition struct {
	Symbol     string
	Name       string
	Dimension  Dimension
	Multiplier float64
	Offset     float64
	Pluralizes bool
}

// HasOffset reports whether the unit uses an additive offset (absolute
// temperature scales).
func (d *Definition) HasOffset() bool {
	return d.Offset != 0
}

var (
	dimLength      = Dimension{Length: 1}
	dimMass        = Dimension{Mass: 1}
	dimTime        = Dimension{Time: 1}
	dimCurrent     = Dimension{Current: 1}
	dimTemperature = Dimension{Temperature: 1}
	dimAmount      = Dimension{Amount: 1}
	dimLuminosity  = Dimension{Luminosity: 1}
	dimInformation = Dimension{Information: 1}

	dimArea         = Dimension{Length: 2}
	dimVolume       = Dimension{Length: 3}
	dimFrequency    = Dimension{Time: -1}
	dimVelocity     = Dimension{Length: 1, Time: -1}
	dimAcceleration = Dimension{Length: 1, Time: -2}
	dimForce        = Dimension{Length: 1, Mass: 1, Time: -2}
	dimPressure     = Dimension{Length: -1, Mass: 1, Time: -2}
	dimEnergy       = Dimension{Length: 2, Mass: 1, Time: -2}
	dimPower        = Dimension{Length: 2, Mass: 1, Time: -3}
	dimVoltage      = Dimension{Length: 2, Mass: 1, Time: -3, Current: -1}
	dimResistance   = Dimension{Length: 2, Mass: 1, Time: -3, Current: -2}
	dimCharge       = Dimension{Time: 1, Current: 1}
)

// builtinDefinitions lists every directly registered unit. The registry
// copies this table at construction so custom units never mutate it.
var builtinDefinitions = []Definition{
	// SI base
	{Symbol: "m", Name: "meter", Dimension: dimLength, Multiplier: 1},
	{Symbol: "g", Name: "gram", Dimension: dimMass, Multiplier: 0.001},
	{Symbol: "s", Name: "second", Dimension: dimTime, Multiplier: 1},
	{Symbol: "A", Name: "ampere", Dimension: dimCurrent, Multiplier: 1},
	{Symbol: "K", Name: "kelvin", Dimension: dimTemperature, Multiplier: 1},
	{Symbol: "mol", Name: "mole", Dimension: dimAmount, Multiplier: 1},
	{Symbol: "cd", Name: "candela", Dimension: dimLuminosity, Multiplier: 1},

	// SI derived
	{Symbol: "Hz", Name: "hertz", Dimension: dimFrequency, Multiplier: 1},
	{Symbol: "N", Name: "newton", Dimension: dimForce, Multiplier: 1},
	{Symbol: "Pa", Name: "pascal", Dimension: dimPressure, Multiplier: 1},
	{Symbol: "J", Name: "joule", Dimension: dimEnergy, Multiplier: 1},
	{Symbol: "W", Name: "watt", Dimension: dimPower, Multiplier: 1},
	{Symbol: "V", Name: "volt", Dimension: dimVoltage, Multiplier: 1},
	{Symbol: "Ω", Name: "ohm", Dimension: dimResistance, Multiplier: 1},
	{Symbol: "C", Name: "coulomb", Dimension: dimCharge, Multiplier: 1},
	{Symbol: "L", Name: "liter", Dimension: dimVolume, Multiplier: 0.001},

	// Temperature scales with offsets
	{Symbol: "°C", Name: "celsius", Dimension: dimTemperature, Multiplier: 1, Offset: 273.15},
	{Symbol: "°F", Name: "fahrenheit", Dimension: dimTemperature, Multiplier: 5.0 / 9.0, Offset: 459.67 * 5.0 / 9.0},

	// Time above the second
	{Symbol: "min", Name: "minute", Dimension: dimTime, Multiplier: 60},
	{Symbol: "h", Name: "hour", Dimension: dimTime, Multiplier: 3600},
	{Symbol: "day", Name: "day", Dimension: dimTime, Multiplier: 86400, Pluralizes: true},
	{Symbol: "week", Name: "week", Dimension: dimTime, Multiplier: 604800, Pluralizes: true},
	{Symbol: "month", Name: "month", Dimension: dimTime, Multiplier: 2629800, Pluralizes: true},
	{Symbol: "year", Name: "year", Dimension: dimTime, Multiplier: 31557600, Pluralizes: true},

	// Imperial length
	{Symbol: "in", Name: "inch", Dimension: dimLength, Multiplier: 0.0254},
	{Symbol: "ft", Name: "foot", Dimension: dimLength, Multiplier: 0.3048},
	{Symbol: "yd", Name: "yard", Dimension: dimLength, Multiplier: 0.9144},
	{Symbol: "mi", Name: "mile", Dimension: dimLength, Multiplier: 1609.344},

	// Imperial mass
	{Symbol: "oz", Name: "ounce", Dimension: dimMass, Multiplier: 0.028349523125},
	{Symbol: "lb", Name: "pound", Dimension: dimMass, Multiplier: 0.45359237},
	{Symbol: "st", Name: "stone", Dimension: dimMass, Multiplier: 6.35029318},
	{Symbol: "t", Name: "tonne", Dimension: dimMass, Multiplier: 1000},

	// Volume
	{Symbol: "gal", Name: "gallon", Dimension: dimVolume, Multiplier: 0.003785411784},
	{Symbol: "pt", Name: "pint", Dimension: dimVolume, Multiplier: 0.000473176473},

	// Area
	{Symbol: "ha", Name: "hectare", Dimension: dimArea, Multiplier: 10000},
	{Symbol: "acre", Name: "acre", Dimension: dimArea, Multiplier: 4046.8564224},

	// Data, on a bit base scale
	{Symbol: "bit", Name: "bit", Dimension: dimInformation, Multiplier: 1, Pluralizes: true},
	{Symbol: "B", Name: "byte", Dimension: dimInformation, Multiplier: 8},

	// Misc
	{Symbol: "bar", Name: "bar", Dimension: dimPressure, Multiplier: 100000},
	{Symbol: "atm", Name: "atmosphere", Dimension: dimPressure, Multiplier: 101325},
	{Symbol: "cal", Name: "calorie", Dimension: dimEnergy, Multiplier: 4.184},
	{Symbol: "Wh", Name: "watt hour", Dimension: dimEnergy, Multiplier: 3600},
	{Symbol: "eV", Name: "electronvolt", Dimension: dimEnergy, Multiplier: 1.602176634e-19},
	{Symbol: "hp", Name: "horsepower", Dimension: dimPower, Multiplier: 745.69987158227},
	{Symbol: "mph", Name: "mile per hour", Dimension: dimVelocity, Multiplier: 0.44704},
	{Symbol: "kph", Name: "kilometer per hour", Dimension: dimVelocity, Multiplier: 1.0 / 3.6},
	{Symbol: "kn", Name: "knot", Dimension: dimVelocity, Multiplier: 0.514444444444},
}

// builtinAliases maps alternative spellings to a registered symbol.
var builtinAliases = map[string]string{
	"meter": "m", "meters": "m", "metre": "m", "metres": "m",
	"gram": "g", "grams": "g",
	"sec": "s", "secs": "s", "second": "s", "seconds": "s",
	"amp": "A", "amps": "A", "ampere": "A", "amperes": "A",
	"kelvin": "K",
	"mole":  "mol", "moles": "mol",
	"hertz": "Hz",
	"newton": "N", "newtons": "N",
	"pascal": "Pa", "pascals": "Pa",
	"joule": "J", "joules": "J",
	"watt": "W", "watts": "W",
	"volt": "V", "volts": "V",
	"ohm": "Ω", "ohms": "Ω",
	"liter": "L", "liters": "L", "litre": "L", "litres": "L", "l": "L",
	"celsius": "°C", "C": "°C",
	"fahrenheit": "°F", "F": "°F",
	"minute": "min", "minutes": "min", "mins": "min",
	"hour": "h", "hours": "h", "hr": "h", "hrs": "h",
	"days": "day", "d": "day",
	"weeks": "week", "wk": "week",
	"months": "month", "mo": "month",
	"years": "year", "yr": "year", "yrs": "year",
	"inch": "in", "inches": "in",
	"foot": "ft", "feet": "ft",
	"yard": "yd", "yards": "yd",
	"mile": "mi", "miles": "mi",
	"ounce": "oz", "ounces": "oz",
	"pound": "lb", "pounds": "lb", "lbs": "lb",
	"stone": "st", "stones": "st",
	"tonne": "t", "tonnes": "t", "ton": "t", "tons": "t",
	"gallon": "gal", "gallons": "gal",
	"pint": "pt", "pints": "pt",
	"bits": "bit",
	"byte": "B", "bytes": "B",
	"hectare": "ha", "hectares": "ha",
	"acres":   "acre",
	"calorie": "cal", "calories": "cal",
	"horsepower": "hp",
	"knot": "kn", "knots": "kn",
}
