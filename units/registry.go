package units

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	ErrUnknownUnit    = errors.New("unknown unit")
	ErrDuplicateUnit  = errors.New("unit symbol already registered")
	ErrPrefixOnOffset = errors.New("offset units cannot take an SI prefix")
)

// Registry resolves unit symbols to definitions. Lookup tries, in order: a
// directly registered symbol, a registered alias, and finally an
// SI-prefixed derivative of a registered unit.
type Registry struct {
	units   map[string]*Definition
	aliases map[string]string
	// resolved prefix derivatives are cached so repeated lookups of e.g.
	// "km" do not re-derive the definition
	derived map[string]*Definition
}

// NewRegistry builds a registry seeded with the builtin unit table.
func NewRegistry() *Registry {
	r := &Registry{
		units:   make(map[string]*Definition, len(builtinDefinitions)),
		aliases: make(map[string]string, len(builtinAliases)),
		derived: make(map[string]*Definition),
	}

	for i := range builtinDefinitions {
		def := builtinDefinitions[i]
		r.units[def.Symbol] = &def
	}

	for alias, target := range builtinAliases {
		r.aliases[alias] = target
	}

	return r
}

// Register adds a custom unit definition. The symbol must not collide with
// an existing unit or alias.
func (r *Registry) Register(def Definition) error {
	if _, ok := r.units[def.Symbol]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateUnit, def.Symbol)
	}

	if _, ok := r.aliases[def.Symbol]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateUnit, def.Symbol)
	}

	d := def
	r.units[d.Symbol] = &d

	return nil
}

// RegisterAlias adds an alternative spelling for an already registered symbol.
func (r *Registry) RegisterAlias(alias, symbol string) error {
	if _, ok := r.units[symbol]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUnit, symbol)
	}

	r.aliases[alias] = symbol

	return nil
}

// Get resolves a symbol to a unit definition. It returns nil when the
// symbol does not name a known unit, alias, or prefixed unit.
func (r *Registry) Get(symbol string) *Definition {
	if def := r.lookupDirect(symbol); def != nil {
		return def
	}

	if def, ok := r.derived[symbol]; ok {
		return def
	}

	def := r.resolvePrefixed(symbol)
	if def != nil {
		r.derived[symbol] = def
	}

	return def
}

// Known reports whether the symbol resolves to any unit.
func (r *Registry) Known(symbol string) bool {
	return r.Get(symbol) != nil
}

func (r *Registry) lookupDirect(symbol string) *Definition {
	if def, ok := r.units[symbol]; ok {
		return def
	}

	if target, ok := r.aliases[symbol]; ok {
		return r.units[target]
	}

	return nil
}

// resolvePrefixed strips the longest matching SI or binary prefix and
// requires the remainder to be a directly registered, non-offset unit.
// Binary prefixes attach only to information units. Double prefixes
// such as "kkm" are rejected: if the remainder itself starts with a prefix
// over a resolvable unit, the whole symbol is considered invalid rather
// than silently interpreted.
func (r *Registry) resolvePrefixed(symbol string) *Definition {
	for _, prefix := range prefixesByLength {
		if !strings.HasPrefix(symbol, prefix) || len(symbol) == len(prefix) {
			continue
		}

		rest := symbol[len(prefix):]

		base := r.lookupDirect(rest)
		if base == nil {
			continue
		}

		if base.HasOffset() {
			continue
		}

		if isBinaryPrefix(prefix) && base.Dimension != dimInformation {
			continue
		}

		if r.startsWithPrefixedUnit(rest) {
			continue
		}

		return &Definition{
			Symbol:     prefix + base.Symbol,
			Name:       prefix + base.Name,
			Dimension:  base.Dimension,
			Multiplier: base.Multiplier * prefixFactor(prefix),
			Pluralizes: false,
		}
	}

	return nil
}

// startsWithPrefixedUnit reports whether s is itself a prefix followed by
// a resolvable unit, which would make the outer symbol double-prefixed.
func (r *Registry) startsWithPrefixedUnit(s string) bool {
	for _, prefix := range prefixesByLength {
		if !strings.HasPrefix(s, prefix) || len(s) == len(prefix) {
			continue
		}

		if base := r.lookupDirect(s[len(prefix):]); base != nil && !base.HasOffset() {
			return true
		}
	}

	return false
}
