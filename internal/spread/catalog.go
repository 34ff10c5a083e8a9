package spread

import "strings"

// Catalog is an immutable registry of spread definitions.
type Catalog struct {
	ordered []Definition
	byType  map[Type]int
	def     Type
}

// NewCatalog builds a catalog from definitions in display order.
// def must be one of the registered types; otherwise the first definition is the default.
func NewCatalog(def Type, defs ...Definition) *Catalog {
	c := &Catalog{
		ordered: make([]Definition, len(defs)),
		byType:  make(map[Type]int, len(defs)),
		def:     def,
	}
	copy(c.ordered, defs)
	for i, d := range c.ordered {
		c.byType[d.Type] = i
	}
	if _, ok := c.byType[def]; !ok && len(defs) > 0 {
		c.def = defs[0].Type
	}
	return c
}

// Find returns the definition for t, or the default when t is not registered.
func (c *Catalog) Find(t Type) Definition {
	if i, ok := c.byType[t]; ok {
		return c.ordered[i]
	}
	return c.Default()
}

// Has reports whether t is registered.
func (c *Catalog) Has(t Type) bool {
	_, ok := c.byType[t]
	return ok
}

// All returns every definition, smallest reading first.
func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Default returns the fallback definition.
func (c *Catalog) Default() Definition {
	if i, ok := c.byType[c.def]; ok {
		return c.ordered[i]
	}
	return Definition{}
}

// typeAliases maps user-typed names to spread types.
var typeAliases = map[string]Type{
	"one":      TypeOneCard,
	"1":        TypeOneCard,
	"single":   TypeOneCard,
	"two":      TypeEnergyAdvice,
	"2":        TypeEnergyAdvice,
	"two_card": TypeEnergyAdvice,
	"three":    TypePastPresentFuture,
	"3":        TypePastPresentFuture,
	"ppf":      TypePastPresentFuture,
	"four":     TypePathForward,
	"4":        TypePathForward,
	"path":     TypePathForward,
	"celtic":   TypeCelticCross,
	"10":       TypeCelticCross,
	"cross":    TypeCelticCross,
	// names used by the terminal menu
	"one_card":   TypeOneCard,
	"three_card": TypePastPresentFuture,
	"four_card":  TypePathForward,
}

// ParseType resolves a canonical name or alias. Matching ignores case and dashes.
func ParseType(s string) (Type, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	if key == "" {
		return TypeUnknown, false
	}
	if Builtin().Has(Type(key)) {
		return Type(key), true
	}
	if t, ok := typeAliases[key]; ok {
		return t, true
	}
	return TypeUnknown, false
}
