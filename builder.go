package unitconv

import (
	"fmt"
	"math"
)

// CategoryBuilder assembles a Category the way rates are registered against a
// base currency: the base unit has factor 1, every other unit is added with
// its factor to the base (e.g. Kilometer -> 1000 for a Meter base).
type CategoryBuilder struct {
	cat *Category
	err error
}

// NewLinearCategory starts a LinearScale category whose base unit is base.
func NewLinearCategory(name, base string, aliases ...string) *CategoryBuilder {
	b := newBuilder(name, LinearScale)
	return b.AddFactor(base, 1, aliases...)
}

// NewTemperatureCategory starts an AffineTemperature category. Units are
// added with AddScale.
func NewTemperatureCategory(name string) *CategoryBuilder {
	return newBuilder(name, AffineTemperature)
}

func newBuilder(name string, kind Kind) *CategoryBuilder {
	b := &CategoryBuilder{
		cat: &Category{
			Name:    name,
			Kind:    kind,
			index:   make(map[string]int),
			aliases: make(map[string]string),
		},
	}
	if name == "" {
		b.err = fmt.Errorf("%w: empty category name", ErrInvalidTable)
	}
	return b
}

// AddFactor registers unit with its factor to the base unit (1 unit = factor base).
func (b *CategoryBuilder) AddFactor(unit string, toBase float64, aliases ...string) *CategoryBuilder {
	if b.err != nil {
		return b
	}
	if b.cat.Kind != LinearScale {
		b.err = fmt.Errorf("%w: %s: factor unit %q in temperature category", ErrInvalidTable, b.cat.Name, unit)
		return b
	}
	if toBase <= 0 || math.IsNaN(toBase) || math.IsInf(toBase, 0) {
		b.err = fmt.Errorf("%w: %s: factor of %q must be positive and finite, got %v", ErrInvalidTable, b.cat.Name, unit, toBase)
		return b
	}
	return b.add(Unit{Name: unit, Descriptor: Descriptor{Kind: LinearScale, Factor: toBase}}, aliases)
}

// AddScale registers a temperature unit identified by its scale tag.
func (b *CategoryBuilder) AddScale(unit string, scale Scale, aliases ...string) *CategoryBuilder {
	if b.err != nil {
		return b
	}
	if b.cat.Kind != AffineTemperature {
		b.err = fmt.Errorf("%w: %s: scale unit %q in linear category", ErrInvalidTable, b.cat.Name, unit)
		return b
	}
	switch scale {
	case Celsius, Fahrenheit, Kelvin:
	default:
		b.err = fmt.Errorf("%w: %s: unsupported scale %q for %q", ErrInvalidTable, b.cat.Name, scale, unit)
		return b
	}
	return b.add(Unit{Name: unit, Descriptor: Descriptor{Kind: AffineTemperature, Scale: scale}}, aliases)
}

func (b *CategoryBuilder) add(u Unit, aliases []string) *CategoryBuilder {
	if u.Name == "" {
		b.err = fmt.Errorf("%w: %s: empty unit name", ErrInvalidTable, b.cat.Name)
		return b
	}
	if b.taken(u.Name) {
		b.err = fmt.Errorf("%w: %s: duplicate unit %q", ErrInvalidTable, b.cat.Name, u.Name)
		return b
	}
	b.cat.index[u.Name] = len(b.cat.Units)
	b.cat.Units = append(b.cat.Units, u)
	for _, alias := range aliases {
		if alias == "" || b.taken(alias) {
			b.err = fmt.Errorf("%w: %s: alias %q of %q collides", ErrInvalidTable, b.cat.Name, alias, u.Name)
			return b
		}
		b.cat.aliases[alias] = u.Name
	}
	return b
}

func (b *CategoryBuilder) taken(name string) bool {
	if _, ok := b.cat.index[name]; ok {
		return true
	}
	_, ok := b.cat.aliases[name]
	return ok
}

// Build validates and returns the category. The builder must not be reused.
func (b *CategoryBuilder) Build() (*Category, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.cat.Units) < 2 {
		return nil, fmt.Errorf("%w: %s: needs at least two units, has %d", ErrInvalidTable, b.cat.Name, len(b.cat.Units))
	}
	return b.cat, nil
}

func mustBuild(b *CategoryBuilder) *Category {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
