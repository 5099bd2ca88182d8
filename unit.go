package unitconv

// Kind selects how a category converts between its units.
type Kind int

const (
	// LinearScale categories convert through a multiplicative factor to the base unit.
	LinearScale Kind = iota
	// AffineTemperature needs additive offsets, so units carry a Scale tag instead of a factor.
	AffineTemperature
)

func (k Kind) String() string {
	switch k {
	case LinearScale:
		return "linear"
	case AffineTemperature:
		return "temperature"
	}
	return "unknown"
}

// Scale identifies a temperature scale.
type Scale byte

const (
	NoScale    Scale = 0
	Celsius    Scale = 'C'
	Fahrenheit Scale = 'F'
	Kelvin     Scale = 'K'
)

func (s Scale) String() string {
	if s == NoScale {
		return ""
	}
	return string(rune(s))
}

// Descriptor tells how one unit relates to its category's base unit.
// Factor is set for LinearScale units (unit * Factor = base), Scale for
// AffineTemperature units.
type Descriptor struct {
	Kind   Kind
	Factor float64
	Scale  Scale
}

// Unit is a named unit inside a category.
type Unit struct {
	Name       string
	Descriptor Descriptor
}

// Category is a named group of mutually convertible units. Units keep
// declaration order; the first one is the base unit.
type Category struct {
	Name  string
	Kind  Kind
	Units []Unit

	index   map[string]int
	aliases map[string]string
}

// UnitNames returns the canonical unit names in declaration order.
func (c *Category) UnitNames() []string {
	names := make([]string, 0, len(c.Units))
	for _, u := range c.Units {
		names = append(names, u.Name)
	}
	return names
}

// Base returns the category's base unit.
func (c *Category) Base() Unit {
	return c.Units[0]
}

// lookup resolves a canonical name or alias.
func (c *Category) lookup(name string) (Unit, bool) {
	if canonical, ok := c.aliases[name]; ok {
		name = canonical
	}
	i, ok := c.index[name]
	if !ok {
		return Unit{}, false
	}
	return c.Units[i], true
}
