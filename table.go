package unitconv

import "fmt"

// Category names of the built-in table.
const (
	CategoryLength      = "Length"
	CategoryMass        = "Weight/Mass"
	CategoryTemperature = "Temperature"
	CategoryArea        = "Area"
	CategoryVolume      = "Volume"
	CategoryTime        = "Time"
	CategorySpeed       = "Speed"
	CategoryPressure    = "Pressure"
	CategoryEnergy      = "Energy"
	CategoryData        = "Data"
)

// Table is an immutable set of categories. It is safe for concurrent use.
type Table struct {
	categories []*Category
	byName     map[string]*Category
}

// NewTable builds a table from already validated categories, keeping their order.
func NewTable(categories ...*Category) (*Table, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidTable)
	}
	t := &Table{byName: make(map[string]*Category, len(categories))}
	for _, c := range categories {
		if c == nil {
			return nil, fmt.Errorf("%w: nil category", ErrInvalidTable)
		}
		if _, ok := t.byName[c.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidTable, c.Name)
		}
		t.byName[c.Name] = c
		t.categories = append(t.categories, c)
	}
	return t, nil
}

// Categories returns the category names in display order.
func (t *Table) Categories() []string {
	names := make([]string, 0, len(t.categories))
	for _, c := range t.categories {
		names = append(names, c.Name)
	}
	return names
}

// UnitsOf returns the canonical unit names of category, base unit first.
func (t *Table) UnitsOf(category string) ([]string, error) {
	c, err := t.category(category)
	if err != nil {
		return nil, err
	}
	return c.UnitNames(), nil
}

// DescriptorOf returns the conversion descriptor of unit within category.
// unit may be a canonical name or an alias.
func (t *Table) DescriptorOf(category, unit string) (Descriptor, error) {
	c, err := t.category(category)
	if err != nil {
		return Descriptor{}, err
	}
	u, err := unitOf(c, unit)
	if err != nil {
		return Descriptor{}, err
	}
	return u.Descriptor, nil
}

// KindOf reports whether category is linear or temperature.
func (t *Table) KindOf(category string) (Kind, error) {
	c, err := t.category(category)
	if err != nil {
		return 0, err
	}
	return c.Kind, nil
}

func (t *Table) category(name string) (*Category, error) {
	c, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return c, nil
}

func unitOf(c *Category, name string) (Unit, error) {
	u, ok := c.lookup(name)
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q in category %q", ErrUnknownUnit, name, c.Name)
	}
	return u, nil
}

var defaultTable = mustTable(
	mustBuild(NewLinearCategory(CategoryLength, "Meter").
		AddFactor("Kilometer", 1000).
		AddFactor("Centimeter", 0.01).
		AddFactor("Millimeter", 0.001).
		AddFactor("Mile", 1609.34).
		AddFactor("Yard", 0.9144).
		AddFactor("Foot", 0.3048).
		AddFactor("Inch", 0.0254)),
	mustBuild(NewLinearCategory(CategoryMass, "Kilogram").
		AddFactor("Gram", 0.001).
		AddFactor("Milligram", 0.000001).
		AddFactor("Metric Ton", 1000).
		AddFactor("Pound", 0.453592).
		AddFactor("Ounce", 0.0283495).
		AddFactor("Stone", 6.35029)),
	mustBuild(NewTemperatureCategory(CategoryTemperature).
		AddScale("Celsius", Celsius).
		AddScale("Fahrenheit", Fahrenheit).
		AddScale("Kelvin", Kelvin)),
	mustBuild(NewLinearCategory(CategoryArea, "Square Meter").
		AddFactor("Square Kilometer", 1000000).
		AddFactor("Square Centimeter", 0.0001).
		AddFactor("Square Millimeter", 0.000001).
		AddFactor("Square Mile", 2590000).
		AddFactor("Square Yard", 0.836127).
		AddFactor("Square Foot", 0.092903).
		AddFactor("Square Inch", 0.00064516).
		AddFactor("Acre", 4046.86).
		AddFactor("Hectare", 10000)),
	mustBuild(NewLinearCategory(CategoryVolume, "Cubic Meter").
		AddFactor("Cubic Centimeter", 0.000001).
		AddFactor("Liter", 0.001).
		AddFactor("Milliliter", 0.000001).
		AddFactor("Gallon (US)", 0.00378541, "Gallon US").
		AddFactor("Quart (US)", 0.000946353, "Quart US").
		AddFactor("Pint (US)", 0.000473176, "Pint US").
		AddFactor("Cup (US)", 0.000236588, "Cup US").
		AddFactor("Fluid Ounce (US)", 0.0000295735, "Fluid Ounce US").
		AddFactor("Cubic Inch", 0.0000163871).
		AddFactor("Cubic Foot", 0.0283168)),
	mustBuild(NewLinearCategory(CategoryTime, "Second").
		AddFactor("Millisecond", 0.001).
		AddFactor("Microsecond", 0.000001).
		AddFactor("Nanosecond", 1e-9).
		AddFactor("Minute", 60).
		AddFactor("Hour", 3600).
		AddFactor("Day", 86400).
		AddFactor("Week", 604800).
		AddFactor("Month (30 days)", 2592000, "Month-30d").
		AddFactor("Year (365 days)", 31536000, "Year-365d")),
	mustBuild(NewLinearCategory(CategorySpeed, "Meter per second", "Meter/sec").
		AddFactor("Kilometer per hour", 0.277778, "Km/hour").
		AddFactor("Mile per hour", 0.44704, "Mile/hour").
		AddFactor("Knot", 0.514444).
		AddFactor("Foot per second", 0.3048, "Foot/sec")),
	mustBuild(NewLinearCategory(CategoryPressure, "Pascal").
		AddFactor("Kilopascal", 1000).
		AddFactor("Bar", 100000).
		AddFactor("PSI", 6894.76).
		AddFactor("Atmosphere", 101325).
		AddFactor("Torr", 133.322)),
	mustBuild(NewLinearCategory(CategoryEnergy, "Joule").
		AddFactor("Kilojoule", 1000).
		AddFactor("Calorie", 4.184).
		AddFactor("Kilocalorie", 4184).
		AddFactor("Watt-hour", 3600).
		AddFactor("Kilowatt-hour", 3600000).
		AddFactor("Electronvolt", 1.602176634e-19).
		AddFactor("British Thermal Unit", 1055.06, "BTU")),
	mustBuild(NewLinearCategory(CategoryData, "Bit").
		AddFactor("Byte", 8).
		AddFactor("Kilobit", 1000).
		AddFactor("Kilobyte", 8000).
		AddFactor("Megabit", 1000000).
		AddFactor("Megabyte", 8000000).
		AddFactor("Gigabit", 1000000000).
		AddFactor("Gigabyte", 8000000000).
		AddFactor("Terabit", 1000000000000).
		AddFactor("Terabyte", 8000000000000)),
)

func mustTable(categories ...*Category) *Table {
	t, err := NewTable(categories...)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTable returns the built-in table of ten categories.
func DefaultTable() *Table {
	return defaultTable
}
