package unitconv

import (
	"fmt"
	"math"
)

// Row is one line of a conversion table.
type Row struct {
	Unit  string
	Value float64
}

// Convert converts value from fromUnit to toUnit within category.
//
// Linear categories go through the base unit and are rounded to
// LinearPrecision decimals. Temperature goes through Celsius and is rounded
// to TemperaturePrecision decimals. Checks run in order: value, category,
// fromUnit, toUnit.
func (t *Table) Convert(value float64, fromUnit, toUnit, category string) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidValue, value)
	}
	c, err := t.category(category)
	if err != nil {
		return 0, err
	}
	from, err := unitOf(c, fromUnit)
	if err != nil {
		return 0, err
	}
	to, err := unitOf(c, toUnit)
	if err != nil {
		return 0, err
	}
	return convert(c.Kind, value, from.Descriptor, to.Descriptor)
}

// ConversionTable converts value of fromUnit into every other unit of
// category, in table order.
func (t *Table) ConversionTable(value float64, fromUnit, category string) ([]Row, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, value)
	}
	c, err := t.category(category)
	if err != nil {
		return nil, err
	}
	from, err := unitOf(c, fromUnit)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(c.Units)-1)
	for _, u := range c.Units {
		if u.Name == from.Name {
			continue
		}
		v, err := convert(c.Kind, value, from.Descriptor, u.Descriptor)
		if err != nil {
			return nil, fmt.Errorf("%s -> %s: %w", from.Name, u.Name, err)
		}
		rows = append(rows, Row{Unit: u.Name, Value: v})
	}
	return rows, nil
}

func convert(kind Kind, value float64, from, to Descriptor) (float64, error) {
	var result float64
	var places int
	switch kind {
	case AffineTemperature:
		result = fromCelsius(toCelsius(value, from.Scale), to.Scale)
		places = TemperaturePrecision
	default:
		result = value * from.Factor / to.Factor
		places = LinearPrecision
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, value)
	}
	return Round(result, places), nil
}

func toCelsius(v float64, s Scale) float64 {
	switch s {
	case Fahrenheit:
		return (v - 32) * 5 / 9
	case Kelvin:
		return v - 273.15
	}
	return v
}

func fromCelsius(c float64, s Scale) float64 {
	switch s {
	case Fahrenheit:
		return c*9/5 + 32
	case Kelvin:
		return c + 273.15
	}
	return c
}

// Convert converts value with the built-in table.
func Convert(value float64, fromUnit, toUnit, category string) (float64, error) {
	return defaultTable.Convert(value, fromUnit, toUnit, category)
}

// ConversionTable builds a conversion table with the built-in table.
func ConversionTable(value float64, fromUnit, category string) ([]Row, error) {
	return defaultTable.ConversionTable(value, fromUnit, category)
}

// ListCategories returns the built-in category names in display order.
func ListCategories() []string {
	return defaultTable.Categories()
}

// ListUnits returns the unit names of a built-in category.
func ListUnits(category string) ([]string, error) {
	return defaultTable.UnitsOf(category)
}
