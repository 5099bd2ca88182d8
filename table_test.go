package unitconv_test

import (
	"math"
	"testing"
	"unitconv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableContents(t *testing.T) {
	t.Parallel()

	table := unitconv.DefaultTable()
	assert.Equal(t, []string{
		"Length", "Weight/Mass", "Temperature", "Area", "Volume",
		"Time", "Speed", "Pressure", "Energy", "Data",
	}, table.Categories())

	counts := map[string]int{
		"Length": 8, "Weight/Mass": 7, "Temperature": 3, "Area": 10, "Volume": 11,
		"Time": 10, "Speed": 5, "Pressure": 6, "Energy": 8, "Data": 10,
	}
	affine := 0
	for _, category := range table.Categories() {
		units, err := table.UnitsOf(category)
		require.NoError(t, err)
		assert.Lenf(t, units, counts[category], category)
		assert.GreaterOrEqual(t, len(units), 2)

		kind, err := table.KindOf(category)
		require.NoError(t, err)
		if kind == unitconv.AffineTemperature {
			affine++
			assert.Equal(t, "Temperature", category)
			continue
		}

		seen := make(map[string]bool)
		for i, u := range units {
			assert.Falsef(t, seen[u], "duplicate unit %s in %s", u, category)
			seen[u] = true

			d, err := table.DescriptorOf(category, u)
			require.NoError(t, err)
			assert.Equal(t, unitconv.LinearScale, d.Kind)
			assert.Greater(t, d.Factor, 0.0)
			assert.False(t, math.IsInf(d.Factor, 0))
			if i == 0 {
				assert.Equalf(t, 1.0, d.Factor, "base unit of %s", category)
			}
		}
	}
	assert.Equal(t, 1, affine)
}

func TestDescriptorOf(t *testing.T) {
	t.Parallel()

	table := unitconv.DefaultTable()

	d, err := table.DescriptorOf("Energy", "Electronvolt")
	require.NoError(t, err)
	assert.Equal(t, unitconv.Descriptor{Kind: unitconv.LinearScale, Factor: 1.602176634e-19}, d)

	d, err = table.DescriptorOf("Energy", "BTU")
	require.NoError(t, err)
	assert.Equal(t, 1055.06, d.Factor)

	d, err = table.DescriptorOf("Temperature", "Kelvin")
	require.NoError(t, err)
	assert.Equal(t, unitconv.Descriptor{Kind: unitconv.AffineTemperature, Scale: unitconv.Kelvin}, d)
	assert.Equal(t, "K", d.Scale.String())

	_, err = table.DescriptorOf("Energy", "Erg")
	assert.ErrorIs(t, err, unitconv.ErrUnknownUnit)
	_, err = table.DescriptorOf("Force", "Newton")
	assert.ErrorIs(t, err, unitconv.ErrUnknownCategory)
	_, err = table.UnitsOf("Force")
	assert.ErrorIs(t, err, unitconv.ErrUnknownCategory)
	_, err = table.KindOf("Force")
	assert.ErrorIs(t, err, unitconv.ErrUnknownCategory)
}

func TestCategoriesReturnsCopy(t *testing.T) {
	t.Parallel()

	names := unitconv.ListCategories()
	names[0] = "Mutated"
	assert.Equal(t, "Length", unitconv.ListCategories()[0])

	units, err := unitconv.ListUnits("Length")
	require.NoError(t, err)
	units[0] = "Mutated"
	units, err = unitconv.ListUnits("Length")
	require.NoError(t, err)
	assert.Equal(t, "Meter", units[0])
}

func TestCategoryBuilder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		builder func() *unitconv.CategoryBuilder
		wantErr bool
	}{
		{"valid linear", func() *unitconv.CategoryBuilder {
			return unitconv.NewLinearCategory("Force", "Newton").AddFactor("Dyne", 1e-5, "dyn")
		}, false},
		{"valid temperature", func() *unitconv.CategoryBuilder {
			return unitconv.NewTemperatureCategory("Heat").
				AddScale("Celsius", unitconv.Celsius).
				AddScale("Kelvin", unitconv.Kelvin)
		}, false},
		{"empty category name", func() *unitconv.CategoryBuilder {
			return unitconv.NewLinearCategory("", "Newton").AddFactor("Dyne", 1e-5)
		}, true},
		{"single unit", func() *unitconv.CategoryBuilder {
			return unitconv.NewLinearCategory("Force", "Newton")
		}, true},
		{"duplicate unit", func() *unitconv.CategoryBuilder {
			return unitconv.NewLinearCategory("Force", "Newton").AddFactor("Newton", 2)
		}, true},
		{"zero factor", func() *unitconv.CategoryBuilder {
			return unitconv.NewLinearCategory("Force", "Newton").AddFactor("Dyne", 0)
		}, true},
		{"negative factor", func() *unitconv.CategoryBuilder {
			return unitconv.NewLinearCategory("Force", "Newton").AddFactor("Dyne", -1)
		}, true},
		{"NaN factor", func() *unitconv.CategoryBuilder {
			return unitconv.NewLinearCategory("Force", "Newton").AddFactor("Dyne", math.NaN())
		}, true},
		{"infinite factor", func() *unitconv.CategoryBuilder {
			return unitconv.NewLinearCategory("Force", "Newton").AddFactor("Dyne", math.Inf(1))
		}, true},
		{"alias shadows unit", func() *unitconv.CategoryBuilder {
			return unitconv.NewLinearCategory("Force", "Newton").AddFactor("Dyne", 1e-5, "Newton")
		}, true},
		{"unit shadows alias", func() *unitconv.CategoryBuilder {
			return unitconv.NewLinearCategory("Force", "Newton", "N").AddFactor("N", 1e-5)
		}, true},
		{"scale in linear category", func() *unitconv.CategoryBuilder {
			return unitconv.NewLinearCategory("Force", "Newton").AddScale("Celsius", unitconv.Celsius)
		}, true},
		{"factor in temperature category", func() *unitconv.CategoryBuilder {
			return unitconv.NewTemperatureCategory("Heat").
				AddScale("Celsius", unitconv.Celsius).
				AddFactor("Kelvin", 1)
		}, true},
		{"unsupported scale", func() *unitconv.CategoryBuilder {
			return unitconv.NewTemperatureCategory("Heat").
				AddScale("Celsius", unitconv.Celsius).
				AddScale("Rankine", unitconv.Scale('R'))
		}, true},
		{"first error sticks", func() *unitconv.CategoryBuilder {
			return unitconv.NewLinearCategory("Force", "Newton").
				AddFactor("Dyne", 0).
				AddFactor("Kilonewton", 1000)
		}, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c, err := tc.builder().Build()
			if !tc.wantErr {
				require.NoError(t, err)
				require.NotNil(t, c)
				return
			}
			require.ErrorIs(t, err, unitconv.ErrInvalidTable)
			assert.Nil(t, c)
		})
	}
}

func TestNewTable(t *testing.T) {
	t.Parallel()

	force, err := unitconv.NewLinearCategory("Force", "Newton").
		AddFactor("Dyne", 1e-5, "dyn").
		AddFactor("Kilonewton", 1000, "kN").
		Build()
	require.NoError(t, err)
	assert.Equal(t, "Newton", force.Base().Name)
	assert.Equal(t, []string{"Newton", "Dyne", "Kilonewton"}, force.UnitNames())

	table, err := unitconv.NewTable(force)
	require.NoError(t, err)
	got, err := table.Convert(2, "kN", "dyn", "Force")
	require.NoError(t, err)
	assert.InDelta(t, 2e8, got, 1e-6)

	_, err = unitconv.NewTable()
	assert.ErrorIs(t, err, unitconv.ErrInvalidTable)
	_, err = unitconv.NewTable(force, force)
	assert.ErrorIs(t, err, unitconv.ErrInvalidTable)
	_, err = unitconv.NewTable(force, nil)
	assert.ErrorIs(t, err, unitconv.ErrInvalidTable)
}
