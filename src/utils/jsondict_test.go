package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const JsonDocument = `
{
	"electricity_grid_factor": {"co2_kg_per_kwh": 0.896515846, "unit": "kg/kWh"},
	"fuel_data": {
		"fuel_type": ["petrol", "diesel"],
		"density_kg_per_l": [0.74, 0.84],
		"broken": [0.74, "heavy"]
	},
	"gwp_factors": {
		"ch4_fossil": {"gwp100": 29.8},
		"n2o": {"gwp100": 273}
	}
}
`

func TestNewJsonDict_Invalid(t *testing.T) {
	_, err := NewJsonDict([]byte(`{"fuel_data": [`))
	assert.ErrorIs(t, err, ErrInvalidJson)
}

func TestJsonDict_Numeric(t *testing.T) {
	d, err := NewJsonDict([]byte(JsonDocument))
	require.NoError(t, err)

	value, ok := d.LookupNumeric("electricity_grid_factor.co2_kg_per_kwh")
	assert.True(t, ok)
	assert.Equal(t, 0.896515846, value)

	_, ok = d.LookupNumeric("electricity_grid_factor.unit")
	assert.False(t, ok)
	_, ok = d.LookupNumeric("electricity_grid_factor.ch4_kg_per_kwh")
	assert.False(t, ok)
}

func TestJsonDict_Lists(t *testing.T) {
	d, err := NewJsonDict([]byte(JsonDocument))
	require.NoError(t, err)

	densities, ok := d.LookupNumericList("fuel_data.density_kg_per_l")
	assert.True(t, ok)
	assert.Equal(t, []float64{0.74, 0.84}, densities)

	_, ok = d.LookupNumericList("fuel_data.broken")
	assert.False(t, ok)
	_, ok = d.LookupNumericList("fuel_data.missing")
	assert.False(t, ok)

	fuels, ok := d.LookupStringList("fuel_data.fuel_type")
	assert.True(t, ok)
	assert.Equal(t, []string{"petrol", "diesel"}, fuels)

	_, ok = d.LookupStringList("fuel_data.density_kg_per_l")
	assert.False(t, ok)
}

func TestJsonDict_GetDict(t *testing.T) {
	d, err := NewJsonDict([]byte(JsonDocument))
	require.NoError(t, err)

	gwp := d.GetDict("gwp_factors", nil)
	require.Len(t, gwp, 2)
	ch4 := gwp["ch4_fossil"]
	value, ok := ch4.LookupNumeric("gwp100")
	assert.True(t, ok)
	assert.Equal(t, 29.8, value)
	assert.True(t, d.Exists("gwp_factors.n2o"))
	assert.Nil(t, d.GetDict("missing", nil))
}
