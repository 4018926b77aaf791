package calculators

import (
	"testing"

	"github.com/stretchr/testify/require"

	"wastecarbon-go/src/emission-input/components/loaders"
)

const TransportationData = `
{
	"fuel_data": {
		"fuel_type": ["petrol", "diesel", "cng"],
		"energy_content_mj_per_l": [32.782, 36.372, 8.64],
		"co2_kg_per_mj": [0.0693, 0.0741, 0.0561],
		"ch4_kg_per_mj": [0.000033, 0.0000039, 0.000092],
		"n2o_kg_per_mj": [0.0000032, 0.0000039, 0.000003],
		"bc_kg_per_mj": [0.0000011, 0.0000258, 0.0000001],
		"density_kg_per_l": [0.74, 0.84, 0.18]
	},
	"vehicle_emission_factors": {
		"vehicle_type": ["compactor_truck", "tipper_truck"],
		"bc_kg_per_kg_fuel": [0.00085, 0.0011]
	},
	"electricity_grid_factor": {"co2_kg_per_kwh": 0.896515846}
}
`

const IncinerationData = `
{
	"incineration_emissions": {
		"type": ["continuous_stoker", "continuous_fluidized_bed", "semi_continuous_stoker", "semi_continuous_fluidized_bed"],
		"ch4_kg_per_ton": [0.0002, 0.0, 0.006, 0.188],
		"n2o_kg_per_ton": [0.05, 0.067, 0.05, 0.067],
		"bc_kg_per_ton": [0.0018, 0.0009, 0.0025, 0.0031]
	},
	"fossil_based_co2_emissions": {
		"waste_type": ["Food waste", "Paper/cardboard", "Plastics", "Glass"],
		"dry_matter_percent": [40, 90, 100, 100],
		"total_carbon_percent": [38, 46, 75, 0],
		"fossil_carbon_percent": [0, 1, 100, 0],
		"oxidation_factor_percent": [100, 100, 100, 100],
		"mixed_composition_percent": [50, 20, 20, 10]
	},
	"fuel_data": {
		"fuel_type": ["diesel", "fuel_oil"],
		"energy_content_mj_per_l": [36.372, 38.784],
		"co2_kg_per_mj": [0.0741, 0.0774],
		"ch4_kg_per_mj": [0.000003, 0.000003],
		"n2o_kg_per_mj": [0.0000006, 0.0000006],
		"bc_kg_per_mj": [0.0000258, 0.000002],
		"density_kg_per_l": [0.84, 0.96]
	}
}
`

const GridFactor = 0.896515846

const Tolerance = 1e-9

func newTransportationLoader(t *testing.T) *loaders.TransportationLoader {
	t.Helper()
	loader, err := loaders.NewTransportationLoader([]byte(TransportationData))
	require.NoError(t, err)
	return loader
}

func newIncinerationLoader(t *testing.T) *loaders.IncinerationLoader {
	t.Helper()
	loader, err := loaders.NewIncinerationLoader([]byte(IncinerationData))
	require.NoError(t, err)
	return loader
}
