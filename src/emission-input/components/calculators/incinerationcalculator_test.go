package calculators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastecarbon-go/src/models"
)

func newIncinerationCalculator(t *testing.T) *IncinerationCalculator {
	t.Helper()
	calculator, err := NewIncinerationCalculator(newIncinerationLoader(t), newTransportationLoader(t))
	require.NoError(t, err)
	return calculator
}

func TestNewIncinerationCalculator_RequiresLoaders(t *testing.T) {
	_, err := NewIncinerationCalculator(nil, newTransportationLoader(t))
	assert.Error(t, err)
	_, err = NewIncinerationCalculator(newIncinerationLoader(t), nil)
	assert.Error(t, err)
}

func TestCalculateFossilCO2(t *testing.T) {
	calculator := newIncinerationCalculator(t)

	co2, err := calculator.CalculateFossilCO2(10, map[string]float64{"plastics": 100})
	require.NoError(t, err)
	assert.InDelta(t, 27500.0, co2, 1e-6)

	// Categories without fossil carbon contribute nothing.
	co2, err = calculator.CalculateFossilCO2(10, map[string]float64{"Food waste": 60, "glass": 40})
	require.NoError(t, err)
	assert.Zero(t, co2)

	co2, err = calculator.CalculateFossilCO2(0, map[string]float64{"plastics": 100})
	require.NoError(t, err)
	assert.Zero(t, co2)
}

func TestCalculateFossilCO2_DuplicateCategoryKeys(t *testing.T) {
	calculator := newIncinerationCalculator(t)

	_, err := calculator.CalculateFossilCO2(1, map[string]float64{"Plastics": 100, "plastics": 100, "PLASTICS": 100})
	var validationError *models.ValidationError
	require.ErrorAs(t, err, &validationError)
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)
	assert.Equal(t, "composition.plastics", validationError.Field)
	assert.Equal(t, "Plastics", validationError.Value)

	_, err = calculator.CalculateFossilCO2(1, map[string]float64{"Food waste": 50, "food_waste": 50})
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)

	// A single spelling is still accepted in any case.
	co2, err := calculator.CalculateFossilCO2(1, map[string]float64{"PLASTICS": 100})
	require.NoError(t, err)
	assert.InDelta(t, 2750.0, co2, 1e-6)
}

func TestCalculateFossilCO2_DefaultComposition(t *testing.T) {
	calculator := newIncinerationCalculator(t)
	expectedPerTonne := (0.2*1000*0.9*0.46*0.01 + 0.2*1000*0.75) * CarbonToCO2

	co2, err := calculator.CalculateFossilCO2(1, nil)
	require.NoError(t, err)
	assert.InDelta(t, expectedPerTonne, co2, 1e-9)

	empty, err := calculator.CalculateFossilCO2(1, map[string]float64{})
	require.NoError(t, err)
	assert.Equal(t, co2, empty)

	explicit, err := calculator.CalculateFossilCO2(1, map[string]float64{
		"food_waste": 50, "paper/cardboard": 20, "plastics": 20, "glass": 10,
	})
	require.NoError(t, err)
	assert.InDelta(t, co2, explicit, 1e-9)
}

func TestCalculateTechnologyEmissions(t *testing.T) {
	calculator := newIncinerationCalculator(t)

	emissions, err := calculator.CalculateTechnologyEmissions(10, "continuous_stoker")
	require.NoError(t, err)
	assert.InDelta(t, 0.002, emissions.CH4, Tolerance)
	assert.InDelta(t, 0.5, emissions.N2O, Tolerance)
	assert.InDelta(t, 0.018, emissions.BC, Tolerance)
	assert.Zero(t, emissions.CO2)

	emissions, err = calculator.CalculateTechnologyEmissions(10, "Continuous fluidized bed")
	require.NoError(t, err)
	assert.Zero(t, emissions.CH4)
	assert.InDelta(t, 0.67, emissions.N2O, Tolerance)
}

func TestCalculateAuxiliaryFuelEmissions(t *testing.T) {
	calculator := newIncinerationCalculator(t)

	emissions, err := calculator.CalculateAuxiliaryFuelEmissions([]string{"diesel"}, []float64{100})
	require.NoError(t, err)
	energyMJ := 100 * 36.372
	assert.InDelta(t, energyMJ*0.0741, emissions.CO2, Tolerance)
	assert.InDelta(t, energyMJ*0.000003, emissions.CH4, Tolerance)
	assert.InDelta(t, energyMJ*0.0000006, emissions.N2O, Tolerance)
	assert.InDelta(t, energyMJ*0.0000258, emissions.BC, Tolerance)

	_, err = calculator.CalculateAuxiliaryFuelEmissions([]string{"petrol"}, []float64{100})
	assert.ErrorIs(t, err, models.ErrUnknownFuelType)

	_, err = calculator.CalculateAuxiliaryFuelEmissions([]string{"diesel"}, nil)
	assert.ErrorIs(t, err, models.ErrArrayLengthMismatch)
}

func TestCalculateAvoidedEmissions(t *testing.T) {
	calculator := newIncinerationCalculator(t)

	avoided, err := calculator.CalculateAvoidedEmissions(10, nil)
	require.NoError(t, err)
	assert.Equal(t, models.Pollutants{}, avoided)

	// 20% of 10 MJ/kg is 2000 MJ/t, 555.6 kWh/t, of which 90% is exported.
	avoided, err = calculator.CalculateAvoidedEmissions(2, &models.EnergyRecovery{
		Mode:                     RecoveryElectricity,
		CalorificValueMJPerKg:    10,
		ElectricityEfficiencyPct: 20,
		ElectricityUsedOnsitePct: 10,
		HeatEfficiencyPct:        50,
		DisplacedFuel:            "fuel_oil",
	})
	require.NoError(t, err)
	assert.InDelta(t, 2*500*GridFactor, avoided.CO2, 1e-6)
	assert.Zero(t, avoided.CH4)
	assert.Zero(t, avoided.BC)

	avoided, err = calculator.CalculateAvoidedEmissions(1, &models.EnergyRecovery{
		Mode:                  RecoveryHeat,
		CalorificValueMJPerKg: 10,
		HeatEfficiencyPct:     50,
		DisplacedFuel:         "fuel_oil",
	})
	require.NoError(t, err)
	assert.InDelta(t, 5000*0.0774, avoided.CO2, 1e-6)
	assert.InDelta(t, 5000*0.000003, avoided.CH4, Tolerance)
	assert.InDelta(t, 5000*0.000002, avoided.BC, Tolerance)

	both, err := calculator.CalculateAvoidedEmissions(1, &models.EnergyRecovery{
		CalorificValueMJPerKg:    10,
		ElectricityEfficiencyPct: 20,
		ElectricityUsedOnsitePct: 10,
		HeatEfficiencyPct:        50,
		DisplacedFuel:            "fuel_oil",
	})
	require.NoError(t, err)
	assert.InDelta(t, 5000*0.0774+500*GridFactor, both.CO2, 1e-6)
}

func TestCalculateAvoidedEmissions_Errors(t *testing.T) {
	calculator := newIncinerationCalculator(t)
	tests := []struct {
		name     string
		recovery models.EnergyRecovery
		errKind  error
	}{
		{"unknown mode", models.EnergyRecovery{Mode: "steam"}, models.ErrInvalidQuantity},
		{"negative calorific value", models.EnergyRecovery{CalorificValueMJPerKg: -1}, models.ErrInvalidQuantity},
		{"efficiency above 100", models.EnergyRecovery{CalorificValueMJPerKg: 10, HeatEfficiencyPct: 120}, models.ErrInvalidQuantity},
		{"unknown displaced fuel", models.EnergyRecovery{CalorificValueMJPerKg: 10, HeatEfficiencyPct: 50, DisplacedFuel: "coal"}, models.ErrUnknownFuelType},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recovery := test.recovery
			_, err := calculator.CalculateAvoidedEmissions(1, &recovery)
			assert.ErrorIs(t, err, test.errKind)
		})
	}
}

func TestCalculateAvoidedEmissions_ReportsFirstInvalidPercentage(t *testing.T) {
	calculator := newIncinerationCalculator(t)
	recovery := models.EnergyRecovery{
		CalorificValueMJPerKg:    10,
		ElectricityEfficiencyPct: 20,
		ElectricityUsedOnsitePct: 140,
		HeatEfficiencyPct:        -5,
		HeatUsedOnsitePct:        300,
	}
	for i := 0; i < 20; i++ {
		_, err := calculator.CalculateAvoidedEmissions(1, &recovery)
		var validationError *models.ValidationError
		require.ErrorAs(t, err, &validationError)
		assert.Equal(t, "energy_recovery.electricity_used_onsite_pct", validationError.Field)
		assert.Equal(t, 140.0, validationError.Value)
	}
}

func TestCalculateIncinerationEmissions(t *testing.T) {
	calculator := newIncinerationCalculator(t)
	report, err := calculator.CalculateIncinerationEmissions(models.IncinerationRequest{
		WasteIncineratedTonnes: 10,
		Technology:             "continuous_stoker",
		Composition:            map[string]float64{"plastics": 100},
		AuxiliaryFuelTypes:     []string{"diesel"},
		AuxiliaryFuelConsumed:  []float64{100},
		ElectricConsumedKWh:    200,
		EnergyRecovery: &models.EnergyRecovery{
			Mode:                     RecoveryElectricity,
			CalorificValueMJPerKg:    10,
			ElectricityEfficiencyPct: 20,
			ElectricityUsedOnsitePct: 10,
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 27500.0, report.WasteCombustion.CO2, 1e-6)
	assert.InDelta(t, 0.5, report.WasteCombustion.N2O, Tolerance)
	assert.InDelta(t, 100*36.372*0.0741, report.AuxiliaryFuel.CO2, Tolerance)
	assert.InDelta(t, 200*GridFactor, report.Electricity.CO2, Tolerance)

	expectedCO2 := 27500 + 100*36.372*0.0741 + 200*GridFactor
	assert.InDelta(t, expectedCO2, report.Emissions.CO2, 1e-6)
	assert.InDelta(t, 0.018+100*36.372*0.0000258, report.Emissions.BC, Tolerance)
	assert.InDelta(t, expectedCO2/10, report.PerTonne.CO2, 1e-6)
	assert.InDelta(t, 10*500*GridFactor, report.Avoided.CO2, 1e-6)
	assert.InDelta(t, report.Emissions.CO2-report.Avoided.CO2, report.Net.CO2, 1e-6)
	assert.Equal(t, report.Emissions.BC, report.Net.BC)
}

func TestCalculateIncinerationEmissions_Errors(t *testing.T) {
	calculator := newIncinerationCalculator(t)
	tests := []struct {
		name    string
		request models.IncinerationRequest
		errKind error
	}{
		{
			name:    "unknown technology",
			request: models.IncinerationRequest{WasteIncineratedTonnes: 1, Technology: "rotary_kiln"},
			errKind: models.ErrUnknownTechnology,
		},
		{
			name: "unknown waste category",
			request: models.IncinerationRequest{
				WasteIncineratedTonnes: 1,
				Technology:             "continuous_stoker",
				Composition:            map[string]float64{"e-waste": 100},
			},
			errKind: models.ErrUnknownWasteCategory,
		},
		{
			name:    "negative waste",
			request: models.IncinerationRequest{WasteIncineratedTonnes: -1, Technology: "continuous_stoker"},
			errKind: models.ErrInvalidQuantity,
		},
		{
			name: "composition above 100",
			request: models.IncinerationRequest{
				WasteIncineratedTonnes: 1,
				Technology:             "continuous_stoker",
				Composition:            map[string]float64{"plastics": 150},
			},
			errKind: models.ErrInvalidQuantity,
		},
		{
			name: "negative electricity",
			request: models.IncinerationRequest{
				WasteIncineratedTonnes: 1,
				Technology:             "continuous_stoker",
				ElectricConsumedKWh:    -3,
			},
			errKind: models.ErrInvalidQuantity,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report, err := calculator.CalculateIncinerationEmissions(test.request)
			assert.ErrorIs(t, err, test.errKind)
			assert.Equal(t, models.IncinerationReport{}, report)
		})
	}
}
