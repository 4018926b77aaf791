package calculators

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"wastecarbon-go/src/emission-input/components/loaders"
	"wastecarbon-go/src/models"
	"wastecarbon-go/src/utils"
)

// BlackCarbonPolicy decides how a vehicle-specific BC factor combines with
// the generic per-MJ BC factor of the fuel.
type BlackCarbonPolicy string

const (
	BlackCarbonOverride BlackCarbonPolicy = "override"
	BlackCarbonAdditive BlackCarbonPolicy = "additive"
)

func ParseBlackCarbonPolicy(policy string) (BlackCarbonPolicy, error) {
	switch BlackCarbonPolicy(utils.NormalizeKey(policy)) {
	case "", BlackCarbonOverride:
		return BlackCarbonOverride, nil
	case BlackCarbonAdditive:
		return BlackCarbonAdditive, nil
	default:
		return "", fmt.Errorf("unknown black carbon policy %q", policy)
	}
}

type TransportCalculator struct {
	TransportationLoader *loaders.TransportationLoader
	BlackCarbonPolicy    BlackCarbonPolicy
}

func NewTransportCalculator(
	TransportationLoader *loaders.TransportationLoader,
	BlackCarbonPolicy BlackCarbonPolicy,
) (*TransportCalculator, error) {
	if TransportationLoader == nil {
		return nil, fmt.Errorf("transport calculator requires transportation coefficients")
	}
	if BlackCarbonPolicy == "" {
		BlackCarbonPolicy = BlackCarbonOverride
	}
	return &TransportCalculator{
		TransportationLoader: TransportationLoader,
		BlackCarbonPolicy:    BlackCarbonPolicy,
	}, nil
}

// CalculateLegEmissions sums every fuel entry and the electric entry of one
// leg. Any invalid entry fails the whole leg.
func (tc *TransportCalculator) CalculateLegEmissions(leg models.LegInput) (models.LegReport, error) {
	if err := checkParallelArrays("fuel_types", leg.FuelTypes, "fuel_consumed", leg.FuelConsumed); err != nil {
		return models.LegReport{}, err
	}
	if err := checkQuantity("waste_tonnes", leg.WasteTonnes); err != nil {
		return models.LegReport{}, err
	}

	contributions := make([]models.Pollutants, 0, len(leg.FuelTypes)+1)
	for i, fuelType := range leg.FuelTypes {
		emissions, err := tc.CalculateFuelEmissions(fuelType, leg.FuelConsumed[i], leg.VehicleType)
		if err != nil {
			return models.LegReport{}, err
		}
		contributions = append(contributions, emissions)
	}

	electric, err := tc.CalculateElectricEmissions(leg.ElectricConsumedKWh)
	if err != nil {
		return models.LegReport{}, err
	}
	contributions = append(contributions, electric)

	total := models.SumPollutants(contributions...)
	log.Debug().Str("leg", leg.Name).Float64("co2_kg", total.CO2).Float64("bc_kg", total.BC).Msg("calculated leg emissions")
	return models.LegReport{
		Emissions: total,
		PerTonne:  total.PerTonne(leg.WasteTonnes),
	}, nil
}

// CalculateFuelEmissions returns the CO2, CH4, N2O and BC of one fuel entry.
// When vehicleType has a tabulated BC factor, BC is mass x factor combined
// with the generic BC per the configured policy.
func (tc *TransportCalculator) CalculateFuelEmissions(fuelType string, amount float64, vehicleType string) (models.Pollutants, error) {
	burn, err := combustFuel(
		tc.TransportationLoader.Fuels,
		tc.TransportationLoader.GetGridCarbonIntensity(),
		fuelType, amount,
	)
	if err != nil {
		return models.Pollutants{}, err
	}
	if burn.unit == UnitKilowattHours || len(vehicleType) == 0 {
		return burn.emissions, nil
	}

	vehicleFactor, ok := tc.TransportationLoader.GetVehicleBlackCarbonFactor(vehicleType)
	if !ok {
		log.Debug().Str("vehicle_type", vehicleType).Msg("no vehicle black carbon factor, using generic factor")
		return burn.emissions, nil
	}
	vehicleBC := burn.massKg * vehicleFactor
	if tc.BlackCarbonPolicy == BlackCarbonAdditive {
		burn.emissions.BC += vehicleBC
	} else {
		burn.emissions.BC = vehicleBC
	}
	return burn.emissions, nil
}

// CalculateElectricEmissions charges grid electricity at the grid factor.
func (tc *TransportCalculator) CalculateElectricEmissions(kWh float64) (models.Pollutants, error) {
	if err := checkQuantity("electric_consumed_kwh", kWh); err != nil {
		return models.Pollutants{}, err
	}
	return electricEmissions(tc.TransportationLoader.GetGridCarbonIntensity(), kWh), nil
}
