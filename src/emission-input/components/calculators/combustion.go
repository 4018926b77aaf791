package calculators

import (
	"wastecarbon-go/src/emission-input/components/loaders"
	"wastecarbon-go/src/models"
)

// fuelBurn is the result of combusting one fuel entry.
type fuelBurn struct {
	emissions models.Pollutants
	massKg    float64
	unit      Unit
}

// combustFuel computes the per-MJ emissions of one consumption entry. EV
// entries are charged at the grid factor, with zero CH4, N2O and BC.
func combustFuel(
	fuels *loaders.FuelTable,
	gridCO2KgPerKWh float64,
	fuelType string,
	amount float64,
) (fuelBurn, error) {
	unit, err := ResolveUnit(fuels, fuelType)
	if err != nil {
		return fuelBurn{}, err
	}
	if err = checkQuantity("fuel_consumed", amount); err != nil {
		return fuelBurn{}, err
	}
	if unit == UnitKilowattHours {
		return fuelBurn{emissions: electricEmissions(gridCO2KgPerKWh, amount), unit: unit}, nil
	}

	fuel, _ := fuels.Get(fuelType)
	converter := NewFuelConverter(fuels)
	var volumeL, massKg float64
	if unit == UnitKilograms {
		massKg = amount
		if volumeL, err = converter.ToVolume(fuelType, massKg); err != nil {
			return fuelBurn{}, err
		}
	} else {
		volumeL = amount
		if massKg, err = converter.ToMass(fuelType, volumeL); err != nil {
			return fuelBurn{}, err
		}
	}

	energyMJ := volumeL * fuel.EnergyContentMJPerL
	return fuelBurn{
		emissions: fuel.FactorsKgPerMJ().Scale(energyMJ),
		massKg:    massKg,
		unit:      unit,
	}, nil
}

func electricEmissions(gridCO2KgPerKWh float64, kWh float64) models.Pollutants {
	return models.Pollutants{CO2: kWh * gridCO2KgPerKWh}
}

func checkParallelArrays(typesField string, fuelTypes []string, amountsField string, amounts []float64) error {
	if len(fuelTypes) != len(amounts) {
		return models.NewValidationError(
			models.ErrArrayLengthMismatch,
			typesField+"/"+amountsField,
			[2]int{len(fuelTypes), len(amounts)},
		)
	}
	return nil
}
