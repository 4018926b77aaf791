package calculators

import (
	"wastecarbon-go/src/emission-input/components/loaders"
	"wastecarbon-go/src/models"
	"wastecarbon-go/src/utils"
)

type Unit string

const (
	UnitLiters        Unit = "L"
	UnitKilograms     Unit = "kg"
	UnitKilowattHours Unit = "kWh"
)

const (
	CngFuelType      = "cng"
	ElectricFuelType = "ev"
)

// ResolveUnit returns the unit a consumption amount of fuelType is expressed
// in: kilograms for CNG, kilowatt-hours for EV and liters for every other
// tabulated fuel. Matching is case-insensitive.
func ResolveUnit(fuels *loaders.FuelTable, fuelType string) (Unit, error) {
	normalized := utils.NormalizeKey(fuelType)
	if normalized == ElectricFuelType {
		return UnitKilowattHours, nil
	}
	if !fuels.Has(normalized) {
		return "", models.NewValidationError(models.ErrUnknownFuelType, "fuel_type", fuelType)
	}
	if normalized == CngFuelType {
		return UnitKilograms, nil
	}
	return UnitLiters, nil
}
