package calculators

import (
	"math"

	"wastecarbon-go/src/emission-input/components/loaders"
	"wastecarbon-go/src/models"
)

// FuelConverter converts fuel quantities between liters and kilograms using
// the tabulated density.
type FuelConverter struct {
	Fuels *loaders.FuelTable
}

func NewFuelConverter(fuels *loaders.FuelTable) *FuelConverter {
	return &FuelConverter{Fuels: fuels}
}

func (fc *FuelConverter) ToMass(fuelType string, volumeL float64) (float64, error) {
	density, err := fc.density(fuelType, volumeL)
	if err != nil {
		return 0, err
	}
	return volumeL * density, nil
}

func (fc *FuelConverter) ToVolume(fuelType string, massKg float64) (float64, error) {
	density, err := fc.density(fuelType, massKg)
	if err != nil {
		return 0, err
	}
	return massKg / density, nil
}

func (fc *FuelConverter) density(fuelType string, quantity float64) (float64, error) {
	if err := checkQuantity("fuel_consumed", quantity); err != nil {
		return 0, err
	}
	fuel, ok := fc.Fuels.Get(fuelType)
	if !ok {
		return 0, models.NewValidationError(models.ErrUnknownFuelType, "fuel_type", fuelType)
	}
	return fuel.DensityKgPerL, nil
}

// checkQuantity rejects negative and non-finite amounts.
func checkQuantity(field string, quantity float64) error {
	if quantity < 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return models.NewValidationError(models.ErrInvalidQuantity, field, quantity)
	}
	return nil
}

// checkPercentage rejects values outside [0, 100].
func checkPercentage(field string, pct float64) error {
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		return models.NewValidationError(models.ErrInvalidQuantity, field, pct)
	}
	return nil
}
