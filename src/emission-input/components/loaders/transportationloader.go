package loaders

import (
	"fmt"
	"os"

	"wastecarbon-go/src/models"
	"wastecarbon-go/src/utils"
)

const (
	VehicleFactorsTable   = "vehicle_emission_factors"
	VehicleTypeColumn     = "vehicle_type"
	VehicleBCFactorColumn = "bc_kg_per_kg_fuel"
	GridFactorKey         = "electricity_grid_factor.co2_kg_per_kwh"
	GwpFactorsKey         = "gwp_factors"
)

type VehicleRecord struct {
	VehicleType   string
	BCKgPerKgFuel float64
}

// GwpFactors holds 100-year global warming potentials.
type GwpFactors struct {
	CH4Fossil   float64
	CH4Biogenic float64
	N2O         float64
}

// TransportationLoader holds the transport coefficient document: fuel
// properties, vehicle-specific black carbon factors, the grid factor and
// optional GWP values. It is never mutated after construction.
type TransportationLoader struct {
	Fuels           *FuelTable
	vehicleIndexer  *models.Indexer
	vehicles        []VehicleRecord
	gridCO2KgPerKWh float64
	gwp             *GwpFactors
}

func LoadTransportationFile(path string) (*TransportationLoader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transportation coefficients: %w", err)
	}
	loader, err := NewTransportationLoader(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return loader, nil
}

func NewTransportationLoader(data []byte) (*TransportationLoader, error) {
	doc, err := utils.NewJsonDict(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedTable, err)
	}

	fuels, err := readFuelTable(doc, FuelDataTable)
	if err != nil {
		return nil, err
	}

	gridFactor, ok := doc.LookupNumeric(GridFactorKey)
	if !ok || gridFactor < 0 {
		return nil, fmt.Errorf("%w: %s must be a non-negative number", models.ErrMalformedTable, GridFactorKey)
	}

	loader := TransportationLoader{
		Fuels:           fuels,
		gridCO2KgPerKWh: gridFactor,
	}

	// Vehicle-specific factors are optional; without them the generic
	// per-MJ factor applies to every vehicle.
	if doc.Exists(VehicleFactorsTable) {
		vehicles, err := readColumnTable(doc, VehicleFactorsTable, VehicleTypeColumn, VehicleBCFactorColumn)
		if err != nil {
			return nil, err
		}
		if err = vehicles.checkNonNegative(VehicleBCFactorColumn); err != nil {
			return nil, err
		}
		loader.vehicleIndexer = vehicles.indexer
		loader.vehicles = make([]VehicleRecord, vehicles.rows())
		for row := range loader.vehicles {
			loader.vehicles[row] = VehicleRecord{
				VehicleType:   vehicles.key(row),
				BCKgPerKgFuel: vehicles.value(VehicleBCFactorColumn, row),
			}
		}
	}

	if doc.Exists(GwpFactorsKey) {
		entries := doc.GetDict(GwpFactorsKey, nil)
		gwp := GwpFactors{}
		for key, target := range map[string]*float64{
			"ch4_fossil":   &gwp.CH4Fossil,
			"ch4_biogenic": &gwp.CH4Biogenic,
			"n2o":          &gwp.N2O,
		} {
			entry, ok := entries[key]
			value, valueOk := entry.LookupNumeric("gwp100")
			if !ok || !valueOk || value < 0 {
				return nil, fmt.Errorf("%w: %s.%s.gwp100 must be a non-negative number", models.ErrMalformedTable, GwpFactorsKey, key)
			}
			*target = value
		}
		loader.gwp = &gwp
	}

	return &loader, nil
}

// GetFuel returns the fuel record or an UnknownFuelType validation error.
func (t *TransportationLoader) GetFuel(fuelType string) (FuelRecord, error) {
	record, ok := t.Fuels.Get(fuelType)
	if !ok {
		return FuelRecord{}, models.NewValidationError(models.ErrUnknownFuelType, "fuel_type", fuelType)
	}
	return record, nil
}

// GetVehicleBlackCarbonFactor returns the kg BC per kg fuel factor of a
// vehicle type, if one is tabulated.
func (t *TransportationLoader) GetVehicleBlackCarbonFactor(vehicleType string) (float64, bool) {
	if t.vehicleIndexer == nil || len(vehicleType) == 0 {
		return 0, false
	}
	row, ok := t.vehicleIndexer.ValueToIndex(vehicleType)
	if !ok {
		return 0, false
	}
	return t.vehicles[row].BCKgPerKgFuel, true
}

func (t *TransportationLoader) VehicleTypes() []string {
	if t.vehicleIndexer == nil {
		return nil
	}
	return t.vehicleIndexer.Values()
}

// GetGridCarbonIntensity returns the grid factor in kg CO2 per kWh.
func (t *TransportationLoader) GetGridCarbonIntensity() float64 {
	return t.gridCO2KgPerKWh
}

// GetGwpFactors returns nil when the document carries no GWP table.
func (t *TransportationLoader) GetGwpFactors() *GwpFactors {
	if t.gwp == nil {
		return nil
	}
	gwp := *t.gwp
	return &gwp
}
