package loaders

import (
	"fmt"

	"wastecarbon-go/src/models"
	"wastecarbon-go/src/utils"
)

const (
	FuelTypeColumn      = "fuel_type"
	EnergyContentColumn = "energy_content_mj_per_l"
	CO2FactorColumn     = "co2_kg_per_mj"
	CH4FactorColumn     = "ch4_kg_per_mj"
	N2OFactorColumn     = "n2o_kg_per_mj"
	BCFactorColumn      = "bc_kg_per_mj"
	DensityColumn       = "density_kg_per_l"
	FuelDataTable       = "fuel_data"
)

type FuelRecord struct {
	FuelType            string
	EnergyContentMJPerL float64
	CO2FactorKgPerMJ    float64
	CH4FactorKgPerMJ    float64
	N2OFactorKgPerMJ    float64
	BCFactorKgPerMJ     float64
	DensityKgPerL       float64
}

// FactorsKgPerMJ returns the combustion factors in CO2, CH4, N2O, BC order.
func (f FuelRecord) FactorsKgPerMJ() models.Pollutants {
	return models.Pollutants{
		CO2: f.CO2FactorKgPerMJ,
		CH4: f.CH4FactorKgPerMJ,
		N2O: f.N2OFactorKgPerMJ,
		BC:  f.BCFactorKgPerMJ,
	}
}

// FuelTable is a read-only fuel coefficient table keyed by fuel type.
type FuelTable struct {
	indexer *models.Indexer
	records []FuelRecord
}

func newEmptyFuelTable() *FuelTable {
	indexer, _ := models.NewIndexer(nil)
	return &FuelTable{indexer: indexer}
}

func readFuelTable(doc *utils.JsonDict, table string) (*FuelTable, error) {
	columns, err := readColumnTable(
		doc, table, FuelTypeColumn,
		EnergyContentColumn, CO2FactorColumn, CH4FactorColumn, N2OFactorColumn, BCFactorColumn, DensityColumn,
	)
	if err != nil {
		return nil, err
	}
	if err = columns.checkNonNegative(
		EnergyContentColumn, CO2FactorColumn, CH4FactorColumn, N2OFactorColumn, BCFactorColumn,
	); err != nil {
		return nil, err
	}

	records := make([]FuelRecord, columns.rows())
	for row := range records {
		density := columns.value(DensityColumn, row)
		if density <= 0 {
			return nil, fmt.Errorf("%w: %s.%s[%s]=%v must be positive",
				models.ErrMalformedTable, table, DensityColumn, columns.key(row), density)
		}
		records[row] = FuelRecord{
			FuelType:            columns.key(row),
			EnergyContentMJPerL: columns.value(EnergyContentColumn, row),
			CO2FactorKgPerMJ:    columns.value(CO2FactorColumn, row),
			CH4FactorKgPerMJ:    columns.value(CH4FactorColumn, row),
			N2OFactorKgPerMJ:    columns.value(N2OFactorColumn, row),
			BCFactorKgPerMJ:     columns.value(BCFactorColumn, row),
			DensityKgPerL:       density,
		}
	}
	return &FuelTable{indexer: columns.indexer, records: records}, nil
}

func (f *FuelTable) Get(fuelType string) (FuelRecord, bool) {
	row, ok := f.indexer.ValueToIndex(fuelType)
	if !ok {
		return FuelRecord{}, false
	}
	return f.records[row], true
}

func (f *FuelTable) Has(fuelType string) bool {
	_, ok := f.indexer.ValueToIndex(fuelType)
	return ok
}

func (f *FuelTable) Len() int {
	return len(f.records)
}

func (f *FuelTable) FuelTypes() []string {
	return f.indexer.Values()
}
