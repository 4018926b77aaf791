package loaders

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"

	"wastecarbon-go/src/models"
	"wastecarbon-go/src/utils"
)

const (
	TechnologyTable        = "incineration_emissions"
	TechnologyColumn       = "type"
	TechnologyCH4Column    = "ch4_kg_per_ton"
	TechnologyN2OColumn    = "n2o_kg_per_ton"
	TechnologyBCColumn     = "bc_kg_per_ton"
	CompositionTable       = "fossil_based_co2_emissions"
	WasteTypeColumn        = "waste_type"
	DryMatterColumn        = "dry_matter_percent"
	TotalCarbonColumn      = "total_carbon_percent"
	FossilCarbonColumn     = "fossil_carbon_percent"
	OxidationColumn        = "oxidation_factor_percent"
	MixedCompositionColumn = "mixed_composition_percent"
)

// MixedCompositionTolerance bounds how far the default composition profile may
// drift from 100 percent.
const MixedCompositionTolerance = 0.1

type IncinerationTechnology struct {
	Type                  string
	CH4KgPerTonneWetWaste float64
	N2OKgPerTonneWetWaste float64
	BCKgPerTonneWetWaste  float64
}

// WasteCompositionRecord holds the fossil carbon properties of one waste
// category. All values are percentages.
type WasteCompositionRecord struct {
	WasteType           string
	DryMatterPct        float64
	TotalCarbonPct      float64
	FossilCarbonPct     float64
	OxidationPct        float64
	MixedCompositionPct float64
}

// IncinerationLoader holds the incineration coefficient document. It is never
// mutated after construction.
type IncinerationLoader struct {
	// Fuels lists auxiliary and displaced fuels at the plant. It may be empty.
	Fuels             *FuelTable
	technologyIndexer *models.Indexer
	technologies      []IncinerationTechnology
	categoryIndexer   *models.Indexer
	categories        []WasteCompositionRecord
}

func LoadIncinerationFile(path string) (*IncinerationLoader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading incineration coefficients: %w", err)
	}
	loader, err := NewIncinerationLoader(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return loader, nil
}

func NewIncinerationLoader(data []byte) (*IncinerationLoader, error) {
	doc, err := utils.NewJsonDict(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedTable, err)
	}

	technologies, err := readColumnTable(
		doc, TechnologyTable, TechnologyColumn,
		TechnologyCH4Column, TechnologyN2OColumn, TechnologyBCColumn,
	)
	if err != nil {
		return nil, err
	}
	if err = technologies.checkNonNegative(TechnologyCH4Column, TechnologyN2OColumn, TechnologyBCColumn); err != nil {
		return nil, err
	}

	categories, err := readColumnTable(
		doc, CompositionTable, WasteTypeColumn,
		DryMatterColumn, TotalCarbonColumn, FossilCarbonColumn, OxidationColumn, MixedCompositionColumn,
	)
	if err != nil {
		return nil, err
	}
	if err = categories.checkRange(
		0, 100,
		DryMatterColumn, TotalCarbonColumn, FossilCarbonColumn, OxidationColumn, MixedCompositionColumn,
	); err != nil {
		return nil, err
	}
	mixedTotal := floats.Sum(categories.columns[MixedCompositionColumn])
	if math.Abs(mixedTotal-100) > MixedCompositionTolerance {
		return nil, fmt.Errorf("%w: %s.%s sums to %v, expected 100",
			models.ErrMalformedTable, CompositionTable, MixedCompositionColumn, mixedTotal)
	}

	loader := IncinerationLoader{
		Fuels:             newEmptyFuelTable(),
		technologyIndexer: technologies.indexer,
		technologies:      make([]IncinerationTechnology, technologies.rows()),
		categoryIndexer:   categories.indexer,
		categories:        make([]WasteCompositionRecord, categories.rows()),
	}
	for row := range loader.technologies {
		loader.technologies[row] = IncinerationTechnology{
			Type:                  technologies.key(row),
			CH4KgPerTonneWetWaste: technologies.value(TechnologyCH4Column, row),
			N2OKgPerTonneWetWaste: technologies.value(TechnologyN2OColumn, row),
			BCKgPerTonneWetWaste:  technologies.value(TechnologyBCColumn, row),
		}
	}
	for row := range loader.categories {
		loader.categories[row] = WasteCompositionRecord{
			WasteType:           categories.key(row),
			DryMatterPct:        categories.value(DryMatterColumn, row),
			TotalCarbonPct:      categories.value(TotalCarbonColumn, row),
			FossilCarbonPct:     categories.value(FossilCarbonColumn, row),
			OxidationPct:        categories.value(OxidationColumn, row),
			MixedCompositionPct: categories.value(MixedCompositionColumn, row),
		}
	}

	if doc.Exists(FuelDataTable) {
		if loader.Fuels, err = readFuelTable(doc, FuelDataTable); err != nil {
			return nil, err
		}
	}

	return &loader, nil
}

func (l *IncinerationLoader) GetTechnology(technology string) (IncinerationTechnology, error) {
	row, ok := l.technologyIndexer.ValueToIndex(technology)
	if !ok {
		return IncinerationTechnology{}, models.NewValidationError(models.ErrUnknownTechnology, "technology", technology)
	}
	return l.technologies[row], nil
}

func (l *IncinerationLoader) GetWasteCategory(wasteType string) (WasteCompositionRecord, error) {
	row, ok := l.categoryIndexer.ValueToIndex(wasteType)
	if !ok {
		return WasteCompositionRecord{}, models.NewValidationError(models.ErrUnknownWasteCategory, "composition", wasteType)
	}
	return l.categories[row], nil
}

// GetFuel returns an auxiliary or displaced fuel of the plant.
func (l *IncinerationLoader) GetFuel(fuelType string) (FuelRecord, error) {
	record, ok := l.Fuels.Get(fuelType)
	if !ok {
		return FuelRecord{}, models.NewValidationError(models.ErrUnknownFuelType, "fuel_type", fuelType)
	}
	return record, nil
}

// DefaultComposition returns a fresh copy of the mixed composition profile.
func (l *IncinerationLoader) DefaultComposition() map[string]float64 {
	composition := make(map[string]float64, len(l.categories))
	for _, category := range l.categories {
		composition[category.WasteType] = category.MixedCompositionPct
	}
	return composition
}

func (l *IncinerationLoader) WasteCategories() []WasteCompositionRecord {
	return append([]WasteCompositionRecord(nil), l.categories...)
}

func (l *IncinerationLoader) Technologies() []string {
	return l.technologyIndexer.Values()
}
