package calculators

import (
	"fmt"
	"sort"

	"wastecarbon-go/src/emission-input/components/loaders"
	"wastecarbon-go/src/models"
	"wastecarbon-go/src/utils"
)

// CarbonToCO2 is the molecular weight ratio of CO2 to C.
const CarbonToCO2 = 44.0 / 12.0

const (
	KgPerTonne = 1000.0
	MJPerKWh   = 3.6
)

const (
	RecoveryHeat        = "heat"
	RecoveryElectricity = "electricity"
	RecoveryBoth        = "both"
)

type IncinerationCalculator struct {
	IncinerationLoader   *loaders.IncinerationLoader
	TransportationLoader *loaders.TransportationLoader
}

func NewIncinerationCalculator(
	IncinerationLoader *loaders.IncinerationLoader,
	TransportationLoader *loaders.TransportationLoader,
) (*IncinerationCalculator, error) {
	if IncinerationLoader == nil || TransportationLoader == nil {
		return nil, fmt.Errorf("incineration calculator requires incineration and transportation coefficients")
	}
	return &IncinerationCalculator{
		IncinerationLoader:   IncinerationLoader,
		TransportationLoader: TransportationLoader,
	}, nil
}

func (ic *IncinerationCalculator) CalculateIncinerationEmissions(request models.IncinerationRequest) (models.IncinerationReport, error) {
	wasteTonnes := request.WasteIncineratedTonnes
	if err := checkQuantity("waste_incinerated_tonnes", wasteTonnes); err != nil {
		return models.IncinerationReport{}, err
	}

	fossilCO2, err := ic.CalculateFossilCO2(wasteTonnes, request.Composition)
	if err != nil {
		return models.IncinerationReport{}, err
	}
	wasteCombustion, err := ic.CalculateTechnologyEmissions(wasteTonnes, request.Technology)
	if err != nil {
		return models.IncinerationReport{}, err
	}
	wasteCombustion.CO2 = fossilCO2

	auxiliary, err := ic.CalculateAuxiliaryFuelEmissions(request.AuxiliaryFuelTypes, request.AuxiliaryFuelConsumed)
	if err != nil {
		return models.IncinerationReport{}, err
	}

	if err = checkQuantity("electric_consumed_kwh", request.ElectricConsumedKWh); err != nil {
		return models.IncinerationReport{}, err
	}
	electricity := electricEmissions(ic.TransportationLoader.GetGridCarbonIntensity(), request.ElectricConsumedKWh)

	avoided, err := ic.CalculateAvoidedEmissions(wasteTonnes, request.EnergyRecovery)
	if err != nil {
		return models.IncinerationReport{}, err
	}

	emissions := models.SumPollutants(wasteCombustion, auxiliary, electricity)
	return models.IncinerationReport{
		WasteCombustion: wasteCombustion,
		AuxiliaryFuel:   auxiliary,
		Electricity:     electricity,
		Emissions:       emissions,
		Avoided:         avoided,
		Net:             emissions.Sub(avoided),
		PerTonne:        emissions.PerTonne(wasteTonnes),
	}, nil
}

// CalculateFossilCO2 returns kg of fossil CO2 from burning wasteTonnes of
// waste with the given composition (percent per category). An empty
// composition selects the mixed composition profile of the table.
func (ic *IncinerationCalculator) CalculateFossilCO2(wasteTonnes float64, composition map[string]float64) (float64, error) {
	if err := checkQuantity("waste_incinerated_tonnes", wasteTonnes); err != nil {
		return 0, err
	}
	if len(composition) == 0 {
		composition = ic.IncinerationLoader.DefaultComposition()
	}

	// Fixed order keeps the floating point sum reproducible and makes the
	// reported duplicate stable.
	rawKeys := make([]string, 0, len(composition))
	for wasteType := range composition {
		rawKeys = append(rawKeys, wasteType)
	}
	sort.Strings(rawKeys)
	requestKeys := make(map[string]string, len(rawKeys))
	wasteTypes := make([]string, 0, len(rawKeys))
	for _, rawKey := range rawKeys {
		wasteType := utils.NormalizeKey(rawKey)
		if _, duplicate := requestKeys[wasteType]; duplicate {
			return 0, models.NewValidationError(models.ErrInvalidQuantity, "composition."+wasteType, rawKey)
		}
		requestKeys[wasteType] = rawKey
		wasteTypes = append(wasteTypes, wasteType)
	}
	sort.Strings(wasteTypes)

	totalCO2 := 0.0
	for _, wasteType := range wasteTypes {
		rawKey := requestKeys[wasteType]
		compositionPct := composition[rawKey]
		category, err := ic.IncinerationLoader.GetWasteCategory(rawKey)
		if err != nil {
			return 0, err
		}
		if err = checkPercentage("composition."+wasteType, compositionPct); err != nil {
			return 0, err
		}
		fossilCarbonFraction := (category.DryMatterPct / 100) *
			(category.TotalCarbonPct / 100) *
			(category.FossilCarbonPct / 100) *
			(category.OxidationPct / 100)
		totalCO2 += wasteTonnes * (compositionPct / 100) * KgPerTonne * fossilCarbonFraction * CarbonToCO2
	}
	return totalCO2, nil
}

// CalculateTechnologyEmissions returns CH4, N2O and BC of burning wasteTonnes
// of wet waste in the given technology. CO2 is left at zero.
func (ic *IncinerationCalculator) CalculateTechnologyEmissions(wasteTonnes float64, technology string) (models.Pollutants, error) {
	if err := checkQuantity("waste_incinerated_tonnes", wasteTonnes); err != nil {
		return models.Pollutants{}, err
	}
	factors, err := ic.IncinerationLoader.GetTechnology(technology)
	if err != nil {
		return models.Pollutants{}, err
	}
	return models.Pollutants{
		CH4: wasteTonnes * factors.CH4KgPerTonneWetWaste,
		N2O: wasteTonnes * factors.N2OKgPerTonneWetWaste,
		BC:  wasteTonnes * factors.BCKgPerTonneWetWaste,
	}, nil
}

// CalculateAuxiliaryFuelEmissions combusts the support fuels of the plant
// with the same unit rules as transport fuels.
func (ic *IncinerationCalculator) CalculateAuxiliaryFuelEmissions(fuelTypes []string, consumed []float64) (models.Pollutants, error) {
	if err := checkParallelArrays("auxiliary_fuel_types", fuelTypes, "auxiliary_fuel_consumed", consumed); err != nil {
		return models.Pollutants{}, err
	}
	total := models.Pollutants{}
	for i, fuelType := range fuelTypes {
		burn, err := combustFuel(
			ic.IncinerationLoader.Fuels,
			ic.TransportationLoader.GetGridCarbonIntensity(),
			fuelType, consumed[i],
		)
		if err != nil {
			return models.Pollutants{}, err
		}
		total = total.Add(burn.emissions)
	}
	return total, nil
}

// CalculateAvoidedEmissions returns the emissions displaced by recovered
// energy. Heat displaces the named fossil fuel, electricity displaces grid
// power (CO2 only). A nil recovery avoids nothing.
func (ic *IncinerationCalculator) CalculateAvoidedEmissions(wasteTonnes float64, recovery *models.EnergyRecovery) (models.Pollutants, error) {
	if recovery == nil {
		return models.Pollutants{}, nil
	}
	mode := utils.NormalizeKey(recovery.Mode)
	if mode == "" {
		mode = RecoveryBoth
	}
	if mode != RecoveryHeat && mode != RecoveryElectricity && mode != RecoveryBoth {
		return models.Pollutants{}, models.NewValidationError(models.ErrInvalidQuantity, "energy_recovery.mode", recovery.Mode)
	}
	if err := checkQuantity("energy_recovery.calorific_value_mj_per_kg", recovery.CalorificValueMJPerKg); err != nil {
		return models.Pollutants{}, err
	}
	percentages := []struct {
		field string
		pct   float64
	}{
		{"energy_recovery.electricity_recovery_efficiency_pct", recovery.ElectricityEfficiencyPct},
		{"energy_recovery.electricity_used_onsite_pct", recovery.ElectricityUsedOnsitePct},
		{"energy_recovery.heat_recovery_efficiency_pct", recovery.HeatEfficiencyPct},
		{"energy_recovery.heat_used_onsite_pct", recovery.HeatUsedOnsitePct},
	}
	for _, p := range percentages {
		if err := checkPercentage(p.field, p.pct); err != nil {
			return models.Pollutants{}, err
		}
	}

	perTonne := models.Pollutants{}
	if mode != RecoveryElectricity && len(recovery.DisplacedFuel) > 0 && recovery.HeatEfficiencyPct > 0 {
		fuel, err := ic.IncinerationLoader.GetFuel(recovery.DisplacedFuel)
		if err != nil {
			return models.Pollutants{}, err
		}
		exportableHeatMJ := (recovery.HeatEfficiencyPct / 100) * KgPerTonne * recovery.CalorificValueMJPerKg *
			(100 - recovery.HeatUsedOnsitePct) / 100
		perTonne = perTonne.Add(fuel.FactorsKgPerMJ().Scale(exportableHeatMJ))
	}
	if mode != RecoveryHeat && recovery.ElectricityEfficiencyPct > 0 {
		exportableKWh := (recovery.ElectricityEfficiencyPct / 100) * KgPerTonne * recovery.CalorificValueMJPerKg / MJPerKWh *
			(100 - recovery.ElectricityUsedOnsitePct) / 100
		perTonne = perTonne.Add(electricEmissions(ic.TransportationLoader.GetGridCarbonIntensity(), exportableKWh))
	}
	return perTonne.Scale(wasteTonnes), nil
}
