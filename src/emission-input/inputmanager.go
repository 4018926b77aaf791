package emission_input

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"wastecarbon-go/src/emission-input/components/calculators"
	"wastecarbon-go/src/emission-input/components/loaders"
	"wastecarbon-go/src/models"
)

// InputManager owns the coefficient tables and the calculators built on
// them. It holds no per-request state and may be shared between goroutines.
type InputManager struct {
	TransportationLoader   *loaders.TransportationLoader
	IncinerationLoader     *loaders.IncinerationLoader
	TransportCalculator    *calculators.TransportCalculator
	IncinerationCalculator *calculators.IncinerationCalculator
}

func NewInputManager(
	TransportationLoader *loaders.TransportationLoader,
	IncinerationLoader *loaders.IncinerationLoader,
	BlackCarbonPolicy calculators.BlackCarbonPolicy,
) (*InputManager, error) {
	transportCalculator, err := calculators.NewTransportCalculator(TransportationLoader, BlackCarbonPolicy)
	if err != nil {
		return nil, err
	}
	incinerationCalculator, err := calculators.NewIncinerationCalculator(IncinerationLoader, TransportationLoader)
	if err != nil {
		return nil, err
	}
	return &InputManager{
		TransportationLoader:   TransportationLoader,
		IncinerationLoader:     IncinerationLoader,
		TransportCalculator:    transportCalculator,
		IncinerationCalculator: incinerationCalculator,
	}, nil
}

// Setup loads both coefficient documents from disk. Any defect in either
// document fails the whole setup.
func Setup(transportationFile string, incinerationFile string, blackCarbonPolicy string) (*InputManager, error) {
	policy, err := calculators.ParseBlackCarbonPolicy(blackCarbonPolicy)
	if err != nil {
		return nil, err
	}
	transportationLoader, err := loaders.LoadTransportationFile(transportationFile)
	if err != nil {
		return nil, fmt.Errorf("loading transportation coefficients: %w", err)
	}
	incinerationLoader, err := loaders.LoadIncinerationFile(incinerationFile)
	if err != nil {
		return nil, fmt.Errorf("loading incineration coefficients: %w", err)
	}

	inputManager, err := NewInputManager(transportationLoader, incinerationLoader, policy)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("fuels", transportationLoader.Fuels.Len()).
		Int("vehicle_types", len(transportationLoader.VehicleTypes())).
		Int("technologies", len(incinerationLoader.Technologies())).
		Int("waste_categories", len(incinerationLoader.WasteCategories())).
		Str("black_carbon_policy", string(policy)).
		Msg("created input manager")
	return inputManager, nil
}

// CalculateTransportLeg computes the vehicle leg of a request.
func (im *InputManager) CalculateTransportLeg(request models.CalculationRequest) (models.LegReport, error) {
	return im.TransportCalculator.CalculateLegEmissions(models.LegInput{
		Name:         "transport",
		WasteTonnes:  request.WasteCollectedTonnes,
		FuelTypes:    request.TransportFuelTypes,
		FuelConsumed: request.TransportFuelConsumed,
		VehicleType:  request.VehicleType,
	})
}

// CalculateStationLeg computes the transfer station leg. The electricity of
// the request is drawn at the station. It returns nil when the request has
// no transfer station.
func (im *InputManager) CalculateStationLeg(request models.CalculationRequest) (*models.LegReport, error) {
	if !request.TransferStation {
		return nil, nil
	}
	report, err := im.TransportCalculator.CalculateLegEmissions(models.LegInput{
		Name:                "station",
		WasteTonnes:         request.WasteHandledAtStation,
		FuelTypes:           request.StationFuelTypes,
		FuelConsumed:        request.StationFuelConsumed,
		ElectricConsumedKWh: request.ElectricConsumedKWh,
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// CalculateIncineration returns nil when the request has no incineration part.
func (im *InputManager) CalculateIncineration(request models.CalculationRequest) (*models.IncinerationReport, error) {
	if request.Incineration == nil {
		return nil, nil
	}
	report, err := im.IncinerationCalculator.CalculateIncinerationEmissions(*request.Incineration)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetGwpFactors returns nil when no GWP table was loaded.
func (im *InputManager) GetGwpFactors() *loaders.GwpFactors {
	return im.TransportationLoader.GetGwpFactors()
}
