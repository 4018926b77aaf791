package emission_metrics_calculator

import (
	"bytes"
	"fmt"
	"runtime"
	"slices"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	emissioninput "wastecarbon-go/src/emission-input"
	"wastecarbon-go/src/emission-input/components/loaders"
	"wastecarbon-go/src/models"
)

// TailPercentile is the percentile reported as the tail of a batch.
const TailPercentile = 95.0

type EmissionMetricsCalculator struct {
	inputManager *emissioninput.InputManager
}

func NewEmissionMetricsCalculator(inputManager *emissioninput.InputManager) (*EmissionMetricsCalculator, error) {
	if inputManager == nil {
		return nil, fmt.Errorf("emission metrics calculator requires an input manager")
	}
	return &EmissionMetricsCalculator{inputManager: inputManager}, nil
}

func SetupEmissionMetricsCalculator(
	transportationFile string,
	incinerationFile string,
	blackCarbonPolicy string,
) (*EmissionMetricsCalculator, error) {
	inputManager, err := emissioninput.Setup(transportationFile, incinerationFile, blackCarbonPolicy)
	if err != nil {
		return nil, err
	}
	return NewEmissionMetricsCalculator(inputManager)
}

func (ec *EmissionMetricsCalculator) InputManager() *emissioninput.InputManager {
	return ec.inputManager
}

// CalculateEmissions computes every applicable leg of the request and sums
// them. Legs that do not apply are left out of the report and contribute
// nothing. Any invalid leg fails the whole request.
func (ec *EmissionMetricsCalculator) CalculateEmissions(request models.CalculationRequest) (models.EmissionReport, error) {
	transport, err := ec.inputManager.CalculateTransportLeg(request)
	if err != nil {
		return models.EmissionReport{}, err
	}
	station, err := ec.inputManager.CalculateStationLeg(request)
	if err != nil {
		return models.EmissionReport{}, err
	}
	incineration, err := ec.inputManager.CalculateIncineration(request)
	if err != nil {
		return models.EmissionReport{}, err
	}

	contributions := []models.Pollutants{transport.Emissions}
	if station != nil {
		contributions = append(contributions, station.Emissions)
	}
	if incineration != nil {
		contributions = append(contributions, incineration.Emissions)
	}
	report := models.EmissionReport{
		Total:        models.SumPollutants(contributions...),
		Transport:    transport,
		Station:      station,
		Incineration: incineration,
	}
	report.CO2e = CalculateCO2e(report, ec.inputManager.GetGwpFactors())
	return report, nil
}

// CalculateEmissionsJSON decodes a calculation request and computes its report.
func (ec *EmissionMetricsCalculator) CalculateEmissionsJSON(data []byte) (models.EmissionReport, error) {
	var request models.CalculationRequest
	if err := models.DecodeStrict(bytes.NewReader(data), &request); err != nil {
		return models.EmissionReport{}, fmt.Errorf("decoding calculation request: %w", err)
	}
	return ec.CalculateEmissions(request)
}

// CalculateBatch computes the requests concurrently and summarises the
// totals in request order. A failing request fails the batch.
func (ec *EmissionMetricsCalculator) CalculateBatch(requests []models.CalculationRequest) (models.BatchSummary, error) {
	reports := make([]models.EmissionReport, len(requests))
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i := range requests {
		g.Go(func() error {
			report, err := ec.CalculateEmissions(requests[i])
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.BatchSummary{}, err
	}

	totals := make([]models.Pollutants, len(reports))
	var co2e *float64
	for i, report := range reports {
		totals[i] = report.Total
		if report.CO2e != nil {
			if co2e == nil {
				co2e = new(float64)
			}
			*co2e += *report.CO2e
		}
	}
	summary := SummarizeTotals(totals)
	summary.CO2e = co2e
	log.Debug().Int("count", summary.Count).Float64("co2_kg", summary.Cumulative.CO2).Msg("calculated batch")
	return summary, nil
}

// SummarizeTotals returns the cumulative, mean and tail value of each
// pollutant. An empty list summarises to zeros.
func SummarizeTotals(totals []models.Pollutants) models.BatchSummary {
	summary := models.BatchSummary{
		Count:      len(totals),
		Cumulative: models.SumPollutants(totals...),
	}
	if len(totals) == 0 {
		return summary
	}

	columns := make([][]float64, 4)
	for _, total := range totals {
		for i, value := range total.Vector() {
			columns[i] = append(columns[i], value)
		}
	}
	means := make([]float64, 4)
	tails := make([]float64, 4)
	for i, column := range columns {
		slices.Sort(column)
		means[i] = stat.Mean(column, nil)
		tails[i] = stat.Quantile(TailPercentile/100, stat.Empirical, column, nil)
	}
	summary.Mean = models.PollutantsFromVector(means)
	summary.Percentile95 = models.PollutantsFromVector(tails)
	return summary
}

// CalculateCO2e weights the report totals by 100-year GWP. CH4 from waste
// combustion is biogenic, all other CH4 is fossil. BC is not weighted. It
// returns nil without a GWP table.
func CalculateCO2e(report models.EmissionReport, gwp *loaders.GwpFactors) *float64 {
	if gwp == nil {
		return nil
	}
	biogenicCH4 := 0.0
	if report.Incineration != nil {
		biogenicCH4 = report.Incineration.WasteCombustion.CH4
	}
	fossilCH4 := report.Total.CH4 - biogenicCH4
	co2e := report.Total.CO2 +
		fossilCH4*gwp.CH4Fossil +
		biogenicCH4*gwp.CH4Biogenic +
		report.Total.N2O*gwp.N2O
	return &co2e
}
