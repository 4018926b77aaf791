//go:build amd64

package emission_metrics_calculator

import (
	"reflect"
	"sync/atomic"
	"testing"

	"bou.ke/monkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastecarbon-go/src/models"
)

func TestCalculateBatch_PatchedReports(t *testing.T) {
	defer monkey.UnpatchAll()
	ec := &EmissionMetricsCalculator{}
	var callCounter atomic.Int64
	monkey.PatchInstanceMethod(
		reflect.TypeOf(ec),
		"CalculateEmissions",
		func(ec *EmissionMetricsCalculator, request models.CalculationRequest) (models.EmissionReport, error) {
			call := callCounter.Add(1)
			return models.EmissionReport{
				Total: models.Pollutants{CO2: float64(call), CH4: 1, N2O: 1, BC: 1},
			}, nil
		},
	)

	requests := make([]models.CalculationRequest, 20)
	summary, err := ec.CalculateBatch(requests)
	require.NoError(t, err)
	assert.Equal(t, int64(20), callCounter.Load())
	assert.Equal(t, 20, summary.Count)
	assert.Equal(t, 210.0, summary.Cumulative.CO2)
	assert.Equal(t, 10.5, summary.Mean.CO2)
	assert.Equal(t, 19.0, summary.Percentile95.CO2)
	assert.Equal(t, 1.0, summary.Percentile95.BC)
	assert.Nil(t, summary.CO2e)
}
