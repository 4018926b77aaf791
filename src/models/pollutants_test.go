package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPollutantsArithmetic(t *testing.T) {
	a := Pollutants{CO2: 10, CH4: 0.5, N2O: 0.25, BC: 0.01}
	b := Pollutants{CO2: 2, CH4: 0.5, N2O: 0.05, BC: 0.01}

	assert.Equal(t, Pollutants{CO2: 12, CH4: 1, N2O: 0.3, BC: 0.02}, a.Add(b))
	assert.Equal(t, Pollutants{CO2: 8, CH4: 0, N2O: 0.2, BC: 0}, a.Sub(b))
	assert.Equal(t, Pollutants{CO2: 20, CH4: 1, N2O: 0.5, BC: 0.02}, a.Scale(2))
	assert.Equal(t, []float64{10, 0.5, 0.25, 0.01}, a.Vector())
	assert.Equal(t, a, PollutantsFromVector(a.Vector()))
	// Operands are left untouched.
	assert.Equal(t, 10.0, a.CO2)
}

func TestSumPollutants(t *testing.T) {
	assert.Equal(t, Pollutants{}, SumPollutants())
	assert.Equal(t,
		Pollutants{CO2: 6, CH4: 3, N2O: 1.5, BC: 0.75},
		SumPollutants(
			Pollutants{CO2: 1, CH4: 1, N2O: 0.5, BC: 0.25},
			Pollutants{CO2: 2, CH4: 1, N2O: 0.5, BC: 0.25},
			Pollutants{CO2: 3, CH4: 1, N2O: 0.5, BC: 0.25},
		),
	)
}

func TestPerTonne(t *testing.T) {
	p := Pollutants{CO2: 100, CH4: 4, N2O: 2, BC: 1}
	assert.Equal(t, Pollutants{CO2: 25, CH4: 1, N2O: 0.5, BC: 0.25}, p.PerTonne(4))
	assert.Equal(t, Pollutants{}, p.PerTonne(0))
	assert.Equal(t, Pollutants{}, p.PerTonne(-1))
}
