package models

import "gonum.org/v1/gonum/floats"

// Pollutants holds per-pollutant masses in kilograms.
type Pollutants struct {
	CO2 float64 `json:"co2"`
	CH4 float64 `json:"ch4"`
	N2O float64 `json:"n2o"`
	BC  float64 `json:"bc"`
}

// Vector returns the masses in CO2, CH4, N2O, BC order.
func (p Pollutants) Vector() []float64 {
	return []float64{p.CO2, p.CH4, p.N2O, p.BC}
}

func PollutantsFromVector(v []float64) Pollutants {
	return Pollutants{CO2: v[0], CH4: v[1], N2O: v[2], BC: v[3]}
}

func (p Pollutants) Add(other Pollutants) Pollutants {
	v := p.Vector()
	floats.Add(v, other.Vector())
	return PollutantsFromVector(v)
}

func (p Pollutants) Sub(other Pollutants) Pollutants {
	v := p.Vector()
	floats.Sub(v, other.Vector())
	return PollutantsFromVector(v)
}

func (p Pollutants) Scale(c float64) Pollutants {
	v := p.Vector()
	floats.Scale(c, v)
	return PollutantsFromVector(v)
}

// SumPollutants adds every contribution. An empty list sums to zero.
func SumPollutants(contributions ...Pollutants) Pollutants {
	total := make([]float64, 4)
	for _, c := range contributions {
		floats.Add(total, c.Vector())
	}
	return PollutantsFromVector(total)
}

// PerTonne divides by the waste mass, or returns zero when there is none.
func (p Pollutants) PerTonne(wasteTonnes float64) Pollutants {
	if wasteTonnes <= 0 {
		return Pollutants{}
	}
	return p.Scale(1 / wasteTonnes)
}
