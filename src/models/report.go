package models

// LegReport is the contribution of one transport leg.
type LegReport struct {
	Emissions Pollutants `json:"emissions"`
	PerTonne  Pollutants `json:"per_tonne"`
}

// IncinerationReport separates the emitting sources of an incineration plant
// from the emissions avoided by energy recovery.
type IncinerationReport struct {
	WasteCombustion Pollutants `json:"waste_combustion"`
	AuxiliaryFuel   Pollutants `json:"auxiliary_fuel"`
	Electricity     Pollutants `json:"electricity"`
	Emissions       Pollutants `json:"emissions"`
	Avoided         Pollutants `json:"avoided"`
	Net             Pollutants `json:"net"`
	PerTonne        Pollutants `json:"per_tonne"`
}

// EmissionReport is the aggregate for every requested leg and method.
type EmissionReport struct {
	Total        Pollutants          `json:"total"`
	Transport    LegReport           `json:"transport"`
	Station      *LegReport          `json:"station,omitempty"`
	Incineration *IncinerationReport `json:"incineration,omitempty"`
	// CO2e is only set when a GWP table was loaded. BC is never included.
	CO2e *float64 `json:"co2e,omitempty"`
}

// BatchSummary aggregates reports of many calculation requests, typically one
// per operating day.
type BatchSummary struct {
	Count        int        `json:"count"`
	Cumulative   Pollutants `json:"cumulative"`
	Mean         Pollutants `json:"mean"`
	Percentile95 Pollutants `json:"p95"`
	CO2e         *float64   `json:"co2e,omitempty"`
}
