package models

// CalculationRequest is the activity input for one calculation. Units of the
// consumption arrays are never supplied by the caller; they are inferred from
// the fuel type.
type CalculationRequest struct {
	WasteCollectedTonnes  float64              `json:"waste_collected_tonnes"`
	TransportFuelTypes    []string             `json:"transport_fuel_types"`
	TransportFuelConsumed []float64            `json:"transport_fuel_consumed"`
	VehicleType           string               `json:"vehicle_type"`
	TransferStation       bool                 `json:"transfer_station"`
	WasteHandledAtStation float64              `json:"waste_handled_at_station_tonnes"`
	StationFuelTypes      []string             `json:"station_fuel_types"`
	StationFuelConsumed   []float64            `json:"station_fuel_consumed"`
	ElectricConsumedKWh   float64              `json:"electric_consumed_kwh"`
	Incineration          *IncinerationRequest `json:"incineration,omitempty"`
}

// IncinerationRequest describes one incineration plant operating period.
// A nil Composition selects the table's mixed composition profile.
type IncinerationRequest struct {
	WasteIncineratedTonnes float64            `json:"waste_incinerated_tonnes"`
	Technology             string             `json:"technology"`
	Composition            map[string]float64 `json:"composition,omitempty"`
	AuxiliaryFuelTypes     []string           `json:"auxiliary_fuel_types,omitempty"`
	AuxiliaryFuelConsumed  []float64          `json:"auxiliary_fuel_consumed,omitempty"`
	ElectricConsumedKWh    float64            `json:"electric_consumed_kwh"`
	EnergyRecovery         *EnergyRecovery    `json:"energy_recovery,omitempty"`
}

type EnergyRecovery struct {
	// Mode is "heat", "electricity" or "both". Empty means both.
	Mode                     string  `json:"mode"`
	CalorificValueMJPerKg    float64 `json:"calorific_value_mj_per_kg"`
	ElectricityEfficiencyPct float64 `json:"electricity_recovery_efficiency_pct"`
	ElectricityUsedOnsitePct float64 `json:"electricity_used_onsite_pct"`
	HeatEfficiencyPct        float64 `json:"heat_recovery_efficiency_pct"`
	HeatUsedOnsitePct        float64 `json:"heat_used_onsite_pct"`
	DisplacedFuel            string  `json:"displaced_fuel"`
}

// LegInput is the fuel and electricity use of one transport leg.
type LegInput struct {
	Name                string
	WasteTonnes         float64
	FuelTypes           []string
	FuelConsumed        []float64
	VehicleType         string
	ElectricConsumedKWh float64
}
