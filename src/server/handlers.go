package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"wastecarbon-go/src/models"
)

type errorResponse struct {
	Error string      `json:"error"`
	Kind  string      `json:"kind"`
	Field string      `json:"field,omitempty"`
	Value interface{} `json:"value,omitempty"`
}

// TransportationResponse carries the vehicle leg, the station leg when it
// applies, and their sum.
type TransportationResponse struct {
	Total     models.Pollutants `json:"total"`
	Transport models.LegReport  `json:"transport"`
	Station   *models.LegReport `json:"station,omitempty"`
}

var errorKinds = map[error]string{
	models.ErrUnknownFuelType:      "unknown_fuel_type",
	models.ErrUnknownTechnology:    "unknown_technology",
	models.ErrUnknownWasteCategory: "unknown_waste_category",
	models.ErrArrayLengthMismatch:  "array_length_mismatch",
	models.ErrInvalidQuantity:      "invalid_quantity",
}

// errMalformedRequest marks bodies that are not a valid JSON request.
var errMalformedRequest = errors.New("malformed request")

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := models.DecodeStrict(http.MaxBytesReader(w, r.Body, MaxRequestBytes), v); err != nil {
		return fmt.Errorf("%w: %v", errMalformedRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps validation failures to 400 and everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	var validationError *models.ValidationError
	switch {
	case errors.As(err, &validationError):
		kind, ok := errorKinds[validationError.Kind]
		if !ok {
			kind = "invalid_request"
		}
		ValidationErrorsTotal.WithLabelValues(kind).Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: err.Error(),
			Kind:  kind,
			Field: validationError.Field,
			Value: validationError.Value,
		})
	case errors.Is(err, errMalformedRequest):
		ValidationErrorsTotal.WithLabelValues("malformed_request").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "malformed_request"})
	default:
		log.Error().Err(err).Msg("calculation failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Kind: "internal"})
	}
}

func (s *Server) handleTransportation(w http.ResponseWriter, r *http.Request) {
	var request models.CalculationRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, err)
		return
	}
	inputManager := s.calculator.InputManager()
	transport, err := inputManager.CalculateTransportLeg(request)
	if err != nil {
		writeError(w, err)
		return
	}
	station, err := inputManager.CalculateStationLeg(request)
	if err != nil {
		writeError(w, err)
		return
	}

	response := TransportationResponse{Total: transport.Emissions, Transport: transport, Station: station}
	if station != nil {
		response.Total = response.Total.Add(station.Emissions)
	}
	recordEmissions(response.Total)
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleIncineration(w http.ResponseWriter, r *http.Request) {
	var request models.IncinerationRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, err)
		return
	}
	report, err := s.calculator.InputManager().IncinerationCalculator.CalculateIncinerationEmissions(request)
	if err != nil {
		writeError(w, err)
		return
	}
	recordEmissions(report.Emissions)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleEmissions(w http.ResponseWriter, r *http.Request) {
	var request models.CalculationRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, err)
		return
	}
	report, err := s.calculator.CalculateEmissions(request)
	if err != nil {
		writeError(w, err)
		return
	}
	recordEmissions(report.Total)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var requests []models.CalculationRequest
	if err := decodeJSON(w, r, &requests); err != nil {
		writeError(w, err)
		return
	}
	summary, err := s.calculator.CalculateBatch(requests)
	if err != nil {
		writeError(w, err)
		return
	}
	recordEmissions(summary.Cumulative)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
