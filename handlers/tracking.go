package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"p9e.in/cargotrack/config"
	"p9e.in/cargotrack/models"
	"p9e.in/cargotrack/repositories"
	"p9e.in/cargotrack/utils"
)

// trackRequest is the body of the public tracking endpoint.
type trackRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

// trackFailure is the uniform failure shape of the tracking endpoint.
type trackFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type trackSuccess struct {
	Success  bool                    `json:"success"`
	Shipment models.TrackingShipment `json:"shipment"`
}

func writeTrackFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(trackFailure{Success: false, Message: message})
}

// TrackShipment is the public lookup endpoint. It accepts a POST with a
// tracking number and resolves it against BL number, container number
// and chassis number. Validation runs before any store access.
func TrackShipment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeTrackFailure(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTrackFailure(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	trackingNumber := utils.NormalizeTrackingNumber(req.TrackingNumber)
	if trackingNumber == "" {
		writeTrackFailure(w, http.StatusBadRequest, "Please enter a tracking number")
		return
	}
	if !utils.ValidTrackingNumber(trackingNumber) {
		writeTrackFailure(w, http.StatusBadRequest, "Tracking number must contain only letters and numbers.")
		return
	}

	shipment, ok := resolveTracking(w, trackingNumber)
	if !ok {
		return
	}

	payload := models.NewTrackingShipment(shipment, models.DateOf(time.Now()))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trackSuccess{Success: true, Shipment: payload})
}

// resolveTracking queries the record store and writes the failure
// response itself when the lookup does not produce exactly one record.
func resolveTracking(w http.ResponseWriter, trackingNumber string) (*models.Shipment, bool) {
	repo := repositories.NewShipmentRepository(config.DB)
	shipment, err := repo.FindByAnyIdentifier(trackingNumber)
	switch {
	case err == nil:
		return shipment, true
	case errors.Is(err, repositories.ErrShipmentNotFound):
		writeTrackFailure(w, http.StatusNotFound, "Shipment not found. Please check your tracking number and try again.")
	case errors.Is(err, repositories.ErrAmbiguousTracking):
		config.Logger.Warn("ambiguous tracking lookup", zap.String("tracking_number", trackingNumber))
		writeTrackFailure(w, http.StatusConflict, "Tracking number matches more than one shipment. Please use the BL number.")
	default:
		config.Logger.Error("tracking lookup failed", zap.Error(err))
		writeTrackFailure(w, http.StatusInternalServerError, "An error occurred while processing your request")
	}
	return nil, false
}

// LookupShipment serves the full tracking payload for a tracking number
// given as a path parameter.
func LookupShipment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trackingNumber := utils.NormalizeTrackingNumber(vars["trackingNumber"])

	if trackingNumber == "" {
		writeTrackFailure(w, http.StatusBadRequest, "Please enter a tracking number")
		return
	}
	if !utils.ValidTrackingNumber(trackingNumber) {
		writeTrackFailure(w, http.StatusBadRequest, "Tracking number must contain only letters and numbers.")
		return
	}

	shipment, ok := resolveTracking(w, trackingNumber)
	if !ok {
		return
	}

	payload := models.NewTrackingShipment(shipment, models.DateOf(time.Now()))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trackSuccess{Success: true, Shipment: payload})
}

// ShipmentStatusAPI is the terse machine-integration endpoint: tracking
// identifier as a query parameter, minimal status object back.
func ShipmentStatusAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	trackingNumber := utils.NormalizeTrackingNumber(r.URL.Query().Get("tracking_number"))
	if trackingNumber == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "tracking_number parameter is required"})
		return
	}
	if !utils.ValidTrackingNumber(trackingNumber) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "tracking_number must contain only letters and numbers"})
		return
	}

	repo := repositories.NewShipmentRepository(config.DB)
	shipment, err := repo.FindByAnyIdentifier(trackingNumber)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrShipmentNotFound):
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Shipment not found"})
		case errors.Is(err, repositories.ErrAmbiguousTracking):
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "tracking number is ambiguous"})
		default:
			config.Logger.Error("status lookup failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
		}
		return
	}

	json.NewEncoder(w).Encode(models.NewShipmentStatus(shipment))
}

// TrackingStats serves the counters shown on the tracking home page:
// total records and the latest gate-outs.
func TrackingStats(w http.ResponseWriter, r *http.Request) {
	repo := repositories.NewShipmentRepository(config.DB)

	total, err := repo.CountAll()
	if err != nil {
		config.Logger.Error("stats count failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	recent, err := repo.RecentArrivals(5)
	if err != nil {
		config.Logger.Error("stats recent arrivals failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	today := models.DateOf(time.Now())
	arrivals := make([]models.TrackingShipment, 0, len(recent))
	for i := range recent {
		arrivals = append(arrivals, models.NewTrackingShipment(&recent[i], today))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total_shipments": total,
		"recent_arrivals": arrivals,
	})
}
