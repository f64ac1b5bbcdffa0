package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"campus-transport/internal/common/httpx"
	"campus-transport/internal/fleet/model"
	"campus-transport/internal/fleet/service"

	"github.com/go-chi/chi/v5"
)

type FleetHandler struct {
	trips     *service.TripService
	locations *service.LocationService
}

func NewFleetHandler(trips *service.TripService, locations *service.LocationService) *FleetHandler {
	return &FleetHandler{trips: trips, locations: locations}
}

type vehicleRequest struct {
	VehicleID string `json:"vehicle_id"`
}

type locationRequest struct {
	VehicleID string    `json:"vehicle_id"`
	Point     []float64 `json:"point"` // [longitude, latitude]
	Status    *string   `json:"status,omitempty"`
}

func decodeVehicleRequest(r *http.Request) (string, error) {
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", fmt.Errorf("%w: invalid JSON body", model.ErrInvalidInput)
	}
	if req.VehicleID == "" {
		return "", fmt.Errorf("%w: vehicle_id is required", model.ErrInvalidInput)
	}
	return req.VehicleID, nil
}

func (h *FleetHandler) StartTrip(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := decodeVehicleRequest(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	result, err := h.trips.Start(r.Context(), vehicleID)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, result)
}

func (h *FleetHandler) EndTrip(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := decodeVehicleRequest(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	result, err := h.trips.End(r.Context(), vehicleID)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, result)
}

func (h *FleetHandler) CancelTrip(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := decodeVehicleRequest(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	result, err := h.trips.Cancel(r.Context(), vehicleID)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, result)
}

func (h *FleetHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "id")

	var req service.UpdateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, r, fmt.Errorf("%w: invalid JSON body", model.ErrInvalidInput))
		return
	}

	result, err := h.trips.Update(r.Context(), tripID, req)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, result)
}

func (h *FleetHandler) ReportLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, r, fmt.Errorf("%w: invalid JSON body", model.ErrInvalidInput))
		return
	}
	if req.VehicleID == "" {
		httpx.RespondError(w, r, fmt.Errorf("%w: vehicle_id is required", model.ErrInvalidInput))
		return
	}

	result, err := h.locations.Report(r.Context(), req.VehicleID, req.Point, req.Status)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, result)
}

func (h *FleetHandler) GetFleetSnapshot(w http.ResponseWriter, r *http.Request) {
	entries, err := h.locations.Snapshot(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, entries)
}

func (h *FleetHandler) GetActiveFleet(w http.ResponseWriter, r *http.Request) {
	entries, err := h.locations.ActiveFleet(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, entries)
}
