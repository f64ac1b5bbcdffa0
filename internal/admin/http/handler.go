package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"campus-transport/internal/admin/repository"
	"campus-transport/internal/common/httpx"
	"campus-transport/internal/common/logger"
	"campus-transport/internal/fleet/model"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	repo *repository.AdminRepository
}

func NewAdminHandler(repo *repository.AdminRepository) *AdminHandler {
	return &AdminHandler{repo: repo}
}

func (h *AdminHandler) GetSystemOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.repo.GetSystemOverview(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, overview)
}

type vehicleRequest struct {
	Registration string            `json:"registration"`
	Name         string            `json:"name"`
	Capacity     int               `json:"capacity"`
	Type         model.VehicleType `json:"type"`
	DriverID     *string           `json:"driver_id,omitempty"`
	Active       *bool             `json:"active,omitempty"`
}

func (req vehicleRequest) validate() error {
	if req.Registration == "" {
		return fmt.Errorf("%w: registration is required", model.ErrInvalidInput)
	}
	if req.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", model.ErrInvalidInput)
	}
	if req.Type != model.VehicleBus && req.Type != model.VehicleMinibus {
		return fmt.Errorf("%w: type must be BUS or MINIBUS", model.ErrInvalidInput)
	}
	return nil
}

func (h *AdminHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, r, fmt.Errorf("%w: invalid JSON body", model.ErrInvalidInput))
		return
	}
	if err := req.validate(); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	vehicle, err := h.repo.CreateVehicle(r.Context(), &model.Vehicle{
		Registration: req.Registration,
		Name:         req.Name,
		Capacity:     req.Capacity,
		Type:         req.Type,
		DriverID:     req.DriverID,
		Active:       active,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	logger.Info("vehicle_created", fmt.Sprintf("Vehicle %s created", vehicle.Registration), r.Header.Get("X-Request-ID"), "")
	httpx.RespondJSON(w, http.StatusCreated, vehicle)
}

func (h *AdminHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.repo.ListVehicles(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, vehicles)
}

func (h *AdminHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.repo.GetVehicle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, vehicle)
}

func (h *AdminHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.repo.GetVehicle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, r, fmt.Errorf("%w: invalid JSON body", model.ErrInvalidInput))
		return
	}
	if err := req.validate(); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	vehicle.Registration = req.Registration
	vehicle.Name = req.Name
	vehicle.Capacity = req.Capacity
	vehicle.Type = req.Type
	vehicle.DriverID = req.DriverID
	if req.Active != nil {
		vehicle.Active = *req.Active
	}

	if err := h.repo.UpdateVehicle(r.Context(), vehicle); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, vehicle)
}

func (h *AdminHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteVehicle(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type stopRequest struct {
	Name        string    `json:"name"`
	Point       []float64 `json:"point"` // [longitude, latitude]
	Description *string   `json:"description,omitempty"`
}

func (h *AdminHandler) CreateStop(w http.ResponseWriter, r *http.Request) {
	var req stopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, r, fmt.Errorf("%w: invalid JSON body", model.ErrInvalidInput))
		return
	}
	if req.Name == "" {
		httpx.RespondError(w, r, fmt.Errorf("%w: name is required", model.ErrInvalidInput))
		return
	}
	point, err := model.PointFromPair(req.Point)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	stop, err := h.repo.CreateStop(r.Context(), &model.Stop{
		Name:        req.Name,
		Location:    point,
		Description: req.Description,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, stop)
}

func (h *AdminHandler) ListStops(w http.ResponseWriter, r *http.Request) {
	stops, err := h.repo.ListStops(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, stops)
}

func (h *AdminHandler) DeleteStop(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteStop(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type routeRequest struct {
	Name    string   `json:"name"`
	StopIDs []string `json:"stop_ids"` // visit order
}

func (h *AdminHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, r, fmt.Errorf("%w: invalid JSON body", model.ErrInvalidInput))
		return
	}
	if req.Name == "" {
		httpx.RespondError(w, r, fmt.Errorf("%w: name is required", model.ErrInvalidInput))
		return
	}

	route, err := h.repo.CreateRoute(r.Context(), req.Name, req.StopIDs)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, route)
}

func (h *AdminHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.repo.ListRoutes(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, routes)
}

func (h *AdminHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteRoute(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type scheduleRequest struct {
	RouteID       string `json:"route_id"`
	VehicleID     string `json:"vehicle_id"`
	DepartureTime string `json:"departure_time"` // HH:MM
	Days          []int  `json:"days"`
	Active        *bool  `json:"active,omitempty"`
}

func (req scheduleRequest) validate() error {
	if req.RouteID == "" || req.VehicleID == "" {
		return fmt.Errorf("%w: route_id and vehicle_id are required", model.ErrInvalidInput)
	}
	if len(req.DepartureTime) != 5 || req.DepartureTime[2] != ':' {
		return fmt.Errorf("%w: departure_time must be HH:MM", model.ErrInvalidInput)
	}
	if len(req.Days) == 0 {
		return fmt.Errorf("%w: at least one weekday is required", model.ErrInvalidInput)
	}
	return nil
}

func (h *AdminHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, r, fmt.Errorf("%w: invalid JSON body", model.ErrInvalidInput))
		return
	}
	if err := req.validate(); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	schedule, err := h.repo.CreateSchedule(r.Context(), &model.Schedule{
		RouteID:       req.RouteID,
		VehicleID:     req.VehicleID,
		DepartureTime: req.DepartureTime,
		Days:          req.Days,
		Active:        active,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, schedule)
}

func (h *AdminHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.repo.ListSchedules(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, schedules)
}

func (h *AdminHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, r, fmt.Errorf("%w: invalid JSON body", model.ErrInvalidInput))
		return
	}
	if err := req.validate(); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	schedule := &model.Schedule{
		ID:            chi.URLParam(r, "id"),
		RouteID:       req.RouteID,
		VehicleID:     req.VehicleID,
		DepartureTime: req.DepartureTime,
		Days:          req.Days,
		Active:        active,
	}
	if err := h.repo.UpdateSchedule(r.Context(), schedule); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, schedule)
}

func (h *AdminHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteSchedule(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
