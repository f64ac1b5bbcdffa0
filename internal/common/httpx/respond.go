package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"campus-transport/internal/common/logger"
	"campus-transport/internal/fleet/model"
)

func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RespondError maps the service error taxonomy to HTTP statuses. Anything not
// recognized is an internal error and the detail stays server-side.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		RespondJSON(w, http.StatusNotFound, errorBody{Error: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, model.ErrInvalidTransition):
		RespondJSON(w, http.StatusBadRequest, errorBody{Error: "INVALID_INPUT", Message: err.Error()})
	default:
		logger.Error("internal_error", "Unhandled service error", r.Header.Get("X-Request-ID"), "", err.Error())
		RespondJSON(w, http.StatusInternalServerError, errorBody{Error: "INTERNAL", Message: "internal server error"})
	}
}
