package api

import (
	"encoding/json"
	"net/http"

	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/logging"
)

var apiLog = logging.Component("api")

// errorBody is the JSON shape of every failed request.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// JSON writes data with the given status. A nil data writes only the status.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		apiLog.WithError(err).Debug("Failed to write response")
	}
}

// Error writes err with a status derived from its kind. Unknown errors are 500.
func Error(w http.ResponseWriter, err error) {
	JSON(w, statusFor(err), errorBody{Error: err.Error(), Field: kanerr.FieldOf(err)})
}

// BadRequest writes a 400 for malformed requests that never reached the session.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, errorBody{Error: message})
}

func statusFor(err error) int {
	switch {
	case kanerr.IsValidationError(err):
		return http.StatusBadRequest
	case kanerr.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
