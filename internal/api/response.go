package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hdupoux/inventaire/internal/inventory"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			zap.L().Error("encoding response", zap.Error(err))
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// engineError maps an engine outcome to its transport status. Anything not in
// the taxonomy is a store failure: logged and surfaced as a 500, never
// swallowed.
func engineError(w http.ResponseWriter, err error) {
	var payload *inventory.InvalidPayloadError
	switch {
	case errors.As(err, &payload):
		jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":  payload.Reason,
			"fields": payload.Fields,
		})
	case errors.Is(err, inventory.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, inventory.ErrConflict):
		jsonError(w, http.StatusConflict, err.Error())
	default:
		zap.L().Error("store failure", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "store unavailable")
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
