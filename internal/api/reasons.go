package api

import (
	"net/http"

	"github.com/hdupoux/inventaire/internal/inventory"
)

// ReasonsHandler serves the removal-reason reference data.
type ReasonsHandler struct {
	Service *inventory.Service
}

// List handles GET /removal-reason.
func (h *ReasonsHandler) List(w http.ResponseWriter, r *http.Request) {
	reasons, err := h.Service.RemovalReasons(r.Context())
	if err != nil {
		engineError(w, err)
		return
	}
	if len(reasons) == 0 {
		jsonError(w, http.StatusNotFound, "no removal reasons")
		return
	}
	jsonResponse(w, http.StatusOK, reasons)
}
