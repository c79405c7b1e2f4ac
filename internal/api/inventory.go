package api

import (
	"net/http"

	"github.com/hdupoux/inventaire/internal/inventory"
)

// InventoryHandler handles the stock-taking session endpoints.
type InventoryHandler struct {
	Service *inventory.Service
}

type scanRequest struct {
	AhoID string `json:"aho_id"`
}

// Start handles POST /inventory. A session can only start once the previous
// one is fully reconciled.
func (h *InventoryHandler) Start(w http.ResponseWriter, r *http.Request) {
	reset, err := h.Service.StartInventory(r.Context())
	if err != nil {
		engineError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, map[string]int64{"reset_count": reset})
}

// Stats handles GET /inventory. When no session is in progress the response
// is an explicit empty object, distinguishable from zero counts.
func (h *InventoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		engineError(w, err)
		return
	}
	if stats == nil {
		jsonResponse(w, http.StatusOK, struct{}{})
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

// Scan handles POST /scan. Scanning an already-found object is not an error;
// the changed count lets the caller tell the two apart.
func (h *InventoryHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	changed, err := h.Service.MarkScanned(r.Context(), req.AhoID)
	if err != nil {
		engineError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"aho_id":  req.AhoID,
		"changed": changed,
	})
}
