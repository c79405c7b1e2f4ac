package api

import (
	"net/http"

	"github.com/hdupoux/inventaire/internal/inventory"
	"github.com/hdupoux/inventaire/internal/model"
)

// ObjectsHandler handles object CRUD endpoints.
type ObjectsHandler struct {
	Service *inventory.Service
}

type createObjectRequest struct {
	AhoID     string  `json:"aho_id"`
	EntryYear int     `json:"entryYear"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

type updateObjectRequest struct {
	AhoID         string   `json:"aho_id"`
	Scanned       *bool    `json:"scanned"`
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	RemovalYear   *int     `json:"removalYear"`
	RemovalReason *int64   `json:"removalReason"`
}

type archiveObjectRequest struct {
	AhoID         string `json:"aho_id"`
	RemovalYear   int    `json:"removalYear"`
	RemovalReason int64  `json:"removalReason"`
}

// Get handles GET /objects/{ahoId}.
func (h *ObjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	obj, err := h.Service.GetObject(r.Context(), r.PathValue("ahoId"))
	if err != nil {
		engineError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, obj)
}

// List handles GET /objects. The archived header selects between the active
// and the archived list and is mandatory.
func (h *ObjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	var archived bool
	switch r.Header.Get("archived") {
	case "true":
		archived = true
	case "false":
		archived = false
	default:
		jsonError(w, http.StatusBadRequest, "archived header must be true or false")
		return
	}

	objects, err := h.Service.ListObjects(r.Context(), archived)
	if err != nil {
		engineError(w, err)
		return
	}
	if len(objects) == 0 {
		jsonError(w, http.StatusNotFound, "no objects")
		return
	}
	jsonResponse(w, http.StatusOK, objects)
}

// Create handles POST /objects.
func (h *ObjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createObjectRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	obj, err := h.Service.CreateObject(r.Context(), inventory.CreateInput{
		AhoID:     req.AhoID,
		EntryYear: req.EntryYear,
		Name:      req.Name,
		Price:     req.Price,
	})
	if err != nil {
		engineError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, obj)
}

// Update handles PUT /objects. Only supplied fields are mutated; a request
// whose values all match the stored row is a no-op and answers 204.
func (h *ObjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateObjectRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	obj, affected, err := h.Service.UpdateObject(r.Context(), inventory.UpdateInput{
		AhoID:         req.AhoID,
		Scanned:       req.Scanned,
		Name:          req.Name,
		Price:         req.Price,
		RemovalYear:   req.RemovalYear,
		RemovalReason: req.RemovalReason,
	})
	if err != nil {
		engineError(w, err)
		return
	}

	writeUpdateResult(w, obj, affected)
}

// Archive handles PUT /objects/archive, the legacy archive endpoint.
func (h *ObjectsHandler) Archive(w http.ResponseWriter, r *http.Request) {
	var req archiveObjectRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	obj, affected, err := h.Service.ArchiveObject(r.Context(), req.AhoID, req.RemovalYear, req.RemovalReason)
	if err != nil {
		engineError(w, err)
		return
	}

	writeUpdateResult(w, obj, affected)
}

// writeUpdateResult echoes the mutated object with 201, or answers 204 when
// nothing changed.
func writeUpdateResult(w http.ResponseWriter, obj *model.Object, affected int64) {
	if affected == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	jsonResponse(w, http.StatusCreated, obj)
}
