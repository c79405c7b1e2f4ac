package api

import (
	"database/sql"
	"net/http"

	"go.uber.org/zap"

	"github.com/hdupoux/inventaire/internal/inventory"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, logger *zap.Logger) http.Handler {
	service := inventory.NewService(db)

	objectsHandler := &ObjectsHandler{Service: service}
	inventoryHandler := &InventoryHandler{Service: service}
	reasonsHandler := &ReasonsHandler{Service: service}
	metrics := NewMetrics()

	mux := http.NewServeMux()

	// Stock-taking sessions.
	mux.HandleFunc("POST /inventory", inventoryHandler.Start)
	mux.HandleFunc("GET /inventory", inventoryHandler.Stats)
	mux.HandleFunc("POST /scan", inventoryHandler.Scan)

	// Objects. The archive route must be registered alongside the capture
	// route; the mux prefers the literal match.
	mux.HandleFunc("GET /objects", objectsHandler.List)
	mux.HandleFunc("POST /objects", objectsHandler.Create)
	mux.HandleFunc("PUT /objects", objectsHandler.Update)
	mux.HandleFunc("PUT /objects/archive", objectsHandler.Archive)
	mux.HandleFunc("GET /objects/{ahoId}", objectsHandler.Get)

	// Reference data.
	mux.HandleFunc("GET /removal-reason", reasonsHandler.List)

	mux.Handle("GET /metrics", metrics.Handler())

	// Anything unmatched is a client error, matching the original API.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusBadRequest, "Route invalide")
	})

	return RequestLogger(logger)(metrics.Middleware(mux))
}
