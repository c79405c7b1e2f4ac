package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hdupoux/inventaire/internal/db"
	"github.com/hdupoux/inventaire/internal/model"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewTestDB(t)
	server := httptest.NewServer(NewRouter(database, zap.NewNop()))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func createObject(t *testing.T, server *httptest.Server, ahoID string) {
	t.Helper()
	resp := doJSON(t, "POST", server.URL+"/objects", map[string]any{
		"aho_id":    ahoID,
		"entryYear": 2021,
		"name":      "Laptop",
		"price":     500,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateObjectEndpoint(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, "POST", server.URL+"/objects", map[string]any{
		"aho_id":    "AHO-001",
		"entryYear": 2021,
		"name":      "Laptop",
		"price":     500,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var obj model.Object
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&obj))
	assert.Equal(t, "AHO-001", obj.AhoID)
	assert.False(t, obj.Scanned)
}

func TestCreateObjectMissingFields(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, "POST", server.URL+"/objects", map[string]any{"aho_id": "AHO-001"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error  string   `json:"error"`
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.ElementsMatch(t, []string{"entryYear", "name", "price"}, body.Fields)
}

func TestCreateObjectDuplicate(t *testing.T) {
	server := setupTestServer(t)
	createObject(t, server, "AHO-001")

	resp := doJSON(t, "POST", server.URL+"/objects", map[string]any{
		"aho_id":    "AHO-001",
		"entryYear": 2022,
		"name":      "Other",
		"price":     10,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetObjectEndpoint(t *testing.T) {
	server := setupTestServer(t)
	createObject(t, server, "AHO-001")

	resp := doJSON(t, "GET", server.URL+"/objects/AHO-001", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, "GET", server.URL+"/objects/AHO-404", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListObjectsEndpoint(t *testing.T) {
	server := setupTestServer(t)

	// The archived header is mandatory.
	resp := doJSON(t, "GET", server.URL+"/objects", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, _ := http.NewRequest("GET", server.URL+"/objects", nil)
	req.Header.Set("archived", "false")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "empty list answers 404")
	resp.Body.Close()

	createObject(t, server, "AHO-001")

	req, _ = http.NewRequest("GET", server.URL+"/objects", nil)
	req.Header.Set("archived", "false")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var objects []model.Object
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&objects))
	assert.Len(t, objects, 1)
}

func TestUpdateObjectEndpoint(t *testing.T) {
	server := setupTestServer(t)
	createObject(t, server, "AHO-001")

	// Value-identical update is a no-op.
	resp := doJSON(t, "PUT", server.URL+"/objects", map[string]any{
		"aho_id": "AHO-001",
		"name":   "Laptop",
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, "PUT", server.URL+"/objects", map[string]any{
		"aho_id": "AHO-001",
		"name":   "Laptop 2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var obj model.Object
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&obj))
	assert.Equal(t, "Laptop 2", obj.Name)

	// Removal year without reason violates the both-or-neither rule.
	resp = doJSON(t, "PUT", server.URL+"/objects", map[string]any{
		"aho_id":      "AHO-001",
		"removalYear": 2022,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, "PUT", server.URL+"/objects", map[string]any{
		"aho_id": "AHO-404",
		"name":   "X",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestArchiveEndpoint(t *testing.T) {
	server := setupTestServer(t)
	createObject(t, server, "AHO-001")

	resp := doJSON(t, "PUT", server.URL+"/objects/archive", map[string]any{
		"aho_id":        "AHO-001",
		"removalYear":   2022,
		"removalReason": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var obj model.Object
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&obj))
	require.NotNil(t, obj.RemovalYear)
	assert.Equal(t, 2022, *obj.RemovalYear)
	assert.Equal(t, "Lost", obj.RemovalReason)

	req, _ := http.NewRequest("GET", server.URL+"/objects", nil)
	req.Header.Set("archived", "true")
	listResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer listResp.Body.Close()
	assert.Equal(t, http.StatusOK, listResp.StatusCode)
}

func TestInventoryFlow(t *testing.T) {
	server := setupTestServer(t)
	createObject(t, server, "AHO-001")

	// Unscanned object blocks a new session.
	resp := doJSON(t, "POST", server.URL+"/inventory", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, "POST", server.URL+"/scan", map[string]string{"aho_id": "AHO-001"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var scan struct {
		Changed int64 `json:"changed"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&scan))
	assert.EqualValues(t, 1, scan.Changed)

	// Re-scanning is not an error, it just reports no change.
	resp = doJSON(t, "POST", server.URL+"/scan", map[string]string{"aho_id": "AHO-001"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&scan))
	assert.EqualValues(t, 0, scan.Changed)

	// Session complete: stats report no inventory in progress.
	resp = doJSON(t, "GET", server.URL+"/inventory", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var empty map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&empty))
	assert.Empty(t, empty)

	resp = doJSON(t, "POST", server.URL+"/inventory", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, "GET", server.URL+"/inventory", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats model.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 1, stats.TotalActive)
	assert.Equal(t, 0, stats.Scanned)
	assert.Equal(t, 1, stats.Unscanned)
}

func TestScanUnknownObject(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, "POST", server.URL+"/scan", map[string]string{"aho_id": "AHO-404"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, "POST", server.URL+"/scan", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRemovalReasonsEndpoint(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, "GET", server.URL+"/removal-reason", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reasons []model.RemovalReason
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reasons))
	assert.Len(t, reasons, 4)
}

func TestInvalidRoute(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, "GET", server.URL+"/nope", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Route invalide", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, "GET", server.URL+"/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
