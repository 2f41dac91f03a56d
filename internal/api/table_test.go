package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skybi/table-server/internal/api/schema"
	"github.com/skybi/table-server/internal/config"
	"github.com/skybi/table-server/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()

	tableStore := store.New(0, 16, 64)
	t.Cleanup(tableStore.Close)

	service := &Service{
		Config: &config.Config{AllowedOrigin: "*"},
		Store:  tableStore,
		writer: &schema.Writer{},
	}
	server := httptest.NewServer(service.router())
	t.Cleanup(server.Close)

	return server, tableStore
}

func putEntry(t *testing.T, server *httptest.Server, key, value string) *http.Response {
	t.Helper()

	request, err := http.NewRequest(http.MethodPut, server.URL+"/v1/table/entries/"+key, strings.NewReader(`{"value":"`+value+`"}`))
	if err != nil {
		t.Fatalf("could not build request: %v", err)
	}
	response, err := server.Client().Do(request)
	if err != nil {
		t.Fatalf("PUT failed: %v", err)
	}
	return response
}

func decodeEntry(t *testing.T, response *http.Response) entryResponse {
	t.Helper()
	defer response.Body.Close()

	var entry entryResponse
	if err := json.NewDecoder(response.Body).Decode(&entry); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	return entry
}

func TestEndpointPutAndGetEntry(t *testing.T) {
	server, _ := newTestServer(t)

	response := putEntry(t, server, "city", "Helsinki")
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", response.StatusCode)
	}
	entry := decodeEntry(t, response)
	if !entry.Inserted || entry.Value != "Helsinki" {
		t.Fatalf("unexpected PUT response: %+v", entry)
	}

	response, err := server.Client().Get(server.URL + "/v1/table/entries/city")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	entry = decodeEntry(t, response)
	if entry.Key != "city" || entry.Value != "Helsinki" {
		t.Fatalf("unexpected GET response: %+v", entry)
	}
}

func TestEndpointPutExistingEntry(t *testing.T) {
	server, _ := newTestServer(t)

	putEntry(t, server, "city", "Helsinki").Body.Close()

	response := putEntry(t, server, "city", "Tampere")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for an already-present key, got %d", response.StatusCode)
	}
	entry := decodeEntry(t, response)
	if entry.Inserted {
		t.Fatalf("duplicate PUT reported an insert")
	}
	if entry.Value != "Helsinki" {
		t.Fatalf("duplicate PUT returned %q, want the existing value", entry.Value)
	}
}

func TestEndpointPutTooWideEntry(t *testing.T) {
	server, tableStore := newTestServer(t)

	response := putEntry(t, server, "wayoverthekeywidthlimit", "v")
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for an oversized key, got %d", response.StatusCode)
	}
	response.Body.Close()

	if tableStore.Size() != 0 {
		t.Fatalf("an oversized key was stored anyway")
	}
}

func TestEndpointGetMissingEntry(t *testing.T) {
	server, _ := newTestServer(t)

	response, err := server.Client().Get(server.URL + "/v1/table/entries/missing")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", response.StatusCode)
	}

	var errResponse schema.ErrorResponse
	if err := json.NewDecoder(response.Body).Decode(&errResponse); err != nil {
		t.Fatalf("could not decode error response: %v", err)
	}
	if len(errResponse.Errors) != 1 || errResponse.Errors[0].Type != "table.keyNotFound" {
		t.Fatalf("unexpected error payload: %+v", errResponse)
	}
}

func TestEndpointDeleteEntry(t *testing.T) {
	server, _ := newTestServer(t)

	putEntry(t, server, "city", "Helsinki").Body.Close()

	request, _ := http.NewRequest(http.MethodDelete, server.URL+"/v1/table/entries/city", nil)
	response, err := server.Client().Do(request)
	if err != nil {
		t.Fatalf("DELETE failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", response.StatusCode)
	}

	response, err = server.Client().Do(request)
	if err != nil {
		t.Fatalf("second DELETE failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for a second delete, got %d", response.StatusCode)
	}
}

func TestCrossOriginRequests(t *testing.T) {
	server, _ := newTestServer(t)

	request, err := http.NewRequest(http.MethodGet, server.URL+"/v1/table", nil)
	if err != nil {
		t.Fatalf("could not build request: %v", err)
	}
	request.Header.Set("Origin", "http://example.com")

	response, err := server.Client().Do(request)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer response.Body.Close()

	if got := response.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected the configured origin to be allowed, got %q", got)
	}
}

func TestEndpointGetTableAndDump(t *testing.T) {
	server, _ := newTestServer(t)

	putEntry(t, server, "city", "Helsinki").Body.Close()

	response, err := server.Client().Get(server.URL + "/v1/table")
	if err != nil {
		t.Fatalf("GET /v1/table failed: %v", err)
	}
	var stats store.Stats
	if err := json.NewDecoder(response.Body).Decode(&stats); err != nil {
		t.Fatalf("could not decode stats: %v", err)
	}
	response.Body.Close()
	if stats.Count != 1 || stats.KeyWidth != 16 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	response, err = server.Client().Get(server.URL + "/v1/table/dump")
	if err != nil {
		t.Fatalf("GET /v1/table/dump failed: %v", err)
	}
	defer response.Body.Close()
	if contentType := response.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "text/plain") {
		t.Fatalf("unexpected dump content type %q", contentType)
	}
}
