package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skybi/table-server/internal/api/schema"
	"github.com/skybi/table-server/internal/store"
)

type entryResponse struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Inserted bool   `json:"inserted,omitempty"`
}

// EndpointGetTable handles the 'GET /v1/table' endpoint
func (service *Service) EndpointGetTable(writer http.ResponseWriter, _ *http.Request) {
	service.writer.WriteJSON(writer, service.Store.Stats())
}

// EndpointDumpTable handles the 'GET /v1/table/dump' endpoint
func (service *Service) EndpointDumpTable(writer http.ResponseWriter, _ *http.Request) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := service.Store.Dump(writer); err != nil && service.writer.InternalErrorHook != nil {
		service.writer.InternalErrorHook(err)
	}
}

// EndpointGetEntry handles the 'GET /v1/table/entries/{key}' endpoint
func (service *Service) EndpointGetEntry(writer http.ResponseWriter, request *http.Request) {
	key := chi.URLParam(request, "key")

	value, ok := service.Store.Lookup(key)
	if !ok {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrKeyNotFound(key))
		return
	}

	service.writer.WriteJSON(writer, &entryResponse{
		Key:   key,
		Value: value,
	})
}

type endpointPutEntryRequestPayload struct {
	Value string `json:"value"`
}

// EndpointPutEntry handles the 'PUT /v1/table/entries/{key}' endpoint.
// The table only ever inserts if the key is absent; for an already-present
// key the response carries the existing value and 'inserted' stays false.
func (service *Service) EndpointPutEntry(writer http.ResponseWriter, request *http.Request) {
	key := chi.URLParam(request, "key")

	payload, validationErr, err := schema.UnmarshalBody[endpointPutEntryRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	stored, inserted, err := service.Store.Add(key, payload.Value)
	if err != nil {
		stats := service.Store.Stats()
		switch {
		case errors.Is(err, store.ErrKeyTooLong):
			service.writer.WriteErrors(writer, http.StatusBadRequest, schema.ErrEntryTooWide("key", len(key), stats.KeyWidth))
		case errors.Is(err, store.ErrValueTooLong):
			service.writer.WriteErrors(writer, http.StatusBadRequest, schema.ErrEntryTooWide("value", len(payload.Value), stats.ValueWidth))
		default:
			service.writer.WriteInternalError(writer, err)
		}
		return
	}

	code := http.StatusOK
	if inserted {
		code = http.StatusCreated
	}
	service.writer.WriteJSONCode(writer, code, &entryResponse{
		Key:      key,
		Value:    stored,
		Inserted: inserted,
	})
}

// EndpointDeleteEntry handles the 'DELETE /v1/table/entries/{key}' endpoint
func (service *Service) EndpointDeleteEntry(writer http.ResponseWriter, request *http.Request) {
	key := chi.URLParam(request, "key")

	if !service.Store.Remove(key) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrKeyNotFound(key))
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}
