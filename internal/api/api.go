package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/skybi/table-server/internal/api/schema"
	"github.com/skybi/table-server/internal/config"
	"github.com/skybi/table-server/internal/store"
)

// Service represents the table debug API service
type Service struct {
	server *http.Server

	Config *config.Config

	Store *store.Store

	writer *schema.Writer
}

// Startup starts up the debug API and blocks until it is shut down
func (service *Service) Startup() error {
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the debug API experienced an unexpected error")
		},
	}

	server := &http.Server{
		Addr:    service.Config.ListenAddress,
		Handler: service.router(),
	}
	service.server = server
	return server.ListenAndServe()
}

// Shutdown shuts down the debug API
func (service *Service) Shutdown() {
	if service.server != nil {
		service.server.Close()
		service.server = nil
	}
}

// router assembles the HTTP router of the debug API
func (service *Service) router() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RedirectSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{service.Config.AllowedOrigin},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	// Register the table controller endpoints
	router.Get("/v1/table", service.EndpointGetTable)
	router.Get("/v1/table/dump", service.EndpointDumpTable)
	router.Get("/v1/table/entries/{key}", service.EndpointGetEntry)
	router.Put("/v1/table/entries/{key}", service.EndpointPutEntry)
	router.Delete("/v1/table/entries/{key}", service.EndpointDeleteEntry)

	return router
}
