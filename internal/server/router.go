package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/formlo/formlo/internal/cache"
	"github.com/formlo/formlo/internal/export"
	"github.com/formlo/formlo/internal/pipeline"
	"github.com/formlo/formlo/internal/repository"
)

// Container holds all dependencies for the router.
type Container struct {
	Processor     *pipeline.Processor
	Jobs          repository.JobRepository
	Forms         repository.FormRepository
	Users         repository.UserRepository
	JobCache      cache.JobCache
	Exporter      *export.Service
	MaxUploadSize int64
	Logger        *slog.Logger
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	uploadHandler := NewUploadHandler(c.Processor, c.MaxUploadSize, c.Logger)
	jobHandler := NewJobHandler(c.Jobs, c.JobCache)
	formHandler := NewFormHandler(c.Forms, c.Exporter)
	identityMW := NewIdentityMiddleware(c.Users)

	r.Use(corsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Formlo API - Document to Forms Converter",
		})
	}).Methods("GET")

	authed := api.NewRoute().Subrouter()
	authed.Use(identityMW.RequireUser)

	authed.HandleFunc("/upload", uploadHandler.Upload).Methods("POST", "OPTIONS")
	authed.HandleFunc("/jobs/{id}", jobHandler.Get).Methods("GET", "OPTIONS")
	authed.HandleFunc("/forms", formHandler.List).Methods("GET", "OPTIONS")
	authed.HandleFunc("/forms/export", formHandler.Export).Methods("GET", "OPTIONS")
	authed.HandleFunc("/forms/{id}", formHandler.Delete).Methods("DELETE", "OPTIONS")

	return r
}
