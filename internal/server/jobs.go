package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/formlo/formlo/internal/cache"
	"github.com/formlo/formlo/internal/common"
	"github.com/formlo/formlo/internal/repository"
)

// JobHandler serves job status reads, cache first.
type JobHandler struct {
	jobs  repository.JobRepository
	cache cache.JobCache
}

func NewJobHandler(jobs repository.JobRepository, jobCache cache.JobCache) *JobHandler {
	if jobCache == nil {
		jobCache = cache.Noop{}
	}
	return &JobHandler{jobs: jobs, cache: jobCache}
}

// Get handles GET /api/jobs/{id}.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := common.UserIDFromContext(r.Context())
	jobID := mux.Vars(r)["id"]

	if cached, err := h.cache.Get(r.Context(), jobID); err == nil && cached != nil {
		if cached.OwnerID == ownerID {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	job, err := h.jobs.GetByID(r.Context(), jobID, ownerID)
	if errors.Is(err, common.ErrNotFound) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}
