package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/formlo/formlo/internal/common"
	"github.com/formlo/formlo/internal/export"
	"github.com/formlo/formlo/internal/repository"
)

// FormHandler serves the published-forms resource.
type FormHandler struct {
	forms    repository.FormRepository
	exporter *export.Service
}

func NewFormHandler(forms repository.FormRepository, exporter *export.Service) *FormHandler {
	return &FormHandler{forms: forms, exporter: exporter}
}

// List handles GET /api/forms.
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := common.UserIDFromContext(r.Context())

	forms, err := h.forms.ListByOwner(r.Context(), ownerID, 100)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list forms")
		return
	}
	writeJSON(w, http.StatusOK, forms)
}

// Delete handles DELETE /api/forms/{id}. The id is the provider's form id;
// only the durable record is removed, never the hosted form itself.
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := common.UserIDFromContext(r.Context())
	formID := mux.Vars(r)["id"]

	err := h.forms.Delete(r.Context(), formID, ownerID)
	if errors.Is(err, common.ErrNotFound) {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete form")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "form deleted successfully"})
}

// Export handles GET /api/forms/export.
func (h *FormHandler) Export(w http.ResponseWriter, r *http.Request) {
	ownerID := common.UserIDFromContext(r.Context())

	data, err := h.exporter.ExportFormsXLSX(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export forms")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="forms.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
