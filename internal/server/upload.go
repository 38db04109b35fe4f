package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/formlo/formlo/constants"
	"github.com/formlo/formlo/internal/common"
	"github.com/formlo/formlo/internal/pipeline"
)

// UploadHandler accepts a document and runs the conversion pipeline inline;
// the response carries the job's terminal snapshot.
type UploadHandler struct {
	processor *pipeline.Processor
	maxBytes  int64
	logger    *slog.Logger
}

func NewUploadHandler(processor *pipeline.Processor, maxBytes int64, logger *slog.Logger) *UploadHandler {
	if maxBytes <= 0 {
		maxBytes = 20 << 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadHandler{processor: processor, maxBytes: maxBytes, logger: logger}
}

// Upload handles POST /api/upload.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID := common.UserIDFromContext(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	// Extension allow-list check before any bytes are read; the rejected
	// request never creates a job.
	ext := filepath.Ext(header.Filename)
	if !constants.IsAllowedExt(ext) {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("file type %q not supported. Allowed: .pdf, .docx, .txt", ext))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	job, err := h.processor.Run(r.Context(), ownerID, header.Filename, data)
	if err != nil {
		if errors.Is(err, common.ErrUnsupportedFormat) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("upload.processing_failed", "filename", header.Filename, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, job)
}
