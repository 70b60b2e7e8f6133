package plans

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/JaimeStill/syllabus/pkg/handlers"
	"github.com/JaimeStill/syllabus/pkg/routes"
)

// Handler provides HTTP endpoints for lesson-plan operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "plans"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for lesson-plan endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/plans",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Generate},
			{Method: "GET", Pattern: "/{key...}", Handler: h.Download},
			{Method: "DELETE", Pattern: "/{key...}", Handler: h.Delete},
		},
	}
}

// Generate accepts a multipart form with a PDF "file" and "total_hours" and runs
// the workflow synchronously. A run that ends in the error phase is reported
// with 422 and the run body.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidFile, err))
		return
	}

	hours, err := strconv.Atoi(r.FormValue("total_hours"))
	if err != nil || hours <= 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidHours)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	if http.DetectContentType(data) != "application/pdf" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	run, err := h.sys.Generate(r.Context(), GenerateCommand{
		Data:       data,
		Filename:   header.Filename,
		TotalHours: hours,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if run.Failed() {
		h.logger.Warn("lesson plan run failed", "run_id", run.RunID, "stage", run.Stage, "error", run.Error)
		handlers.RespondJSON(w, http.StatusUnprocessableEntity, run)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, run)
}

// Download streams a stored lesson plan or state dump by key.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := h.sys.Open(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType(key))
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}

// Delete removes a stored lesson plan or state dump by key.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("key")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func contentType(key string) string {
	if path.Ext(key) == ".json" {
		return "application/json"
	}
	return "text/markdown; charset=utf-8"
}
