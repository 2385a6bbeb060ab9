package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/roster/internal/importer"
	"github.com/JonMunkholm/roster/internal/logging"
	"github.com/JonMunkholm/roster/internal/web/views"
	"github.com/go-chi/chi/v5"
)

// multipartOverhead leaves room for form boundaries and the draft field on
// top of the roster itself.
const multipartOverhead = 64 << 10

// handleReconcile reconciles an uploaded roster against the organization's
// members. The optional "draft" form value ties the result to an event draft.
func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	orgID, err := strconv.ParseInt(chi.URLParam(r, "orgID"), 10, 64)
	if err != nil || orgID <= 0 {
		badRequest(w, "invalid organization id")
		return
	}

	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			respondError(w, r, fmt.Errorf("%w: %v", importer.ErrFileTooLarge, err), http.StatusRequestEntityTooLarge)
			return
		}
		badRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, errNoFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		respondError(w, r, fmt.Errorf("read upload: %w", err), http.StatusBadRequest)
		return
	}

	logging.FromContext(r.Context()).Debug("roster received",
		"org_id", orgID,
		"file", header.Filename,
		"size", len(data),
	)

	res, err := s.service.Reconcile(r.Context(), importer.Request{
		OrgID:    orgID,
		DraftID:  strings.TrimSpace(r.FormValue("draft")),
		FileName: header.Filename,
		Data:     data,
	})
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	s.respondResult(w, r, res)
}

// handleDraftRoster returns the latest reconciliation stored for a draft.
func (s *Server) handleDraftRoster(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	res, ok := s.service.DraftResult(draftID)
	if !ok {
		respondError(w, r, importer.ErrDraftNotFound, http.StatusNotFound)
		return
	}

	s.respondResult(w, r, res)
}

// handleDiscardDraft forgets a draft's reconciliation.
func (s *Server) handleDiscardDraft(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	if !s.service.DiscardDraft(draftID) {
		respondError(w, r, importer.ErrDraftNotFound, http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStatus reports import concurrency.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"imports": s.service.LimiterStatus(),
		"time":    time.Now().UTC(),
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondResult writes a reconciliation as JSON or as an HTMX fragment.
func (s *Server) respondResult(w http.ResponseWriter, r *http.Request, res *importer.Result) {
	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := views.ImportSummary(res).Render(r.Context(), w); err != nil {
			slog.Error("render import summary", "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}
