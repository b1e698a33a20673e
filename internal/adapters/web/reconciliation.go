package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recon-agent/internal/app"
	"recon-agent/internal/core"
)

// importFiles accepts a multipart form with one or more "files" parts and
// imports them into the set named in the URL. Per-file failures are reported
// in the result body; only a malformed request is an HTTP error.
func (h *Handler) importFiles(w http.ResponseWriter, r *http.Request) {
	set, err := core.ParseSetID(chi.URLParam(r, "set"))
	if err != nil {
		writeError(w, r, err.Error(), "UNKNOWN_SET", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, r, "expected multipart form upload: "+err.Error(), "BAD_UPLOAD", http.StatusBadRequest)
		return
	}
	parts := r.MultipartForm.File["files"]
	if len(parts) == 0 {
		writeError(w, r, "no files in upload", "BAD_UPLOAD", http.StatusBadRequest)
		return
	}

	var files []app.ImportFile
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			writeError(w, r, "read upload "+part.Filename+": "+err.Error(), "BAD_UPLOAD", http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, r, "read upload "+part.Filename+": "+err.Error(), "BAD_UPLOAD", http.StatusBadRequest)
			return
		}
		files = append(files, app.ImportFile{Name: part.Filename, Data: data})
	}

	result, err := h.svc.ImportFiles(r.Context(), set, files)
	if err != nil {
		writeError(w, r, err.Error(), "IMPORT_FAILED", http.StatusBadRequest)
		return
	}
	writeJSON(w, result)
}

// pool returns the filtered unmatched projection of one set (?q=).
func (h *Handler) pool(w http.ResponseWriter, r *http.Request) {
	set, err := core.ParseSetID(chi.URLParam(r, "set"))
	if err != nil {
		writeError(w, r, err.Error(), "UNKNOWN_SET", http.StatusBadRequest)
		return
	}
	result, err := h.svc.Pool(r.Context(), set, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err.Error(), "POOL_FAILED", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

type toggleRequest struct {
	Set string `json:"set"`
	ID  string `json:"id"`
}

func (h *Handler) toggleSelect(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	set, err := core.ParseSetID(req.Set)
	if err != nil {
		writeError(w, r, err.Error(), "UNKNOWN_SET", http.StatusBadRequest)
		return
	}
	result, err := h.svc.ToggleSelect(r.Context(), set, req.ID)
	if err != nil {
		writeError(w, r, err.Error(), "TOGGLE_FAILED", http.StatusBadRequest)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) selection(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Selection(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "SELECTION_FAILED", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

type confirmRequest struct {
	Force bool `json:"force"`
}

// confirmMatch confirms the current selection. An out-of-tolerance selection
// without force is a 409: a visible precondition failure, not a server error.
func (h *Handler) confirmMatch(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	result, err := h.svc.ConfirmMatch(r.Context(), req.Force)
	switch {
	case errors.Is(err, core.ErrEmptySelection),
		errors.Is(err, core.ErrUnbalancedSelection),
		errors.Is(err, core.ErrForcedOneSided):
		writeError(w, r, err.Error(), "NOT_CONFIRMABLE", http.StatusConflict)
		return
	case err != nil:
		writeError(w, r, err.Error(), "CONFIRM_FAILED", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) runAutoMatch(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.RunAutoMatch(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "AUTOMATCH_FAILED", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) matches(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Matches(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "MATCHES_FAILED", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) insight(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Insight(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "INSIGHT_FAILED", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ResetAll(r.Context()); err != nil {
		writeError(w, r, err.Error(), "RESET_FAILED", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"status": "reset"})
}
