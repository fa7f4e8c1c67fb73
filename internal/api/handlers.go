package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"repdec/internal/metrics"
	"repdec/internal/replay"
	"repdec/internal/store"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	maxUpload int64
	history   *store.History
}

// NewHandler creates a new handler
func NewHandler(maxUpload int64, history *store.History) *Handler {
	return &Handler{maxUpload: maxUpload, history: history}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "repdec",
	})
}

// DecodeReplay accepts a replay upload (multipart "replay" field or raw
// body) and returns the full decode result.
func (h *Handler) DecodeReplay(w http.ResponseWriter, r *http.Request) {
	name, buf, err := h.readUpload(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read upload", err)
		return
	}
	if len(buf) == 0 {
		respondError(w, http.StatusBadRequest, "Empty upload", nil)
		return
	}
	log.Debug("upload_received", map[string]interface{}{"file": name, "bytes": len(buf)})

	start := time.Now()
	res, err := replay.Decode(buf)
	if err != nil {
		metrics.Global().RecordDecode("", time.Since(start).Milliseconds(), err)
		if errors.Is(err, replay.ErrInvalidFormat) {
			respondError(w, http.StatusUnprocessableEntity, "Not a recognized replay file", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Decode failed", err)
		return
	}
	metrics.Global().RecordDecode(res.Stats.Reliability, time.Since(start).Milliseconds(), nil)
	if res.Stats.Compressed {
		metrics.Global().RecordExpansion(res.Stats.Expanded)
	}

	if h.history != nil {
		entry := store.NewEntry(name, res)
		if err := h.history.Save(r.Context(), entry); err == nil {
			w.Header().Set("X-Decode-ID", entry.ID)
		}
	}

	respondJSON(w, http.StatusOK, res)
}

// ListHistory returns the most recent decode entries.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondError(w, http.StatusNotFound, "History not enabled", nil)
		return
	}

	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	entries, err := h.history.List(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list history", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// GetHistory returns one decode entry by id.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondError(w, http.StatusNotFound, "History not enabled", nil)
		return
	}

	id := mux.Vars(r)["id"]
	entry, err := h.history.Get(r.Context(), id)
	if err != nil {
		if store.IsNotFound(err) {
			respondError(w, http.StatusNotFound, "Entry not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch entry", err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// readUpload extracts the replay bytes and a display name from the request.
func (h *Handler) readUpload(r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.maxUpload)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(h.maxUpload); err != nil {
			return "", nil, err
		}
		file, header, err := r.FormFile("replay")
		if err != nil {
			return "", nil, err
		}
		defer file.Close()
		buf, err := io.ReadAll(file)
		return header.Filename, buf, err
	}

	buf, err := io.ReadAll(r.Body)
	return "upload", buf, err
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
