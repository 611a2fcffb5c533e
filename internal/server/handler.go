package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"sysinfo-server/pkg/types"
)

// Collector produces one snapshot per call.
type Collector interface {
	Collect(ctx context.Context) (*types.Snapshot, error)
}

type Handler struct {
	collector     Collector
	errorStatusOK bool
	log           *slog.Logger
}

// NewHandler returns the HTTP handlers. With errorStatusOK a failed
// collection is answered with 200 and an {"error": ...} body instead of 500.
func NewHandler(collector Collector, errorStatusOK bool, log *slog.Logger) *Handler {
	return &Handler{
		collector:     collector,
		errorStatusOK: errorStatusOK,
		log:           log,
	}
}

func (h *Handler) HandleSystemInfo(w http.ResponseWriter, r *http.Request) {
	snap, err := h.collector.Collect(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if h.errorStatusOK {
			status = http.StatusOK
		}
		h.writeJSON(w, status, types.ErrorDocument{Error: err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		h.log.Error("failed to encode response", "error", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Error("failed to write json response", "error", err)
	}
}
