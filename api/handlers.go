package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/watchword/watchword/core/watcher"
)

// Provider is the read-only view of the running monitor the API exposes.
type Provider interface {
	Stats() watcher.Stats
	Keywords() []string
}

type StatsResponse struct {
	watcher.Stats
	UptimeSeconds int64 `json:"uptime_seconds"`
}

type KeywordsResponse struct {
	Count    int      `json:"count"`
	Keywords []string `json:"keywords"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	provider Provider
	now      func() time.Time
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) handleStats(w http.ResponseWriter, r *http.Request) {
	st := h.provider.Stats()
	respondJSON(w, http.StatusOK, StatsResponse{
		Stats:         st,
		UptimeSeconds: int64(h.now().Sub(st.Started) / time.Second),
	})
}

func (h *handlers) handleKeywords(w http.ResponseWriter, r *http.Request) {
	kws := h.provider.Keywords()
	if kws == nil {
		kws = []string{}
	}
	respondJSON(w, http.StatusOK, KeywordsResponse{Count: len(kws), Keywords: kws})
}

func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}
