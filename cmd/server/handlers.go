package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/arapinan/webindex"
	"github.com/arapinan/webindex/search"
)

type handler struct {
	searcher *webindex.Searcher
}

func newHandler(s *webindex.Searcher) *handler {
	return &handler{searcher: s}
}

// POST /query
// Accepts {"query": "..."} and returns the structured result.
func (h *handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	res, err := h.searcher.Search(req.Query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		slog.Error("query error", "query", req.Query, "error", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /search?q=...
// Returns the plain-text rendering the reference UI flashes.
func (h *handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	res, err := h.searcher.Search(query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		slog.Error("search error", "query", query, "error", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(search.RenderText(query, res)))
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"documents": h.searcher.DocCount(),
		"tokens":    h.searcher.TokenCount(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
