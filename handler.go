package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kkws0615/STOCKup/config"
	"github.com/kkws0615/STOCKup/observability"
	"github.com/kkws0615/STOCKup/resolver"
	"github.com/kkws0615/STOCKup/templates"
	"github.com/kkws0615/STOCKup/watchlist"
)

const sessionCookie = "stockup_session"

// APIHandler handles HTTP API requests
type APIHandler struct {
	app *App
	cfg *config.Config
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(app *App, cfg *config.Config) *APIHandler {
	return &APIHandler{app: app, cfg: cfg}
}

// sessionID reads the session cookie, minting one when absent so a first
// visit gets a working list without a separate login step.
func (h *APIHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := watchlist.NewSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// handleIndex serves the dashboard page using templ
func (h *APIHandler) handleIndex(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)
	strongOnly := r.URL.Query().Get("filter") == "strong"

	result := h.app.Dashboard(r.Context(), sessionID, strongOnly)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Index(result.Rows, result.Notice, strongOnly).Render(r.Context(), w)
}

// handleDashboard returns the assembled rows as JSON
func (h *APIHandler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)
	strongOnly := r.URL.Query().Get("filter") == "strong"

	h.jsonResponse(w, h.app.Dashboard(r.Context(), sessionID, strongOnly))
}

// handleAddToWatchlist resolves user input and adds the instrument
func (h *APIHandler) handleAddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.Query = r.FormValue("query")
	}
	if req.Query == "" {
		h.jsonError(w, "請輸入股票代號或公司名稱", http.StatusBadRequest)
		return
	}

	sessionID := h.sessionID(w, r)
	entry, added, err := h.app.AddToWatchlist(r.Context(), sessionID, req.Query)
	if err != nil {
		h.jsonError(w, resolver.UserMessage(err), resolveErrorStatus(err))
		return
	}

	if !added {
		// Already on the list: a message, not a failure.
		h.jsonResponse(w, map[string]string{
			"status":  "already_listed",
			"symbol":  entry.Instrument.Symbol(),
			"message": "該股票已在觀察清單中",
		})
		return
	}

	observability.Info("watchlist add",
		"symbol", entry.Instrument.Symbol(), "name", entry.Name)
	w.WriteHeader(http.StatusCreated)
	h.jsonResponse(w, map[string]string{
		"status": "added",
		"symbol": entry.Instrument.Symbol(),
		"name":   entry.Name,
	})
}

// handleRemoveFromWatchlist drops a symbol
func (h *APIHandler) handleRemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" {
		h.jsonError(w, "缺少股票代號", http.StatusBadRequest)
		return
	}

	sessionID := h.sessionID(w, r)
	if !h.app.RemoveFromWatchlist(sessionID, symbol) {
		h.jsonError(w, "該股票不在觀察清單中", http.StatusNotFound)
		return
	}

	observability.Info("watchlist remove", "symbol", symbol)
	h.jsonResponse(w, map[string]string{"status": "removed", "symbol": symbol})
}

// handleHealth returns the health status of the application
func (h *APIHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, map[string]interface{}{
		"status": "ok",
	})
}

// Helper functions

// resolveErrorStatus picks the HTTP status for a resolution failure.
func resolveErrorStatus(err error) int {
	switch {
	case errors.Is(err, resolver.ErrMalformed), errors.Is(err, resolver.ErrTooShort):
		return http.StatusBadRequest
	case errors.Is(err, resolver.ErrNotFound), errors.Is(err, resolver.ErrNoMatch):
		return http.StatusNotFound
	case errors.Is(err, resolver.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *APIHandler) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *APIHandler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
