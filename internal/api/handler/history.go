// Package handler contains the HTTP handlers for the REST surface.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/duelcode-game/duelcode/internal/api/apierr"
	"github.com/duelcode-game/duelcode/internal/model"
	"github.com/duelcode-game/duelcode/internal/services/history"
)

// HistoryHandler serves the completed-match log
type HistoryHandler struct {
	history *history.Service
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(historyService *history.Service) *HistoryHandler {
	return &HistoryHandler{history: historyService}
}

// MatchListResponse wraps a list of match summaries
type MatchListResponse struct {
	Matches []*model.MatchSummary `json:"matches"`
}

// Recent returns the most recently finished matches across all rooms
func (h *HistoryHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	matches, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	writeJSON(w, MatchListResponse{Matches: matches})
}

// ForRoom returns the most recently finished matches for one room
func (h *HistoryHandler) ForRoom(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	roomID := model.RoomID(mux.Vars(r)["room_id"])
	matches, err := h.history.ForRoom(r.Context(), roomID, limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	writeJSON(w, MatchListResponse{Matches: matches})
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, apierr.NewInvalidRequestError("limit must be a non-negative integer")
	}
	return limit, nil
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}
