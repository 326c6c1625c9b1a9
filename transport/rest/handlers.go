package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/apperror"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) tableHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "tableHandler")

	table, err := that.tables.GetTable(r.Context(), r.PathValue("id"))
	if errors.Is(err, apperror.ErrTableNotFound) {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrTableNotFound.Error()})
		return
	}

	if err != nil {
		log.Error("failed to get table", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, http.StatusOK, table)
}

func (that *Server) resultsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "resultsHandler")

	results, err := that.results.ListByTable(r.Context(), r.PathValue("id"))
	if err != nil {
		log.Error("failed to list results", "table", r.PathValue("id"), "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, http.StatusOK, results)
}

func (that *Server) leaderboardHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "leaderboardHandler")

	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive number"})
			return
		}

		limit = min(parsed, maxLeaderboardLimit)
	}

	entries, err := that.leaderboard.Top(r.Context(), limit)
	if err != nil {
		log.Error("failed to get leaderboard", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, http.StatusOK, entries)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := sonic.Marshal(body)
	if err != nil {
		that.logger.Error("failed to marshal response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err = w.Write(data); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
