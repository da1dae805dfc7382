package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	rankingservice "github.com/hack-arena/hackarena-judging/app/modules/ranking/application"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// RankingHandler serves the ranking and leaderboard endpoints.
type RankingHandler struct {
	service rankingservice.Service
	logger  *slog.Logger
}

// NewRankingHandler creates a new RankingHandler.
func NewRankingHandler(service rankingservice.Service, logger *slog.Logger) *RankingHandler {
	return &RankingHandler{service: service, logger: logger}
}

// Routes mounts the ranking endpoints on the router.
func (h *RankingHandler) Routes(r chi.Router) {
	r.Post("/competitions/{competitionID}/rankings", h.CalculateRankings)
	r.Post("/competitions/{competitionID}/rankings/schedule", h.ScheduleRankingRun)
	r.Get("/competitions/{competitionID}/leaderboard", h.GetLeaderboard)
	r.Get("/competitions/{competitionID}/leaderboard/export", h.ExportLeaderboard)
	r.Get("/competitions/{competitionID}/leaderboard/chart", h.LeaderboardChart)
}

func (h *RankingHandler) competitionID(w http.ResponseWriter, r *http.Request) (sharedtypes.CompetitionID, bool) {
	rawID, ok := parseUUIDParam(chi.URLParam(r, "competitionID"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid competition id")
		return sharedtypes.CompetitionID{}, false
	}
	return sharedtypes.CompetitionID(rawID), true
}

func (h *RankingHandler) CalculateRankings(w http.ResponseWriter, r *http.Request) {
	competitionID, ok := h.competitionID(w, r)
	if !ok {
		return
	}

	result, err := h.service.CalculateRankings(r.Context(), competitionID)
	if err != nil {
		writeInternal(w)
		return
	}
	if result.IsFailure() {
		writeFailure(w, *result.Failure)
		return
	}

	run := *result.Success
	writeJSON(w, http.StatusOK, map[string]any{
		"competition_id": run.CompetitionID,
		"ranked_count":   run.RankedCount,
	})
}

type scheduleRequest struct {
	RunAt string `json:"run_at"`
}

func (h *RankingHandler) ScheduleRankingRun(w http.ResponseWriter, r *http.Request) {
	competitionID, ok := h.competitionID(w, r)
	if !ok {
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RunAt == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	result, err := h.service.ScheduleRankingRun(r.Context(), competitionID, req.RunAt)
	if err != nil {
		writeInternal(w)
		return
	}
	if result.IsFailure() {
		writeFailure(w, *result.Failure)
		return
	}
	writeJSON(w, http.StatusAccepted, *result.Success)
}

func (h *RankingHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	competitionID, ok := h.competitionID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetLeaderboard(r.Context(), competitionID)
	if err != nil {
		writeInternal(w)
		return
	}
	if result.IsFailure() {
		writeFailure(w, *result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, *result.Success)
}

func (h *RankingHandler) ExportLeaderboard(w http.ResponseWriter, r *http.Request) {
	competitionID, ok := h.competitionID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ExportLeaderboard(r.Context(), competitionID)
	if err != nil {
		writeInternal(w)
		return
	}
	if result.IsFailure() {
		writeFailure(w, *result.Failure)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(*result.Success)
}

func (h *RankingHandler) LeaderboardChart(w http.ResponseWriter, r *http.Request) {
	competitionID, ok := h.competitionID(w, r)
	if !ok {
		return
	}

	result, err := h.service.RenderLeaderboardChart(r.Context(), competitionID)
	if err != nil {
		writeInternal(w)
		return
	}
	if result.IsFailure() {
		writeFailure(w, *result.Failure)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(*result.Success)
}
