package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	judgeservice "github.com/hack-arena/hackarena-judging/app/modules/judge/application"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// JudgeHandler serves the judge registry endpoints.
type JudgeHandler struct {
	service judgeservice.Service
	logger  *slog.Logger
}

// NewJudgeHandler creates a new JudgeHandler.
func NewJudgeHandler(service judgeservice.Service, logger *slog.Logger) *JudgeHandler {
	return &JudgeHandler{service: service, logger: logger}
}

// Routes mounts the judge endpoints on the router.
func (h *JudgeHandler) Routes(r chi.Router) {
	r.Post("/competitions/{competitionID}/judges", h.AssignJudge)
	r.Get("/competitions/{competitionID}/judges", h.ListJudges)
	r.Delete("/competitions/{competitionID}/judges/{personID}", h.RemoveJudge)
}

type assignJudgeRequest struct {
	PersonID sharedtypes.PersonID `json:"person_id"`
}

func (h *JudgeHandler) AssignJudge(w http.ResponseWriter, r *http.Request) {
	rawID, ok := parseUUIDParam(chi.URLParam(r, "competitionID"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid competition id")
		return
	}

	var req assignJudgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	result, err := h.service.AssignJudge(r.Context(), sharedtypes.CompetitionID(rawID), req.PersonID)
	if err != nil {
		writeInternal(w)
		return
	}
	if result.IsFailure() {
		writeFailure(w, *result.Failure)
		return
	}
	writeJSON(w, http.StatusCreated, *result.Success)
}

func (h *JudgeHandler) RemoveJudge(w http.ResponseWriter, r *http.Request) {
	rawCompetition, ok := parseUUIDParam(chi.URLParam(r, "competitionID"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid competition id")
		return
	}
	rawPerson, ok := parseUUIDParam(chi.URLParam(r, "personID"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid person id")
		return
	}

	result, err := h.service.RemoveJudge(r.Context(), sharedtypes.CompetitionID(rawCompetition), sharedtypes.PersonID(rawPerson))
	if err != nil {
		writeInternal(w)
		return
	}
	if result.IsFailure() {
		writeFailure(w, *result.Failure)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *JudgeHandler) ListJudges(w http.ResponseWriter, r *http.Request) {
	rawID, ok := parseUUIDParam(chi.URLParam(r, "competitionID"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid competition id")
		return
	}

	result, err := h.service.ListJudges(r.Context(), sharedtypes.CompetitionID(rawID))
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
