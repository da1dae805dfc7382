package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	scoreservice "github.com/hack-arena/hackarena-judging/app/modules/score/application"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

// ScoreHandler serves the score recorder endpoints. All mutations require a
// caller identity.
type ScoreHandler struct {
	service scoreservice.Service
	logger  *slog.Logger
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(service scoreservice.Service, logger *slog.Logger) *ScoreHandler {
	return &ScoreHandler{service: service, logger: logger}
}

// Routes mounts the score endpoints on the router.
func (h *ScoreHandler) Routes(r chi.Router) {
	r.Post("/submissions/{submissionID}/scores", h.SubmitScore)
	r.Get("/submissions/{submissionID}/scores", h.ListScores)
	r.Patch("/scores/{scoreID}", h.UpdateScore)
	r.Delete("/scores/{scoreID}", h.DeleteScore)
}

type submitScoreRequest struct {
	CriterionID sharedtypes.CriterionID `json:"criterion_id"`
	Value       float64                 `json:"value"`
	Feedback    *string                 `json:"feedback,omitempty"`
}

type scoreMutationResponse struct {
	Score     any      `json:"score"`
	Aggregate *float64 `json:"aggregate"`
}

func (h *ScoreHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "missing or invalid "+personHeader+" header")
		return
	}
	rawID, ok := parseUUIDParam(chi.URLParam(r, "submissionID"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid submission id")
		return
	}

	var req submitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	result, err := h.service.SubmitScore(r.Context(), sharedtypes.SubmissionID(rawID), caller, req.CriterionID, req.Value, req.Feedback)
	if err != nil {
		writeInternal(w)
		return
	}
	if result.IsFailure() {
		writeFailure(w, *result.Failure)
		return
	}

	mutation := *result.Success
	writeJSON(w, http.StatusCreated, scoreMutationResponse{Score: mutation.Score, Aggregate: mutation.Aggregate})
}

type updateScoreRequest struct {
	Value    *float64 `json:"value,omitempty"`
	Feedback *string  `json:"feedback,omitempty"`
}

func (h *ScoreHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "missing or invalid "+personHeader+" header")
		return
	}
	rawID, ok := parseUUIDParam(chi.URLParam(r, "scoreID"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid score id")
		return
	}

	var req updateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if req.Value == nil && req.Feedback == nil {
		writeError(w, http.StatusBadRequest, "bad_request", "nothing to update")
		return
	}

	result, err := h.service.UpdateScore(r.Context(), sharedtypes.ScoreID(rawID), caller, req.Value, req.Feedback)
	if err != nil {
		writeInternal(w)
		return
	}
	if result.IsFailure() {
		writeFailure(w, *result.Failure)
		return
	}

	mutation := *result.Success
	writeJSON(w, http.StatusOK, scoreMutationResponse{Score: mutation.Score, Aggregate: mutation.Aggregate})
}

func (h *ScoreHandler) DeleteScore(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "missing or invalid "+personHeader+" header")
		return
	}
	rawID, ok := parseUUIDParam(chi.URLParam(r, "scoreID"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid score id")
		return
	}

	result, err := h.service.DeleteScore(r.Context(), sharedtypes.ScoreID(rawID), caller)
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

func (h *ScoreHandler) ListScores(w http.ResponseWriter, r *http.Request) {
	rawID, ok := parseUUIDParam(chi.URLParam(r, "submissionID"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid submission id")
		return
	}

	result, err := h.service.ListScores(r.Context(), sharedtypes.SubmissionID(rawID))
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
