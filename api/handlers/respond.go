// Package handlers exposes the judging engine over HTTP. Identity arrives in
// the X-Person-ID header; authentication itself lives at the gateway in front
// of this service.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	judgeservice "github.com/hack-arena/hackarena-judging/app/modules/judge/application"
	rankingservice "github.com/hack-arena/hackarena-judging/app/modules/ranking/application"
	scoreservice "github.com/hack-arena/hackarena-judging/app/modules/score/application"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
)

const personHeader = "X-Person-ID"

type errorBody struct {
	Error errorInfo `json:"error"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorInfo{Code: code, Message: message}})
}

// failureStatus maps a business failure sentinel to its HTTP status and
// stable machine-readable code. Clients key on the code, never the message.
func failureStatus(err error) (int, string) {
	switch {
	case errors.Is(err, judgeservice.ErrCompetitionNotFound),
		errors.Is(err, judgeservice.ErrPersonNotFound),
		errors.Is(err, judgeservice.ErrAssignmentNotFound),
		errors.Is(err, scoreservice.ErrSubmissionNotFound),
		errors.Is(err, scoreservice.ErrScoreNotFound),
		errors.Is(err, rankingservice.ErrCompetitionNotFound),
		errors.Is(err, rankingservice.ErrEmptyLeaderboard):
		return http.StatusNotFound, "not_found"

	case errors.Is(err, judgeservice.ErrAlreadyAssigned),
		errors.Is(err, judgeservice.ErrHasRecordedScores),
		errors.Is(err, scoreservice.ErrAlreadyScored):
		return http.StatusConflict, "conflict"

	case errors.Is(err, judgeservice.ErrNotEligible),
		errors.Is(err, scoreservice.ErrNotAJudge),
		errors.Is(err, scoreservice.ErrConflictOfInterest),
		errors.Is(err, scoreservice.ErrNotScoreOwner):
		return http.StatusForbidden, "forbidden"

	case errors.Is(err, scoreservice.ErrSubmissionNotFinalized),
		errors.Is(err, scoreservice.ErrCompetitionNotJudging),
		errors.Is(err, rankingservice.ErrJudgingNotStarted),
		errors.Is(err, scoreservice.ErrUnknownCriterion),
		errors.Is(err, scoreservice.ErrScoreOutOfRange),
		errors.Is(err, rankingservice.ErrUnparsableSchedule),
		errors.Is(err, rankingservice.ErrScheduleInPast):
		return http.StatusUnprocessableEntity, "validation_failed"
	}
	return http.StatusInternalServerError, "internal"
}

func writeFailure(w http.ResponseWriter, err error) {
	status, code := failureStatus(err)
	writeError(w, status, code, err.Error())
}

func writeInternal(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "internal", "internal error")
}

// callerID reads the authenticated person from the request headers.
func callerID(r *http.Request) (sharedtypes.PersonID, bool) {
	raw := r.Header.Get(personHeader)
	if raw == "" {
		return sharedtypes.PersonID{}, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return sharedtypes.PersonID{}, false
	}
	return sharedtypes.PersonID(id), true
}

func parseUUIDParam(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
