package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	judgeservice "github.com/hack-arena/hackarena-judging/app/modules/judge/application"
	judgedb "github.com/hack-arena/hackarena-judging/app/modules/judge/infrastructure/repositories"
	"github.com/hack-arena/hackarena-judging/app/shared/sharedtypes"
	"github.com/hack-arena/hackarena-judging/pkg/results"
)

type stubJudgeService struct {
	assignResult results.OperationResult[*judgedb.Judge, error]
	removeResult results.OperationResult[*judgedb.Judge, error]
	listResult   results.OperationResult[[]judgedb.Judge, error]
	err          error
}

func (s *stubJudgeService) AssignJudge(ctx context.Context, competitionID sharedtypes.CompetitionID, personID sharedtypes.PersonID) (results.OperationResult[*judgedb.Judge, error], error) {
	return s.assignResult, s.err
}

func (s *stubJudgeService) RemoveJudge(ctx context.Context, competitionID sharedtypes.CompetitionID, personID sharedtypes.PersonID) (results.OperationResult[*judgedb.Judge, error], error) {
	return s.removeResult, s.err
}

func (s *stubJudgeService) ListJudges(ctx context.Context, competitionID sharedtypes.CompetitionID) (results.OperationResult[[]judgedb.Judge, error], error) {
	return s.listResult, s.err
}

var _ judgeservice.Service = (*stubJudgeService)(nil)

func newJudgeRouter(svc judgeservice.Service) http.Handler {
	r := chi.NewRouter()
	NewJudgeHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Routes(r)
	return r
}

func TestJudgeHandler_AssignJudge(t *testing.T) {
	competitionID := uuid.NewString()
	body := `{"person_id":"` + uuid.NewString() + `"}`

	t.Run("created on success", func(t *testing.T) {
		judge := &judgedb.Judge{ID: sharedtypes.JudgeID(uuid.New())}
		router := newJudgeRouter(&stubJudgeService{
			assignResult: results.SuccessResult[*judgedb.Judge, error](judge),
		})

		req := httptest.NewRequest(http.MethodPost, "/competitions/"+competitionID+"/judges", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), judge.ID.String())
	})

	t.Run("conflict when already assigned", func(t *testing.T) {
		router := newJudgeRouter(&stubJudgeService{
			assignResult: results.FailureResult[*judgedb.Judge, error](judgeservice.ErrAlreadyAssigned),
		})

		req := httptest.NewRequest(http.MethodPost, "/competitions/"+competitionID+"/judges", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"conflict"`)
	})

	t.Run("forbidden when not eligible", func(t *testing.T) {
		router := newJudgeRouter(&stubJudgeService{
			assignResult: results.FailureResult[*judgedb.Judge, error](judgeservice.ErrNotEligible),
		})

		req := httptest.NewRequest(http.MethodPost, "/competitions/"+competitionID+"/judges", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), `"forbidden"`)
	})

	t.Run("bad competition id", func(t *testing.T) {
		router := newJudgeRouter(&stubJudgeService{})

		req := httptest.NewRequest(http.MethodPost, "/competitions/not-a-uuid/judges", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestJudgeHandler_RemoveJudge(t *testing.T) {
	competitionID := uuid.NewString()
	personID := uuid.NewString()

	t.Run("no content on success", func(t *testing.T) {
		router := newJudgeRouter(&stubJudgeService{
			removeResult: results.SuccessResult[*judgedb.Judge, error](&judgedb.Judge{}),
		})

		req := httptest.NewRequest(http.MethodDelete, "/competitions/"+competitionID+"/judges/"+personID, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("not found without assignment", func(t *testing.T) {
		router := newJudgeRouter(&stubJudgeService{
			removeResult: results.FailureResult[*judgedb.Judge, error](judgeservice.ErrAssignmentNotFound),
		})

		req := httptest.NewRequest(http.MethodDelete, "/competitions/"+competitionID+"/judges/"+personID, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"not_found"`)
	})
}

func TestJudgeHandler_ListJudges(t *testing.T) {
	competitionID := uuid.NewString()

	router := newJudgeRouter(&stubJudgeService{
		listResult: results.SuccessResult[[]judgedb.Judge, error]([]judgedb.Judge{
			{ID: sharedtypes.JudgeID(uuid.New())},
		}),
	})

	req := httptest.NewRequest(http.MethodGet, "/competitions/"+competitionID+"/judges", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}
