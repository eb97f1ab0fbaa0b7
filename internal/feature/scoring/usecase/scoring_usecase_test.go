package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ielts_backend/internal/feature/scoring/domain/entity"
	"ielts_backend/internal/shared/apperr"
)

type evaluateCall struct {
	apiKey, model, system, user string
}

type mockEvaluator struct {
	EvaluateFunc func(call evaluateCall) (*entity.Result, error)
	calls        []evaluateCall
}

func (m *mockEvaluator) Evaluate(_ context.Context, apiKey, model, system, user string) (*entity.Result, error) {
	call := evaluateCall{apiKey: apiKey, model: model, system: system, user: user}
	m.calls = append(m.calls, call)
	return m.EvaluateFunc(call)
}

type mockCredentialStore struct {
	CredentialFunc func(userID uuid.UUID) (string, string, error)
}

func (m *mockCredentialStore) Credential(_ context.Context, userID uuid.UUID) (string, string, error) {
	return m.CredentialFunc(userID)
}

type mockRecorder struct {
	outcomes []string
}

func (m *mockRecorder) Observe(outcome string, _ time.Duration) {
	m.outcomes = append(m.outcomes, outcome)
}

func sampleResult() *entity.Result {
	return &entity.Result{Score: 6.5, TR: 6, LR: 7, CC: 6.5, GRA: 6, Reason: "ok", Improvement: "more examples"}
}

func TestScoringUsecase_Score(t *testing.T) {
	t.Parallel()

	t.Run("builds prompts and returns result unchanged", func(t *testing.T) {
		t.Parallel()

		ev := &mockEvaluator{EvaluateFunc: func(evaluateCall) (*entity.Result, error) { return sampleResult(), nil }}
		rec := &mockRecorder{}
		uc := NewScoringUsecase(ev, nil, rec)

		res, err := uc.Score(context.Background(), "key", "Japanese", Submission{Model: "m", Topic: "Cities", Essay: "Cities grow."})
		require.NoError(t, err)
		assert.Equal(t, sampleResult(), res)

		require.Len(t, ev.calls, 1)
		assert.Equal(t, "key", ev.calls[0].apiKey)
		assert.Equal(t, "m", ev.calls[0].model)
		assert.Equal(t, "You are an IELTS examiner. I will submit my essay, and you will give it a score and briefly point out any issues. You should use Japanese to respond", ev.calls[0].system)
		assert.Equal(t, "Topic: Cities. Essay: Cities grow.", ev.calls[0].user)
		assert.Equal(t, []string{"ok"}, rec.outcomes)
	})

	t.Run("empty language defaults to English", func(t *testing.T) {
		t.Parallel()

		ev := &mockEvaluator{EvaluateFunc: func(evaluateCall) (*entity.Result, error) { return sampleResult(), nil }}
		_, err := NewScoringUsecase(ev, nil, nil).Score(context.Background(), "key", "", Submission{})
		require.NoError(t, err)
		assert.Contains(t, ev.calls[0].system, "use English to respond")
	})

	t.Run("out of range bands are returned as is", func(t *testing.T) {
		t.Parallel()

		out := &entity.Result{Score: 11, TR: -1}
		ev := &mockEvaluator{EvaluateFunc: func(evaluateCall) (*entity.Result, error) { return out, nil }}
		res, err := NewScoringUsecase(ev, nil, nil).Score(context.Background(), "key", "", Submission{})
		require.NoError(t, err)
		assert.Equal(t, 11.0, res.Score)
		assert.Equal(t, -1.0, res.TR)
	})

	t.Run("missing credential never calls provider", func(t *testing.T) {
		t.Parallel()

		ev := &mockEvaluator{}
		rec := &mockRecorder{}
		_, err := NewScoringUsecase(ev, nil, rec).Score(context.Background(), "  ", "English", Submission{})
		assert.ErrorIs(t, err, ErrCredentialMissing)
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Empty(t, ev.calls)
		assert.Equal(t, []string{"credential_missing"}, rec.outcomes)
	})
}

func TestScoringUsecase_Score_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantReason string
		wantClass  error
	}{
		{
			name:       "provider error",
			err:        fmt.Errorf("gemini request failed: %w: %w", apperr.ErrProvider, errors.New("503")),
			wantReason: ReasonProvider,
			wantClass:  apperr.ErrProvider,
		},
		{
			name:       "timeout",
			err:        fmt.Errorf("gemini request failed: %w: %w", apperr.ErrProvider, context.DeadlineExceeded),
			wantReason: ReasonTimeout,
			wantClass:  context.DeadlineExceeded,
		},
		{
			name:       "empty response",
			err:        ErrEmptyResponse,
			wantReason: ReasonEmptyResponse,
			wantClass:  apperr.ErrProvider,
		},
		{
			name:       "schema invalid",
			err:        fmt.Errorf("validate model payload: %w", apperr.ErrSchemaValidation),
			wantReason: ReasonSchemaInvalid,
			wantClass:  apperr.ErrSchemaValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ev := &mockEvaluator{EvaluateFunc: func(evaluateCall) (*entity.Result, error) { return nil, tt.err }}
			rec := &mockRecorder{}
			res, err := NewScoringUsecase(ev, nil, rec).Score(context.Background(), "key", "English", Submission{})

			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrScoringFailed)
			assert.ErrorIs(t, err, tt.wantClass)

			var se *ScoringError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.wantReason, se.Reason)
			assert.Equal(t, []string{tt.wantReason}, rec.outcomes)
		})
	}
}

func TestScoringUsecase_ScoreForUser(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("uses stored credential and language", func(t *testing.T) {
		t.Parallel()

		creds := &mockCredentialStore{CredentialFunc: func(id uuid.UUID) (string, string, error) {
			assert.Equal(t, userID, id)
			return "stored-key", "French", nil
		}}
		ev := &mockEvaluator{EvaluateFunc: func(evaluateCall) (*entity.Result, error) { return sampleResult(), nil }}

		_, err := NewScoringUsecase(ev, creds, nil).ScoreForUser(context.Background(), userID, Submission{Topic: "t", Essay: "e"})
		require.NoError(t, err)
		assert.Equal(t, "stored-key", ev.calls[0].apiKey)
		assert.Contains(t, ev.calls[0].system, "use French to respond")
	})

	t.Run("no stored key", func(t *testing.T) {
		t.Parallel()

		creds := &mockCredentialStore{CredentialFunc: func(uuid.UUID) (string, string, error) { return "", "", nil }}
		ev := &mockEvaluator{}

		_, err := NewScoringUsecase(ev, creds, nil).ScoreForUser(context.Background(), userID, Submission{})
		assert.ErrorIs(t, err, ErrCredentialMissing)
		assert.Empty(t, ev.calls)
	})

	t.Run("lookup failure", func(t *testing.T) {
		t.Parallel()

		lookupErr := fmt.Errorf("user not found: %w", apperr.ErrNotFound)
		creds := &mockCredentialStore{CredentialFunc: func(uuid.UUID) (string, string, error) { return "", "", lookupErr }}
		ev := &mockEvaluator{}

		_, err := NewScoringUsecase(ev, creds, nil).ScoreForUser(context.Background(), userID, Submission{})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Empty(t, ev.calls)
	})
}
