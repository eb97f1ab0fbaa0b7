package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"ielts_backend/internal/feature/scoring/domain/entity"
	"ielts_backend/internal/shared/apperr"
)

const (
	defaultLanguage = "English"

	systemInstructionFormat = "You are an IELTS examiner. I will submit my essay, and you will give it a score and briefly point out any issues. You should use %s to respond"
	userMessageFormat       = "Topic: %s. Essay: %s"

	outcomeOK                = "ok"
	outcomeCredentialMissing = "credential_missing"

	minBand = 0.0
	maxBand = 9.0
)

// Submission is an essay to be scored. An empty Model selects the default.
type Submission struct {
	Model string
	Topic string
	Essay string
}

// Evaluator performs a single structured scoring call.
type Evaluator interface {
	Evaluate(ctx context.Context, apiKey, model, systemInstruction, userMessage string) (*entity.Result, error)
}

// CredentialStore returns the API key and preferred language stored for a user.
type CredentialStore interface {
	Credential(ctx context.Context, userID uuid.UUID) (apiKey, language string, err error)
}

// Recorder observes the outcome and latency of scoring calls.
type Recorder interface {
	Observe(outcome string, elapsed time.Duration)
}

type scoringUsecase struct {
	evaluator   Evaluator
	credentials CredentialStore
	recorder    Recorder
	now         func() time.Time
}

// NewScoringUsecase returns the scoring service. recorder may be nil.
func NewScoringUsecase(evaluator Evaluator, credentials CredentialStore, recorder Recorder) *scoringUsecase {
	return &scoringUsecase{
		evaluator:   evaluator,
		credentials: credentials,
		recorder:    recorder,
		now:         time.Now,
	}
}

// ScoreForUser loads the caller's credential and language, then scores sub.
func (u *scoringUsecase) ScoreForUser(ctx context.Context, userID uuid.UUID, sub Submission) (*entity.Result, error) {
	apiKey, language, err := u.credentials.Credential(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Score(ctx, apiKey, language, sub)
}

// Score asks the model to grade sub. Provider failures are returned as *ScoringError.
func (u *scoringUsecase) Score(ctx context.Context, apiKey, language string, sub Submission) (*entity.Result, error) {
	if strings.TrimSpace(apiKey) == "" {
		u.observe(outcomeCredentialMissing, 0)
		return nil, ErrCredentialMissing
	}
	if strings.TrimSpace(language) == "" {
		language = defaultLanguage
	}

	start := u.now()
	res, err := u.evaluator.Evaluate(ctx, apiKey, sub.Model,
		fmt.Sprintf(systemInstructionFormat, language),
		fmt.Sprintf(userMessageFormat, sub.Topic, sub.Essay))
	elapsed := u.now().Sub(start)

	if err != nil {
		reason := classify(err)
		u.observe(reason, elapsed)
		log.Error().Err(err).Str("reason", reason).Str("model", sub.Model).Dur("elapsed", elapsed).Msg("essay scoring failed")
		return nil, &ScoringError{Reason: reason, Err: err}
	}

	for name, band := range res.Bands() {
		if band < minBand || band > maxBand {
			log.Warn().Str("band", name).Float64("value", band).Msg("model returned band outside 0-9")
		}
	}

	u.observe(outcomeOK, elapsed)
	return res, nil
}

func (u *scoringUsecase) observe(outcome string, elapsed time.Duration) {
	if u.recorder != nil {
		u.recorder.Observe(outcome, elapsed)
	}
}

func classify(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(err, ErrEmptyResponse):
		return ReasonEmptyResponse
	case errors.Is(err, apperr.ErrSchemaValidation):
		return ReasonSchemaInvalid
	default:
		return ReasonProvider
	}
}
