package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"google.golang.org/genai"

	"ielts_backend/internal/feature/scoring/domain/entity"
	"ielts_backend/internal/shared/apperr"
)

var propertyOrder = []string{"score", "TR_score", "LR_score", "CC_score", "GRA_score", "reason", "improvement"}

// ResponseSchema returns the structured output the model is asked to produce.
func ResponseSchema() *genai.Schema {
	number := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeNumber, Description: desc}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":       number("overall band score"),
			"TR_score":    number("Task Response band"),
			"LR_score":    number("Lexical Resource band"),
			"CC_score":    number("Coherence and Cohesion band"),
			"GRA_score":   number("Grammatical Range and Accuracy band"),
			"reason":      {Type: genai.TypeString, Description: "why the essay received this score"},
			"improvement": {Type: genai.TypeString, Description: "how the essay could be improved"},
		},
		Required:         propertyOrder,
		PropertyOrdering: propertyOrder,
	}
}

// payload mirrors ResponseSchema. Pointer fields let validation tell a
// missing key apart from a zero value.
type payload struct {
	Score       *float64 `json:"score" validate:"required"`
	TR          *float64 `json:"TR_score" validate:"required"`
	LR          *float64 `json:"LR_score" validate:"required"`
	CC          *float64 `json:"CC_score" validate:"required"`
	GRA         *float64 `json:"GRA_score" validate:"required"`
	Reason      *string  `json:"reason" validate:"required"`
	Improvement *string  `json:"improvement" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode parses a raw structured payload into a Result.
// Any malformed, mistyped or incomplete payload is an ErrSchemaValidation.
func Decode(raw []byte) (*entity.Result, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode model payload: %w: %w", apperr.ErrSchemaValidation, err)
	}
	if err := validate.Struct(&p); err != nil {
		return nil, fmt.Errorf("validate model payload: %w: %w", apperr.ErrSchemaValidation, err)
	}

	return &entity.Result{
		Score:       *p.Score,
		TR:          *p.TR,
		LR:          *p.LR,
		CC:          *p.CC,
		GRA:         *p.GRA,
		Reason:      *p.Reason,
		Improvement: *p.Improvement,
	}, nil
}
