package api

import "ielts_backend/internal/feature/scoring/domain/entity"

// ScoreRequest is the body of POST /main/response.
// An empty model selects the server's default model.
type ScoreRequest struct {
	Model      string `json:"model" binding:"max=128"`
	InputTopic string `json:"input_topic" binding:"required"`
	InputEssay string `json:"input_essay" binding:"required"`
}

// ScoreResponse is the rubric result returned to the client.
type ScoreResponse struct {
	OverallScore float64 `json:"Overall_score"`
	TR           float64 `json:"TR"`
	LR           float64 `json:"LR"`
	CC           float64 `json:"CC"`
	GRA          float64 `json:"GRA"`
	Reason       string  `json:"reason"`
	Improvement  string  `json:"improvement"`
}

// NewScoreResponse converts a scoring result into its response body.
func NewScoreResponse(r *entity.Result) ScoreResponse {
	return ScoreResponse{
		OverallScore: r.Score,
		TR:           r.TR,
		LR:           r.LR,
		CC:           r.CC,
		GRA:          r.GRA,
		Reason:       r.Reason,
		Improvement:  r.Improvement,
	}
}
