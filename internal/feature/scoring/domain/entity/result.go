// Package entity defines the result of scoring an essay.
package entity

// Result is the rubric evaluation returned by the model. It is never persisted.
type Result struct {
	// Score is the overall band.
	Score float64
	// TR, LR, CC and GRA are the Task Response, Lexical Resource,
	// Coherence and Cohesion, and Grammatical Range and Accuracy bands.
	TR  float64
	LR  float64
	CC  float64
	GRA float64

	Reason      string
	Improvement string
}

// Bands returns the overall and sub-scores keyed by rubric name.
func (r *Result) Bands() map[string]float64 {
	return map[string]float64{
		"score": r.Score,
		"TR":    r.TR,
		"LR":    r.LR,
		"CC":    r.CC,
		"GRA":   r.GRA,
	}
}
