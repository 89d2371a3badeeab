package domain

// ScoreBreakdown holds the four sub-scores of the covenant score.
type ScoreBreakdown struct {
	Faith     int `json:"faithScore"`
	Values    int `json:"valuesScore"`
	Intention int `json:"intentionScore"`
	Lifestyle int `json:"lifestyleScore"`
}

// Sum returns the unclamped total of all sub-scores.
func (b ScoreBreakdown) Sum() int {
	return b.Faith + b.Values + b.Intention + b.Lifestyle
}

// ScoreResult is computed per request and never persisted.
type ScoreResult struct {
	Score     int            `json:"score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Reasons   []string       `json:"reasons"`
}
