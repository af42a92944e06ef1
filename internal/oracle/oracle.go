// Package oracle talks to the external scoring judge. The core only
// interprets TotalScore; commentary, breakdown and illustration are
// passthrough for presentation.
package oracle

import (
	"context"
	"errors"
)

var ErrUnavailable = errors.New("oracle_unavailable")

type Request struct {
	Theme      string         `json:"theme"`
	Direction  string         `json:"direction"`
	Pitch      string         `json:"pitch"`
	TechNames  []string       `json:"tech_names"`
	TechLevels map[string]int `json:"tech_levels,omitempty"`
}

type Result struct {
	TotalScore      int            `json:"total_score"`
	Breakdown       map[string]int `json:"breakdown,omitempty"`
	Commentary      string         `json:"commentary,omitempty"`
	IllustrationURL string         `json:"illustration_url,omitempty"`
}

type Evaluator interface {
	Evaluate(ctx context.Context, req Request) (Result, error)
}

// ClampScore bounds raw judge output to [0,100]. The scoring calculator
// itself never clamps; this is the boundary's job.
func ClampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
