package recommend

import (
	"solo-sparks/internal/quest"
)

const (
	BaseScore = 50
	MinScore  = 15
	MaxScore  = 100
)

// Adjustment is a rule that fired for a candidate.
type Adjustment struct {
	Rule  string `json:"rule"`
	Delta int    `json:"delta"`
}

// Scorer sums independent rule adjustments on top of BaseScore.
type Scorer struct {
	rules []Rule
}

// NewScorer creates a scorer; nil rules means DefaultRules.
func NewScorer(rules []Rule) *Scorer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Scorer{rules: rules}
}

// Breakdown lists every rule that changed the score for q.
func (sc *Scorer) Breakdown(q *quest.Quest, s *Signals) ([]Adjustment, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	var out []Adjustment
	for _, r := range sc.rules {
		if d := r.Adjust(s, q); d != 0 {
			out = append(out, Adjustment{Rule: r.Name, Delta: d})
		}
	}
	return out, nil
}

// Score returns the clamped score for q. An invalid quest yields an error
// and no score.
func (sc *Scorer) Score(q *quest.Quest, s *Signals) (int, error) {
	adjustments, err := sc.Breakdown(q, s)
	if err != nil {
		return 0, err
	}
	score := BaseScore
	for _, a := range adjustments {
		score += a.Delta
	}
	return clamp(score), nil
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
