package recommend

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"solo-sparks/internal/logging"
	"solo-sparks/internal/metrics"
	"solo-sparks/internal/profile"
	"solo-sparks/internal/quest"
)

// DefaultLimit is how many recommendations Generate returns.
const DefaultLimit = 8

// Recommendation is a scored, explained catalog quest.
type Recommendation struct {
	Quest  quest.Quest `json:"quest"`
	Score  int         `json:"score"`
	Reason string      `json:"reason"`
}

// outcome is the per-candidate result: either a recommendation or the error
// that forced the fallback.
type outcome struct {
	rec Recommendation
	err error
}

// Service ranks the unclaimed part of the catalog for one user. It keeps no
// per-request state and is safe for concurrent use.
type Service struct {
	scorer   *Scorer
	reasoner *Reasoner
	limit    int
	logger   logrus.FieldLogger
}

// NewService builds a service; limit <= 0 means DefaultLimit and a nil
// logger discards output.
func NewService(limit int, logger logrus.FieldLogger) *Service {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		scorer:   NewScorer(nil),
		reasoner: NewReasoner(),
		limit:    limit,
		logger:   logger.WithField("component", "recommend"),
	}
}

// Generate returns at most limit recommendations sorted by descending score,
// catalog order breaking ties. A nil profile yields an empty list; a profile
// that fails validation yields profile.ErrInvalidProfile.
func (svc *Service) Generate(p *profile.Profile, moods []profile.MoodEntry, catalog []quest.Quest, records []quest.UserQuest) ([]Recommendation, error) {
	if p == nil {
		metrics.RecommendationRequests.WithLabelValues("no_profile").Inc()
		return []Recommendation{}, nil
	}
	if err := p.Validate(); err != nil {
		metrics.RecommendationRequests.WithLabelValues("invalid_profile").Inc()
		return nil, fmt.Errorf("user %s: %w", p.UserID, err)
	}

	claimed := quest.ClaimedIDs(records)
	candidates := make([]quest.Quest, 0, len(catalog))
	for _, q := range catalog {
		if _, ok := claimed[q.ID]; ok {
			continue
		}
		candidates = append(candidates, q)
	}
	metrics.RecommendationCandidates.Observe(float64(len(candidates)))
	if len(candidates) == 0 {
		metrics.RecommendationRequests.WithLabelValues("empty").Inc()
		return []Recommendation{}, nil
	}

	signals := BuildSignals(p.Input(), moods, records)
	recs := make([]Recommendation, 0, len(candidates))
	for i := range candidates {
		out := svc.evaluate(&candidates[i], signals)
		if out.err != nil {
			metrics.ScoringFailures.Inc()
			svc.logger.WithError(out.err).WithField("quest", candidates[i].ID).
				Warn("scoring failed, using base score")
		}
		recs = append(recs, out.rec)
	}

	Rank(recs)
	if len(recs) > svc.limit {
		recs = recs[:svc.limit]
	}

	metrics.RecommendationRequests.WithLabelValues("ok").Inc()
	svc.logger.WithFields(logrus.Fields{
		"user":       p.UserID,
		"candidates": len(candidates),
		"returned":   len(recs),
	}).Debug("recommendations generated")
	return recs, nil
}

func (svc *Service) evaluate(q *quest.Quest, s *Signals) outcome {
	score, err := svc.scorer.Score(q, s)
	if err != nil {
		return outcome{
			rec: Recommendation{Quest: *q, Score: BaseScore, Reason: DegradedReason},
			err: err,
		}
	}
	return outcome{rec: Recommendation{Quest: *q, Score: score, Reason: svc.reasoner.Reason(q, s)}}
}

// Rank sorts recommendations by descending score, keeping input order for
// equal scores.
func Rank(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
}
