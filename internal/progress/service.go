package progress

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"solo-sparks/internal/logging"
	"solo-sparks/internal/metrics"
	"solo-sparks/internal/quest"
)

// Summary is the progress dashboard payload.
type Summary struct {
	TotalQuests           int                    `json:"totalQuests"`
	CompletedQuests       int                    `json:"completedQuests"`
	TotalPoints           int                    `json:"totalPoints"`
	CurrentStreak         int                    `json:"currentStreak"`
	CategoriesCompleted   map[quest.Category]int `json:"categoriesCompleted"`
	WeeklyProgress        []WeekBucket           `json:"weeklyProgress"`
	RecentAchievements    []Achievement          `json:"recentAchievements"`
	CompletedQuestDetails []quest.UserQuest      `json:"completedQuestDetails"`
}

// Service reduces a user's quest ledger into a Summary.
type Service struct {
	logger logrus.FieldLogger
}

func NewService(logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{logger: logger.WithField("component", "progress")}
}

// Summarize combines the streak, weekly buckets and achievements computed
// from records. totalPoints is the caller's ledger balance.
func (s *Service) Summarize(records []quest.UserQuest, reflections []quest.Reflection, totalPoints int, now time.Time) Summary {
	completed := quest.CompletedChronological(records)
	details := make([]quest.UserQuest, len(completed))
	copy(details, completed)
	sort.SliceStable(details, func(i, j int) bool {
		return details[i].CompletedAt.After(*details[j].CompletedAt)
	})

	sum := Summary{
		TotalQuests:           len(records),
		CompletedQuests:       len(completed),
		TotalPoints:           totalPoints,
		CurrentStreak:         Streak(records, now),
		CategoriesCompleted:   quest.CategoryCounts(records),
		WeeklyProgress:        WeeklyProgress(records, now),
		RecentAchievements:    Achievements(records, reflections, now),
		CompletedQuestDetails: details,
	}
	metrics.ProgressSummaries.Inc()
	s.logger.WithFields(logrus.Fields{
		"completed": sum.CompletedQuests,
		"streak":    sum.CurrentStreak,
	}).Debug("progress summarized")
	return sum
}
