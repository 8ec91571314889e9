package progress

import (
	"time"

	"solo-sparks/internal/quest"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func done(id string, cat quest.Category, points int, at time.Time) quest.UserQuest {
	return quest.UserQuest{
		ID:          "uq-" + id,
		UserID:      "u1",
		QuestID:     id,
		Quest:       quest.Quest{ID: id, Category: cat, Difficulty: 2, Points: points},
		Status:      quest.StatusCompleted,
		CompletedAt: &at,
	}
}

func daysAgo(n int) time.Time {
	return now.AddDate(0, 0, -n)
}
