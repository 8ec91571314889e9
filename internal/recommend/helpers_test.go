package recommend

import (
	"time"

	"gorm.io/datatypes"

	"solo-sparks/internal/profile"
	"solo-sparks/internal/quest"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func mkQuest(id string, cat quest.Category, difficulty int) quest.Quest {
	return quest.Quest{ID: id, Title: id, Category: cat, Difficulty: difficulty, Points: 20, IsActive: true}
}

func withHints(q quest.Quest, r quest.Requirements) quest.Quest {
	q.Requirements = datatypes.NewJSONType(r)
	return q
}

func completed(q quest.Quest, daysAgo int) quest.UserQuest {
	at := testNow.AddDate(0, 0, -daysAgo)
	return quest.UserQuest{
		ID:          "uq-" + q.ID,
		UserID:      "u1",
		QuestID:     q.ID,
		Quest:       q,
		Status:      quest.StatusCompleted,
		CompletedAt: &at,
	}
}

func claimed(q quest.Quest, status quest.Status) quest.UserQuest {
	return quest.UserQuest{ID: "uq-" + q.ID, UserID: "u1", QuestID: q.ID, Quest: q, Status: status}
}

func moods(n, mood, energy, stress int) []profile.MoodEntry {
	out := make([]profile.MoodEntry, n)
	for i := range out {
		out[i] = profile.MoodEntry{Mood: mood, Energy: energy, Stress: stress, CreatedAt: testNow.Add(-time.Duration(i) * time.Hour)}
	}
	return out
}

func mkProfile(in profile.Input) *profile.Profile {
	p := profile.New("u1", in)
	return p
}
