package progress

import (
	"testing"
	"time"

	"solo-sparks/internal/quest"
)

func TestStreak(t *testing.T) {
	tests := []struct {
		name string
		days []int
		want int
	}{
		{"no completions", nil, 0},
		{"today only", []int{0}, 1},
		{"yesterday only", []int{1}, 1},
		{"two days ago only", []int{2}, 0},
		{"three day run", []int{0, 1, 2}, 3},
		{"run ending yesterday", []int{1, 2, 3}, 3},
		{"gap after today", []int{0, 2, 3}, 1},
		{"same day twice", []int{0, 0, 1}, 2},
		{"stale run", []int{3, 4, 5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []quest.UserQuest
			for i, d := range tt.days {
				at := daysAgo(d).Add(-time.Duration(i) * time.Minute)
				records = append(records, done("q", quest.CategoryCreative, 10, at))
			}
			if got := Streak(records, now); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreak_IgnoresOpenRecords(t *testing.T) {
	records := []quest.UserQuest{
		{QuestID: "a", Status: quest.StatusAssigned},
		{QuestID: "b", Status: quest.StatusInProgress},
	}
	if got := Streak(records, now); got != 0 {
		t.Errorf("expected open records to be ignored, got streak %d", got)
	}
}

func TestStreak_UsesCallerLocation(t *testing.T) {
	loc := time.FixedZone("AEST", 10*60*60)
	localNow := time.Date(2025, 6, 15, 12, 0, 0, 0, loc)
	// 01:00 on the 14th in AEST, but the 13th in UTC
	at := time.Date(2025, 6, 13, 15, 0, 0, 0, time.UTC)
	records := []quest.UserQuest{done("q", quest.CategoryCreative, 10, at)}

	if got := Streak(records, localNow); got != 1 {
		t.Errorf("expected streak 1 in AEST, got %d", got)
	}
	if got := Streak(records, localNow.In(time.UTC)); got != 0 {
		t.Errorf("expected streak 0 in UTC, got %d", got)
	}
}
