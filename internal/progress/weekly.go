package progress

import (
	"fmt"
	"time"

	"solo-sparks/internal/quest"
)

const (
	trackedWeeks = 4
	week         = 7 * 24 * time.Hour
)

// WeekBucket is one week of activity. "Week 4" is the most recent.
type WeekBucket struct {
	Week      string `json:"week"`
	Completed int    `json:"completed"`
	Points    int    `json:"points"`
}

// WeeklyProgress buckets the last 28 days of completions into four rolling
// weeks counted back from now. The result always has four entries, oldest
// first. Completions in the future are ignored.
func WeeklyProgress(records []quest.UserQuest, now time.Time) []WeekBucket {
	buckets := make([]WeekBucket, trackedWeeks)
	for i := range buckets {
		buckets[i].Week = fmt.Sprintf("Week %d", i+1)
	}

	for _, r := range records {
		if !r.Completed() {
			continue
		}
		elapsed := now.Sub(*r.CompletedAt)
		if elapsed < 0 {
			continue
		}
		weekDiff := int(elapsed / week)
		if weekDiff >= trackedWeeks {
			continue
		}
		b := &buckets[trackedWeeks-1-weekDiff]
		b.Completed++
		b.Points += r.Quest.Points
	}
	return buckets
}
