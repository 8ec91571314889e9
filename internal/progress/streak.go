package progress

import (
	"time"

	"solo-sparks/internal/quest"
)

// day truncates t to local midnight in loc.
func day(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Streak counts consecutive calendar days with at least one completion.
// The run is anchored at today when today has a completion, otherwise at
// yesterday; anything older breaks the streak. Days are taken in now's
// location.
func Streak(records []quest.UserQuest, now time.Time) int {
	loc := now.Location()
	days := make(map[time.Time]struct{})
	for _, r := range records {
		if !r.Completed() {
			continue
		}
		days[day(*r.CompletedAt, loc)] = struct{}{}
	}
	if len(days) == 0 {
		return 0
	}

	cursor := day(now, loc)
	if _, ok := days[cursor]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
		if _, ok := days[cursor]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := days[cursor]; !ok {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}
