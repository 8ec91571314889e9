package quest

import "sort"

// CompletedChronological returns the completed records ordered by completion
// time, oldest first. The input is not modified.
func CompletedChronological(records []UserQuest) []UserQuest {
	completed := make([]UserQuest, 0, len(records))
	for _, r := range records {
		if r.Completed() {
			completed = append(completed, r)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].CompletedAt.Before(*completed[j].CompletedAt)
	})
	return completed
}

// ClaimedIDs returns the quest IDs the user already has a record for,
// whatever its status.
func ClaimedIDs(records []UserQuest) map[string]struct{} {
	claimed := make(map[string]struct{}, len(records))
	for _, r := range records {
		claimed[r.QuestID] = struct{}{}
	}
	return claimed
}

// CategoryCounts tallies completed records per category.
func CategoryCounts(records []UserQuest) map[Category]int {
	counts := make(map[Category]int)
	for _, r := range records {
		if r.Completed() {
			counts[r.Quest.Category]++
		}
	}
	return counts
}
