package progress

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"solo-sparks/internal/quest"
)

const (
	// MaxAchievements caps the recent achievements list.
	MaxAchievements = 5

	categoryMilestone = 3

	firstQuestPoints      = 25
	categoryMilestonePts  = 50
	reflectionMasterPts   = 30
	reflectionTypesNeeded = 2
)

// Achievement is a derived milestone. Nothing is persisted; the list is
// recomputed from the completion ledger.
type Achievement struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Points      int       `json:"points"`
}

var milestoneTitles = map[quest.Category]string{
	quest.CategoryMindfulness:  "Mindful Explorer",
	quest.CategorySelfCare:     "Self-Care Master",
	quest.CategoryCreative:     "Creative Genius",
	quest.CategoryAdventure:    "Adventure Seeker",
	quest.CategoryMoodBoost:    "Mood Enhancer",
	quest.CategoryRelaxation:   "Relaxation Expert",
	quest.CategoryProductivity: "Productivity Pro",
	quest.CategorySocial:       "Social Butterfly",
	quest.CategoryPhysical:     "Physical Wellness Champion",
	quest.CategoryIntellectual: "Intellectual Growth Master",
	quest.CategorySpiritual:    "Spiritual Seeker",
}

// MilestoneTitle names the three-completions milestone for c.
func MilestoneTitle(c quest.Category) string {
	if title, ok := milestoneTitles[c]; ok {
		return title
	}
	s := string(c)
	if s == "" {
		return "Expert"
	}
	return strings.ToUpper(s[:1]) + s[1:] + " Expert"
}

// Achievements derives the most recent achievements (at most five, newest
// first) from the user's records and reflections.
//
// The reflection-diversity achievement is dated at the reflection that first
// brought the distinct type count to two, so repeated calls agree. now is
// only used when that reflection carries no timestamp.
func Achievements(records []quest.UserQuest, reflections []quest.Reflection, now time.Time) []Achievement {
	var out []Achievement

	completed := quest.CompletedChronological(records)
	if len(completed) > 0 {
		out = append(out, Achievement{
			Title:       "First Quest Complete",
			Description: "Completed your very first Solo Sparks quest",
			Date:        *completed[0].CompletedAt,
			Points:      firstQuestPoints,
		})
	}

	counts := make(map[quest.Category]int)
	for _, r := range completed {
		c := r.Quest.Category
		counts[c]++
		if counts[c] == categoryMilestone {
			out = append(out, Achievement{
				Title:       MilestoneTitle(c),
				Description: fmt.Sprintf("Completed %d %s quests", categoryMilestone, c.Label()),
				Date:        *r.CompletedAt,
				Points:      categoryMilestonePts,
			})
		}
	}

	if at, ok := reflectionDiversity(reflections); ok {
		if at.IsZero() {
			at = now
		}
		out = append(out, Achievement{
			Title:       "Reflection Master",
			Description: "Added different types of reflections to your quests",
			Date:        at,
			Points:      reflectionMasterPts,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > MaxAchievements {
		out = out[:MaxAchievements]
	}
	return out
}

// reflectionDiversity returns when the second distinct reflection type was
// first used.
func reflectionDiversity(reflections []quest.Reflection) (time.Time, bool) {
	ordered := make([]quest.Reflection, len(reflections))
	copy(ordered, reflections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	seen := make(map[quest.ReflectionType]struct{})
	for _, r := range ordered {
		seen[r.Type] = struct{}{}
		if len(seen) == reflectionTypesNeeded {
			return r.CreatedAt, true
		}
	}
	return time.Time{}, false
}
