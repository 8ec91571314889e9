package recommend

import (
	"solo-sparks/internal/profile"
	"solo-sparks/internal/quest"
)

const (
	// varietyWindow is how many of the latest completions count as "recent".
	varietyWindow = 5
	// defaultAvgDifficulty stands in for the mean when nothing is completed.
	defaultAvgDifficulty = 2.0
)

// Signals is the per-user state every rule reads. It is built once per
// request and shared across candidates.
type Signals struct {
	Traits profile.Traits
	Needs  profile.EmotionalNeeds
	Prefs  profile.Preferences

	Mood    profile.MoodSignal
	HasMood bool

	// RecentCategories holds the categories of the last completions, oldest first.
	RecentCategories []quest.Category
	CompletedCount   int
	AvgDifficulty    float64
}

// BuildSignals derives Signals from the assessment, the mood history (most
// recent first) and the user's quest records.
func BuildSignals(in profile.Input, moods []profile.MoodEntry, records []quest.UserQuest) *Signals {
	s := &Signals{
		Traits:        in.Traits,
		Needs:         in.EmotionalNeeds,
		Prefs:         in.Preferences,
		AvgDifficulty: defaultAvgDifficulty,
	}
	if s.Traits == nil {
		s.Traits = profile.Traits{}
	}
	if s.Needs == nil {
		s.Needs = profile.EmotionalNeeds{}
	}
	if s.Prefs == nil {
		s.Prefs = profile.Preferences{}
	}

	s.Mood, s.HasMood = profile.Signal(moods)

	completed := quest.CompletedChronological(records)
	s.CompletedCount = len(completed)
	if len(completed) > 0 {
		total := 0
		for _, r := range completed {
			total += r.Quest.Difficulty
		}
		s.AvgDifficulty = float64(total) / float64(len(completed))
	}

	recent := completed
	if len(recent) > varietyWindow {
		recent = recent[len(recent)-varietyWindow:]
	}
	for _, r := range recent {
		s.RecentCategories = append(s.RecentCategories, r.Quest.Category)
	}
	return s
}

// recentCount counts recent completions in category c.
func (s *Signals) recentCount(c quest.Category) int {
	n := 0
	for _, rc := range s.RecentCategories {
		if rc == c {
			n++
		}
	}
	return n
}

func (s *Signals) lowMood() bool    { return s.HasMood && s.Mood.Mood < 5 }
func (s *Signals) lowEnergy() bool  { return s.HasMood && s.Mood.Energy < 4 }
func (s *Signals) highStress() bool { return s.HasMood && s.Mood.Stress > 7 }
func (s *Signals) highEnergy() bool { return s.HasMood && s.Mood.Energy > 7 }
