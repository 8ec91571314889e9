package recommend

import (
	"strings"

	"solo-sparks/internal/profile"
	"solo-sparks/internal/quest"
)

// Rule is one independent score adjustment. Adjust returns 0 when the rule
// does not apply.
type Rule struct {
	Name   string
	Adjust func(s *Signals, q *quest.Quest) int
}

type condition func(s *Signals) bool

func categoryRule(name string, when condition, delta int, cats ...quest.Category) Rule {
	return Rule{Name: name, Adjust: func(s *Signals, q *quest.Quest) int {
		if when(s) && q.Category.In(cats...) {
			return delta
		}
		return 0
	}}
}

func difficultyRule(name string, when condition, match func(difficulty int) bool, delta int) Rule {
	return Rule{Name: name, Adjust: func(s *Signals, q *quest.Quest) int {
		if when(s) && match(q.Difficulty) {
			return delta
		}
		return 0
	}}
}

func hintRule(name string, when condition, match func(r quest.Requirements) bool, delta int) Rule {
	return Rule{Name: name, Adjust: func(s *Signals, q *quest.Quest) int {
		if when(s) && match(q.Hints()) {
			return delta
		}
		return 0
	}}
}

func traitHigh(t profile.Trait) condition {
	return func(s *Signals) bool { return s.Traits.High(t) }
}

func traitLow(t profile.Trait) condition {
	return func(s *Signals) bool { return s.Traits.Low(t) }
}

func needs(n profile.Need) condition {
	return func(s *Signals) bool { return s.Needs.Has(n) }
}

func prefers(p profile.Preference) condition {
	return func(s *Signals) bool { return s.Prefs.Has(p) }
}

func avoids(p profile.Preference) condition {
	return func(s *Signals) bool { return !s.Prefs.Has(p) }
}

func atLeast(n int) func(int) bool { return func(d int) bool { return d >= n } }
func atMost(n int) func(int) bool  { return func(d int) bool { return d <= n } }
func above(n int) func(int) bool   { return func(d int) bool { return d > n } }

const (
	mindfulness  = quest.CategoryMindfulness
	selfCare     = quest.CategorySelfCare
	creative     = quest.CategoryCreative
	adventure    = quest.CategoryAdventure
	moodBoost    = quest.CategoryMoodBoost
	relaxation   = quest.CategoryRelaxation
	productivity = quest.CategoryProductivity
	social       = quest.CategorySocial
	physical     = quest.CategoryPhysical
	intellectual = quest.CategoryIntellectual
	spiritual    = quest.CategorySpiritual
)

var traitRules = []Rule{
	categoryRule("introversion.high", traitHigh(profile.TraitIntroversion), 25,
		mindfulness, selfCare, creative, relaxation, intellectual, spiritual),
	categoryRule("introversion.high.social", traitHigh(profile.TraitIntroversion), -20, social),
	categoryRule("introversion.low", traitLow(profile.TraitIntroversion), 25, social, adventure, physical),
	categoryRule("introversion.low.quiet", traitLow(profile.TraitIntroversion), -10, mindfulness, relaxation),

	categoryRule("openness.high", traitHigh(profile.TraitOpenness), 30, creative, adventure, intellectual, spiritual),
	difficultyRule("openness.high.challenge", traitHigh(profile.TraitOpenness), atLeast(3), 15),
	categoryRule("openness.low", traitLow(profile.TraitOpenness), 15, productivity, selfCare, physical),
	difficultyRule("openness.low.familiar", traitLow(profile.TraitOpenness), atMost(2), 10),

	categoryRule("conscientiousness.high", traitHigh(profile.TraitConscientiousness), 25, productivity, intellectual, physical),
	hintRule("conscientiousness.high.long", traitHigh(profile.TraitConscientiousness),
		func(r quest.Requirements) bool { return strings.Contains(r.Duration, "60") }, 10),
	categoryRule("conscientiousness.low", traitLow(profile.TraitConscientiousness), 15, creative, moodBoost, relaxation),
	difficultyRule("conscientiousness.low.easy", traitLow(profile.TraitConscientiousness), atMost(2), 10),

	categoryRule("agreeableness.high", traitHigh(profile.TraitAgreeableness), 20, social, spiritual, selfCare),
	categoryRule("agreeableness.low", traitLow(profile.TraitAgreeableness), 15, intellectual, adventure, productivity),

	categoryRule("neuroticism.high", traitHigh(profile.TraitNeuroticism), 30, relaxation, selfCare, moodBoost, mindfulness),
	difficultyRule("neuroticism.high.hard", traitHigh(profile.TraitNeuroticism), atLeast(4), -15),
	categoryRule("neuroticism.low", traitLow(profile.TraitNeuroticism), 15, adventure, social, intellectual),
	difficultyRule("neuroticism.low.challenge", traitLow(profile.TraitNeuroticism), atLeast(3), 10),
}

var needRules = []Rule{
	categoryRule("need.selfCompassion", needs(profile.NeedSelfCompassion), 35, selfCare, relaxation, spiritual),
	categoryRule("need.creativity", needs(profile.NeedCreativity), 35, creative, adventure),
	categoryRule("need.adventure", needs(profile.NeedAdventure), 35, adventure, physical, social),
	categoryRule("need.connection", needs(profile.NeedConnection), 30, social, spiritual, selfCare),
	categoryRule("need.mindfulness", needs(profile.NeedMindfulness), 35, mindfulness, relaxation, spiritual),
	categoryRule("need.growth", needs(profile.NeedGrowth), 30, intellectual, productivity, spiritual),
	categoryRule("need.relaxation", needs(profile.NeedRelaxation), 35, relaxation, selfCare, mindfulness),
	categoryRule("need.confidence", needs(profile.NeedConfidence), 30, adventure, social, productivity),
}

var preferenceRules = []Rule{
	hintRule("pref.morning", prefers(profile.PrefMorningPerson),
		func(r quest.Requirements) bool { return r.TimeOfDay == "morning" }, 20),
	hintRule("pref.outdoor", prefers(profile.PrefOutdoorActivities),
		func(r quest.Requirements) bool { return strings.Contains(r.Location, "outdoor") }, 25),
	categoryRule("pref.social", prefers(profile.PrefSocialActivities), 25, social),
	categoryRule("pref.social.avoid", avoids(profile.PrefSocialActivities), -15, social),
	categoryRule("pref.physical", prefers(profile.PrefPhysicalActivities), 25, physical),
	categoryRule("pref.creative", prefers(profile.PrefCreativeActivities), 25, creative),
	categoryRule("pref.intellectual", prefers(profile.PrefIntellectualActivities), 25, intellectual),
}

var moodRules = []Rule{
	categoryRule("mood.low", (*Signals).lowMood, 40, moodBoost, selfCare, creative, physical),
	categoryRule("mood.lowEnergy", (*Signals).lowEnergy, 30, relaxation, mindfulness, selfCare),
	difficultyRule("mood.lowEnergy.hard", (*Signals).lowEnergy, above(3), -20),
	categoryRule("mood.highStress", (*Signals).highStress, 40, relaxation, mindfulness, selfCare, physical),
	categoryRule("mood.highStress.demanding", (*Signals).highStress, -15, productivity, intellectual),
	categoryRule("mood.highEnergy", (*Signals).highEnergy, 25, adventure, physical, social, creative),
}

var historyRules = []Rule{
	{Name: "variety.repeat", Adjust: func(s *Signals, q *quest.Quest) int {
		return -15 * s.recentCount(q.Category)
	}},
	{Name: "variety.fresh", Adjust: func(s *Signals, q *quest.Quest) int {
		if s.CompletedCount > 0 && s.recentCount(q.Category) == 0 {
			return 20
		}
		return 0
	}},
	{Name: "progression.stagnant", Adjust: func(s *Signals, q *quest.Quest) int {
		if s.CompletedCount > 3 && float64(q.Difficulty) <= s.AvgDifficulty {
			return -10
		}
		return 0
	}},
	{Name: "progression.stretch", Adjust: func(s *Signals, q *quest.Quest) int {
		if s.CompletedCount > 5 && float64(q.Difficulty) > s.AvgDifficulty+1 {
			return 15
		}
		return 0
	}},
}

// DefaultRules is the full scoring table in evaluation order.
func DefaultRules() []Rule {
	groups := [][]Rule{traitRules, needRules, preferenceRules, moodRules, historyRules}
	var out []Rule
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
