package profile

// Trait is one of the five personality dimensions scored 1-10.
type Trait string

const (
	TraitIntroversion      Trait = "introversion"
	TraitOpenness          Trait = "openness"
	TraitConscientiousness Trait = "conscientiousness"
	TraitAgreeableness     Trait = "agreeableness"
	TraitNeuroticism       Trait = "neuroticism"
)

// Need is an emotional need flagged during onboarding.
type Need string

const (
	NeedSelfCompassion Need = "selfCompassion"
	NeedCreativity     Need = "creativity"
	NeedAdventure      Need = "adventure"
	NeedConnection     Need = "connection"
	NeedMindfulness    Need = "mindfulness"
	NeedGrowth         Need = "growth"
	NeedRelaxation     Need = "relaxation"
	NeedConfidence     Need = "confidence"
)

// Preference is an activity preference flagged during onboarding.
type Preference string

const (
	PrefMorningPerson          Preference = "morningPerson"
	PrefOutdoorActivities      Preference = "outdoorActivities"
	PrefSocialActivities       Preference = "socialActivities"
	PrefPhysicalActivities     Preference = "physicalActivities"
	PrefCreativeActivities     Preference = "creativeActivities"
	PrefIntellectualActivities Preference = "intellectualActivities"
)

const (
	highTraitThreshold = 7
	lowTraitThreshold  = 4
)

// Traits maps each trait to its 1-10 score. Absent traits carry no signal.
type Traits map[Trait]int

// Level returns the score for t and whether it was provided.
func (t Traits) Level(tr Trait) (int, bool) {
	v, ok := t[tr]
	return v, ok
}

// High reports a score above 7.
func (t Traits) High(tr Trait) bool {
	v, ok := t.Level(tr)
	return ok && v > highTraitThreshold
}

// Low reports a score below 4.
func (t Traits) Low(tr Trait) bool {
	v, ok := t.Level(tr)
	return ok && v < lowTraitThreshold
}

// EmotionalNeeds flags needs; a missing key is false.
type EmotionalNeeds map[Need]bool

func (n EmotionalNeeds) Has(need Need) bool {
	return n[need]
}

// Preferences flags activity preferences; a missing key is false.
type Preferences map[Preference]bool

func (p Preferences) Has(pref Preference) bool {
	return p[pref]
}
