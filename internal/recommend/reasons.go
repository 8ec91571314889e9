package recommend

import (
	"strings"

	"solo-sparks/internal/profile"
	"solo-sparks/internal/quest"
)

// FallbackReason is used when no rule matches the quest at all.
const FallbackReason = "This quest offers a valuable opportunity for personal growth and self-discovery."

// DegradedReason accompanies the base score when a candidate could not be scored.
const DegradedReason = "This quest will support your personal growth journey in meaningful ways."

type reasonRule struct {
	when func(s *Signals, q *quest.Quest) bool
	text string
}

func onCategories(when condition, text string, cats ...quest.Category) reasonRule {
	return reasonRule{
		when: func(s *Signals, q *quest.Quest) bool { return when(s) && q.Category.In(cats...) },
		text: text,
	}
}

// reasonRules is checked top to bottom and the first match wins:
// mood, then emotional needs, then traits, then preferences.
var reasonRules = []reasonRule{
	onCategories((*Signals).lowMood,
		"Your recent mood patterns suggest this uplifting quest could help brighten your day.",
		moodBoost, selfCare, creative),
	onCategories((*Signals).highStress,
		"Based on your stress levels, this calming quest can help you find peace and balance.",
		relaxation, mindfulness, selfCare),
	onCategories((*Signals).lowEnergy,
		"Your energy levels suggest this gentle quest would be perfect for recharging.",
		relaxation, mindfulness),
	onCategories((*Signals).highEnergy,
		"Your high energy makes this active quest an ideal match for you right now.",
		adventure, physical, social),

	onCategories(needs(profile.NeedSelfCompassion),
		"This quest aligns with your desire for self-compassion and will help you practice kindness toward yourself.",
		selfCare, relaxation, spiritual),
	onCategories(needs(profile.NeedCreativity),
		"Your creative spirit will flourish with this quest that encourages artistic expression and innovation.",
		creative, adventure),
	onCategories(needs(profile.NeedAdventure),
		"This quest satisfies your adventurous nature and desire for new experiences.",
		adventure, physical),
	onCategories(needs(profile.NeedConnection),
		"This quest supports your need for deeper connection, whether with others or your inner self.",
		social, spiritual),
	onCategories(needs(profile.NeedMindfulness),
		"Perfect for your mindfulness journey - this quest will help you cultivate presence and awareness.",
		mindfulness, relaxation, spiritual),
	onCategories(needs(profile.NeedGrowth),
		"This quest supports your personal growth goals and desire for continuous learning.",
		intellectual, productivity, spiritual),
	onCategories(needs(profile.NeedRelaxation),
		"Ideal for your need to unwind and release stress - this quest promotes deep relaxation.",
		relaxation, selfCare, mindfulness),
	onCategories(needs(profile.NeedConfidence),
		"This quest will help build your confidence through meaningful challenges and achievements.",
		adventure, social, productivity),

	onCategories(traitHigh(profile.TraitIntroversion),
		"This reflective quest aligns perfectly with your introverted nature and need for solitude.",
		mindfulness, selfCare, creative),
	onCategories(traitLow(profile.TraitIntroversion),
		"Your extraverted energy will thrive with this engaging, outward-focused quest.",
		social, adventure),
	onCategories(traitHigh(profile.TraitOpenness),
		"Your high openness to experience makes this innovative quest an exciting opportunity for growth.",
		creative, adventure, intellectual),
	onCategories(traitHigh(profile.TraitConscientiousness),
		"This structured quest appeals to your organized nature and desire for achievement.",
		productivity, intellectual),
	onCategories(traitHigh(profile.TraitAgreeableness),
		"This quest resonates with your cooperative spirit and care for others' wellbeing.",
		social, spiritual),
	onCategories(traitHigh(profile.TraitNeuroticism),
		"This soothing quest is designed to support emotional stability and inner peace.",
		relaxation, selfCare, mindfulness),

	{
		when: func(s *Signals, q *quest.Quest) bool {
			return s.Prefs.Has(profile.PrefOutdoorActivities) && strings.Contains(q.Hints().Location, "outdoor")
		},
		text: "Perfect for your love of outdoor activities - this quest combines growth with nature.",
	},
	onCategories(prefers(profile.PrefCreativeActivities),
		"This creative quest is tailored for your artistic interests and expressive nature.",
		creative),
	onCategories(prefers(profile.PrefIntellectualActivities),
		"This intellectually stimulating quest will engage your curious mind and love of learning.",
		intellectual),
	onCategories(prefers(profile.PrefPhysicalActivities),
		"This quest combines personal growth with physical activity, perfect for your active lifestyle.",
		physical),
	onCategories(prefers(profile.PrefSocialActivities),
		"This social quest aligns with your preference for connecting and engaging with others.",
		social),
}

var categoryReasons = map[quest.Category]string{
	mindfulness:  "This mindfulness quest will help you develop greater self-awareness and presence.",
	selfCare:     "This self-care quest encourages you to prioritize your wellbeing and practice self-love.",
	creative:     "This creative quest offers a wonderful outlet for self-expression and artistic exploration.",
	adventure:    "This adventure quest will push your boundaries and create memorable growth experiences.",
	moodBoost:    "This uplifting quest is designed to enhance your mood and bring more joy into your day.",
	relaxation:   "This relaxing quest provides a peaceful break and helps restore your inner balance.",
	productivity: "This productivity quest will help you organize your life and achieve your goals more effectively.",
	social:       "This social quest encourages meaningful connections and community engagement.",
	physical:     "This physical quest supports your body's health while nurturing your overall wellbeing.",
	intellectual: "This intellectual quest will challenge your mind and expand your knowledge base.",
	spiritual:    "This spiritual quest invites deeper reflection on meaning, purpose, and connection.",
}

// Reasoner picks one explanation sentence per quest. It never looks at the score.
type Reasoner struct{}

func NewReasoner() *Reasoner {
	return &Reasoner{}
}

func (r *Reasoner) Reason(q *quest.Quest, s *Signals) string {
	for _, rule := range reasonRules {
		if rule.when(s, q) {
			return rule.text
		}
	}
	if text, ok := categoryReasons[q.Category]; ok {
		return text
	}
	return FallbackReason
}
