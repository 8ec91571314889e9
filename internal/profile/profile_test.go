package profile

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupProfileDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Profile{}, &MoodEntry{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		valid bool
	}{
		{"empty", Input{}, true},
		{"full", Input{
			Traits:         Traits{TraitIntroversion: 1, TraitOpenness: 10},
			EmotionalNeeds: EmotionalNeeds{NeedGrowth: true, NeedConfidence: false},
			Preferences:    Preferences{PrefMorningPerson: true},
		}, true},
		{"trait too high", Input{Traits: Traits{TraitOpenness: 11}}, false},
		{"trait zero", Input{Traits: Traits{TraitNeuroticism: 0}}, false},
		{"unknown trait", Input{Traits: Traits{"charisma": 5}}, false},
		{"unknown need", Input{EmotionalNeeds: EmotionalNeeds{"fame": true}}, false},
		{"unknown preference", Input{Preferences: Preferences{"nightOwl": true}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid input, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("expected ErrInvalidProfile, got %v", err)
			}
		})
	}
}

func TestTraitThresholds(t *testing.T) {
	traits := Traits{TraitIntroversion: 8, TraitOpenness: 7, TraitAgreeableness: 3, TraitNeuroticism: 4}
	tests := []struct {
		trait     Trait
		high, low bool
	}{
		{TraitIntroversion, true, false},
		{TraitOpenness, false, false},
		{TraitAgreeableness, false, true},
		{TraitNeuroticism, false, false},
		// absent traits are neither high nor low
		{TraitConscientiousness, false, false},
	}
	for _, tt := range tests {
		if got := traits.High(tt.trait); got != tt.high {
			t.Errorf("High(%s) = %v, want %v", tt.trait, got, tt.high)
		}
		if got := traits.Low(tt.trait); got != tt.low {
			t.Errorf("Low(%s) = %v, want %v", tt.trait, got, tt.low)
		}
	}
}

func TestSignal(t *testing.T) {
	if _, ok := Signal(nil); ok {
		t.Errorf("expected no signal without entries")
	}

	entries := []MoodEntry{
		{Mood: 2, Energy: 4, Stress: 9},
		{Mood: 4, Energy: 6, Stress: 7},
	}
	for i := 0; i < 10; i++ {
		entries = append(entries, MoodEntry{Mood: 3, Energy: 5, Stress: 8})
	}
	sig, ok := Signal(entries)
	if !ok {
		t.Fatalf("expected a signal")
	}
	// only the seven most recent count
	for name, pair := range map[string][2]float64{
		"mood":   {21.0 / 7, sig.Mood},
		"energy": {35.0 / 7, sig.Energy},
		"stress": {56.0 / 7, sig.Stress},
	} {
		if math.Abs(pair[0]-pair[1]) > 1e-9 {
			t.Errorf("%s average = %v, want %v", name, pair[1], pair[0])
		}
	}
}

func TestMoodEntryValidate(t *testing.T) {
	tests := []struct {
		entry MoodEntry
		valid bool
	}{
		{MoodEntry{Mood: 1, Energy: 10, Stress: 5}, true},
		{MoodEntry{Mood: 0, Energy: 5, Stress: 5}, false},
		{MoodEntry{Mood: 5, Energy: 11, Stress: 5}, false},
	}
	for _, tt := range tests {
		if err := tt.entry.Validate(); (err == nil) != tt.valid {
			t.Errorf("Validate(%+v) = %v, want valid=%v", tt.entry, err, tt.valid)
		}
	}
}

func TestUpsertAndGet(t *testing.T) {
	db := setupProfileDB(t)

	p, err := Get(db, "u1")
	if err != nil || p != nil {
		t.Fatalf("expected no profile yet, got %v %v", p, err)
	}

	if _, err := Upsert(db, "u1", Input{Traits: Traits{TraitIntroversion: 9}}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	p, err = Upsert(db, "u1", Input{
		Traits:         Traits{TraitOpenness: 2},
		EmotionalNeeds: EmotionalNeeds{NeedMindfulness: true},
	})
	if err != nil || p == nil {
		t.Fatalf("second upsert: %v", err)
	}

	in := p.Input()
	if !reflect.DeepEqual(in.Traits, Traits{TraitOpenness: 2}) {
		t.Errorf("expected traits to be replaced, got %v", in.Traits)
	}
	if !in.EmotionalNeeds.Has(NeedMindfulness) {
		t.Errorf("expected mindfulness need")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("stored profile should validate: %v", err)
	}

	var count int64
	db.Model(&Profile{}).Where("user_id = ?", "u1").Count(&count)
	if count != 1 {
		t.Errorf("expected one profile row, got %d", count)
	}
}

func TestRecentMoods(t *testing.T) {
	db := setupProfileDB(t)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := LogMood(db, &MoodEntry{UserID: "u1", Mood: i + 1, Energy: 5, Stress: 5, CreatedAt: base.AddDate(0, 0, i)}); err != nil {
			t.Fatalf("log mood: %v", err)
		}
	}
	if err := LogMood(db, &MoodEntry{UserID: "u2", Mood: 9, Energy: 5, Stress: 5}); err != nil {
		t.Fatalf("log mood: %v", err)
	}

	got, err := RecentMoods(db, "u1", 3)
	if err != nil {
		t.Fatalf("RecentMoods: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Mood != 5 || got[2].Mood != 3 {
		t.Errorf("expected newest first, got moods %d..%d", got[0].Mood, got[2].Mood)
	}
}
