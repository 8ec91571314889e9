package profile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecentMoodWindow is how many of the latest entries feed the mood signal.
const RecentMoodWindow = 7

type MoodEntry struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;index;not null" json:"userId"`
	Mood      int       `gorm:"not null" json:"mood" validate:"min=1,max=10"`
	Energy    int       `gorm:"not null" json:"energy" validate:"min=1,max=10"`
	Stress    int       `gorm:"not null" json:"stress" validate:"min=1,max=10"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (m *MoodEntry) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// Validate checks the three 1-10 scales.
func (m *MoodEntry) Validate() error {
	return validatorInstance().Struct(m)
}

// MoodSignal is the mean of the recent mood window.
type MoodSignal struct {
	Mood   float64
	Energy float64
	Stress float64
}

// Signal averages up to RecentMoodWindow entries, most recent first. The
// second return is false when there are no entries.
func Signal(entries []MoodEntry) (MoodSignal, bool) {
	if len(entries) == 0 {
		return MoodSignal{}, false
	}
	if len(entries) > RecentMoodWindow {
		entries = entries[:RecentMoodWindow]
	}
	var sum MoodSignal
	for _, e := range entries {
		sum.Mood += float64(e.Mood)
		sum.Energy += float64(e.Energy)
		sum.Stress += float64(e.Stress)
	}
	n := float64(len(entries))
	return MoodSignal{Mood: sum.Mood / n, Energy: sum.Energy / n, Stress: sum.Stress / n}, true
}

// RecentMoods returns the latest entries, most recent first.
func RecentMoods(db *gorm.DB, userID string, limit int) ([]MoodEntry, error) {
	var entries []MoodEntry
	err := db.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// LogMood stores a new entry.
func LogMood(db *gorm.DB, entry *MoodEntry) error {
	return db.Create(entry).Error
}
