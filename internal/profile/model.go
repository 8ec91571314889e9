package profile

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Profile is a user's onboarding assessment. One per user, replaced wholesale
// on update.
type Profile struct {
	ID             string                             `gorm:"primaryKey;size:36" json:"id"`
	UserID         string                             `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Traits         datatypes.JSONType[Traits]         `json:"traits"`
	EmotionalNeeds datatypes.JSONType[EmotionalNeeds] `json:"emotionalNeeds"`
	Preferences    datatypes.JSONType[Preferences]    `json:"preferences"`
	CreatedAt      time.Time                          `json:"createdAt"`
	UpdatedAt      time.Time                          `json:"updatedAt"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// New builds a profile from an assessment payload.
func New(userID string, in Input) *Profile {
	return &Profile{
		UserID:         userID,
		Traits:         datatypes.NewJSONType(in.Traits),
		EmotionalNeeds: datatypes.NewJSONType(in.EmotionalNeeds),
		Preferences:    datatypes.NewJSONType(in.Preferences),
	}
}

// Input returns the three maps as an assessment payload.
func (p *Profile) Input() Input {
	return Input{
		Traits:         p.Traits.Data(),
		EmotionalNeeds: p.EmotionalNeeds.Data(),
		Preferences:    p.Preferences.Data(),
	}
}

// Validate checks the stored maps, which may predate the current rules.
func (p *Profile) Validate() error {
	in := p.Input()
	return in.Validate()
}

// Get returns the user's profile, or nil when the assessment was never taken.
func Get(db *gorm.DB, userID string) (*Profile, error) {
	var p Profile
	err := db.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert replaces the user's profile.
func Upsert(db *gorm.DB, userID string, in Input) (*Profile, error) {
	p := New(userID, in)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"traits", "emotional_needs", "preferences", "updated_at"}),
	}).Create(p).Error
	if err != nil {
		return nil, err
	}
	return Get(db, userID)
}
