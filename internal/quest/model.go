package quest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category string

const (
	CategoryMindfulness  Category = "mindfulness"
	CategorySelfCare     Category = "self_care"
	CategoryCreative     Category = "creative"
	CategoryAdventure    Category = "adventure"
	CategoryMoodBoost    Category = "mood_boost"
	CategoryRelaxation   Category = "relaxation"
	CategoryProductivity Category = "productivity"
	CategorySocial       Category = "social"
	CategoryPhysical     Category = "physical"
	CategoryIntellectual Category = "intellectual"
	CategorySpiritual    Category = "spiritual"
)

// Categories lists every category in catalog order.
var Categories = []Category{
	CategoryMindfulness,
	CategorySelfCare,
	CategoryCreative,
	CategoryAdventure,
	CategoryMoodBoost,
	CategoryRelaxation,
	CategoryProductivity,
	CategorySocial,
	CategoryPhysical,
	CategoryIntellectual,
	CategorySpiritual,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// In reports whether c is one of cats.
func (c Category) In(cats ...Category) bool {
	for _, other := range cats {
		if c == other {
			return true
		}
	}
	return false
}

// Label turns "self_care" into "self care".
func (c Category) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

var ErrInvalidQuest = errors.New("invalid quest")

// Requirements are soft hints used for scoring only.
type Requirements struct {
	TimeOfDay string `json:"timeOfDay,omitempty" yaml:"timeOfDay"`
	Duration  string `json:"duration,omitempty" yaml:"duration"`
	Location  string `json:"location,omitempty" yaml:"location"`
}

type Quest struct {
	ID           string                           `gorm:"primaryKey;size:64" json:"id"`
	Title        string                           `gorm:"size:200;not null" json:"title"`
	Description  string                           `gorm:"type:text" json:"description"`
	Category     Category                         `gorm:"type:varchar(20);index;not null" json:"category"`
	Difficulty   int                              `gorm:"not null;default:1" json:"difficulty"`
	Points       int                              `gorm:"not null;default:0" json:"points"`
	Requirements datatypes.JSONType[Requirements] `json:"requirements"`
	IsActive     bool                             `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt    time.Time                        `json:"createdAt"`
	UpdatedAt    time.Time                        `json:"updatedAt"`
}

// Hints returns the decoded requirement hints.
func (q *Quest) Hints() Requirements {
	return q.Requirements.Data()
}

// Validate checks the fields the engines depend on.
func (q *Quest) Validate() error {
	if !q.Category.Valid() {
		return fmt.Errorf("%w: quest %s has unknown category %q", ErrInvalidQuest, q.ID, q.Category)
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		return fmt.Errorf("%w: quest %s difficulty %d out of range", ErrInvalidQuest, q.ID, q.Difficulty)
	}
	return nil
}

type Status string

const (
	StatusAssigned   Status = "ASSIGNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

type ReflectionType string

const (
	ReflectionText  ReflectionType = "TEXT"
	ReflectionPhoto ReflectionType = "PHOTO"
	ReflectionAudio ReflectionType = "AUDIO"
)

func (t ReflectionType) Valid() bool {
	return t == ReflectionText || t == ReflectionPhoto || t == ReflectionAudio
}

// UserQuest links a user to a quest. One row per (user, quest).
type UserQuest struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	UserID      string       `gorm:"size:36;not null;uniqueIndex:idx_user_quest" json:"userId"`
	QuestID     string       `gorm:"size:64;not null;uniqueIndex:idx_user_quest" json:"questId"`
	Quest       Quest        `gorm:"foreignKey:QuestID" json:"quest"`
	Status      Status       `gorm:"type:varchar(20);not null;default:'ASSIGNED'" json:"status"`
	CompletedAt *time.Time   `gorm:"index" json:"completedAt,omitempty"`
	Reflection  string       `gorm:"type:text" json:"reflection,omitempty"`
	Reflections []Reflection `gorm:"foreignKey:UserQuestID" json:"reflections,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (uq *UserQuest) BeforeCreate(tx *gorm.DB) error {
	if uq.ID == "" {
		uq.ID = uuid.New().String()
	}
	return nil
}

// Completed reports whether the record counts toward history.
func (uq *UserQuest) Completed() bool {
	return uq.Status == StatusCompleted && uq.CompletedAt != nil
}

type Reflection struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	UserQuestID string         `gorm:"size:36;not null;index" json:"userQuestId"`
	Type        ReflectionType `gorm:"type:varchar(10);not null" json:"type"`
	Content     string         `gorm:"type:text" json:"content"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func (r *Reflection) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
