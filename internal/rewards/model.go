package rewards

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Source tags why points were granted or spent.
type Source string

const (
	SourceAssessment       Source = "assessment_completion"
	SourceQuestCompletion  Source = "quest_completion"
	SourceReflectionBonus  Source = "reflection_bonus"
	SourceRewardRedemption Source = "reward_redemption"
)

const (
	// AssessmentPoints is granted every time the assessment is submitted.
	AssessmentPoints = 50
	// ReflectionBonus is granted per structured reflection on completion.
	ReflectionBonus = 5
)

// SparkPoints is one ledger row. Balances are the sum of all rows.
type SparkPoints struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;index;not null" json:"userId"`
	Points    int       `gorm:"not null" json:"points"`
	Source    Source    `gorm:"type:varchar(40);not null" json:"source"`
	QuestID   string    `gorm:"size:64" json:"questId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p *SparkPoints) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type Reward struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Cost        int       `gorm:"not null" json:"cost"`
	Type        string    `gorm:"type:varchar(40)" json:"type"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserReward records a redemption.
type UserReward struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;index;not null" json:"userId"`
	RewardID   string    `gorm:"size:64;not null" json:"rewardId"`
	Reward     Reward    `gorm:"foreignKey:RewardID" json:"reward"`
	RedeemedAt time.Time `json:"redeemedAt"`
}

func (r *UserReward) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
