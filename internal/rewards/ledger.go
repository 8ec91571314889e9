package rewards

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"solo-sparks/internal/quest"
	"solo-sparks/internal/user"
)

var (
	ErrRewardNotFound     = errors.New("reward not found")
	ErrInsufficientPoints = errors.New("insufficient points")
)

// Total returns the user's current balance.
func Total(db *gorm.DB, userID string) (int, error) {
	var total int
	err := db.Model(&SparkPoints{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return total, err
}

// History returns ledger rows, newest first.
func History(db *gorm.DB, userID string) ([]SparkPoints, error) {
	var rows []SparkPoints
	err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&rows).Error
	return rows, err
}

// Award appends a ledger row. Zero amounts are skipped.
func Award(db *gorm.DB, userID string, points int, source Source, questID string) error {
	if points == 0 {
		return nil
	}
	return db.Create(&SparkPoints{UserID: userID, Points: points, Source: source, QuestID: questID}).Error
}

// ActiveRewards lists redeemable rewards, cheapest first.
func ActiveRewards(db *gorm.DB) ([]Reward, error) {
	var rewards []Reward
	err := db.Where("is_active = ?", true).Order("cost asc, id asc").Find(&rewards).Error
	return rewards, err
}

// Redeemed lists the user's redemptions with the reward loaded.
func Redeemed(db *gorm.DB, userID string) ([]UserReward, error) {
	var out []UserReward
	err := db.Preload("Reward").Where("user_id = ?", userID).Order("redeemed_at desc").Find(&out).Error
	return out, err
}

// Redeem debits the reward cost and records the redemption in one
// transaction.
func Redeem(db *gorm.DB, userID, rewardID string, now time.Time) (*UserReward, error) {
	var ur UserReward
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockBalance(tx, userID).Error; err != nil {
			return err
		}
		var reward Reward
		if err := tx.Where("id = ? AND is_active = ?", rewardID, true).First(&reward).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRewardNotFound
			}
			return err
		}
		balance, err := Total(tx, userID)
		if err != nil {
			return err
		}
		if balance < reward.Cost {
			return ErrInsufficientPoints
		}
		if err := Award(tx, userID, -reward.Cost, SourceRewardRedemption, ""); err != nil {
			return err
		}
		ur = UserReward{UserID: userID, RewardID: reward.ID, RedeemedAt: now}
		if err := tx.Omit(clause.Associations).Create(&ur).Error; err != nil {
			return err
		}
		ur.Reward = reward
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ur, nil
}

// lockBalance row-locks the user so concurrent redemptions for one user
// serialize on the balance check. SQLite has no row locks and drops the clause.
func lockBalance(tx *gorm.DB, userID string) *gorm.DB {
	var locked []user.User
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", userID).
		Find(&locked)
}

// SeedRewards upserts catalog rewards by ID.
func SeedRewards(db *gorm.DB, specs []quest.RewardSpec) error {
	if len(specs) == 0 {
		return nil
	}
	rows := make([]Reward, 0, len(specs))
	for _, s := range specs {
		rows = append(rows, Reward{ID: s.ID, Name: s.Name, Description: s.Description, Cost: s.Cost, Type: s.Type, IsActive: true})
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "cost", "type", "is_active"}),
	}).Create(&rows).Error
}
