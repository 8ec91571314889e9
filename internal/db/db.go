package db

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"solo-sparks/internal/config"
	"solo-sparks/internal/profile"
	"solo-sparks/internal/quest"
	"solo-sparks/internal/rewards"
	"solo-sparks/internal/user"
)

var DB *gorm.DB

// Models lists every table the service owns, in migration order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&profile.Profile{},
		&profile.MoodEntry{},
		&quest.Quest{},
		&quest.UserQuest{},
		&quest.Reflection{},
		&rewards.SparkPoints{},
		&rewards.Reward{},
		&rewards.UserReward{},
	}
}

// Migrate creates or updates all tables on conn.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(Models()...)
}

// DeleteUser removes the account and every row keyed to it in one
// transaction: reflections, quest records, profile, moods and the points
// ledger with its redemptions.
func DeleteUser(conn *gorm.DB, userID string) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		var recordIDs []string
		if err := tx.Model(&quest.UserQuest{}).Where("user_id = ?", userID).Pluck("id", &recordIDs).Error; err != nil {
			return err
		}
		if len(recordIDs) > 0 {
			if err := tx.Where("user_quest_id IN ?", recordIDs).Delete(&quest.Reflection{}).Error; err != nil {
				return err
			}
		}
		for _, model := range []interface{}{
			&quest.UserQuest{},
			&profile.Profile{},
			&profile.MoodEntry{},
			&rewards.UserReward{},
			&rewards.SparkPoints{},
		} {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&user.User{}, "id = ?", userID).Error
	})
}

func Init(cfg *config.Config, log logrus.FieldLogger) error {
	conn, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}
	if err := Migrate(conn); err != nil {
		return err
	}
	DB = conn
	log.Info("Database connected and migrated")
	return nil
}
