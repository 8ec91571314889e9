package quest

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound         = errors.New("quest not found")
	ErrAlreadyClaimed   = errors.New("quest already assigned")
	ErrAlreadyCompleted = errors.New("quest already completed")
)

// ActiveCatalog returns every active quest in a stable order.
func ActiveCatalog(db *gorm.DB) ([]Quest, error) {
	var quests []Quest
	err := db.Where("is_active = ?", true).Order("created_at asc, id asc").Find(&quests).Error
	return quests, err
}

// GetActive loads one active quest.
func GetActive(db *gorm.DB, id string) (*Quest, error) {
	var q Quest
	err := db.Where("id = ? AND is_active = ?", id, true).First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// RecordsForUser returns all of a user's quest records with their quest and
// reflections loaded.
func RecordsForUser(db *gorm.DB, userID string) ([]UserQuest, error) {
	var records []UserQuest
	err := db.Preload("Quest").Preload("Reflections").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&records).Error
	return records, err
}

// FindRecord returns the user's record for a quest, or nil when none exists.
func FindRecord(db *gorm.DB, userID, questID string) (*UserQuest, error) {
	var uq UserQuest
	err := db.Where("user_id = ? AND quest_id = ?", userID, questID).First(&uq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &uq, nil
}

// Assign creates an ASSIGNED record for the quest.
func Assign(db *gorm.DB, userID, questID string) (*UserQuest, error) {
	if _, err := GetActive(db, questID); err != nil {
		return nil, err
	}
	existing, err := FindRecord(db, userID, questID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyClaimed
	}
	uq := UserQuest{UserID: userID, QuestID: questID, Status: StatusAssigned}
	if err := db.Omit(clause.Associations).Create(&uq).Error; err != nil {
		return nil, err
	}
	return &uq, nil
}

// ReflectionInput is a structured reflection submitted on completion.
type ReflectionInput struct {
	Type    ReflectionType `json:"type"`
	Content string         `json:"content"`
}

// Complete marks the quest completed for the user inside tx, creating the
// record when it does not exist yet, and stores the reflections.
func Complete(tx *gorm.DB, userID, questID, reflection string, reflections []ReflectionInput, now time.Time) (*UserQuest, error) {
	existing, err := FindRecord(tx, userID, questID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == StatusCompleted {
		return nil, ErrAlreadyCompleted
	}

	completedAt := now
	uq := existing
	if uq == nil {
		uq = &UserQuest{UserID: userID, QuestID: questID}
	}
	uq.Status = StatusCompleted
	uq.CompletedAt = &completedAt
	uq.Reflection = reflection
	if err := tx.Omit(clause.Associations).Save(uq).Error; err != nil {
		return nil, err
	}

	for _, in := range reflections {
		r := Reflection{UserQuestID: uq.ID, Type: in.Type, Content: in.Content, CreatedAt: now}
		if err := tx.Create(&r).Error; err != nil {
			return nil, err
		}
		uq.Reflections = append(uq.Reflections, r)
	}
	return uq, nil
}

// ReflectionsForUser returns every reflection across the user's records,
// oldest first.
func ReflectionsForUser(db *gorm.DB, userID string) ([]Reflection, error) {
	var out []Reflection
	err := db.Joins("JOIN user_quests ON user_quests.id = reflections.user_quest_id").
		Where("user_quests.user_id = ?", userID).
		Order("reflections.created_at asc").
		Find(&out).Error
	return out, err
}
