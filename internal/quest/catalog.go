package quest

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed catalog.yaml
var catalogYAML []byte

// RewardSpec is a reward entry from the catalog file.
type RewardSpec struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Cost        int    `yaml:"cost"`
	Type        string `yaml:"type"`
}

type questSpec struct {
	ID           string       `yaml:"id"`
	Title        string       `yaml:"title"`
	Description  string       `yaml:"description"`
	Category     Category     `yaml:"category"`
	Difficulty   int          `yaml:"difficulty"`
	Points       int          `yaml:"points"`
	Requirements Requirements `yaml:"requirements"`
}

// Catalog is the starter content shipped with the binary.
type Catalog struct {
	Quests  []Quest
	Rewards []RewardSpec
}

// LoadCatalog parses the embedded catalog.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog parses a catalog document and validates every quest in it.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var doc struct {
		Quests  []questSpec  `yaml:"quests"`
		Rewards []RewardSpec `yaml:"rewards"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	cat := &Catalog{Rewards: doc.Rewards}
	seen := make(map[string]bool, len(doc.Quests))
	for _, s := range doc.Quests {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: catalog entry %q has no id", ErrInvalidQuest, s.Title)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("%w: duplicate catalog id %s", ErrInvalidQuest, s.ID)
		}
		seen[s.ID] = true
		q := Quest{
			ID:           s.ID,
			Title:        s.Title,
			Description:  s.Description,
			Category:     s.Category,
			Difficulty:   s.Difficulty,
			Points:       s.Points,
			Requirements: datatypes.NewJSONType(s.Requirements),
			IsActive:     true,
		}
		if err := q.Validate(); err != nil {
			return nil, err
		}
		cat.Quests = append(cat.Quests, q)
	}
	return cat, nil
}

// SeedQuests upserts the catalog quests by ID.
func SeedQuests(db *gorm.DB, quests []Quest) error {
	if len(quests) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "description", "category", "difficulty", "points", "requirements", "is_active"}),
	}).Create(&quests).Error
}
