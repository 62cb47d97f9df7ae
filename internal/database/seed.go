package database

import (
	"context"
	_ "embed"
	"fmt"

	"cookbook/internal/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedData is the document format of seed files.
type SeedData struct {
	Categories []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"categories"`
	Ingredients []struct {
		Name string `yaml:"name"`
		Unit string `yaml:"unit"`
	} `yaml:"ingredients"`
}

// SeedResult counts the rows inserted by Seed.
type SeedResult struct {
	Categories  int
	Ingredients int
}

// ParseSeed decodes a seed document. An empty document selects the embedded demo data.
func ParseSeed(raw []byte) (*SeedData, error) {
	if len(raw) == 0 {
		raw = defaultSeed
	}
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &data, nil
}

// Seed inserts the categories and ingredients that do not exist yet, matching by name.
func Seed(ctx context.Context, db *gorm.DB, data *SeedData) (SeedResult, error) {
	var res SeedResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range data.Categories {
			var existing []models.Category
			if err := tx.Where("name = ?", c.Name).Limit(1).Find(&existing).Error; err != nil {
				return fmt.Errorf("failed to look up category %s: %w", c.Name, err)
			}
			if len(existing) > 0 {
				continue
			}
			cat := models.Category{ID: uuid.New().String(), Name: c.Name, Description: c.Description}
			if err := tx.Create(&cat).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
			}
			res.Categories++
		}
		for _, i := range data.Ingredients {
			unit := i.Unit
			if unit == "" {
				unit = models.DefaultIngredientUnit
			}
			var existing []models.Ingredient
			if err := tx.Where("name = ?", i.Name).Limit(1).Find(&existing).Error; err != nil {
				return fmt.Errorf("failed to look up ingredient %s: %w", i.Name, err)
			}
			if len(existing) > 0 {
				continue
			}
			ing := models.Ingredient{ID: uuid.New().String(), Name: i.Name, Unit: unit}
			if err := tx.Create(&ing).Error; err != nil {
				return fmt.Errorf("failed to seed ingredient %s: %w", i.Name, err)
			}
			res.Ingredients++
		}
		return nil
	})
	return res, err
}
