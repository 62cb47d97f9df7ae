package models

import "time"

// DefaultIngredientUnit is stored when an ingredient is created without a unit.
const DefaultIngredientUnit = "unit"

// Ingredient is shared between recipes. Names are unique as stored (case-sensitive).
type Ingredient struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(100);not null"`
	Unit      string    `json:"unit" gorm:"type:varchar(20);not null;default:unit"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
