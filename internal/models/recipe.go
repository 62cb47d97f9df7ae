package models

import "time"

// Difficulty is the effort level of a recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Recipe is the aggregate root of the core. AverageRating is derived on every read.
type Recipe struct {
	ID           string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title        string     `json:"title" gorm:"type:varchar(200);not null"`
	Description  string     `json:"description,omitempty" gorm:"type:text"`
	Instructions string     `json:"instructions" gorm:"type:text;not null"`
	PrepTime     int        `json:"prepTime" gorm:"not null"`
	CookTime     int        `json:"cookTime" gorm:"not null"`
	Servings     int        `json:"servings" gorm:"not null"`
	Difficulty   Difficulty `json:"difficulty" gorm:"type:varchar(10);not null;default:Medium"`
	AuthorID     string     `json:"authorId" gorm:"type:varchar(36);not null;index"`
	CategoryID   string     `json:"categoryId" gorm:"type:varchar(36);not null;index"`

	Author      *User              `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Category    *Category          `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Ingredients []RecipeIngredient `json:"ingredients" gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Ratings     []Rating           `json:"ratings" gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	AverageRating float64 `json:"averageRating" gorm:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerID implements Owned.
func (r *Recipe) OwnerID() string { return r.AuthorID }

// RecipeIngredient links a recipe to an ingredient with a quantity.
// The pair is the identity; a recipe references an ingredient at most once.
type RecipeIngredient struct {
	RecipeID     string      `json:"-" gorm:"primaryKey;type:varchar(36)"`
	IngredientID string      `json:"ingredientId" gorm:"primaryKey;type:varchar(36)"`
	Quantity     float64     `json:"quantity" gorm:"type:decimal(10,2);not null;default:1"`
	Ingredient   *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// Owned is anything with a single owning user.
type Owned interface {
	OwnerID() string
}
