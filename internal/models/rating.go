package models

import "time"

// Rating is one user's score for one recipe; (UserID, RecipeID) is unique.
type Rating struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Score     int       `json:"score" gorm:"not null"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_ratings_user_recipe,priority:1"`
	RecipeID  string    `json:"recipeId" gorm:"type:varchar(36);not null;uniqueIndex:idx_ratings_user_recipe,priority:2;index"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerID implements Owned.
func (r *Rating) OwnerID() string { return r.UserID }
