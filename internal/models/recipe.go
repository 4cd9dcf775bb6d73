package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recipe stores the ingredient and step lists as ordered jsonb arrays; the
// element shapes live in the dto package.
type Recipe struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Category      string         `gorm:"size:30;not null;index" json:"category"`
	Difficulty    string         `gorm:"size:20;not null" json:"difficulty"`
	PrepMinutes   int            `gorm:"default:0" json:"prep_minutes"`
	CookMinutes   int            `gorm:"default:0" json:"cook_minutes"`
	Servings      int            `gorm:"default:0" json:"servings"`
	Ingredients   datatypes.JSON `json:"ingredients"`
	Steps         datatypes.JSON `json:"steps"`
	CreatedBy     uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by"`
	FamilyGroupID *uuid.UUID     `gorm:"type:uuid;index" json:"family_group_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

var RecipeCategories = []string{"breakfast", "lunch", "dinner", "dessert", "snack", "other"}
var RecipeDifficulties = []string{"easy", "medium", "hard"}
