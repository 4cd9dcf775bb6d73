package dto

import (
	"github.com/google/uuid"
	"github.com/menubook/menubook-backend/internal/models"
)

// Ingredient and Step are the element shapes of the jsonb lists on a recipe.
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type Step struct {
	Description string `json:"description"`
	Minutes     *int   `json:"minutes,omitempty"`
}

type CreateRecipeRequest struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	Difficulty    string       `json:"difficulty"`
	PrepMinutes   int          `json:"prep_minutes"`
	CookMinutes   int          `json:"cook_minutes"`
	Servings      int          `json:"servings"`
	Ingredients   []Ingredient `json:"ingredients"`
	Steps         []Step       `json:"steps"`
	FamilyGroupID *uuid.UUID   `json:"family_group_id"`
}

type UpdateRecipeRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Category    *string       `json:"category"`
	Difficulty  *string       `json:"difficulty"`
	PrepMinutes *int          `json:"prep_minutes"`
	CookMinutes *int          `json:"cook_minutes"`
	Servings    *int          `json:"servings"`
	Ingredients *[]Ingredient `json:"ingredients"`
	Steps       *[]Step       `json:"steps"`
}

type RecipeListResponse struct {
	Items []models.Recipe `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// RecipeSummary is the projection embedded in menu item responses.
type RecipeSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
}

func SummarizeRecipe(r *models.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Difficulty:  r.Difficulty,
	}
}
