package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/menubook/menubook-backend/internal/dto"
	"github.com/menubook/menubook-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound    = errors.New("recipe not found")
	ErrNotRecipeOwner    = errors.New("you do not own this recipe")
	ErrInvalidCategory   = errors.New("invalid recipe category")
	ErrInvalidDifficulty = errors.New("invalid recipe difficulty")
)

type RecipeService struct {
	db       *gorm.DB
	families *FamilyService
}

func NewRecipeService(db *gorm.DB, families *FamilyService) *RecipeService {
	return &RecipeService{db: db, families: families}
}

func (s *RecipeService) Create(userID uuid.UUID, req dto.CreateRecipeRequest) (*models.Recipe, error) {
	if req.Title == "" {
		return nil, errors.New("recipe title is required")
	}
	if !oneOf(models.RecipeCategories, req.Category) {
		return nil, ErrInvalidCategory
	}
	if !oneOf(models.RecipeDifficulties, req.Difficulty) {
		return nil, ErrInvalidDifficulty
	}
	if req.FamilyGroupID != nil {
		if err := s.families.AssertMember(*req.FamilyGroupID, userID); err != nil {
			return nil, err
		}
	}

	ingredients, err := toJSON(req.Ingredients)
	if err != nil {
		return nil, err
	}
	steps, err := toJSON(req.Steps)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Difficulty:    req.Difficulty,
		PrepMinutes:   req.PrepMinutes,
		CookMinutes:   req.CookMinutes,
		Servings:      req.Servings,
		Ingredients:   ingredients,
		Steps:         steps,
		CreatedBy:     userID,
		FamilyGroupID: req.FamilyGroupID,
	}

	if err := s.db.Create(&recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	return &recipe, nil
}

// Get returns a recipe visible to the caller: its owner, or any member of
// the family group it is attached to.
func (s *RecipeService) Get(recipeID, userID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if recipe.CreatedBy == userID {
		return &recipe, nil
	}
	if recipe.FamilyGroupID == nil {
		return nil, ErrRecipeNotFound
	}
	if err := s.families.AssertMember(*recipe.FamilyGroupID, userID); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns group recipes when familyGroupID is set (membership-guarded),
// otherwise the caller's own recipes.
func (s *RecipeService) List(userID uuid.UUID, familyGroupID *uuid.UUID, category string, page, limit int) (*dto.RecipeListResponse, error) {
	q := s.db.Model(&models.Recipe{})
	if familyGroupID != nil {
		if err := s.families.AssertMember(*familyGroupID, userID); err != nil {
			return nil, err
		}
		q = q.Where("family_group_id = ?", *familyGroupID)
	} else {
		q = q.Where("created_by = ?", userID)
	}
	if category != "" {
		if !oneOf(models.RecipeCategories, category) {
			return nil, ErrInvalidCategory
		}
		q = q.Where("category = ?", category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	return &dto.RecipeListResponse{Items: recipes, Total: total, Page: page, Limit: limit}, nil
}

func (s *RecipeService) Update(recipeID, userID uuid.UUID, req dto.UpdateRecipeRequest) (*models.Recipe, error) {
	recipe, err := s.Get(recipeID, userID)
	if err != nil {
		return nil, err
	}
	if recipe.CreatedBy != userID {
		return nil, ErrNotRecipeOwner
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, errors.New("recipe title is required")
		}
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Category != nil {
		if !oneOf(models.RecipeCategories, *req.Category) {
			return nil, ErrInvalidCategory
		}
		recipe.Category = *req.Category
	}
	if req.Difficulty != nil {
		if !oneOf(models.RecipeDifficulties, *req.Difficulty) {
			return nil, ErrInvalidDifficulty
		}
		recipe.Difficulty = *req.Difficulty
	}
	if req.PrepMinutes != nil {
		recipe.PrepMinutes = *req.PrepMinutes
	}
	if req.CookMinutes != nil {
		recipe.CookMinutes = *req.CookMinutes
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.Ingredients != nil {
		ingredients, err := toJSON(*req.Ingredients)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = ingredients
	}
	if req.Steps != nil {
		steps, err := toJSON(*req.Steps)
		if err != nil {
			return nil, err
		}
		recipe.Steps = steps
	}

	if err := s.db.Save(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) Delete(recipeID, userID uuid.UUID) error {
	recipe, err := s.Get(recipeID, userID)
	if err != nil {
		return err
	}
	if recipe.CreatedBy != userID {
		return ErrNotRecipeOwner
	}
	return s.db.Delete(recipe).Error
}

func toJSON(v interface{}) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json column: %w", err)
	}
	return datatypes.JSON(b), nil
}
