package services

import (
	"testing"

	"github.com/menubook/menubook-backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipeValidatesEnums(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	svc := NewRecipeService(db, NewFamilyService(db))

	_, err := svc.Create(user.ID, dto.CreateRecipeRequest{
		Title: "mystery", Category: "midnight", Difficulty: "easy",
	})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = svc.Create(user.ID, dto.CreateRecipeRequest{
		Title: "mystery", Category: "dinner", Difficulty: "impossible",
	})
	assert.ErrorIs(t, err, ErrInvalidDifficulty)

	recipe, err := svc.Create(user.ID, dto.CreateRecipeRequest{
		Title:      "pasta",
		Category:   "dinner",
		Difficulty: "easy",
		Ingredients: []dto.Ingredient{
			{Name: "spaghetti", Amount: 500, Unit: "g"},
			{Name: "tomatoes", Amount: 4, Unit: "pcs"},
		},
		Steps: []dto.Step{{Description: "boil water"}, {Description: "cook"}},
	})
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"name":"spaghetti","amount":500,"unit":"g"},{"name":"tomatoes","amount":4,"unit":"pcs"}]`,
		string(recipe.Ingredients))
}

func TestCreateGroupRecipeRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	member := createTestUser(t, db, "alice")
	outsider := createTestUser(t, db, "mallory")
	group := createTestGroup(t, db, member)
	svc := NewRecipeService(db, NewFamilyService(db))

	_, err := svc.Create(outsider.ID, dto.CreateRecipeRequest{
		Title: "intruder stew", Category: "dinner", Difficulty: "easy",
		FamilyGroupID: &group.ID,
	})
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestRecipeVisibility(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")
	member := createTestUser(t, db, "bob")
	outsider := createTestUser(t, db, "mallory")
	group := createTestGroup(t, db, owner, member)
	svc := NewRecipeService(db, NewFamilyService(db))

	shared := createTestRecipe(t, db, owner, &group.ID, "family roast")
	private := createTestRecipe(t, db, owner, nil, "secret sauce")

	// Group members see group recipes.
	_, err := svc.Get(shared.ID, member.ID)
	assert.NoError(t, err)
	_, err = svc.Get(shared.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrNotMember)

	// Ungrouped recipes are owner-only and read as absent to others.
	_, err = svc.Get(private.ID, owner.ID)
	assert.NoError(t, err)
	_, err = svc.Get(private.ID, member.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestUpdateRecipeOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")
	member := createTestUser(t, db, "bob")
	group := createTestGroup(t, db, owner, member)
	svc := NewRecipeService(db, NewFamilyService(db))

	recipe := createTestRecipe(t, db, owner, &group.ID, "roast")

	title := "slow roast"
	_, err := svc.Update(recipe.ID, member.ID, dto.UpdateRecipeRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotRecipeOwner)

	updated, err := svc.Update(recipe.ID, owner.ID, dto.UpdateRecipeRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "slow roast", updated.Title)

	assert.ErrorIs(t, svc.Delete(recipe.ID, member.ID), ErrNotRecipeOwner)
	require.NoError(t, svc.Delete(recipe.ID, owner.ID))
	_, err = svc.Get(recipe.ID, owner.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestListRecipesScopes(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "alice")
	member := createTestUser(t, db, "bob")
	outsider := createTestUser(t, db, "mallory")
	group := createTestGroup(t, db, owner, member)
	svc := NewRecipeService(db, NewFamilyService(db))

	createTestRecipe(t, db, owner, &group.ID, "group dish")
	createTestRecipe(t, db, owner, nil, "own dish")

	mine, err := svc.List(owner.ID, nil, "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, mine.Total)

	grouped, err := svc.List(member.ID, &group.ID, "", 1, 20)
	require.NoError(t, err)
	require.Len(t, grouped.Items, 1)
	assert.Equal(t, "group dish", grouped.Items[0].Title)

	_, err = svc.List(outsider.ID, &group.ID, "", 1, 20)
	assert.ErrorIs(t, err, ErrNotMember)
}
