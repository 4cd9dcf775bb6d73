package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/menubook/menubook-backend/internal/config"
	"github.com/menubook/menubook-backend/internal/handlers"
	"github.com/menubook/menubook-backend/internal/models"
	"github.com/menubook/menubook-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.FamilyGroup{},
		&models.FamilyMember{},
		&models.Recipe{},
		&models.Menu{},
		&models.MenuItem{},
		&models.MenuShare{},
	))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}

	authService := services.NewAuthService(db, cfg)
	familyService := services.NewFamilyService(db)
	recipeService := services.NewRecipeService(db, familyService)
	menuService := services.NewMenuService(db, familyService)
	menuItemService := services.NewMenuItemService(db, familyService)
	shareService := services.NewShareService(db, familyService, menuService)

	app := fiber.New()
	Setup(app, cfg,
		handlers.NewAuthHandler(authService),
		handlers.NewHealthHandler(),
		handlers.NewFamilyHandler(familyService),
		handlers.NewRecipeHandler(recipeService),
		handlers.NewMenuHandler(menuService),
		handlers.NewMenuItemHandler(menuItemService),
		handlers.NewShareHandler(shareService),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func registerUser(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"username": username,
		"name":     username,
		"password": "hunter2hunter2",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, "GET", "/api/menus?familyGroupId=x", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/families", "", map[string]string{"name": "x"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMenuLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "alice")

	resp, family := doJSON(t, app, "POST", "/api/families", token, map[string]string{"name": "smiths"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	groupID := family["id"].(string)

	// Inverted date range is rejected up front.
	resp, _ = doJSON(t, app, "POST", "/api/menus", token, map[string]interface{}{
		"name": "bad", "start_date": "2024-01-07", "end_date": "2024-01-01",
		"family_group_id": groupID,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, menu := doJSON(t, app, "POST", "/api/menus", token, map[string]interface{}{
		"name": "week one", "start_date": "2024-01-01", "end_date": "2024-01-07",
		"family_group_id": groupID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	menuID := menu["id"].(string)
	assert.Equal(t, "draft", menu["status"])

	resp, recipe := doJSON(t, app, "POST", "/api/recipes", token, map[string]interface{}{
		"title": "lasagna", "category": "dinner", "difficulty": "medium",
		"family_group_id": groupID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	recipeID := recipe["id"].(string)

	resp, _ = doJSON(t, app, "POST", "/api/menus/"+menuID+"/items", token, map[string]interface{}{
		"recipe_id": recipeID, "date": "2024-01-10", "meal_time": "dinner",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, item := doJSON(t, app, "POST", "/api/menus/"+menuID+"/items", token, map[string]interface{}{
		"recipe_id": recipeID, "date": "2024-01-03", "meal_time": "dinner",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	itemRecipe := item["recipe"].(map[string]interface{})
	assert.Equal(t, "lasagna", itemRecipe["title"])

	// A second user outside the family is forbidden.
	otherToken := registerUser(t, app, "mallory")
	resp, _ = doJSON(t, app, "GET", "/api/menus/"+menuID, otherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestShareRedemptionOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "alice")

	_, family := doJSON(t, app, "POST", "/api/families", token, map[string]string{"name": "smiths"})
	groupID := family["id"].(string)

	_, menu := doJSON(t, app, "POST", "/api/menus", token, map[string]interface{}{
		"name": "week", "start_date": "2024-01-01", "end_date": "2024-01-07",
		"family_group_id": groupID,
	})
	menuID := menu["id"].(string)

	resp, share := doJSON(t, app, "POST", "/api/menus/"+menuID+"/share", token, map[string]string{
		"share_type": "token",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	shareID := share["id"].(string)
	shareToken := share["token"].(string)

	// Public redemption: no bearer token at all.
	resp, _ = doJSON(t, app, "GET", "/api/share/"+shareID, "", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/api/share/"+shareID+"?token=wrong", "", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, redeemed := doJSON(t, app, "GET", fmt.Sprintf("/api/share/%s?token=%s", shareID, shareToken), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	redeemedMenu := redeemed["menu"].(map[string]interface{})
	assert.Equal(t, menuID, redeemedMenu["id"])
}
