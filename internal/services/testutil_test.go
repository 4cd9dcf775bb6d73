package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/menubook/menubook-backend/internal/config"
	"github.com/menubook/menubook-backend/internal/dto"
	"github.com/menubook/menubook-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

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

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Username: username,
		Name:     username,
		Password: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createTestGroup creates a family group with the given users as members;
// the first user is the admin.
func createTestGroup(t *testing.T, db *gorm.DB, users ...*models.User) *models.FamilyGroup {
	t.Helper()
	group := models.FamilyGroup{
		ID:         uuid.New(),
		Name:       "test family",
		InviteCode: uuid.New().String()[:8],
	}
	require.NoError(t, db.Create(&group).Error)

	for i, u := range users {
		role := models.RoleMember
		if i == 0 {
			role = models.RoleAdmin
		}
		member := models.FamilyMember{
			ID:            uuid.New(),
			UserID:        u.ID,
			FamilyGroupID: group.ID,
			Role:          role,
		}
		require.NoError(t, db.Create(&member).Error)
	}
	return &group
}

func createTestRecipe(t *testing.T, db *gorm.DB, owner *models.User, groupID *uuid.UUID, title string) *models.Recipe {
	t.Helper()
	recipe := models.Recipe{
		ID:            uuid.New(),
		Title:         title,
		Category:      "dinner",
		Difficulty:    "easy",
		CreatedBy:     owner.ID,
		FamilyGroupID: groupID,
	}
	require.NoError(t, db.Create(&recipe).Error)
	return &recipe
}

func createTestMenu(t *testing.T, svc *MenuService, creator *models.User, groupID uuid.UUID, start, end string) *models.Menu {
	t.Helper()
	menu, err := svc.Create(creator.ID, dto.CreateMenuRequest{
		Name:          "week plan",
		StartDate:     start,
		EndDate:       end,
		FamilyGroupID: groupID,
	})
	require.NoError(t, err)
	return menu
}
