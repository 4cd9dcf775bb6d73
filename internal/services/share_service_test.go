package services

import (
	"testing"
	"time"

	"github.com/menubook/menubook-backend/internal/dto"
	"github.com/menubook/menubook-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShareLinkHasNoToken(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	group := createTestGroup(t, db, user)
	families := NewFamilyService(db)
	menus := NewMenuService(db, families)
	shares := NewShareService(db, families, menus)
	menu := createTestMenu(t, menus, user, group.ID, "2024-01-01", "2024-01-07")

	share, err := shares.Create(menu.ID, user.ID, dto.CreateShareRequest{ShareType: "link"})
	require.NoError(t, err)
	assert.Nil(t, share.Token)

	tokenShare, err := shares.Create(menu.ID, user.ID, dto.CreateShareRequest{ShareType: "token"})
	require.NoError(t, err)
	require.NotNil(t, tokenShare.Token)
	assert.NotEmpty(t, *tokenShare.Token)

	_, err = shares.Create(menu.ID, user.ID, dto.CreateShareRequest{ShareType: "carrier-pigeon"})
	assert.ErrorIs(t, err, ErrInvalidShareType)
}

func TestCreateShareRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	outsider := createTestUser(t, db, "mallory")
	group := createTestGroup(t, db, user)
	families := NewFamilyService(db)
	menus := NewMenuService(db, families)
	shares := NewShareService(db, families, menus)
	menu := createTestMenu(t, menus, user, group.ID, "2024-01-01", "2024-01-07")

	_, err := shares.Create(menu.ID, outsider.ID, dto.CreateShareRequest{ShareType: "link"})
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestRedeemLinkShareNeedsNoMembership(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	group := createTestGroup(t, db, user)
	families := NewFamilyService(db)
	menus := NewMenuService(db, families)
	shares := NewShareService(db, families, menus)
	menu := createTestMenu(t, menus, user, group.ID, "2024-01-01", "2024-01-07")

	share, err := shares.Create(menu.ID, user.ID, dto.CreateShareRequest{ShareType: "link"})
	require.NoError(t, err)

	// No user identity at all: the share is the authorization.
	resp, err := shares.Redeem(share.ID, "")
	require.NoError(t, err)
	assert.Equal(t, menu.ID, resp.Menu.ID)
}

func TestRedeemTokenShareMatchesExactly(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	group := createTestGroup(t, db, user)
	families := NewFamilyService(db)
	menus := NewMenuService(db, families)
	shares := NewShareService(db, families, menus)
	menu := createTestMenu(t, menus, user, group.ID, "2024-01-01", "2024-01-07")

	share, err := shares.Create(menu.ID, user.ID, dto.CreateShareRequest{ShareType: "token"})
	require.NoError(t, err)

	_, err = shares.Redeem(share.ID, "")
	assert.ErrorIs(t, err, ErrShareTokenInvalid)

	_, err = shares.Redeem(share.ID, "wrong-token")
	assert.ErrorIs(t, err, ErrShareTokenInvalid)

	resp, err := shares.Redeem(share.ID, *share.Token)
	require.NoError(t, err)
	assert.Equal(t, menu.ID, resp.Menu.ID)
}

func TestRedeemExpiredShareRejectsEvenWithCorrectToken(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	group := createTestGroup(t, db, user)
	families := NewFamilyService(db)
	menus := NewMenuService(db, families)
	shares := NewShareService(db, families, menus)
	menu := createTestMenu(t, menus, user, group.ID, "2024-01-01", "2024-01-07")

	share, err := shares.Create(menu.ID, user.ID, dto.CreateShareRequest{ShareType: "token"})
	require.NoError(t, err)

	// Backdate the expiry under the service.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.MenuShare{}).Where("id = ?", share.ID).Update("expires_at", past).Error)

	_, err = shares.Redeem(share.ID, *share.Token)
	assert.ErrorIs(t, err, ErrShareExpired)
}

func TestShareCreateRejectsPastExpiry(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	group := createTestGroup(t, db, user)
	families := NewFamilyService(db)
	menus := NewMenuService(db, families)
	shares := NewShareService(db, families, menus)
	menu := createTestMenu(t, menus, user, group.ID, "2024-01-01", "2024-01-07")

	past := time.Now().Add(-time.Minute)
	_, err := shares.Create(menu.ID, user.ID, dto.CreateShareRequest{ShareType: "link", ExpiresAt: &past})
	assert.Error(t, err)
}

func TestListAndDeleteSharesAreMemberOnly(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	outsider := createTestUser(t, db, "mallory")
	group := createTestGroup(t, db, user)
	families := NewFamilyService(db)
	menus := NewMenuService(db, families)
	shares := NewShareService(db, families, menus)
	menu := createTestMenu(t, menus, user, group.ID, "2024-01-01", "2024-01-07")

	share, err := shares.Create(menu.ID, user.ID, dto.CreateShareRequest{ShareType: "link"})
	require.NoError(t, err)

	_, err = shares.List(menu.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrNotMember)

	listed, err := shares.List(menu.ID, user.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	assert.ErrorIs(t, shares.Delete(share.ID, outsider.ID), ErrNotMember)
	require.NoError(t, shares.Delete(share.ID, user.ID))

	_, err = shares.Redeem(share.ID, "")
	assert.ErrorIs(t, err, ErrShareNotFound)
}
