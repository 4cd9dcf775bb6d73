package services

import (
	"testing"

	"github.com/menubook/menubook-backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Username: "alice", Name: "Alice", Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice", resp.User.Username)

	// Duplicate usernames conflict.
	_, err = svc.Register(&dto.RegisterRequest{
		Username: "alice", Name: "Imposter", Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	login, err := svc.Login(&dto.LoginRequest{Username: "alice", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(&dto.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(&dto.LoginRequest{Username: "nobody", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidatesInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Username: "al", Password: "longenough"})
	assert.Error(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Username: "alice", Password: "short"})
	assert.Error(t, err)
}

func TestRefreshRotatesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Username: "alice", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// The old token is revoked by rotation.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Username: "alice", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
