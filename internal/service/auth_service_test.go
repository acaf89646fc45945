package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/config"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

func newAuthFixture(t *testing.T) (*authService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)

	cfg := config.Config{
		JWTSecret:        "access-secret",
		JWTRefreshSecret: "refresh-secret",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  24 * time.Hour,
	}

	svc := NewAuthService(repository.NewUserRepository(db), newTestValidator(), cfg, testLogger()).(*authService)
	return svc, db
}

func TestLoginHappyPath(t *testing.T) {
	svc, db := newAuthFixture(t)
	user := seedTeacher(t, db, "login@school.test")

	pair, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    user.Email,
		Password: "secret123",
		Role:     models.RoleTeacher,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, pair.RefreshToken, reloaded.RefreshToken)
	assert.NotNil(t, reloaded.LastLogin)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, db := newAuthFixture(t)
	user := seedTeacher(t, db, "badpass@school.test")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
		Role:     models.RoleTeacher,
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@school.test",
		Password: "secret123",
		Role:     models.RoleTeacher,
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUngrantedRole(t *testing.T) {
	svc, db := newAuthFixture(t)
	user := seedTeacher(t, db, "norole@school.test")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    user.Email,
		Password: "secret123",
		Role:     models.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrRoleNotGranted)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, db := newAuthFixture(t)
	user := seedTeacher(t, db, "rotate@school.test")

	loginAt := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return loginAt }

	pair, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    user.Email,
		Password: "secret123",
		Role:     models.RoleTeacher,
	})
	require.NoError(t, err)

	svc.now = func() time.Time { return loginAt.Add(time.Minute) }
	rotated, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The old token was replaced, so a replay fails.
	_, err = svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshRejectsGarbageAndExpiredTokens(t *testing.T) {
	svc, db := newAuthFixture(t)
	user := seedTeacher(t, db, "expired@school.test")

	_, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	loginAt := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return loginAt }
	pair, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    user.Email,
		Password: "secret123",
		Role:     models.RoleTeacher,
	})
	require.NoError(t, err)

	svc.now = func() time.Time { return loginAt.Add(25 * time.Hour) }
	_, err = svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogoutClearsRefreshTokenAndIsIdempotent(t *testing.T) {
	svc, db := newAuthFixture(t)
	user := seedTeacher(t, db, "logout@school.test")

	pair, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    user.Email,
		Password: "secret123",
		Role:     models.RoleTeacher,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), pair.RefreshToken))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Empty(t, reloaded.RefreshToken)

	// Unknown or already-cleared tokens are not an error.
	assert.NoError(t, svc.Logout(context.Background(), pair.RefreshToken))
	assert.NoError(t, svc.Logout(context.Background(), ""))
}
