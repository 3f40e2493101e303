package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/macormexico/sistema-pnc/internal/config"
	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/models"
	"github.com/macormexico/sistema-pnc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		AdminName:     "Administrador DAE",
		AdminEmail:    "Admin@DAE.com",
		AdminPassword: "dae123",
	}
}

func TestEnsureAdminSeedsOnce(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAuthService(db, testConfig())

	require.NoError(t, svc.EnsureAdmin())
	require.NoError(t, svc.EnsureAdmin())

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@dae.com", users[0].Email)
	assert.Equal(t, models.RoleAdmin, users[0].Rol)
}

func TestEnsureAdminWithoutPasswordSkips(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := testConfig()
	cfg.AdminPassword = ""
	require.NoError(t, NewAuthService(db, cfg).EnsureAdmin())

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoginIssuesTokenWithSession(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)
	require.NoError(t, svc.EnsureAdmin())

	resp, err := svc.Login(&dto.LoginRequest{Email: " ADMIN@dae.com ", Password: "dae123"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Administrador DAE", resp.User.Nombre)
	assert.Equal(t, "admin", resp.User.Rol)

	parsed, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) { return []byte(cfg.JWTSecret), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	jti, _ := claims["jti"].(string)
	require.NotEmpty(t, jti)
	assert.Equal(t, "admin@dae.com", claims["email"])

	require.NoError(t, svc.ValidateSession(jti))
	require.NoError(t, svc.Logout(jti))
	assert.ErrorIs(t, svc.ValidateSession(jti), ErrSessionEnded)
	assert.ErrorIs(t, svc.ValidateSession("unknown"), ErrSessionEnded)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAuthService(db, testConfig())
	require.NoError(t, svc.EnsureAdmin())

	_, err := svc.Login(&dto.LoginRequest{Email: "admin@dae.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@dae.com", Password: "dae123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestExpiredSessionsAreRejectedAndPurged(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAuthService(db, testConfig())
	require.NoError(t, db.Create(&models.Session{ID: "old", UserID: "u1", ExpiresAt: time.Now().Add(-time.Minute)}).Error)

	assert.ErrorIs(t, svc.ValidateSession("old"), ErrSessionEnded)

	n, err := svc.PurgeExpiredSessions()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
