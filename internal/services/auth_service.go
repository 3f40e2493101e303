package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/macormexico/sistema-pnc/internal/config"
	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionEnded       = errors.New("session revoked or expired")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
	now func() time.Time
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg, now: time.Now}
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", NormalizeEmail(req.Email)).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.cfg.JWTExpiry),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	token, err := s.generateAccessToken(&user, &session, now)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Success: true,
		User: dto.SessionUser{
			ID:     user.ID,
			Nombre: user.Nombre,
			Email:  user.Email,
			Rol:    user.Rol,
		},
		Token:     token,
		ExpiresAt: session.ExpiresAt.Unix(),
	}, nil
}

// Logout revokes the session behind a token. Revoking twice is not an error.
func (s *AuthService) Logout(sessionID string) error {
	if err := s.db.Model(&models.Session{}).Where("id = ?", sessionID).Update("revoked", true).Error; err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *AuthService) ValidateSession(sessionID string) error {
	var session models.Session
	if err := s.db.First(&session, "id = ?", sessionID).Error; err != nil {
		return ErrSessionEnded
	}
	if !session.Active(s.now()) {
		return ErrSessionEnded
	}
	return nil
}

// RevokeUserSessions ends every session of a user, e.g. after deletion.
func (s *AuthService) RevokeUserSessions(userID string) error {
	return s.db.Model(&models.Session{}).Where("user_id = ?", userID).Update("revoked", true).Error
}

// EnsureAdmin creates the configured administrator when no user exists yet.
func (s *AuthService) EnsureAdmin() error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}
	if s.cfg.AdminPassword == "" {
		slog.Warn("no users and ADMIN_PASSWORD unset; skipping admin seed")
		return nil
	}

	hash, err := HashPassword(s.cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		Nombre:   s.cfg.AdminName,
		Email:    NormalizeEmail(s.cfg.AdminEmail),
		Password: hash,
		Rol:      models.RoleAdmin,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	slog.Info("admin user seeded", "email", admin.Email)
	return nil
}

// PurgeExpiredSessions deletes sessions that can no longer be used.
func (s *AuthService) PurgeExpiredSessions() (int64, error) {
	result := s.db.Where("expires_at < ?", s.now()).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

func (s *AuthService) generateAccessToken(user *models.User, session *models.Session, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":    user.ID,
		"email":  user.Email,
		"nombre": user.Nombre,
		"rol":    user.Rol,
		"jti":    session.ID,
		"iat":    now.Unix(),
		"exp":    session.ExpiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
