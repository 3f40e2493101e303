package dae

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/models"
	"github.com/macormexico/sistema-pnc/internal/services"
	"gorm.io/gorm"
)

var (
	ErrCatalogNotFound = errors.New("catalog item not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrValidation      = errors.New("validation failed")
	ErrLastAdmin       = errors.New("cannot remove the last administrator")
)

// CatalogService manages the catalog items.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// List returns the items of a category, or every item when categoria is empty,
// ordered by category and then by creation.
func (s *CatalogService) List(categoria string) ([]CatalogItem, error) {
	q := s.db.Order("categoria ASC").Order("created_at ASC")
	if categoria = strings.TrimSpace(categoria); categoria != "" {
		q = q.Where("categoria = ?", categoria)
	}

	var items []CatalogItem
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Create(req CatalogRequest) (*CatalogItem, error) {
	item := CatalogItem{
		Categoria: strings.TrimSpace(req.Categoria),
		Valor:     strings.TrimSpace(req.Valor),
	}
	if item.Categoria == "" || item.Valor == "" {
		return nil, fmt.Errorf("%w: categoria and valor are required", ErrValidation)
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create catalog item: %w", err)
	}
	return &item, nil
}

func (s *CatalogService) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&CatalogItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete catalog item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCatalogNotFound
	}
	return nil
}

// SessionRevoker ends the sessions of a user.
type SessionRevoker interface {
	RevokeUserSessions(userID string) error
}

// UserService manages dashboard accounts.
type UserService struct {
	db       *gorm.DB
	sessions SessionRevoker
}

func NewUserService(db *gorm.DB, sessions SessionRevoker) *UserService {
	return &UserService{db: db, sessions: sessions}
}

// List returns every user, oldest first. Password hashes are never serialized.
func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func normalizeRole(rol string) (string, error) {
	rol = strings.ToLower(strings.TrimSpace(rol))
	if rol == "" {
		return models.RoleUsuario, nil
	}
	if !models.ValidRole(rol) {
		return "", fmt.Errorf("%w: unknown rol %q", ErrValidation, rol)
	}
	return rol, nil
}

func (s *UserService) emailTaken(email, exceptID string) (bool, error) {
	var count int64
	q := s.db.Model(&models.User{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (s *UserService) Create(req dto.CreateUserRequest) (*models.User, error) {
	email := services.NormalizeEmail(req.Email)
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: nombre, email and password are required", ErrValidation)
	}
	rol, err := normalizeRole(req.Rol)
	if err != nil {
		return nil, err
	}

	taken, err := s.emailTaken(email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Nombre:   nombre,
		Email:    email,
		Password: hash,
		Rol:      rol,
		Telefono: strings.TrimSpace(req.Telefono),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Update replaces the profile of a user. An empty password keeps the current
// hash; a new password ends every open session of the user.
func (s *UserService) Update(id string, req dto.UpdateUserRequest) (*models.User, error) {
	email := services.NormalizeEmail(req.Email)
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" || email == "" {
		return nil, fmt.Errorf("%w: nombre and email are required", ErrValidation)
	}
	rol, err := normalizeRole(req.Rol)
	if err != nil {
		return nil, err
	}

	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	taken, err := s.emailTaken(email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	if user.Rol == models.RoleAdmin && rol != models.RoleAdmin {
		if err := s.ensureOtherAdmin(id); err != nil {
			return nil, err
		}
	}

	user.Nombre = nombre
	user.Email = email
	user.Rol = rol
	user.Telefono = strings.TrimSpace(req.Telefono)

	passwordChanged := req.Password != ""
	if passwordChanged {
		hash, err := services.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if passwordChanged {
		s.revoke(id)
	}
	return user, nil
}

func (s *UserService) Delete(id string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if user.Rol == models.RoleAdmin {
		if err := s.ensureOtherAdmin(id); err != nil {
			return err
		}
	}

	if err := s.db.Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.revoke(id)
	return nil
}

func (s *UserService) ensureOtherAdmin(id string) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("rol = ? AND id <> ?", models.RoleAdmin, id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count == 0 {
		return ErrLastAdmin
	}
	return nil
}

func (s *UserService) revoke(id string) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.RevokeUserSessions(id); err != nil {
		slog.Warn("failed to revoke user sessions", "user_id", id, "error", err)
	}
}
