package dae

import (
	"time"

	"github.com/google/uuid"
	"github.com/macormexico/sistema-pnc/internal/models"
	"gorm.io/gorm"
)

// Catalog categories the dashboard manages. Other categories are accepted.
const (
	CategoriaDefecto    = "defecto"
	CategoriaArea       = "area"
	CategoriaInspector  = "inspector"
	CategoriaSupervisor = "supervisor"
	CategoriaOperador   = "operador"
	CategoriaAuditor    = "auditor"
)

// Categorias lists the known categories in screen order.
var Categorias = []string{
	CategoriaDefecto,
	CategoriaArea,
	CategoriaInspector,
	CategoriaSupervisor,
	CategoriaOperador,
	CategoriaAuditor,
}

// CatalogItem is one selectable value of an admin-managed enumeration.
type CatalogItem struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Categoria string    `gorm:"size:50;not null;index" json:"categoria"`
	Valor     string    `gorm:"size:255;not null" json:"valor"`
	CreatedAt time.Time `json:"createdAt"`
}

func (CatalogItem) TableName() string {
	return "dae_catalogs"
}

func (i *CatalogItem) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

type CatalogRequest struct {
	Categoria string `json:"categoria"`
	Valor     string `json:"valor"`
}

type CatalogListResponse struct {
	Success  bool          `json:"success"`
	Catalogs []CatalogItem `json:"catalogs"`
}

type CatalogResponse struct {
	Success bool         `json:"success"`
	Catalog *CatalogItem `json:"catalog"`
}

type UserListResponse struct {
	Success bool          `json:"success"`
	Users   []models.User `json:"users"`
}

type UserResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}
