package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria classifies products at the top level: "Ropa", "Artículos".
type Categoria struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Subcategorias []Subcategoria `gorm:"foreignKey:CategoriaID;constraint:OnDelete:CASCADE"`
}

func (Categoria) TableName() string { return "categorias" }

// Subcategoria refines a category: "Playeras", "Tazas". UsaTallas decides
// whether products underneath stock at the Talla level or at the Color level.
type Subcategoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoriaID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre      string    `gorm:"not null"`
	UsaTallas   bool      `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Subcategoria) TableName() string { return "subcategorias" }
