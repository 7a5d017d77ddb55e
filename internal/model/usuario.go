package model

import (
	"time"

	"github.com/google/uuid"
)

// Closed role set. Authorization decisions go through the permission table in
// the middleware package, never through ad-hoc string comparison.
const (
	RolVendedor = "vendedor"
	RolGerente  = "gerente"
	RolAdmin    = "admin"
)

// RolValido reports membership in the closed role set.
func RolValido(rol string) bool {
	switch rol {
	case RolVendedor, RolGerente, RolAdmin:
		return true
	}
	return false
}

// Usuario stores system users.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	Correo       string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Rol          string    `gorm:"type:varchar(20);not null;default:'vendedor'"`
	UltimoAcceso time.Time
	Activo       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
