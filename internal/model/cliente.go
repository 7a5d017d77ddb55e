package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente holds the buyer. Compras counts delivered sales and is mutated only
// by the sale state machine, inside the same transaction as the stock effects.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Compras   int       `gorm:"not null;default:0"`
	Correo    *string   `gorm:"uniqueIndex"`
	Telefono  string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
