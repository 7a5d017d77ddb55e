package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pricing units for extras and cost parameters.
const (
	UnidadPieza      = "pieza"
	UnidadCmCuadrado = "cm_cuadrado"
)

// Extra is an add-on service priced into a sale line (vinyl, DTF print, etc.).
type Extra struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string          `gorm:"not null"`
	Unidad    string          `gorm:"type:varchar(20);not null"`
	Monto     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Extra) TableName() string { return "extras" }

// CostoElaboracion is a production-cost parameter used to price area-based
// extras, e.g. $250 per meter of DTF on a 58cm-wide plate.
type CostoElaboracion struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	Descripcion  *string
	Unidad       string           `gorm:"type:varchar(20);not null"`
	Costo        decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	AnchoPlancha *decimal.Decimal `gorm:"type:decimal(8,2)"`
	LargoPlancha *decimal.Decimal `gorm:"type:decimal(8,2)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Subcategorias []Subcategoria `gorm:"many2many:costos_subcategorias"`
}

func (CostoElaboracion) TableName() string { return "costos_elaboracion" }
