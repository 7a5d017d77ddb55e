package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement directions.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
)

// Movement motives.
const (
	MotivoCompra     = "compra"
	MotivoVenta      = "venta"
	MotivoAjuste     = "ajuste"
	MotivoDevolucion = "devolucion"
	MotivoPerdida    = "perdida"
)

// Reference kinds for movements tied to another aggregate.
const ReferenciaVenta = "venta"

// MovimientoInventario is the append-only stock ledger. An entry records the
// full leaf path so it survives catalog edits. Entries are only ever created,
// relabeled in place (motivo venta → perdida on a return) or deleted when a
// sale transition is reversed.
type MovimientoInventario struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID  `gorm:"type:uuid;not null;index"`
	VarianteID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CalidadID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ColorID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	TallaID    *uuid.UUID `gorm:"type:uuid;index"`
	// ProductoInfo is a human-readable snapshot of the leaf path:
	// "Playera Manga Corta / Unisex / Estándar / Negro / M".
	ProductoInfo   string `gorm:"not null"`
	Tipo           string `gorm:"type:varchar(10);not null"`
	Cantidad       int    `gorm:"not null"`
	Motivo         string `gorm:"type:varchar(20);not null;index"`
	ReferenciaTipo *string
	ReferenciaID   *uuid.UUID `gorm:"type:uuid;index"`
	UsuarioID      uuid.UUID  `gorm:"type:uuid;not null"`
	Comentarios    *string
	CreatedAt      time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (MovimientoInventario) TableName() string { return "movimientos_inventario" }
