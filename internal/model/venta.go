package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale states. Liquidado is NOT a state: it is a flag a sale in EstadoEntregado
// or EstadoDevuelto acquires when its balance reaches zero.
const (
	EstadoPendiente  = "pendiente"
	EstadoConfirmado = "confirmado"
	EstadoPreparado  = "preparado"
	EstadoEntregado  = "entregado"
	EstadoDevuelto   = "devuelto"
)

// Payment methods.
const (
	MetodoEfectivo      = "efectivo"
	MetodoTarjeta       = "tarjeta"
	MetodoTransferencia = "transferencia"
)

// Descuento is a discount snapshot, embedded at the sale and item level.
// Tipo: "cantidad" (fixed amount) | "porcentaje".
type Descuento struct {
	Razon *string          `json:"razon,omitempty"`
	Tipo  *string          `json:"tipo,omitempty"`
	Valor *decimal.Decimal `json:"valor,omitempty" gorm:"type:decimal(12,2)"`
}

// Aplicado reports whether the discount carries a value.
func (d Descuento) Aplicado() bool { return d.Valor != nil }

// Venta is the aggregate the state machine operates on. Invariants:
// Restante = Total − Σ Pagos.Monto, never negative; Liquidado ⇔ Restante == 0.
type Venta struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendedorID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	SubTotal           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Restante           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado             string          `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	Liquidado          bool            `gorm:"not null;default:false"`
	FechaLiquidacion   *time.Time
	VentaEnLinea       bool       `gorm:"not null;default:false"`
	DescuentoGlobal    Descuento  `gorm:"embedded;embeddedPrefix:descuento_"`
	OrigenCotizacionID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time

	Productos []VentaItem `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
	Pagos     []Pago      `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
	Cliente   *Cliente    `gorm:"foreignKey:ClienteID"`
	Vendedor  *Usuario    `gorm:"foreignKey:VendedorID"`
}

func (Venta) TableName() string { return "ventas" }

// EsTerminal reports whether the sale sits in a state with stock effects applied.
func (v *Venta) EsTerminal() bool {
	return v.Estado == EstadoEntregado || v.Estado == EstadoDevuelto
}

// VentaItem is an immutable priced snapshot of one catalog leaf (or a temporal,
// catalog-less line). Names and ids are frozen at sale time; later catalog edits
// never touch recorded sales.
type VentaItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID uuid.UUID `gorm:"type:uuid;not null;index"`

	EsTemporal          bool       `gorm:"not null;default:false"`
	ProductoRefID       *uuid.UUID `gorm:"type:uuid;index"`
	ProductoNombre      string     `gorm:"not null"`
	ProductoDescripcion string

	VarianteID     *uuid.UUID `gorm:"type:uuid"`
	VarianteNombre *string
	CalidadID      *uuid.UUID `gorm:"type:uuid"`
	CalidadNombre  *string
	ColorID        *uuid.UUID `gorm:"type:uuid"`
	ColorNombre    *string
	TallaID        *uuid.UUID `gorm:"type:uuid"`
	TallaNombre    *string

	Cantidad    int             `gorm:"not null"`
	PrecioBase  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioFinal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuento   Descuento       `gorm:"embedded;embeddedPrefix:descuento_"`

	Extras []VentaItemExtra `gorm:"foreignKey:VentaItemID;constraint:OnDelete:CASCADE"`
}

func (VentaItem) TableName() string { return "venta_items" }

// VentaItemExtra is the frozen snapshot of an add-on service priced into a line.
type VentaItemExtra struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaItemID uuid.UUID  `gorm:"type:uuid;not null;index"`
	EsTemporal  bool       `gorm:"not null;default:false"`
	ExtraRefID  *uuid.UUID `gorm:"type:uuid"`
	Nombre      string     `gorm:"not null"`
	// Unidad: "pieza" | "cm_cuadrado"
	Unidad  string           `gorm:"type:varchar(20);not null"`
	Monto   decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	AnchoCm *decimal.Decimal `gorm:"type:decimal(8,2)"`
	LargoCm *decimal.Decimal `gorm:"type:decimal(8,2)"`
	// Historic snapshot of the cost parameter used for area-based pricing.
	ParametroNombre *string
	ParametroValor  *decimal.Decimal `gorm:"type:decimal(12,2)"`
}

func (VentaItemExtra) TableName() string { return "venta_item_extras" }

// Pago is immutable once recorded: corrections add entries, never edit.
type Pago struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID uuid.UUID `gorm:"type:uuid;not null;index"`
	Razon   *string
	Monto   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Metodo  string          `gorm:"type:varchar(20);not null"`
	Fecha   time.Time       `gorm:"not null"`
}

func (Pago) TableName() string { return "pagos" }
