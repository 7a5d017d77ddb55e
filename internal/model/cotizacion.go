package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cotizacion shares the priced line-item snapshot shape with Venta. A quotation
// stays editable while Activa, unexpired and unconverted; conversion freezes it
// permanently and records the resulting sale in ConvertidaAVentaID.
type Cotizacion struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendedorID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	SubTotal           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DescuentoGlobal    Descuento       `gorm:"embedded;embeddedPrefix:descuento_"`
	VentaEnLinea       bool            `gorm:"not null;default:false"`
	Expira             time.Time       `gorm:"not null"`
	Activa             bool            `gorm:"not null;default:true"`
	ConvertidaAVentaID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt          time.Time

	Productos []CotizacionItem `gorm:"foreignKey:CotizacionID;constraint:OnDelete:CASCADE"`
	Cliente   *Cliente         `gorm:"foreignKey:ClienteID"`
}

func (Cotizacion) TableName() string { return "cotizaciones" }

// Expirada reports whether the quotation is past its expiry.
func (c *Cotizacion) Expirada(ahora time.Time) bool { return ahora.After(c.Expira) }

// PuedeConvertir reports whether conversion to a sale is still allowed.
func (c *Cotizacion) PuedeConvertir(ahora time.Time) bool {
	return c.Activa && c.ConvertidaAVentaID == nil && !c.Expirada(ahora)
}

// CotizacionItem mirrors VentaItem; on conversion rows are deep-copied verbatim.
type CotizacionItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CotizacionID uuid.UUID `gorm:"type:uuid;not null;index"`

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

	Extras []CotizacionItemExtra `gorm:"foreignKey:CotizacionItemID;constraint:OnDelete:CASCADE"`
}

func (CotizacionItem) TableName() string { return "cotizacion_items" }

// CotizacionItemExtra mirrors VentaItemExtra.
type CotizacionItemExtra struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CotizacionItemID uuid.UUID        `gorm:"type:uuid;not null;index"`
	EsTemporal       bool             `gorm:"not null;default:false"`
	ExtraRefID       *uuid.UUID       `gorm:"type:uuid"`
	Nombre           string           `gorm:"not null"`
	Unidad           string           `gorm:"type:varchar(20);not null"`
	Monto            decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	AnchoCm          *decimal.Decimal `gorm:"type:decimal(8,2)"`
	LargoCm          *decimal.Decimal `gorm:"type:decimal(8,2)"`
	ParametroNombre  *string
	ParametroValor   *decimal.Decimal `gorm:"type:decimal(12,2)"`
}

func (CotizacionItemExtra) TableName() string { return "cotizacion_item_extras" }
