package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is the root of the catalog tree: Variante → Calidad → Color → Talla.
// UsaVariante / UsaCalidad control which levels are meaningful for this product;
// an unused level still holds exactly one node that only links to the next level,
// so leaf resolution always walks the same four steps.
type Producto struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string    `gorm:"index;not null"`
	Descripcion    string    `gorm:"not null"`
	CategoriaID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SubcategoriaID uuid.UUID `gorm:"type:uuid;not null;index"`
	UsaVariante    bool      `gorm:"not null;default:false"`
	UsaCalidad     bool      `gorm:"not null;default:false"`
	Activo         bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Categoria    *Categoria       `gorm:"foreignKey:CategoriaID"`
	Subcategoria *Subcategoria    `gorm:"foreignKey:SubcategoriaID"`
	Variantes    []Variante       `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
	Imagenes     []ImagenProducto `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
}

func (Producto) TableName() string { return "productos" }

// Variante is the first grouping level. Nombre examples: "Unisex", "Dama",
// "Oversized" for playeras; "Blanca", "Mágica" for tazas.
type Variante struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_variantes_producto_orden"`
	Nombre           *string
	DisponibleOnline bool `gorm:"not null;default:false"`
	Orden            int  `gorm:"not null;uniqueIndex:idx_variantes_producto_orden"`

	Calidades []Calidad `gorm:"foreignKey:VarianteID;constraint:OnDelete:CASCADE"`
}

func (Variante) TableName() string { return "variantes" }

// Calidad groups colors by quality tier. Nombre examples: "Estándar", "Premium".
type Calidad struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VarianteID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_calidades_variante_orden"`
	Nombre           *string
	DisponibleOnline bool `gorm:"not null;default:false"`
	Orden            int  `gorm:"not null;uniqueIndex:idx_calidades_variante_orden"`

	Colores []Color `gorm:"foreignKey:CalidadID;constraint:OnDelete:CASCADE"`
}

func (Calidad) TableName() string { return "calidades" }

// Color is a leaf when the subcategory does not use sizes: Stock and Costo are
// populated and Tallas is empty. When the subcategory uses sizes the inverse
// holds — exactly one of the two forms is valid per subcategoria.UsaTallas.
type Color struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CalidadID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_colores_calidad_orden"`
	Nombre           string    `gorm:"not null"`
	CodigoHex        string    `gorm:"not null"`
	SUK              *string
	Stock            *int
	Costo            *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DisponibleOnline bool             `gorm:"not null;default:false"`
	Orden            int              `gorm:"not null;uniqueIndex:idx_colores_calidad_orden"`

	Tallas []Talla `gorm:"foreignKey:ColorID;constraint:OnDelete:CASCADE"`
}

func (Color) TableName() string { return "colores" }

// Talla is the deepest leaf: per-size stock and cost.
// Codigo: "CH", "M", "G"; Nombre: "Chica", "Mediana".
type Talla struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ColorID          uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_tallas_color_orden"`
	SUK              *string
	Codigo           string `gorm:"not null"`
	Nombre           *string
	Stock            int             `gorm:"not null;default:0"`
	Costo            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DisponibleOnline bool            `gorm:"not null;default:false"`
	Orden            int             `gorm:"not null;uniqueIndex:idx_tallas_color_orden"`
}

func (Talla) TableName() string { return "tallas" }

// ImagenProducto stores already-hosted image URLs; upload happens outside this API.
type ImagenProducto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID  uuid.UUID `gorm:"type:uuid;not null;index"`
	URL         string    `gorm:"not null"`
	EsPrincipal bool      `gorm:"not null;default:false"`
	Orden       int       `gorm:"not null"`
}

func (ImagenProducto) TableName() string { return "imagenes_producto" }
