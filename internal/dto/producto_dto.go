package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────
//
// Products are created with their whole Variante → Calidad → Color → Talla tree
// in one request; the service validates the tree against the usaVariante /
// usaCalidad flags and the subcategory's usaTallas before persisting anything.

type TallaRequest struct {
	SUK              *string         `json:"suk"`
	Codigo           string          `json:"codigo" validate:"required,max=10"`
	Nombre           *string         `json:"nombre"`
	Stock            int             `json:"stock"  validate:"min=0"`
	Costo            decimal.Decimal `json:"costo"  validate:"required"`
	DisponibleOnline bool            `json:"disponibleOnline"`
}

type ColorRequest struct {
	Nombre           string           `json:"nombre"    validate:"required,max=60"`
	CodigoHex        string           `json:"codigoHex" validate:"required,hexcolor"`
	SUK              *string          `json:"suk"`
	Stock            *int             `json:"stock"     validate:"omitempty,min=0"`
	Costo            *decimal.Decimal `json:"costo"`
	DisponibleOnline bool             `json:"disponibleOnline"`
	Tallas           []TallaRequest   `json:"tallas"    validate:"dive"`
}

type CalidadRequest struct {
	Nombre           *string        `json:"nombre"`
	DisponibleOnline bool           `json:"disponibleOnline"`
	Colores          []ColorRequest `json:"colores" validate:"required,min=1,dive"`
}

type VarianteRequest struct {
	Nombre           *string          `json:"nombre"`
	DisponibleOnline bool             `json:"disponibleOnline"`
	Calidades        []CalidadRequest `json:"calidades" validate:"required,min=1,dive"`
}

type CrearProductoRequest struct {
	Nombre       string            `json:"nombre"       validate:"required,min=2,max=120"`
	Descripcion  string            `json:"descripcion"`
	Categoria    string            `json:"categoria"    validate:"required,uuid"`
	Subcategoria string            `json:"subcategoria" validate:"required,uuid"`
	UsaVariante  bool              `json:"usaVariante"`
	UsaCalidad   bool              `json:"usaCalidad"`
	Variantes    []VarianteRequest `json:"variantes"    validate:"required,min=1,dive"`
}

// ActualizarProductoRequest patches top-level fields only; the stock tree is
// immutable through this endpoint (stock changes go through the inventory
// ledger, structure changes through the sub-resource endpoints).
type ActualizarProductoRequest struct {
	Nombre       *string `json:"nombre"       validate:"omitempty,min=2,max=120"`
	Descripcion  *string `json:"descripcion"`
	Categoria    *string `json:"categoria"    validate:"omitempty,uuid"`
	Subcategoria *string `json:"subcategoria" validate:"omitempty,uuid"`
}

// ─── Crecimiento del árbol ───────────────────────────────────────────────────
//
// Sub-resource requests extend an existing product's tree. Variante / Calidad
// are optional and resolve with the same passthrough rules as sale lines: a
// product that does not use the level collapses to its single node.

type AgregarColorRequest struct {
	Variante *string      `json:"variante" validate:"omitempty,uuid"`
	Calidad  *string      `json:"calidad"  validate:"omitempty,uuid"`
	Color    ColorRequest `json:"color"`
}

type AgregarTallaRequest struct {
	Variante *string      `json:"variante" validate:"omitempty,uuid"`
	Calidad  *string      `json:"calidad"  validate:"omitempty,uuid"`
	Color    string       `json:"color"    validate:"required,uuid"`
	Talla    TallaRequest `json:"talla"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Activo       string `form:"activo,default=true"` // true | false | all
	Nombre       string `form:"nombre"`
	Categoria    string `form:"categoria"    validate:"omitempty,uuid"`
	Subcategoria string `form:"subcategoria" validate:"omitempty,uuid"`
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TallaResponse struct {
	ID               string          `json:"id"`
	SUK              *string         `json:"suk,omitempty"`
	Codigo           string          `json:"codigo"`
	Nombre           *string         `json:"nombre,omitempty"`
	Stock            int             `json:"stock"`
	Costo            decimal.Decimal `json:"costo"`
	DisponibleOnline bool            `json:"disponibleOnline"`
	Orden            int             `json:"orden"`
}

type ColorResponse struct {
	ID               string           `json:"id"`
	Nombre           string           `json:"nombre"`
	CodigoHex        string           `json:"codigoHex"`
	SUK              *string          `json:"suk,omitempty"`
	Stock            *int             `json:"stock,omitempty"`
	Costo            *decimal.Decimal `json:"costo,omitempty"`
	DisponibleOnline bool             `json:"disponibleOnline"`
	Orden            int              `json:"orden"`
	Tallas           []TallaResponse  `json:"tallas,omitempty"`
}

type CalidadResponse struct {
	ID               string          `json:"id"`
	Nombre           *string         `json:"nombre,omitempty"`
	DisponibleOnline bool            `json:"disponibleOnline"`
	Orden            int             `json:"orden"`
	Colores          []ColorResponse `json:"colores"`
}

type VarianteResponse struct {
	ID               string            `json:"id"`
	Nombre           *string           `json:"nombre,omitempty"`
	DisponibleOnline bool              `json:"disponibleOnline"`
	Orden            int               `json:"orden"`
	Calidades        []CalidadResponse `json:"calidades"`
}

type ProductoResponse struct {
	ID            string             `json:"id"`
	Nombre        string             `json:"nombre"`
	Descripcion   string             `json:"descripcion"`
	Categoria     string             `json:"categoria"`
	Subcategoria  string             `json:"subcategoria"`
	UsaVariante   bool               `json:"usaVariante"`
	UsaCalidad    bool               `json:"usaCalidad"`
	Activo        bool               `json:"activo"`
	Variantes     []VarianteResponse `json:"variantes"`
	FechaCreacion string             `json:"fechaCreacion"`
}

type ProductoListResponse struct {
	Data       []ProductoResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
}
