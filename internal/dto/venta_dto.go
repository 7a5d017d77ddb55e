package dto

import "github.com/shopspring/decimal"

// ─── Shared shapes ───────────────────────────────────────────────────────────

// DescuentoDTO travels both ways: requests carry the discount to apply,
// responses echo the snapshot stored with the sale.
type DescuentoDTO struct {
	Razon *string          `json:"razon,omitempty"`
	Tipo  *string          `json:"tipo,omitempty"  validate:"omitempty,oneof=cantidad porcentaje"`
	Valor *decimal.Decimal `json:"valor,omitempty"`
}

// ExtraItemRequest prices one add-on into a line. Referenced extras snapshot
// nombre/unidad/monto server-side; temporal ones take them from the request.
type ExtraItemRequest struct {
	EsTemporal       bool             `json:"esTemporal"`
	Extra            *string          `json:"extra"            validate:"omitempty,uuid"`
	Nombre           string           `json:"nombre"           validate:"required_if=EsTemporal true"`
	Unidad           string           `json:"unidad"           validate:"omitempty,oneof=pieza cm_cuadrado"`
	Monto            *decimal.Decimal `json:"monto"`
	AnchoCm          *decimal.Decimal `json:"anchoCm"`
	LargoCm          *decimal.Decimal `json:"largoCm"`
	CostoElaboracion *string          `json:"costoElaboracion" validate:"omitempty,uuid"`
}

// ItemVentaRequest is one sale/quotation line. Catalog lines reference the full
// leaf path; temporal lines carry free-text names and skip stock entirely.
type ItemVentaRequest struct {
	EsTemporal  bool    `json:"esTemporal"`
	Producto    *string `json:"producto"    validate:"omitempty,uuid"`
	Variante    *string `json:"variante"    validate:"omitempty,uuid"`
	Calidad     *string `json:"calidad"     validate:"omitempty,uuid"`
	Color       *string `json:"color"       validate:"omitempty,uuid"`
	Talla       *string `json:"talla"       validate:"omitempty,uuid"`
	Nombre      string  `json:"nombre"      validate:"required_if=EsTemporal true"`
	Descripcion string  `json:"descripcion"`

	Cantidad   int                `json:"cantidad"   validate:"required,min=1"`
	PrecioBase decimal.Decimal    `json:"precioBase" validate:"required"`
	Precio     decimal.Decimal    `json:"precio"     validate:"required"`
	Descuento  *DescuentoDTO      `json:"descuento"`
	Extras     []ExtraItemRequest `json:"extras"     validate:"dive"`
}

type PagoRequest struct {
	Razon  *string         `json:"razon"`
	Monto  decimal.Decimal `json:"monto"  validate:"required"`
	Metodo string          `json:"metodo" validate:"required,oneof=efectivo tarjeta transferencia"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from query string of GET /api/ventas.
type VentaFilter struct {
	Estado      string `form:"estado,default=all"` // pendiente | confirmado | preparado | entregado | devuelto | all
	Cliente     string `form:"cliente"     validate:"omitempty,uuid"`
	FechaInicio string `form:"fechaInicio"` // YYYY-MM-DD
	FechaFin    string `form:"fechaFin"`
	Liquidado   string `form:"liquidado"   validate:"omitempty,oneof=true false"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearVentaRequest struct {
	Cliente         string             `json:"cliente"         validate:"required,uuid"`
	Productos       []ItemVentaRequest `json:"productos"       validate:"required,min=1,dive"`
	DescuentoGlobal *DescuentoDTO      `json:"descuentoGlobal"`
	VentaEnLinea    bool               `json:"ventaEnLinea"`
}

type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente confirmado preparado entregado devuelto"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ExtraItemResponse struct {
	ID         string           `json:"id"`
	EsTemporal bool             `json:"esTemporal"`
	Nombre     string           `json:"nombre"`
	Unidad     string           `json:"unidad"`
	Monto      decimal.Decimal  `json:"monto"`
	AnchoCm    *decimal.Decimal `json:"anchoCm,omitempty"`
	LargoCm    *decimal.Decimal `json:"largoCm,omitempty"`
}

type ItemVentaResponse struct {
	ID          string              `json:"id"`
	EsTemporal  bool                `json:"esTemporal"`
	Producto    *string             `json:"producto,omitempty"`
	Nombre      string              `json:"nombre"`
	Descripcion string              `json:"descripcion,omitempty"`
	Variante    *string             `json:"variante,omitempty"`
	Calidad     *string             `json:"calidad,omitempty"`
	Color       *string             `json:"color,omitempty"`
	Talla       *string             `json:"talla,omitempty"`
	Cantidad    int                 `json:"cantidad"`
	PrecioBase  decimal.Decimal     `json:"precioBase"`
	Precio      decimal.Decimal     `json:"precio"`
	PrecioFinal decimal.Decimal     `json:"precioFinal"`
	Descuento   *DescuentoDTO       `json:"descuento,omitempty"`
	Extras      []ExtraItemResponse `json:"extras,omitempty"`
}

type PagoResponse struct {
	ID     string          `json:"id"`
	Razon  *string         `json:"razon,omitempty"`
	Monto  decimal.Decimal `json:"monto"`
	Metodo string          `json:"metodo"`
	Fecha  string          `json:"fecha"`
}

type VentaResponse struct {
	ID               string              `json:"id"`
	Cliente          string              `json:"cliente"`
	ClienteNombre    string              `json:"clienteNombre,omitempty"`
	Vendedor         string              `json:"vendedor"`
	Productos        []ItemVentaResponse `json:"productos"`
	SubTotal         decimal.Decimal     `json:"subTotal"`
	Total            decimal.Decimal     `json:"total"`
	Restante         decimal.Decimal     `json:"restante"`
	Estado           string              `json:"estado"`
	Liquidado        bool                `json:"liquidado"`
	FechaLiquidacion *string             `json:"fechaLiquidacion,omitempty"`
	Pagos            []PagoResponse      `json:"pagos"`
	DescuentoGlobal  *DescuentoDTO       `json:"descuentoGlobal,omitempty"`
	VentaEnLinea     bool                `json:"ventaEnLinea"`
	OrigenCotizacion *string             `json:"origenCotizacion,omitempty"`
	FechaCreacion    string              `json:"fechaCreacion"`
}
