package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// CotizacionFilter is bound from query string of GET /api/cotizaciones/filtradas.
type CotizacionFilter struct {
	Cliente     string `form:"cliente"     validate:"omitempty,uuid"`
	FechaInicio string `form:"fechaInicio"`
	FechaFin    string `form:"fechaFin"`
	Convertidas string `form:"convertidas" validate:"omitempty,oneof=true false"`
	Expiradas   string `form:"expiradas"   validate:"omitempty,oneof=true false"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCotizacionRequest struct {
	Cliente         string             `json:"cliente"         validate:"required,uuid"`
	Productos       []ItemVentaRequest `json:"productos"       validate:"required,min=1,dive"`
	DescuentoGlobal *DescuentoDTO      `json:"descuentoGlobal"`
	VentaEnLinea    bool               `json:"ventaEnLinea"`
	// Expira overrides the configured validity window (YYYY-MM-DD).
	Expira *string `json:"expira"`
}

// ActualizarCotizacionRequest replaces the line items wholesale; a quotation is
// a draft, not a ledger, so there is no per-line patching.
type ActualizarCotizacionRequest struct {
	Productos       []ItemVentaRequest `json:"productos"       validate:"required,min=1,dive"`
	DescuentoGlobal *DescuentoDTO      `json:"descuentoGlobal"`
	Expira          *string            `json:"expira"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CotizacionResponse struct {
	ID               string              `json:"id"`
	Cliente          string              `json:"cliente"`
	ClienteNombre    string              `json:"clienteNombre,omitempty"`
	Vendedor         string              `json:"vendedor"`
	Productos        []ItemVentaResponse `json:"productos"`
	SubTotal         decimal.Decimal     `json:"subTotal"`
	Total            decimal.Decimal     `json:"total"`
	DescuentoGlobal  *DescuentoDTO       `json:"descuentoGlobal,omitempty"`
	VentaEnLinea     bool                `json:"ventaEnLinea"`
	Expira           string              `json:"expira"`
	DiasRestantes    int                 `json:"diasRestantes"`
	Activa           bool                `json:"activa"`
	PuedeConvertir   bool                `json:"puedeConvertir"`
	ConvertidaAVenta *string             `json:"convertidaAVenta,omitempty"`
	FechaCreacion    string              `json:"fechaCreacion"`
}
