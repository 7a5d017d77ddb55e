package dto

import "github.com/shopspring/decimal"

// ReporteFilter bounds the period of the sales summary endpoints.
// Empty dates default to the current month.
type ReporteFilter struct {
	FechaInicio string `form:"fechaInicio"`
	FechaFin    string `form:"fechaFin"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ResumenVentasResponse aggregates the sales of a period.
type ResumenVentasResponse struct {
	FechaInicio    string                     `json:"fechaInicio"`
	FechaFin       string                     `json:"fechaFin"`
	Ventas         int64                      `json:"ventas"`
	TotalVendido   decimal.Decimal            `json:"totalVendido"`
	TotalCobrado   decimal.Decimal            `json:"totalCobrado"`
	TotalPorCobrar decimal.Decimal            `json:"totalPorCobrar"`
	PorEstado      map[string]int64           `json:"porEstado"`
	PagosPorMetodo map[string]decimal.Decimal `json:"pagosPorMetodo"`
}
