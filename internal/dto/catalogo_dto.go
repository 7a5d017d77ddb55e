package dto

import "github.com/shopspring/decimal"

// ─── Categorías / Subcategorías ─────────────────────────────────────────────

type CrearCategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=60"`
}

type CrearSubcategoriaRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=2,max=60"`
	UsaTallas bool   `json:"usaTallas"`
}

type SubcategoriaResponse struct {
	ID        string `json:"id"`
	Categoria string `json:"categoria"`
	Nombre    string `json:"nombre"`
	UsaTallas bool   `json:"usaTallas"`
}

type CategoriaResponse struct {
	ID            string                 `json:"id"`
	Nombre        string                 `json:"nombre"`
	Subcategorias []SubcategoriaResponse `json:"subcategorias"`
}

// ─── Extras ─────────────────────────────────────────────────────────────────

type CrearExtraRequest struct {
	Nombre string          `json:"nombre" validate:"required,min=2,max=80"`
	Unidad string          `json:"unidad" validate:"required,oneof=pieza cm_cuadrado"`
	Monto  decimal.Decimal `json:"monto"  validate:"required"`
}

type ActualizarExtraRequest struct {
	Nombre *string          `json:"nombre" validate:"omitempty,min=2,max=80"`
	Unidad *string          `json:"unidad" validate:"omitempty,oneof=pieza cm_cuadrado"`
	Monto  *decimal.Decimal `json:"monto"`
}

type ExtraResponse struct {
	ID     string          `json:"id"`
	Nombre string          `json:"nombre"`
	Unidad string          `json:"unidad"`
	Monto  decimal.Decimal `json:"monto"`
}

// ─── Costos de elaboración ──────────────────────────────────────────────────

type CrearCostoElaboracionRequest struct {
	Nombre        string           `json:"nombre"        validate:"required,min=2,max=80"`
	Descripcion   *string          `json:"descripcion"`
	Unidad        string           `json:"unidad"        validate:"required,oneof=pieza cm_cuadrado"`
	Costo         decimal.Decimal  `json:"costo"         validate:"required"`
	AnchoPlancha  *decimal.Decimal `json:"anchoPlancha"`
	LargoPlancha  *decimal.Decimal `json:"largoPlancha"`
	Subcategorias []string         `json:"subcategorias" validate:"dive,uuid"`
}

type ActualizarCostoElaboracionRequest struct {
	Nombre        *string          `json:"nombre"       validate:"omitempty,min=2,max=80"`
	Descripcion   *string          `json:"descripcion"`
	Unidad        *string          `json:"unidad"       validate:"omitempty,oneof=pieza cm_cuadrado"`
	Costo         *decimal.Decimal `json:"costo"`
	AnchoPlancha  *decimal.Decimal `json:"anchoPlancha"`
	LargoPlancha  *decimal.Decimal `json:"largoPlancha"`
	Subcategorias []string         `json:"subcategorias" validate:"omitempty,dive,uuid"`
}

type CostoElaboracionResponse struct {
	ID            string           `json:"id"`
	Nombre        string           `json:"nombre"`
	Descripcion   *string          `json:"descripcion,omitempty"`
	Unidad        string           `json:"unidad"`
	Costo         decimal.Decimal  `json:"costo"`
	AnchoPlancha  *decimal.Decimal `json:"anchoPlancha,omitempty"`
	LargoPlancha  *decimal.Decimal `json:"largoPlancha,omitempty"`
	Subcategorias []string         `json:"subcategorias"`
}
