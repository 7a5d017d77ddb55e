package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AjusteInventarioRequest is a manual stock correction outside the sale flow.
// Cantidad is signed: positive restocks, negative removes.
type AjusteInventarioRequest struct {
	Producto    string  `json:"producto"    validate:"required,uuid"`
	Variante    string  `json:"variante"    validate:"required,uuid"`
	Calidad     string  `json:"calidad"     validate:"required,uuid"`
	Color       string  `json:"color"       validate:"required,uuid"`
	Talla       *string `json:"talla"       validate:"omitempty,uuid"`
	Cantidad    int     `json:"cantidad"    validate:"required,ne=0"`
	Motivo      string  `json:"motivo"      validate:"required,oneof=compra ajuste perdida"`
	Comentarios *string `json:"comentarios"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

type MovimientoFilter struct {
	Producto    string `form:"producto" validate:"omitempty,uuid"`
	Motivo      string `form:"motivo"   validate:"omitempty,oneof=compra venta ajuste devolucion perdida"`
	Tipo        string `form:"tipo"     validate:"omitempty,oneof=entrada salida"`
	FechaInicio string `form:"fechaInicio"`
	FechaFin    string `form:"fechaFin"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoResponse struct {
	ID             string  `json:"id"`
	Producto       string  `json:"producto"`
	Variante       string  `json:"variante"`
	Calidad        string  `json:"calidad"`
	Color          string  `json:"color"`
	Talla          *string `json:"talla,omitempty"`
	ProductoInfo   string  `json:"productoInfo"`
	Tipo           string  `json:"tipo"`
	Cantidad       int     `json:"cantidad"`
	Motivo         string  `json:"motivo"`
	ReferenciaTipo *string `json:"referenciaTipo,omitempty"`
	Referencia     *string `json:"referencia,omitempty"`
	Usuario        string  `json:"usuario"`
	UsuarioNombre  string  `json:"usuarioNombre,omitempty"`
	Comentarios    *string `json:"comentarios,omitempty"`
	Fecha          string  `json:"fecha"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
