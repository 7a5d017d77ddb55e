package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=2,max=120"`
	Correo   *string `json:"correo"   validate:"omitempty,email"`
	Telefono string  `json:"telefono" validate:"required,min=7,max=20"`
}

type ActualizarClienteRequest struct {
	Nombre   *string `json:"nombre"   validate:"omitempty,min=2,max=120"`
	Correo   *string `json:"correo"   validate:"omitempty,email"`
	Telefono *string `json:"telefono" validate:"omitempty,min=7,max=20"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID            string  `json:"id"`
	Nombre        string  `json:"nombre"`
	Compras       int     `json:"compras"`
	Correo        *string `json:"correo,omitempty"`
	Telefono      string  `json:"telefono"`
	FechaCreacion string  `json:"fechaCreacion"`
}
