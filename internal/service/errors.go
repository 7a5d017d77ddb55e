package service

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors for the business failure taxonomy. Handlers map these to
// HTTP statuses with errors.Is; anything else becomes a logged 500.
var (
	ErrNoEncontrado         = errors.New("recurso no encontrado")
	ErrJerarquiaInvalida    = errors.New("la ruta de variante/calidad/color/talla no coincide con la configuracion del producto")
	ErrStockInsuficiente    = errors.New("stock insuficiente")
	ErrTransicionInvalida   = errors.New("transicion de estado no permitida")
	ErrVentaLiquidada       = errors.New("la venta ya esta liquidada")
	ErrPagoExcedeSaldo      = errors.New("el monto excede el restante de la venta")
	ErrCotizacionConvertida = errors.New("la cotizacion ya fue convertida a venta")
	ErrCotizacionExpirada   = errors.New("la cotizacion ha expirado")
	ErrCotizacionInmutable  = errors.New("la cotizacion ya no puede modificarse")
	ErrVentaConPagos        = errors.New("la venta tiene pagos registrados")
	ErrValidacion           = errors.New("datos invalidos")
)

// traducirNoEncontrado collapses the driver's record-not-found into the
// business sentinel so handlers only deal with one taxonomy.
func traducirNoEncontrado(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoEncontrado
	}
	return err
}
