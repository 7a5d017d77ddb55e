package service

import (
	"context"
	"testing"
	"time"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crearCotizacion(t *testing.T, e *entorno, cliente *model.Cliente, p *model.Producto, cantidad int, precio int64) *dto.CotizacionResponse {
	t.Helper()
	resp, err := e.cotizacionSvc.Crear(context.Background(), uuid.New(), dto.CrearCotizacionRequest{
		Cliente:   cliente.ID.String(),
		Productos: []dto.ItemVentaRequest{lineaCatalogo(p, cantidad, precio)},
	})
	require.NoError(t, err)
	return resp
}

func TestCrearCotizacionVigenciaPorDefecto(t *testing.T) {
	e := nuevoEntorno()
	cliente := crearCliente(e)
	p := productoConTallas(e, 5)

	cot := crearCotizacion(t, e, cliente, p, 2, 50)

	assert.True(t, cot.Activa)
	assert.True(t, cot.PuedeConvertir)
	assert.Nil(t, cot.ConvertidaAVenta)
	assert.True(t, cot.SubTotal.Equal(dec(100)))
	assert.True(t, cot.Total.Equal(dec(100)))

	expira, err := time.Parse(time.RFC3339, cot.Expira)
	require.NoError(t, err)
	restante := time.Until(expira)
	assert.Greater(t, restante, 14*24*time.Hour)
	assert.LessOrEqual(t, restante, 15*24*time.Hour)
}

func TestDiasRestantesUsaElMismoReloj(t *testing.T) {
	// The remaining days count against the same instant used for the expiry
	// check, so a response never reports days left on an expired quotation.
	ahora := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	c := &model.Cotizacion{
		ID:        uuid.New(),
		ClienteID: uuid.New(),
		Activa:    true,
		Expira:    ahora.Add(73 * time.Hour),
	}

	resp := cotizacionToResponse(c, ahora)
	assert.Equal(t, 3, resp.DiasRestantes)
	assert.True(t, resp.PuedeConvertir)

	c.Expira = ahora.Add(-time.Second)
	resp = cotizacionToResponse(c, ahora)
	assert.Equal(t, 0, resp.DiasRestantes)
	assert.False(t, resp.PuedeConvertir)
}

func TestCrearCotizacionExpiraExplicita(t *testing.T) {
	e := nuevoEntorno()
	cliente := crearCliente(e)
	p := productoConTallas(e, 5)

	fecha := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")
	cot, err := e.cotizacionSvc.Crear(context.Background(), uuid.New(), dto.CrearCotizacionRequest{
		Cliente:   cliente.ID.String(),
		Productos: []dto.ItemVentaRequest{lineaCatalogo(p, 1, 50)},
		Expira:    &fecha,
	})
	require.NoError(t, err)

	expira, perr := time.Parse(time.RFC3339, cot.Expira)
	require.NoError(t, perr)
	// honored through the whole expiry day
	assert.Equal(t, 23, expira.Hour())
	assert.Equal(t, fecha, expira.Format("2006-01-02"))
}

func TestCrearCotizacionExpiraInvalida(t *testing.T) {
	e := nuevoEntorno()
	cliente := crearCliente(e)
	p := productoConTallas(e, 5)

	fecha := "03/09/2026"
	_, err := e.cotizacionSvc.Crear(context.Background(), uuid.New(), dto.CrearCotizacionRequest{
		Cliente:   cliente.ID.String(),
		Productos: []dto.ItemVentaRequest{lineaCatalogo(p, 1, 50)},
		Expira:    &fecha,
	})
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestConvertirCotizacion(t *testing.T) {
	e := nuevoEntorno()
	cliente := crearCliente(e)
	p := productoConTallas(e, 5)
	cot := crearCotizacion(t, e, cliente, p, 2, 50)
	id := uuid.MustParse(cot.ID)

	venta, err := e.cotizacionSvc.Convertir(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, model.EstadoPendiente, venta.Estado)
	assert.True(t, venta.Total.Equal(dec(100)))
	assert.True(t, venta.Restante.Equal(venta.Total))
	require.NotNil(t, venta.OrigenCotizacion)
	assert.Equal(t, cot.ID, *venta.OrigenCotizacion)
	// frozen prices copied verbatim
	require.Len(t, venta.Productos, 1)
	assert.True(t, venta.Productos[0].PrecioFinal.Equal(cot.Productos[0].PrecioFinal))

	actualizada, err := e.cotizacionSvc.Obtener(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, actualizada.Activa)
	assert.False(t, actualizada.PuedeConvertir)
	require.NotNil(t, actualizada.ConvertidaAVenta)
	assert.Equal(t, venta.ID, *actualizada.ConvertidaAVenta)
}

func TestConvertirCotizacionSoloUnaVez(t *testing.T) {
	e := nuevoEntorno()
	cliente := crearCliente(e)
	p := productoConTallas(e, 5)
	cot := crearCotizacion(t, e, cliente, p, 1, 50)
	id := uuid.MustParse(cot.ID)

	_, err := e.cotizacionSvc.Convertir(context.Background(), id)
	require.NoError(t, err)

	_, err = e.cotizacionSvc.Convertir(context.Background(), id)
	assert.ErrorIs(t, err, ErrCotizacionConvertida)
}

func TestConvertirCotizacionExpirada(t *testing.T) {
	e := nuevoEntorno()
	cliente := crearCliente(e)
	p := productoConTallas(e, 5)
	cot := crearCotizacion(t, e, cliente, p, 1, 50)
	id := uuid.MustParse(cot.ID)

	e.cotizaciones.cotizaciones[id].Expira = time.Now().UTC().Add(-time.Hour)

	_, err := e.cotizacionSvc.Convertir(context.Background(), id)
	assert.ErrorIs(t, err, ErrCotizacionExpirada)
}

func TestConvertirCotizacionNoTocaStock(t *testing.T) {
	e := nuevoEntorno()
	cliente := crearCliente(e)
	p := productoConTallas(e, 5)
	cot := crearCotizacion(t, e, cliente, p, 3, 50)

	_, err := e.cotizacionSvc.Convertir(context.Background(), uuid.MustParse(cot.ID))
	require.NoError(t, err)

	assert.Equal(t, 5, tallaDe(p).Stock)
	assert.Empty(t, e.movimientos.movimientos)
}

func TestActualizarCotizacionReemplazaItems(t *testing.T) {
	e := nuevoEntorno()
	cliente := crearCliente(e)
	p := productoConTallas(e, 5)
	cot := crearCotizacion(t, e, cliente, p, 2, 50)
	id := uuid.MustParse(cot.ID)

	resp, err := e.cotizacionSvc.Actualizar(context.Background(), id, dto.ActualizarCotizacionRequest{
		Productos: []dto.ItemVentaRequest{lineaCatalogo(p, 4, 45)},
	})
	require.NoError(t, err)

	require.Len(t, resp.Productos, 1)
	assert.Equal(t, 4, resp.Productos[0].Cantidad)
	assert.True(t, resp.SubTotal.Equal(dec(180)))
	assert.True(t, resp.Total.Equal(dec(180)))
}

func TestActualizarCotizacionConvertida(t *testing.T) {
	e := nuevoEntorno()
	cliente := crearCliente(e)
	p := productoConTallas(e, 5)
	cot := crearCotizacion(t, e, cliente, p, 1, 50)
	id := uuid.MustParse(cot.ID)

	_, err := e.cotizacionSvc.Convertir(context.Background(), id)
	require.NoError(t, err)

	_, err = e.cotizacionSvc.Actualizar(context.Background(), id, dto.ActualizarCotizacionRequest{
		Productos: []dto.ItemVentaRequest{lineaCatalogo(p, 2, 50)},
	})
	assert.ErrorIs(t, err, ErrCotizacionConvertida)
}

func TestActualizarCotizacionExpirada(t *testing.T) {
	e := nuevoEntorno()
	cliente := crearCliente(e)
	p := productoConTallas(e, 5)
	cot := crearCotizacion(t, e, cliente, p, 1, 50)
	id := uuid.MustParse(cot.ID)

	e.cotizaciones.cotizaciones[id].Expira = time.Now().UTC().Add(-time.Minute)

	_, err := e.cotizacionSvc.Actualizar(context.Background(), id, dto.ActualizarCotizacionRequest{
		Productos: []dto.ItemVentaRequest{lineaCatalogo(p, 2, 50)},
	})
	assert.ErrorIs(t, err, ErrCotizacionExpirada)
}

func TestEliminarCotizacionConvertida(t *testing.T) {
	e := nuevoEntorno()
	cliente := crearCliente(e)
	p := productoConTallas(e, 5)
	cot := crearCotizacion(t, e, cliente, p, 1, 50)
	id := uuid.MustParse(cot.ID)

	_, err := e.cotizacionSvc.Convertir(context.Background(), id)
	require.NoError(t, err)

	assert.ErrorIs(t, e.cotizacionSvc.Eliminar(context.Background(), id), ErrCotizacionConvertida)
}

func TestListActivasExcluyeExpiradasYConvertidas(t *testing.T) {
	e := nuevoEntorno()
	cliente := crearCliente(e)
	p := productoConTallas(e, 5)

	vigente := crearCotizacion(t, e, cliente, p, 1, 50)
	expirada := crearCotizacion(t, e, cliente, p, 1, 50)
	convertida := crearCotizacion(t, e, cliente, p, 1, 50)

	e.cotizaciones.cotizaciones[uuid.MustParse(expirada.ID)].Expira = time.Now().UTC().Add(-time.Hour)
	_, err := e.cotizacionSvc.Convertir(context.Background(), uuid.MustParse(convertida.ID))
	require.NoError(t, err)

	activas, err := e.cotizacionSvc.ListActivas(context.Background())
	require.NoError(t, err)
	require.Len(t, activas, 1)
	assert.Equal(t, vigente.ID, activas[0].ID)
}
