package service

import (
	"context"
	"testing"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAplicarDescuento(t *testing.T) {
	porcentaje := "porcentaje"
	cantidad := "cantidad"

	casos := []struct {
		nombre    string
		monto     int64
		descuento *dto.DescuentoDTO
		esperado  string
	}{
		{"sin descuento", 150, nil, "150"},
		{"porcentaje", 150, &dto.DescuentoDTO{Tipo: &porcentaje, Valor: decimalPtr(10)}, "135"},
		{"cantidad fija", 150, &dto.DescuentoDTO{Tipo: &cantidad, Valor: decimalPtr(20)}, "130"},
		{"sin valor", 150, &dto.DescuentoDTO{Tipo: &porcentaje}, "150"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := aplicarDescuento(dec(c.monto), c.descuento)
			assert.True(t, got.Equal(decimal.RequireFromString(c.esperado)), "got %s", got)
		})
	}
}

func TestAplicarDescuentoPorcentajeRedondea(t *testing.T) {
	porcentaje := "porcentaje"
	// 33% of 99.99 leaves 66.9933 → rounded to 66.99
	got := aplicarDescuento(decimal.RequireFromString("99.99"), &dto.DescuentoDTO{Tipo: &porcentaje, Valor: decimalPtr(33)})
	assert.True(t, got.Equal(decimal.RequireFromString("66.99")), "got %s", got)
}

func decimalPtr(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func lineaTemporal(cantidad int, precio int64) dto.ItemVentaRequest {
	return dto.ItemVentaRequest{
		EsTemporal: true,
		Nombre:     "Lona personalizada",
		Cantidad:   cantidad,
		PrecioBase: dec(precio),
		Precio:     dec(precio),
	}
}

func TestResolverLineaExtraReferenciado(t *testing.T) {
	e := nuevoEntorno()
	extra := &model.Extra{
		ID:     uuid.New(),
		Nombre: "Estampado espalda",
		Unidad: model.UnidadPieza,
		Monto:  dec(25),
	}
	e.catalogo.extras[extra.ID] = extra
	r := &itemResolver{productoRepo: e.productos, catalogoRepo: e.catalogo}

	item := lineaTemporal(2, 50)
	item.Extras = []dto.ExtraItemRequest{{Extra: strp(extra.ID.String())}}

	lineas, subTotal, err := r.resolverLineas(context.Background(), []dto.ItemVentaRequest{item})
	require.NoError(t, err)
	require.Len(t, lineas, 1)

	// precio*cantidad + extra
	assert.True(t, subTotal.Equal(dec(125)), "got %s", subTotal)
	require.Len(t, lineas[0].extras, 1)
	assert.Equal(t, "Estampado espalda", lineas[0].extras[0].Nombre)
	assert.True(t, lineas[0].extras[0].Monto.Equal(dec(25)))
	require.NotNil(t, lineas[0].extras[0].ExtraRefID)
	assert.Equal(t, extra.ID, *lineas[0].extras[0].ExtraRefID)
}

func TestResolverLineaExtraPorArea(t *testing.T) {
	e := nuevoEntorno()
	ancho := dec(10)
	largo := dec(10)
	costo := &model.CostoElaboracion{
		ID:           uuid.New(),
		Nombre:       "Vinil textil",
		Costo:        dec(100),
		AnchoPlancha: &ancho,
		LargoPlancha: &largo,
	}
	e.catalogo.costos[costo.ID] = costo
	r := &itemResolver{productoRepo: e.productos, catalogoRepo: e.catalogo}

	anchoCm := dec(4)
	largoCm := dec(5)
	item := lineaTemporal(1, 50)
	item.Extras = []dto.ExtraItemRequest{{
		EsTemporal:       true,
		Nombre:           "Estampado frente",
		Unidad:           model.UnidadCmCuadrado,
		AnchoCm:          &anchoCm,
		LargoCm:          &largoCm,
		CostoElaboracion: strp(costo.ID.String()),
	}}

	lineas, subTotal, err := r.resolverLineas(context.Background(), []dto.ItemVentaRequest{item})
	require.NoError(t, err)
	require.Len(t, lineas, 1)

	// plate cost 100 over 10x10cm → 1 per cm²; 4x5cm area prices at 20
	require.Len(t, lineas[0].extras, 1)
	assert.True(t, lineas[0].extras[0].Monto.Equal(dec(20)), "got %s", lineas[0].extras[0].Monto)
	assert.True(t, subTotal.Equal(dec(70)), "got %s", subTotal)
	require.NotNil(t, lineas[0].extras[0].ParametroNombre)
	assert.Equal(t, "Vinil textil", *lineas[0].extras[0].ParametroNombre)
	require.NotNil(t, lineas[0].extras[0].ParametroValor)
	assert.True(t, lineas[0].extras[0].ParametroValor.Equal(dec(100)))
}

func TestResolverLineaExtraPorAreaIncompleto(t *testing.T) {
	e := nuevoEntorno()
	r := &itemResolver{productoRepo: e.productos, catalogoRepo: e.catalogo}

	anchoCm := dec(4)
	item := lineaTemporal(1, 50)
	item.Extras = []dto.ExtraItemRequest{{
		EsTemporal: true,
		Nombre:     "Estampado",
		Unidad:     model.UnidadCmCuadrado,
		AnchoCm:    &anchoCm,
		// no largoCm nor costoElaboracion
	}}

	_, _, err := r.resolverLineas(context.Background(), []dto.ItemVentaRequest{item})
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestResolverLineaDescuentoDejaNegativo(t *testing.T) {
	e := nuevoEntorno()
	r := &itemResolver{productoRepo: e.productos, catalogoRepo: e.catalogo}

	cantidad := "cantidad"
	item := lineaTemporal(1, 50)
	item.Descuento = &dto.DescuentoDTO{Tipo: &cantidad, Valor: decimalPtr(80)}

	_, _, err := r.resolverLineas(context.Background(), []dto.ItemVentaRequest{item})
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestResolverLineaCatalogoCongelaNombres(t *testing.T) {
	e := nuevoEntorno()
	p := productoConTallas(e, 5)
	r := &itemResolver{productoRepo: e.productos, catalogoRepo: e.catalogo}

	lineas, _, err := r.resolverLineas(context.Background(), []dto.ItemVentaRequest{lineaCatalogo(p, 1, 50)})
	require.NoError(t, err)
	require.Len(t, lineas, 1)

	l := lineas[0]
	assert.Equal(t, "Playera Manga Corta", l.productoNombre)
	require.NotNil(t, l.colorNombre)
	assert.Equal(t, "Negro", *l.colorNombre)
	require.NotNil(t, l.tallaNombre)
	assert.Equal(t, "M", *l.tallaNombre) // codigo doubles as name when unnamed
	require.NotNil(t, l.productoRefID)
	assert.Equal(t, p.ID, *l.productoRefID)

	// the snapshot survives catalog edits
	p.Nombre = "Playera Renombrada"
	assert.Equal(t, "Playera Manga Corta", l.productoNombre)
}

func TestResolverLineaExtraReferenciadoInexistente(t *testing.T) {
	e := nuevoEntorno()
	r := &itemResolver{productoRepo: e.productos, catalogoRepo: e.catalogo}

	item := lineaTemporal(1, 50)
	item.Extras = []dto.ExtraItemRequest{{Extra: strp(uuid.NewString())}}

	_, _, err := r.resolverLineas(context.Background(), []dto.ItemVentaRequest{item})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}
