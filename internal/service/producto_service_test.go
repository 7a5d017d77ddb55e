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

// productoSinTallas registers a tree whose leaves live at the color level
// (tazas-style subcategory).
func productoSinTallas(e *entorno, stock int) *model.Producto {
	sub := &model.Subcategoria{
		ID:          uuid.New(),
		CategoriaID: uuid.New(),
		Nombre:      "Tazas",
		UsaTallas:   false,
	}
	costo := decimal.NewFromInt(35)
	p := &model.Producto{
		ID:             uuid.New(),
		Nombre:         "Taza Sublimada",
		Descripcion:    "Ceramica 11oz",
		CategoriaID:    sub.CategoriaID,
		SubcategoriaID: sub.ID,
		Subcategoria:   sub,
		Activo:         true,
		Variantes: []model.Variante{{
			ID: uuid.New(),
			Calidades: []model.Calidad{{
				ID: uuid.New(),
				Colores: []model.Color{{
					ID:        uuid.New(),
					Nombre:    "Blanco",
					CodigoHex: "#FFFFFF",
					Stock:     &stock,
					Costo:     &costo,
				}},
			}},
		}},
	}
	e.productos.registrar(p)
	return p
}

func colorDe(p *model.Producto) *model.Color {
	return &p.Variantes[0].Calidades[0].Colores[0]
}

func refCompleta(p *model.Producto) HojaRef {
	col := colorDe(p)
	ref := HojaRef{Producto: p.ID, Color: &col.ID}
	if len(col.Tallas) > 0 {
		ref.Talla = &col.Tallas[0].ID
	}
	return ref
}

// ── ResolverHoja ─────────────────────────────────────────────────────────────

func TestResolverHojaConTallas(t *testing.T) {
	e := nuevoEntorno()
	p := productoConTallas(e, 5)

	hoja, err := e.productoSvc.ResolverHoja(context.Background(), nil, refCompleta(p))
	require.NoError(t, err)

	assert.Equal(t, p.ID, hoja.ProductoID)
	require.NotNil(t, hoja.TallaID)
	assert.Equal(t, tallaDe(p).ID, *hoja.TallaID)
	assert.Equal(t, 5, hoja.Stock)
	assert.True(t, hoja.Costo.Equal(dec(80)))
	assert.Contains(t, hoja.Descripcion, "Playera Manga Corta")
	assert.Contains(t, hoja.Descripcion, "Negro")
	assert.Contains(t, hoja.Descripcion, "M")
}

func TestResolverHojaSinTallas(t *testing.T) {
	e := nuevoEntorno()
	p := productoSinTallas(e, 12)

	hoja, err := e.productoSvc.ResolverHoja(context.Background(), nil, refCompleta(p))
	require.NoError(t, err)

	assert.Nil(t, hoja.TallaID)
	assert.Equal(t, colorDe(p).ID, hoja.ColorID)
	assert.Equal(t, 12, hoja.Stock)
	assert.True(t, hoja.Costo.Equal(dec(35)))
}

func TestResolverHojaProductoInexistente(t *testing.T) {
	e := nuevoEntorno()
	colorID := uuid.New()

	_, err := e.productoSvc.ResolverHoja(context.Background(), nil, HojaRef{Producto: uuid.New(), Color: &colorID})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestResolverHojaSinTallaRequerida(t *testing.T) {
	e := nuevoEntorno()
	p := productoConTallas(e, 5)

	ref := refCompleta(p)
	ref.Talla = nil
	_, err := e.productoSvc.ResolverHoja(context.Background(), nil, ref)
	assert.ErrorIs(t, err, ErrJerarquiaInvalida)
}

func TestResolverHojaTallaDesconocida(t *testing.T) {
	e := nuevoEntorno()
	p := productoConTallas(e, 5)

	otra := uuid.New()
	ref := refCompleta(p)
	ref.Talla = &otra
	_, err := e.productoSvc.ResolverHoja(context.Background(), nil, ref)
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestResolverHojaTallaSobrante(t *testing.T) {
	e := nuevoEntorno()
	p := productoSinTallas(e, 12)

	sobrante := uuid.New()
	ref := refCompleta(p)
	ref.Talla = &sobrante
	_, err := e.productoSvc.ResolverHoja(context.Background(), nil, ref)
	assert.ErrorIs(t, err, ErrJerarquiaInvalida)
}

func TestResolverHojaSinColor(t *testing.T) {
	e := nuevoEntorno()
	p := productoConTallas(e, 5)

	ref := refCompleta(p)
	ref.Color = nil
	_, err := e.productoSvc.ResolverHoja(context.Background(), nil, ref)
	assert.ErrorIs(t, err, ErrJerarquiaInvalida)
}

func TestResolverHojaVarianteExplicitaNoCoincide(t *testing.T) {
	e := nuevoEntorno()
	p := productoConTallas(e, 5)

	// passthrough node: a supplied id still has to match it
	otra := uuid.New()
	ref := refCompleta(p)
	ref.Variante = &otra
	_, err := e.productoSvc.ResolverHoja(context.Background(), nil, ref)
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestResolverHojaVariantePassthrough(t *testing.T) {
	e := nuevoEntorno()
	p := productoConTallas(e, 5)

	ref := refCompleta(p)
	ref.Variante = &p.Variantes[0].ID
	ref.Calidad = &p.Variantes[0].Calidades[0].ID
	hoja, err := e.productoSvc.ResolverHoja(context.Background(), nil, ref)
	require.NoError(t, err)
	assert.Equal(t, p.Variantes[0].ID, hoja.VarianteID)
}

// ── AjustarStockHojaTx ───────────────────────────────────────────────────────

func TestAjustarStockHojaNoPermiteNegativo(t *testing.T) {
	e := nuevoEntorno()
	p := productoConTallas(e, 5)

	hoja, err := e.productoSvc.ResolverHoja(context.Background(), nil, refCompleta(p))
	require.NoError(t, err)

	assert.ErrorIs(t, e.productoSvc.AjustarStockHojaTx(nil, hoja, -6), ErrStockInsuficiente)
	assert.Equal(t, 5, tallaDe(p).Stock)

	require.NoError(t, e.productoSvc.AjustarStockHojaTx(nil, hoja, -5))
	assert.Equal(t, 0, tallaDe(p).Stock)
}

func TestAjustarStockHojaColor(t *testing.T) {
	e := nuevoEntorno()
	p := productoSinTallas(e, 3)

	hoja, err := e.productoSvc.ResolverHoja(context.Background(), nil, refCompleta(p))
	require.NoError(t, err)

	require.NoError(t, e.productoSvc.AjustarStockHojaTx(nil, hoja, 4))
	assert.Equal(t, 7, *colorDe(p).Stock)
}

// ── Crear ────────────────────────────────────────────────────────────────────

func TestCrearProductoValidaEstructura(t *testing.T) {
	e := nuevoEntorno()
	sub := &model.Subcategoria{ID: uuid.New(), CategoriaID: uuid.New(), Nombre: "Playeras", UsaTallas: true}
	e.productos.subcats[sub.ID] = sub

	costo := decimal.NewFromInt(80)
	base := dto.CrearProductoRequest{
		Nombre:       "Playera Oversized",
		Descripcion:  "Corte amplio",
		Categoria:    sub.CategoriaID.String(),
		Subcategoria: sub.ID.String(),
		Variantes: []dto.VarianteRequest{{
			Calidades: []dto.CalidadRequest{{
				Colores: []dto.ColorRequest{{
					Nombre:    "Negro",
					CodigoHex: "#000000",
					Tallas: []dto.TallaRequest{{
						Codigo: "M",
						Stock:  10,
						Costo:  costo,
					}},
				}},
			}},
		}},
	}

	resp, err := e.productoSvc.Crear(context.Background(), base)
	require.NoError(t, err)
	assert.True(t, resp.Activo)
	require.Len(t, resp.Variantes, 1)
	require.Len(t, resp.Variantes[0].Calidades[0].Colores[0].Tallas, 1)
	assert.Equal(t, 10, resp.Variantes[0].Calidades[0].Colores[0].Tallas[0].Stock)

	// colors under a size-using subcategory must not carry their own stock
	malo := base
	stock := 5
	malo.Variantes = []dto.VarianteRequest{{
		Calidades: []dto.CalidadRequest{{
			Colores: []dto.ColorRequest{{
				Nombre:    "Negro",
				CodigoHex: "#000000",
				Stock:     &stock,
				Tallas:    []dto.TallaRequest{{Codigo: "M", Stock: 10, Costo: costo}},
			}},
		}},
	}}
	_, err = e.productoSvc.Crear(context.Background(), malo)
	assert.ErrorIs(t, err, ErrJerarquiaInvalida)
}

// ── Crecimiento del árbol ────────────────────────────────────────────────────

// productoConVariantes registers a size-using tree that actually uses the
// variante level, so it can keep growing.
func productoConVariantes(e *entorno, stock int) *model.Producto {
	p := productoConTallas(e, stock)
	p.UsaVariante = true
	nombre := "Manga Corta"
	p.Variantes[0].Nombre = &nombre
	return p
}

func TestAgregarVarianteExtiendeArbol(t *testing.T) {
	e := nuevoEntorno()
	p := productoConVariantes(e, 5)

	resp, err := e.productoSvc.AgregarVariante(context.Background(), p.ID, dto.VarianteRequest{
		Nombre: strp("Manga Larga"),
		Calidades: []dto.CalidadRequest{{
			Colores: []dto.ColorRequest{{
				Nombre:    "Blanco",
				CodigoHex: "#FFFFFF",
				Tallas:    []dto.TallaRequest{{Codigo: "L", Stock: 3, Costo: dec(95)}},
			}},
		}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Variantes, 2)
	assert.Equal(t, 1, resp.Variantes[1].Orden)

	// the new leaf resolves and holds stock like any other
	nueva := &p.Variantes[1]
	hoja, err := e.productoSvc.ResolverHoja(context.Background(), nil, HojaRef{
		Producto: p.ID,
		Variante: &nueva.ID,
		Color:    &nueva.Calidades[0].Colores[0].ID,
		Talla:    &nueva.Calidades[0].Colores[0].Tallas[0].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, hoja.Stock)
	assert.Contains(t, hoja.Descripcion, "Manga Larga")
}

func TestAgregarVarianteProductoPassthrough(t *testing.T) {
	e := nuevoEntorno()
	p := productoSinTallas(e, 12)

	_, err := e.productoSvc.AgregarVariante(context.Background(), p.ID, dto.VarianteRequest{
		Calidades: []dto.CalidadRequest{{Colores: []dto.ColorRequest{{Nombre: "Rojo", CodigoHex: "#FF0000"}}}},
	})
	assert.ErrorIs(t, err, ErrJerarquiaInvalida)
}

func TestAgregarColorBajoNivelesColapsados(t *testing.T) {
	e := nuevoEntorno()
	p := productoSinTallas(e, 12)

	stock := 6
	costo := dec(40)
	resp, err := e.productoSvc.AgregarColor(context.Background(), p.ID, dto.AgregarColorRequest{
		Color: dto.ColorRequest{Nombre: "Rojo", CodigoHex: "#FF0000", Stock: &stock, Costo: &costo},
	})
	require.NoError(t, err)
	require.Len(t, resp.Variantes[0].Calidades[0].Colores, 2)

	nuevo := &p.Variantes[0].Calidades[0].Colores[1]
	hoja, err := e.productoSvc.ResolverHoja(context.Background(), nil, HojaRef{Producto: p.ID, Color: &nuevo.ID})
	require.NoError(t, err)
	assert.Equal(t, 6, hoja.Stock)
	assert.True(t, hoja.Costo.Equal(costo))
}

func TestAgregarColorValidaEstructura(t *testing.T) {
	e := nuevoEntorno()
	p := productoSinTallas(e, 12)

	// sizes under a color-level subcategory break the shape
	_, err := e.productoSvc.AgregarColor(context.Background(), p.ID, dto.AgregarColorRequest{
		Color: dto.ColorRequest{
			Nombre:    "Rojo",
			CodigoHex: "#FF0000",
			Tallas:    []dto.TallaRequest{{Codigo: "M", Stock: 2, Costo: dec(40)}},
		},
	})
	assert.ErrorIs(t, err, ErrJerarquiaInvalida)

	// an explicit variante id still has to match the passthrough node
	stock := 6
	costo := dec(40)
	_, err = e.productoSvc.AgregarColor(context.Background(), p.ID, dto.AgregarColorRequest{
		Variante: strp(uuid.NewString()),
		Color:    dto.ColorRequest{Nombre: "Rojo", CodigoHex: "#FF0000", Stock: &stock, Costo: &costo},
	})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestAgregarTallaExtiendeColor(t *testing.T) {
	e := nuevoEntorno()
	p := productoConTallas(e, 5)
	col := colorDe(p)

	resp, err := e.productoSvc.AgregarTalla(context.Background(), p.ID, dto.AgregarTallaRequest{
		Color: col.ID.String(),
		Talla: dto.TallaRequest{Codigo: "XL", Stock: 2, Costo: dec(90)},
	})
	require.NoError(t, err)
	require.Len(t, resp.Variantes[0].Calidades[0].Colores[0].Tallas, 2)

	nueva := &col.Tallas[1]
	hoja, err := e.productoSvc.ResolverHoja(context.Background(), nil, HojaRef{
		Producto: p.ID, Color: &col.ID, Talla: &nueva.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, hoja.Stock)

	require.NoError(t, e.productoSvc.AjustarStockHojaTx(nil, hoja, -2))
	assert.Equal(t, 0, col.Tallas[1].Stock)
}

func TestAgregarTallaSubcategoriaSinTallas(t *testing.T) {
	e := nuevoEntorno()
	p := productoSinTallas(e, 12)

	_, err := e.productoSvc.AgregarTalla(context.Background(), p.ID, dto.AgregarTallaRequest{
		Color: colorDe(p).ID.String(),
		Talla: dto.TallaRequest{Codigo: "M", Stock: 1, Costo: dec(40)},
	})
	assert.ErrorIs(t, err, ErrJerarquiaInvalida)
}

func TestAgregarTallaColorDesconocido(t *testing.T) {
	e := nuevoEntorno()
	p := productoConTallas(e, 5)

	_, err := e.productoSvc.AgregarTalla(context.Background(), p.ID, dto.AgregarTallaRequest{
		Color: uuid.NewString(),
		Talla: dto.TallaRequest{Codigo: "M", Stock: 1, Costo: dec(80)},
	})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestCrearProductoSubcategoriaAjena(t *testing.T) {
	e := nuevoEntorno()
	sub := &model.Subcategoria{ID: uuid.New(), CategoriaID: uuid.New(), Nombre: "Playeras", UsaTallas: true}
	e.productos.subcats[sub.ID] = sub

	_, err := e.productoSvc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:       "Playera",
		Categoria:    uuid.NewString(), // not the subcategory's parent
		Subcategoria: sub.ID.String(),
	})
	assert.ErrorIs(t, err, ErrJerarquiaInvalida)
}
