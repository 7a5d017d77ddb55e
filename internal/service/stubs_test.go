package service

// stubs_test.go
// In-memory repository stubs. They return a nil *gorm.DB from DB(), which puts
// runTx in pass-through mode: the service logic under test runs exactly as in
// production minus the SQL, so the guards and effects can be asserted directly.

import (
	"context"
	"time"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/model"
	"github.com/upstagebunion/craftzApp/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── ProductoRepository ────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	subcats   map[uuid.UUID]*model.Subcategoria
	tallas    map[uuid.UUID]*model.Talla
	colores   map[uuid.UUID]*model.Color
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{
		productos: make(map[uuid.UUID]*model.Producto),
		subcats:   make(map[uuid.UUID]*model.Subcategoria),
		tallas:    make(map[uuid.UUID]*model.Talla),
		colores:   make(map[uuid.UUID]*model.Color),
	}
}

// registrar indexes the product tree so the stock primitives can reach the
// same leaf structs the resolver walks.
func (r *stubProductoRepo) registrar(p *model.Producto) {
	r.productos[p.ID] = p
	if p.Subcategoria != nil {
		r.subcats[p.Subcategoria.ID] = p.Subcategoria
	}
	for i := range p.Variantes {
		for j := range p.Variantes[i].Calidades {
			for k := range p.Variantes[i].Calidades[j].Colores {
				col := &p.Variantes[i].Calidades[j].Colores[k]
				r.colores[col.ID] = col
				for l := range col.Tallas {
					r.tallas[col.Tallas[l].ID] = &col.Tallas[l]
				}
			}
		}
	}
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.registrar(p)
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByIDTx(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(ctx, id)
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}

func (r *stubProductoRepo) FindSubcategoria(_ context.Context, id uuid.UUID) (*model.Subcategoria, error) {
	s, ok := r.subcats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubProductoRepo) CreateVariante(_ context.Context, v *model.Variante) error {
	p, ok := r.productos[v.ProductoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range v.Calidades {
		cal := &v.Calidades[i]
		if cal.ID == uuid.Nil {
			cal.ID = uuid.New()
		}
		cal.VarianteID = v.ID
		for j := range cal.Colores {
			col := &cal.Colores[j]
			if col.ID == uuid.Nil {
				col.ID = uuid.New()
			}
			col.CalidadID = cal.ID
			for k := range col.Tallas {
				if col.Tallas[k].ID == uuid.Nil {
					col.Tallas[k].ID = uuid.New()
				}
				col.Tallas[k].ColorID = col.ID
			}
		}
	}
	p.Variantes = append(p.Variantes, *v)
	r.registrar(p)
	return nil
}

func (r *stubProductoRepo) CreateColor(_ context.Context, c *model.Color) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for k := range c.Tallas {
		if c.Tallas[k].ID == uuid.Nil {
			c.Tallas[k].ID = uuid.New()
		}
		c.Tallas[k].ColorID = c.ID
	}
	for _, p := range r.productos {
		for i := range p.Variantes {
			for j := range p.Variantes[i].Calidades {
				cal := &p.Variantes[i].Calidades[j]
				if cal.ID != c.CalidadID {
					continue
				}
				cal.Colores = append(cal.Colores, *c)
				r.registrar(p)
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) CreateTalla(_ context.Context, t *model.Talla) error {
	col, ok := r.colores[t.ColorID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	col.Tallas = append(col.Tallas, *t)
	// The append may reallocate; refresh the talla index so the stock
	// primitives keep pointing into the live slice.
	for l := range col.Tallas {
		r.tallas[col.Tallas[l].ID] = &col.Tallas[l]
	}
	return nil
}

func (r *stubProductoRepo) TallaStockForUpdateTx(_ *gorm.DB, id uuid.UUID) (int, error) {
	t, ok := r.tallas[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return t.Stock, nil
}

func (r *stubProductoRepo) ColorStockForUpdateTx(_ *gorm.DB, id uuid.UUID) (*int, error) {
	c, ok := r.colores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c.Stock, nil
}

func (r *stubProductoRepo) AjustarStockTallaTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	t, ok := r.tallas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if t.Stock+delta < 0 {
		return repository.ErrStockNegativo
	}
	t.Stock += delta
	return nil
}

func (r *stubProductoRepo) AjustarStockColorTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	c, ok := r.colores[id]
	if !ok || c.Stock == nil {
		return gorm.ErrRecordNotFound
	}
	if *c.Stock+delta < 0 {
		return repository.ErrStockNegativo
	}
	*c.Stock += delta
	return nil
}

// ── VentaRepository ───────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) CreateTx(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range v.Productos {
		if v.Productos[i].ID == uuid.Nil {
			v.Productos[i].ID = uuid.New()
		}
		v.Productos[i].VentaID = v.ID
	}
	v.CreatedAt = time.Now()
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) FindByIDForUpdateTx(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	return r.FindByID(ctx, id)
}

func (r *stubVentaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = estado
	return nil
}

func (r *stubVentaRepo) UpdateTx(_ *gorm.DB, v *model.Venta) error {
	actual, ok := r.ventas[v.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	actual.Estado = v.Estado
	actual.Restante = v.Restante
	actual.Liquidado = v.Liquidado
	actual.FechaLiquidacion = v.FechaLiquidacion
	return nil
}

func (r *stubVentaRepo) CreatePagoTx(_ *gorm.DB, p *model.Pago) error {
	v, ok := r.ventas[p.VentaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	v.Pagos = append(v.Pagos, *p)
	return nil
}

func (r *stubVentaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.ventas, id)
	return nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

// ── CotizacionRepository ──────────────────────────────────────────────────────

type stubCotizacionRepo struct {
	cotizaciones map[uuid.UUID]*model.Cotizacion
}

func newStubCotizacionRepo() *stubCotizacionRepo {
	return &stubCotizacionRepo{cotizaciones: make(map[uuid.UUID]*model.Cotizacion)}
}

func (r *stubCotizacionRepo) DB() *gorm.DB { return nil }

func (r *stubCotizacionRepo) Create(_ context.Context, c *model.Cotizacion) error {
	return r.CreateTx(nil, c)
}

func (r *stubCotizacionRepo) CreateTx(_ *gorm.DB, c *model.Cotizacion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Productos {
		if c.Productos[i].ID == uuid.Nil {
			c.Productos[i].ID = uuid.New()
		}
		c.Productos[i].CotizacionID = c.ID
	}
	c.CreatedAt = time.Now()
	r.cotizaciones[c.ID] = c
	return nil
}

func (r *stubCotizacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	c, ok := r.cotizaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCotizacionRepo) FindByIDForUpdateTx(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Cotizacion, error) {
	return r.FindByID(ctx, id)
}

func (r *stubCotizacionRepo) MarcarConvertidaTx(_ *gorm.DB, id, ventaID uuid.UUID) error {
	c, ok := r.cotizaciones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.ConvertidaAVentaID = &ventaID
	c.Activa = false
	return nil
}

func (r *stubCotizacionRepo) Update(_ context.Context, c *model.Cotizacion) error {
	r.cotizaciones[c.ID] = c
	return nil
}

func (r *stubCotizacionRepo) ReemplazarItemsTx(_ *gorm.DB, c *model.Cotizacion) error {
	for i := range c.Productos {
		if c.Productos[i].ID == uuid.Nil {
			c.Productos[i].ID = uuid.New()
		}
		c.Productos[i].CotizacionID = c.ID
	}
	r.cotizaciones[c.ID] = c
	return nil
}

func (r *stubCotizacionRepo) ListActivas(_ context.Context, ahora time.Time) ([]model.Cotizacion, error) {
	var out []model.Cotizacion
	for _, c := range r.cotizaciones {
		if c.Activa && c.ConvertidaAVentaID == nil && c.Expira.After(ahora) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCotizacionRepo) ListFiltradas(_ context.Context, _ dto.CotizacionFilter) ([]model.Cotizacion, error) {
	var out []model.Cotizacion
	for _, c := range r.cotizaciones {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCotizacionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.cotizaciones, id)
	return nil
}

// ── MovimientoRepository ──────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []model.MovimientoInventario
}

func newStubMovimientoRepo() *stubMovimientoRepo { return &stubMovimientoRepo{} }

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoInventario) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) FindByVentaTx(_ *gorm.DB, ventaID uuid.UUID) ([]model.MovimientoInventario, error) {
	var out []model.MovimientoInventario
	for _, m := range r.movimientos {
		if m.ReferenciaID != nil && *m.ReferenciaID == ventaID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovimientoRepo) ReclasificarMotivoTx(_ *gorm.DB, ventaID uuid.UUID, motivo string) error {
	for i := range r.movimientos {
		if r.movimientos[i].ReferenciaID != nil && *r.movimientos[i].ReferenciaID == ventaID {
			r.movimientos[i].Motivo = motivo
		}
	}
	return nil
}

func (r *stubMovimientoRepo) DeleteByVentaTx(_ *gorm.DB, ventaID uuid.UUID) error {
	restantes := r.movimientos[:0]
	for _, m := range r.movimientos {
		if m.ReferenciaID == nil || *m.ReferenciaID != ventaID {
			restantes = append(restantes, m)
		}
	}
	r.movimientos = restantes
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, _ dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	return append([]model.MovimientoInventario(nil), r.movimientos...), int64(len(r.movimientos)), nil
}

// ── ClienteRepository ─────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

func (r *stubClienteRepo) IncrementarComprasTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Compras += delta
	return nil
}

// ── CatalogoRepository ────────────────────────────────────────────────────────

type stubCatalogoRepo struct {
	categorias map[uuid.UUID]*model.Categoria
	subcats    map[uuid.UUID]*model.Subcategoria
	extras     map[uuid.UUID]*model.Extra
	costos     map[uuid.UUID]*model.CostoElaboracion
}

func newStubCatalogoRepo() *stubCatalogoRepo {
	return &stubCatalogoRepo{
		categorias: make(map[uuid.UUID]*model.Categoria),
		subcats:    make(map[uuid.UUID]*model.Subcategoria),
		extras:     make(map[uuid.UUID]*model.Extra),
		costos:     make(map[uuid.UUID]*model.CostoElaboracion),
	}
}

func (r *stubCatalogoRepo) CreateCategoria(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCatalogoRepo) ListCategorias(_ context.Context) ([]model.Categoria, error) {
	var out []model.Categoria
	for _, c := range r.categorias {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCatalogoRepo) FindCategoria(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCatalogoRepo) UpdateCategoria(_ context.Context, c *model.Categoria) error {
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCatalogoRepo) DeleteCategoria(_ context.Context, id uuid.UUID) error {
	delete(r.categorias, id)
	return nil
}

func (r *stubCatalogoRepo) CreateSubcategoria(_ context.Context, s *model.Subcategoria) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.subcats[s.ID] = s
	return nil
}

func (r *stubCatalogoRepo) FindSubcategoria(_ context.Context, id uuid.UUID) (*model.Subcategoria, error) {
	s, ok := r.subcats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubCatalogoRepo) UpdateSubcategoria(_ context.Context, s *model.Subcategoria) error {
	r.subcats[s.ID] = s
	return nil
}

func (r *stubCatalogoRepo) DeleteSubcategoria(_ context.Context, id uuid.UUID) error {
	delete(r.subcats, id)
	return nil
}

func (r *stubCatalogoRepo) CreateExtra(_ context.Context, e *model.Extra) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.extras[e.ID] = e
	return nil
}

func (r *stubCatalogoRepo) ListExtras(_ context.Context) ([]model.Extra, error) {
	var out []model.Extra
	for _, e := range r.extras {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubCatalogoRepo) FindExtra(_ context.Context, id uuid.UUID) (*model.Extra, error) {
	e, ok := r.extras[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubCatalogoRepo) UpdateExtra(_ context.Context, e *model.Extra) error {
	r.extras[e.ID] = e
	return nil
}

func (r *stubCatalogoRepo) DeleteExtra(_ context.Context, id uuid.UUID) error {
	delete(r.extras, id)
	return nil
}

func (r *stubCatalogoRepo) CreateCosto(_ context.Context, c *model.CostoElaboracion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.costos[c.ID] = c
	return nil
}

func (r *stubCatalogoRepo) ListCostos(_ context.Context) ([]model.CostoElaboracion, error) {
	var out []model.CostoElaboracion
	for _, c := range r.costos {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCatalogoRepo) FindCosto(_ context.Context, id uuid.UUID) (*model.CostoElaboracion, error) {
	c, ok := r.costos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCatalogoRepo) UpdateCosto(_ context.Context, c *model.CostoElaboracion) error {
	r.costos[c.ID] = c
	return nil
}

func (r *stubCatalogoRepo) DeleteCosto(_ context.Context, id uuid.UUID) error {
	delete(r.costos, id)
	return nil
}
