package service

import (
	"context"
	"strings"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/model"
	"github.com/upstagebunion/craftzApp/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Hoja is a resolved stock leaf: the full id path down the tree plus the stock
// and cost read at resolution time. It is a handle, not a live reference — all
// mutation goes back through the repository against the leaf id.
type Hoja struct {
	ProductoID  uuid.UUID
	VarianteID  uuid.UUID
	CalidadID   uuid.UUID
	ColorID     uuid.UUID
	TallaID     *uuid.UUID
	Stock       int
	Costo       decimal.Decimal
	Descripcion string
}

// HojaRef is the client-supplied path. Variante and Calidad may be omitted when
// the product does not use that level; Talla when the subcategory has no sizes.
type HojaRef struct {
	Producto uuid.UUID
	Variante *uuid.UUID
	Calidad  *uuid.UUID
	Color    *uuid.UUID
	Talla    *uuid.UUID
}

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	// Tree growth: append a variante/color/talla to an existing product without
	// recreating it. The same structural rules as Crear apply to the new node.
	AgregarVariante(ctx context.Context, id uuid.UUID, req dto.VarianteRequest) (*dto.ProductoResponse, error)
	AgregarColor(ctx context.Context, id uuid.UUID, req dto.AgregarColorRequest) (*dto.ProductoResponse, error)
	AgregarTalla(ctx context.Context, id uuid.UUID, req dto.AgregarTallaRequest) (*dto.ProductoResponse, error)

	// ResolverHoja descends the tree by the given path. With tx != nil the leaf
	// stock is re-read under a row lock so concurrent transitions serialize.
	ResolverHoja(ctx context.Context, tx *gorm.DB, ref HojaRef) (*Hoja, error)
	// AjustarStockHojaTx applies a signed delta to the leaf. A delta that would
	// leave the stock negative fails with ErrStockInsuficiente.
	AjustarStockHojaTx(tx *gorm.DB, hoja *Hoja, delta int) error
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

// ── Árbol de stock ───────────────────────────────────────────────────────────

func (s *productoService) ResolverHoja(ctx context.Context, tx *gorm.DB, ref HojaRef) (*Hoja, error) {
	p, err := s.repo.FindByIDTx(ctx, tx, ref.Producto)
	if err != nil {
		return nil, traducirNoEncontrado(err)
	}
	if p.Subcategoria == nil {
		return nil, ErrJerarquiaInvalida
	}

	variante, err := elegirVariante(p, ref.Variante)
	if err != nil {
		return nil, err
	}
	calidad, err := elegirCalidad(p, variante, ref.Calidad)
	if err != nil {
		return nil, err
	}

	if ref.Color == nil {
		return nil, ErrJerarquiaInvalida
	}
	var color *model.Color
	for i := range calidad.Colores {
		if calidad.Colores[i].ID == *ref.Color {
			color = &calidad.Colores[i]
			break
		}
	}
	if color == nil {
		return nil, ErrNoEncontrado
	}

	hoja := &Hoja{
		ProductoID: p.ID,
		VarianteID: variante.ID,
		CalidadID:  calidad.ID,
		ColorID:    color.ID,
	}

	if p.Subcategoria.UsaTallas {
		if ref.Talla == nil {
			return nil, ErrJerarquiaInvalida
		}
		var talla *model.Talla
		for i := range color.Tallas {
			if color.Tallas[i].ID == *ref.Talla {
				talla = &color.Tallas[i]
				break
			}
		}
		if talla == nil {
			return nil, ErrNoEncontrado
		}
		hoja.TallaID = &talla.ID
		hoja.Stock = talla.Stock
		hoja.Costo = talla.Costo
		hoja.Descripcion = descripcionHoja(p, variante, calidad, color, talla)
	} else {
		if ref.Talla != nil || color.Stock == nil {
			return nil, ErrJerarquiaInvalida
		}
		hoja.Stock = *color.Stock
		if color.Costo != nil {
			hoja.Costo = *color.Costo
		}
		hoja.Descripcion = descripcionHoja(p, variante, calidad, color, nil)
	}

	// Inside a transaction, re-read the leaf under FOR UPDATE: the preloaded
	// stock may be stale by the time the transition acts on it.
	if tx != nil {
		if hoja.TallaID != nil {
			stock, err := s.repo.TallaStockForUpdateTx(tx, *hoja.TallaID)
			if err != nil {
				return nil, traducirNoEncontrado(err)
			}
			hoja.Stock = stock
		} else {
			stock, err := s.repo.ColorStockForUpdateTx(tx, hoja.ColorID)
			if err != nil {
				return nil, traducirNoEncontrado(err)
			}
			if stock == nil {
				return nil, ErrJerarquiaInvalida
			}
			hoja.Stock = *stock
		}
	}

	return hoja, nil
}

func elegirVariante(p *model.Producto, id *uuid.UUID) (*model.Variante, error) {
	if len(p.Variantes) == 0 {
		return nil, ErrJerarquiaInvalida
	}
	if !p.UsaVariante {
		// Single passthrough node; an explicit id must still match it.
		if id != nil && *id != p.Variantes[0].ID {
			return nil, ErrNoEncontrado
		}
		return &p.Variantes[0], nil
	}
	if id == nil {
		return nil, ErrJerarquiaInvalida
	}
	for i := range p.Variantes {
		if p.Variantes[i].ID == *id {
			return &p.Variantes[i], nil
		}
	}
	return nil, ErrNoEncontrado
}

func elegirCalidad(p *model.Producto, v *model.Variante, id *uuid.UUID) (*model.Calidad, error) {
	if len(v.Calidades) == 0 {
		return nil, ErrJerarquiaInvalida
	}
	if !p.UsaCalidad {
		if id != nil && *id != v.Calidades[0].ID {
			return nil, ErrNoEncontrado
		}
		return &v.Calidades[0], nil
	}
	if id == nil {
		return nil, ErrJerarquiaInvalida
	}
	for i := range v.Calidades {
		if v.Calidades[i].ID == *id {
			return &v.Calidades[i], nil
		}
	}
	return nil, ErrNoEncontrado
}

// descripcionHoja builds the human-readable path snapshot stored on movements.
func descripcionHoja(p *model.Producto, v *model.Variante, c *model.Calidad, col *model.Color, t *model.Talla) string {
	partes := []string{p.Nombre}
	if v.Nombre != nil && *v.Nombre != "" {
		partes = append(partes, *v.Nombre)
	}
	if c.Nombre != nil && *c.Nombre != "" {
		partes = append(partes, *c.Nombre)
	}
	partes = append(partes, col.Nombre)
	if t != nil {
		if t.Nombre != nil && *t.Nombre != "" {
			partes = append(partes, *t.Nombre)
		} else {
			partes = append(partes, t.Codigo)
		}
	}
	return strings.Join(partes, " / ")
}

func (s *productoService) AjustarStockHojaTx(tx *gorm.DB, hoja *Hoja, delta int) error {
	var err error
	if hoja.TallaID != nil {
		err = s.repo.AjustarStockTallaTx(tx, *hoja.TallaID, delta)
	} else {
		err = s.repo.AjustarStockColorTx(tx, hoja.ColorID, delta)
	}
	if err == repository.ErrStockNegativo {
		return ErrStockInsuficiente
	}
	return err
}

// ── CRUD ─────────────────────────────────────────────────────────────────────

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	categoriaID, err := uuid.Parse(req.Categoria)
	if err != nil {
		return nil, ErrValidacion
	}
	subcategoriaID, err := uuid.Parse(req.Subcategoria)
	if err != nil {
		return nil, ErrValidacion
	}
	sub, err := s.repo.FindSubcategoria(ctx, subcategoriaID)
	if err != nil {
		return nil, traducirNoEncontrado(err)
	}
	if sub.CategoriaID != categoriaID {
		return nil, ErrJerarquiaInvalida
	}

	p := &model.Producto{
		Nombre:         req.Nombre,
		Descripcion:    req.Descripcion,
		CategoriaID:    categoriaID,
		SubcategoriaID: subcategoriaID,
		UsaVariante:    req.UsaVariante,
		UsaCalidad:     req.UsaCalidad,
		Activo:         true,
	}
	if err := validarEstructura(req, sub.UsaTallas); err != nil {
		return nil, err
	}
	p.Variantes = construirVariantes(req.Variantes, sub.UsaTallas)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	creado, err := s.repo.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return productoToResponse(creado), nil
}

// validarEstructura enforces the tree shape the flags promise: unused levels
// collapse to exactly one node, and leaves live at the level the subcategory
// dictates (Talla when usaTallas, Color otherwise).
func validarEstructura(req dto.CrearProductoRequest, usaTallas bool) error {
	if !req.UsaVariante && len(req.Variantes) != 1 {
		return ErrJerarquiaInvalida
	}
	for _, v := range req.Variantes {
		if err := validarVariante(v, req.UsaCalidad, usaTallas); err != nil {
			return err
		}
	}
	return nil
}

func validarVariante(v dto.VarianteRequest, usaCalidad, usaTallas bool) error {
	if !usaCalidad && len(v.Calidades) != 1 {
		return ErrJerarquiaInvalida
	}
	for _, c := range v.Calidades {
		for _, col := range c.Colores {
			if err := validarColor(col, usaTallas); err != nil {
				return err
			}
		}
	}
	return nil
}

func validarColor(col dto.ColorRequest, usaTallas bool) error {
	if usaTallas {
		if len(col.Tallas) == 0 || col.Stock != nil {
			return ErrJerarquiaInvalida
		}
	} else {
		if len(col.Tallas) > 0 || col.Stock == nil || col.Costo == nil {
			return ErrJerarquiaInvalida
		}
	}
	return nil
}

func construirVariantes(reqs []dto.VarianteRequest, usaTallas bool) []model.Variante {
	variantes := make([]model.Variante, 0, len(reqs))
	for i, vr := range reqs {
		variantes = append(variantes, construirVariante(vr, usaTallas, i))
	}
	return variantes
}

func construirVariante(vr dto.VarianteRequest, usaTallas bool, orden int) model.Variante {
	v := model.Variante{
		Nombre:           vr.Nombre,
		DisponibleOnline: vr.DisponibleOnline,
		Orden:            orden,
	}
	for j, cr := range vr.Calidades {
		c := model.Calidad{
			Nombre:           cr.Nombre,
			DisponibleOnline: cr.DisponibleOnline,
			Orden:            j,
		}
		for k, colr := range cr.Colores {
			c.Colores = append(c.Colores, construirColor(colr, usaTallas, k))
		}
		v.Calidades = append(v.Calidades, c)
	}
	return v
}

func construirColor(colr dto.ColorRequest, usaTallas bool, orden int) model.Color {
	col := model.Color{
		Nombre:           colr.Nombre,
		CodigoHex:        colr.CodigoHex,
		SUK:              colr.SUK,
		DisponibleOnline: colr.DisponibleOnline,
		Orden:            orden,
	}
	if usaTallas {
		for l, tr := range colr.Tallas {
			col.Tallas = append(col.Tallas, construirTalla(tr, l))
		}
	} else {
		col.Stock = colr.Stock
		col.Costo = colr.Costo
	}
	return col
}

func construirTalla(tr dto.TallaRequest, orden int) model.Talla {
	return model.Talla{
		SUK:              tr.SUK,
		Codigo:           tr.Codigo,
		Nombre:           tr.Nombre,
		Stock:            tr.Stock,
		Costo:            tr.Costo,
		DisponibleOnline: tr.DisponibleOnline,
		Orden:            orden,
	}
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducirNoEncontrado(err)
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.ProductoListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducirNoEncontrado(err)
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = *req.Descripcion
	}
	if req.Categoria != nil {
		categoriaID, err := uuid.Parse(*req.Categoria)
		if err != nil {
			return nil, ErrValidacion
		}
		p.CategoriaID = categoriaID
	}
	if req.Subcategoria != nil {
		subID, err := uuid.Parse(*req.Subcategoria)
		if err != nil {
			return nil, ErrValidacion
		}
		sub, err := s.repo.FindSubcategoria(ctx, subID)
		if err != nil {
			return nil, traducirNoEncontrado(err)
		}
		if sub.CategoriaID != p.CategoriaID {
			return nil, ErrJerarquiaInvalida
		}
		p.SubcategoriaID = subID
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

// ── Crecimiento del árbol ────────────────────────────────────────────────────

// AgregarVariante appends a complete variant subtree to an existing product.
// Only products that use the variant level can grow here: a passthrough
// product holds exactly one node by construction.
func (s *productoService) AgregarVariante(ctx context.Context, id uuid.UUID, req dto.VarianteRequest) (*dto.ProductoResponse, error) {
	p, sub, err := s.cargarConSubcategoria(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.UsaVariante {
		return nil, ErrJerarquiaInvalida
	}
	if err := validarVariante(req, p.UsaCalidad, sub.UsaTallas); err != nil {
		return nil, err
	}
	v := construirVariante(req, sub.UsaTallas, len(p.Variantes))
	v.ProductoID = p.ID
	if err := s.repo.CreateVariante(ctx, &v); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

// AgregarColor appends a color (with its sizes when the subcategory uses them)
// under the calidad resolved from the optional variante/calidad ids.
func (s *productoService) AgregarColor(ctx context.Context, id uuid.UUID, req dto.AgregarColorRequest) (*dto.ProductoResponse, error) {
	p, sub, err := s.cargarConSubcategoria(ctx, id)
	if err != nil {
		return nil, err
	}
	_, calidad, err := localizarCalidad(p, req.Variante, req.Calidad)
	if err != nil {
		return nil, err
	}
	if err := validarColor(req.Color, sub.UsaTallas); err != nil {
		return nil, err
	}
	col := construirColor(req.Color, sub.UsaTallas, len(calidad.Colores))
	col.CalidadID = calidad.ID
	if err := s.repo.CreateColor(ctx, &col); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

// AgregarTalla appends a size under an existing color. Rejected outright when
// the subcategory keeps stock at the color level.
func (s *productoService) AgregarTalla(ctx context.Context, id uuid.UUID, req dto.AgregarTallaRequest) (*dto.ProductoResponse, error) {
	p, sub, err := s.cargarConSubcategoria(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sub.UsaTallas {
		return nil, ErrJerarquiaInvalida
	}
	_, calidad, err := localizarCalidad(p, req.Variante, req.Calidad)
	if err != nil {
		return nil, err
	}
	colorID, err := uuid.Parse(req.Color)
	if err != nil {
		return nil, ErrValidacion
	}
	var color *model.Color
	for i := range calidad.Colores {
		if calidad.Colores[i].ID == colorID {
			color = &calidad.Colores[i]
			break
		}
	}
	if color == nil {
		return nil, ErrNoEncontrado
	}
	t := construirTalla(req.Talla, len(color.Tallas))
	t.ColorID = color.ID
	if err := s.repo.CreateTalla(ctx, &t); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *productoService) cargarConSubcategoria(ctx context.Context, id uuid.UUID) (*model.Producto, *model.Subcategoria, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, traducirNoEncontrado(err)
	}
	sub := p.Subcategoria
	if sub == nil {
		sub, err = s.repo.FindSubcategoria(ctx, p.SubcategoriaID)
		if err != nil {
			return nil, nil, traducirNoEncontrado(err)
		}
	}
	return p, sub, nil
}

// localizarCalidad resolves the grouping levels from the optional request ids,
// applying the same passthrough rules as leaf resolution.
func localizarCalidad(p *model.Producto, varianteID, calidadID *string) (*model.Variante, *model.Calidad, error) {
	var vid, cid *uuid.UUID
	if varianteID != nil {
		parsed, err := uuid.Parse(*varianteID)
		if err != nil {
			return nil, nil, ErrValidacion
		}
		vid = &parsed
	}
	if calidadID != nil {
		parsed, err := uuid.Parse(*calidadID)
		if err != nil {
			return nil, nil, ErrValidacion
		}
		cid = &parsed
	}
	v, err := elegirVariante(p, vid)
	if err != nil {
		return nil, nil, err
	}
	c, err := elegirCalidad(p, v, cid)
	if err != nil {
		return nil, nil, err
	}
	return v, c, nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return traducirNoEncontrado(err)
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return traducirNoEncontrado(err)
	}
	return s.repo.Reactivar(ctx, id)
}

// ── Mapeo a DTOs ─────────────────────────────────────────────────────────────

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	variantes := make([]dto.VarianteResponse, 0, len(p.Variantes))
	for _, v := range p.Variantes {
		calidades := make([]dto.CalidadResponse, 0, len(v.Calidades))
		for _, c := range v.Calidades {
			colores := make([]dto.ColorResponse, 0, len(c.Colores))
			for _, col := range c.Colores {
				var tallas []dto.TallaResponse
				for _, t := range col.Tallas {
					tallas = append(tallas, dto.TallaResponse{
						ID:               t.ID.String(),
						SUK:              t.SUK,
						Codigo:           t.Codigo,
						Nombre:           t.Nombre,
						Stock:            t.Stock,
						Costo:            t.Costo,
						DisponibleOnline: t.DisponibleOnline,
						Orden:            t.Orden,
					})
				}
				colores = append(colores, dto.ColorResponse{
					ID:               col.ID.String(),
					Nombre:           col.Nombre,
					CodigoHex:        col.CodigoHex,
					SUK:              col.SUK,
					Stock:            col.Stock,
					Costo:            col.Costo,
					DisponibleOnline: col.DisponibleOnline,
					Orden:            col.Orden,
					Tallas:           tallas,
				})
			}
			calidades = append(calidades, dto.CalidadResponse{
				ID:               c.ID.String(),
				Nombre:           c.Nombre,
				DisponibleOnline: c.DisponibleOnline,
				Orden:            c.Orden,
				Colores:          colores,
			})
		}
		variantes = append(variantes, dto.VarianteResponse{
			ID:               v.ID.String(),
			Nombre:           v.Nombre,
			DisponibleOnline: v.DisponibleOnline,
			Orden:            v.Orden,
			Calidades:        calidades,
		})
	}
	return &dto.ProductoResponse{
		ID:            p.ID.String(),
		Nombre:        p.Nombre,
		Descripcion:   p.Descripcion,
		Categoria:     p.CategoriaID.String(),
		Subcategoria:  p.SubcategoriaID.String(),
		UsaVariante:   p.UsaVariante,
		UsaCalidad:    p.UsaCalidad,
		Activo:        p.Activo,
		Variantes:     variantes,
		FechaCreacion: p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
