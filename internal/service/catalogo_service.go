package service

import (
	"context"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/model"
	"github.com/upstagebunion/craftzApp/internal/repository"

	"github.com/google/uuid"
)

// CatalogoService manages the reference collections around products:
// categorías/subcategorías, extras and production cost parameters.
type CatalogoService interface {
	CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	ListarCategorias(ctx context.Context) ([]dto.CategoriaResponse, error)
	ActualizarCategoria(ctx context.Context, id uuid.UUID, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	EliminarCategoria(ctx context.Context, id uuid.UUID) error

	CrearSubcategoria(ctx context.Context, categoriaID uuid.UUID, req dto.CrearSubcategoriaRequest) (*dto.SubcategoriaResponse, error)
	ActualizarSubcategoria(ctx context.Context, id uuid.UUID, req dto.CrearSubcategoriaRequest) (*dto.SubcategoriaResponse, error)
	EliminarSubcategoria(ctx context.Context, id uuid.UUID) error

	CrearExtra(ctx context.Context, req dto.CrearExtraRequest) (*dto.ExtraResponse, error)
	ListarExtras(ctx context.Context) ([]dto.ExtraResponse, error)
	ActualizarExtra(ctx context.Context, id uuid.UUID, req dto.ActualizarExtraRequest) (*dto.ExtraResponse, error)
	EliminarExtra(ctx context.Context, id uuid.UUID) error

	CrearCosto(ctx context.Context, req dto.CrearCostoElaboracionRequest) (*dto.CostoElaboracionResponse, error)
	ListarCostos(ctx context.Context) ([]dto.CostoElaboracionResponse, error)
	ActualizarCosto(ctx context.Context, id uuid.UUID, req dto.ActualizarCostoElaboracionRequest) (*dto.CostoElaboracionResponse, error)
	EliminarCosto(ctx context.Context, id uuid.UUID) error
}

type catalogoService struct {
	repo repository.CatalogoRepository
}

func NewCatalogoService(repo repository.CatalogoRepository) CatalogoService {
	return &catalogoService{repo: repo}
}

// ── Categorías ───────────────────────────────────────────────────────────────

func (s *catalogoService) CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	c := &model.Categoria{Nombre: req.Nombre}
	if err := s.repo.CreateCategoria(ctx, c); err != nil {
		return nil, err
	}
	resp := categoriaToResponse(c)
	return &resp, nil
}

func (s *catalogoService) ListarCategorias(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.ListCategorias(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaResponse, len(categorias))
	for i := range categorias {
		resp[i] = categoriaToResponse(&categorias[i])
	}
	return resp, nil
}

func (s *catalogoService) ActualizarCategoria(ctx context.Context, id uuid.UUID, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	c, err := s.repo.FindCategoria(ctx, id)
	if err != nil {
		return nil, traducirNoEncontrado(err)
	}
	c.Nombre = req.Nombre
	if err := s.repo.UpdateCategoria(ctx, c); err != nil {
		return nil, err
	}
	resp := categoriaToResponse(c)
	return &resp, nil
}

func (s *catalogoService) EliminarCategoria(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindCategoria(ctx, id); err != nil {
		return traducirNoEncontrado(err)
	}
	return s.repo.DeleteCategoria(ctx, id)
}

// ── Subcategorías ────────────────────────────────────────────────────────────

func (s *catalogoService) CrearSubcategoria(ctx context.Context, categoriaID uuid.UUID, req dto.CrearSubcategoriaRequest) (*dto.SubcategoriaResponse, error) {
	if _, err := s.repo.FindCategoria(ctx, categoriaID); err != nil {
		return nil, traducirNoEncontrado(err)
	}
	sub := &model.Subcategoria{
		CategoriaID: categoriaID,
		Nombre:      req.Nombre,
		UsaTallas:   req.UsaTallas,
	}
	if err := s.repo.CreateSubcategoria(ctx, sub); err != nil {
		return nil, err
	}
	resp := subcategoriaToResponse(sub)
	return &resp, nil
}

func (s *catalogoService) ActualizarSubcategoria(ctx context.Context, id uuid.UUID, req dto.CrearSubcategoriaRequest) (*dto.SubcategoriaResponse, error) {
	sub, err := s.repo.FindSubcategoria(ctx, id)
	if err != nil {
		return nil, traducirNoEncontrado(err)
	}
	sub.Nombre = req.Nombre
	sub.UsaTallas = req.UsaTallas
	if err := s.repo.UpdateSubcategoria(ctx, sub); err != nil {
		return nil, err
	}
	resp := subcategoriaToResponse(sub)
	return &resp, nil
}

func (s *catalogoService) EliminarSubcategoria(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindSubcategoria(ctx, id); err != nil {
		return traducirNoEncontrado(err)
	}
	return s.repo.DeleteSubcategoria(ctx, id)
}

// ── Extras ───────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearExtra(ctx context.Context, req dto.CrearExtraRequest) (*dto.ExtraResponse, error) {
	e := &model.Extra{Nombre: req.Nombre, Unidad: req.Unidad, Monto: req.Monto}
	if err := s.repo.CreateExtra(ctx, e); err != nil {
		return nil, err
	}
	resp := extraToResponse(e)
	return &resp, nil
}

func (s *catalogoService) ListarExtras(ctx context.Context) ([]dto.ExtraResponse, error) {
	extras, err := s.repo.ListExtras(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ExtraResponse, len(extras))
	for i := range extras {
		resp[i] = extraToResponse(&extras[i])
	}
	return resp, nil
}

func (s *catalogoService) ActualizarExtra(ctx context.Context, id uuid.UUID, req dto.ActualizarExtraRequest) (*dto.ExtraResponse, error) {
	e, err := s.repo.FindExtra(ctx, id)
	if err != nil {
		return nil, traducirNoEncontrado(err)
	}
	if req.Nombre != nil {
		e.Nombre = *req.Nombre
	}
	if req.Unidad != nil {
		e.Unidad = *req.Unidad
	}
	if req.Monto != nil {
		e.Monto = *req.Monto
	}
	if err := s.repo.UpdateExtra(ctx, e); err != nil {
		return nil, err
	}
	resp := extraToResponse(e)
	return &resp, nil
}

func (s *catalogoService) EliminarExtra(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindExtra(ctx, id); err != nil {
		return traducirNoEncontrado(err)
	}
	return s.repo.DeleteExtra(ctx, id)
}

// ── Costos de elaboración ────────────────────────────────────────────────────

func (s *catalogoService) CrearCosto(ctx context.Context, req dto.CrearCostoElaboracionRequest) (*dto.CostoElaboracionResponse, error) {
	c := &model.CostoElaboracion{
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		Unidad:       req.Unidad,
		Costo:        req.Costo,
		AnchoPlancha: req.AnchoPlancha,
		LargoPlancha: req.LargoPlancha,
	}
	subs, err := parseSubcategorias(req.Subcategorias)
	if err != nil {
		return nil, err
	}
	c.Subcategorias = subs
	if err := s.repo.CreateCosto(ctx, c); err != nil {
		return nil, err
	}
	resp := costoToResponse(c)
	return &resp, nil
}

func (s *catalogoService) ListarCostos(ctx context.Context) ([]dto.CostoElaboracionResponse, error) {
	costos, err := s.repo.ListCostos(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CostoElaboracionResponse, len(costos))
	for i := range costos {
		resp[i] = costoToResponse(&costos[i])
	}
	return resp, nil
}

func (s *catalogoService) ActualizarCosto(ctx context.Context, id uuid.UUID, req dto.ActualizarCostoElaboracionRequest) (*dto.CostoElaboracionResponse, error) {
	c, err := s.repo.FindCosto(ctx, id)
	if err != nil {
		return nil, traducirNoEncontrado(err)
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		c.Descripcion = req.Descripcion
	}
	if req.Unidad != nil {
		c.Unidad = *req.Unidad
	}
	if req.Costo != nil {
		c.Costo = *req.Costo
	}
	if req.AnchoPlancha != nil {
		c.AnchoPlancha = req.AnchoPlancha
	}
	if req.LargoPlancha != nil {
		c.LargoPlancha = req.LargoPlancha
	}
	if req.Subcategorias != nil {
		subs, err := parseSubcategorias(req.Subcategorias)
		if err != nil {
			return nil, err
		}
		c.Subcategorias = subs
	}
	if err := s.repo.UpdateCosto(ctx, c); err != nil {
		return nil, err
	}
	resp := costoToResponse(c)
	return &resp, nil
}

func (s *catalogoService) EliminarCosto(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindCosto(ctx, id); err != nil {
		return traducirNoEncontrado(err)
	}
	return s.repo.DeleteCosto(ctx, id)
}

func parseSubcategorias(ids []string) ([]model.Subcategoria, error) {
	subs := make([]model.Subcategoria, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrValidacion
		}
		subs = append(subs, model.Subcategoria{ID: id})
	}
	return subs, nil
}

// ── Mapeo a DTOs ─────────────────────────────────────────────────────────────

func subcategoriaToResponse(s *model.Subcategoria) dto.SubcategoriaResponse {
	return dto.SubcategoriaResponse{
		ID:        s.ID.String(),
		Categoria: s.CategoriaID.String(),
		Nombre:    s.Nombre,
		UsaTallas: s.UsaTallas,
	}
}

func categoriaToResponse(c *model.Categoria) dto.CategoriaResponse {
	subs := make([]dto.SubcategoriaResponse, len(c.Subcategorias))
	for i := range c.Subcategorias {
		subs[i] = subcategoriaToResponse(&c.Subcategorias[i])
	}
	return dto.CategoriaResponse{ID: c.ID.String(), Nombre: c.Nombre, Subcategorias: subs}
}

func extraToResponse(e *model.Extra) dto.ExtraResponse {
	return dto.ExtraResponse{ID: e.ID.String(), Nombre: e.Nombre, Unidad: e.Unidad, Monto: e.Monto}
}

func costoToResponse(c *model.CostoElaboracion) dto.CostoElaboracionResponse {
	subs := make([]string, len(c.Subcategorias))
	for i := range c.Subcategorias {
		subs[i] = c.Subcategorias[i].ID.String()
	}
	return dto.CostoElaboracionResponse{
		ID:            c.ID.String(),
		Nombre:        c.Nombre,
		Descripcion:   c.Descripcion,
		Unidad:        c.Unidad,
		Costo:         c.Costo,
		AnchoPlancha:  c.AnchoPlancha,
		LargoPlancha:  c.LargoPlancha,
		Subcategorias: subs,
	}
}
