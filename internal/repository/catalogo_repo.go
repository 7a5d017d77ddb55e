package repository

import (
	"context"

	"github.com/upstagebunion/craftzApp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogoRepository covers the small reference collections: categorias with
// their subcategorias, extras, and production cost parameters.
type CatalogoRepository interface {
	CreateCategoria(ctx context.Context, c *model.Categoria) error
	ListCategorias(ctx context.Context) ([]model.Categoria, error)
	FindCategoria(ctx context.Context, id uuid.UUID) (*model.Categoria, error)
	UpdateCategoria(ctx context.Context, c *model.Categoria) error
	DeleteCategoria(ctx context.Context, id uuid.UUID) error

	CreateSubcategoria(ctx context.Context, s *model.Subcategoria) error
	FindSubcategoria(ctx context.Context, id uuid.UUID) (*model.Subcategoria, error)
	UpdateSubcategoria(ctx context.Context, s *model.Subcategoria) error
	DeleteSubcategoria(ctx context.Context, id uuid.UUID) error

	CreateExtra(ctx context.Context, e *model.Extra) error
	ListExtras(ctx context.Context) ([]model.Extra, error)
	FindExtra(ctx context.Context, id uuid.UUID) (*model.Extra, error)
	UpdateExtra(ctx context.Context, e *model.Extra) error
	DeleteExtra(ctx context.Context, id uuid.UUID) error

	CreateCosto(ctx context.Context, c *model.CostoElaboracion) error
	ListCostos(ctx context.Context) ([]model.CostoElaboracion, error)
	FindCosto(ctx context.Context, id uuid.UUID) (*model.CostoElaboracion, error)
	UpdateCosto(ctx context.Context, c *model.CostoElaboracion) error
	DeleteCosto(ctx context.Context, id uuid.UUID) error
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) CreateCategoria(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *catalogoRepo) ListCategorias(ctx context.Context) ([]model.Categoria, error) {
	var categorias []model.Categoria
	err := r.db.WithContext(ctx).Preload("Subcategorias").Order("nombre ASC").Find(&categorias).Error
	return categorias, err
}

func (r *catalogoRepo) FindCategoria(ctx context.Context, id uuid.UUID) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).Preload("Subcategorias").First(&c, id).Error
	return &c, err
}

func (r *catalogoRepo) UpdateCategoria(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *catalogoRepo) DeleteCategoria(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Categoria{}, id).Error
}

func (r *catalogoRepo) CreateSubcategoria(ctx context.Context, s *model.Subcategoria) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *catalogoRepo) FindSubcategoria(ctx context.Context, id uuid.UUID) (*model.Subcategoria, error) {
	var s model.Subcategoria
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *catalogoRepo) UpdateSubcategoria(ctx context.Context, s *model.Subcategoria) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *catalogoRepo) DeleteSubcategoria(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Subcategoria{}, id).Error
}

func (r *catalogoRepo) CreateExtra(ctx context.Context, e *model.Extra) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *catalogoRepo) ListExtras(ctx context.Context) ([]model.Extra, error) {
	var extras []model.Extra
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&extras).Error
	return extras, err
}

func (r *catalogoRepo) FindExtra(ctx context.Context, id uuid.UUID) (*model.Extra, error) {
	var e model.Extra
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *catalogoRepo) UpdateExtra(ctx context.Context, e *model.Extra) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *catalogoRepo) DeleteExtra(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Extra{}, id).Error
}

func (r *catalogoRepo) CreateCosto(ctx context.Context, c *model.CostoElaboracion) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *catalogoRepo) ListCostos(ctx context.Context) ([]model.CostoElaboracion, error) {
	var costos []model.CostoElaboracion
	err := r.db.WithContext(ctx).Preload("Subcategorias").Order("nombre ASC").Find(&costos).Error
	return costos, err
}

func (r *catalogoRepo) FindCosto(ctx context.Context, id uuid.UUID) (*model.CostoElaboracion, error) {
	var c model.CostoElaboracion
	err := r.db.WithContext(ctx).Preload("Subcategorias").First(&c, id).Error
	return &c, err
}

func (r *catalogoRepo) UpdateCosto(ctx context.Context, c *model.CostoElaboracion) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(c).Error
}

func (r *catalogoRepo) DeleteCosto(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CostoElaboracion{}, id).Error
}
