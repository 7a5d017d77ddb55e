package repository

import (
	"context"
	"errors"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository is the data access contract for the catalog tree.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling unit testing via in-memory stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	// FindByIDTx loads the full tree inside a transaction; tx == nil falls back
	// to the base connection (unit-test mode).
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	FindSubcategoria(ctx context.Context, id uuid.UUID) (*model.Subcategoria, error)

	// Tree growth — append a sub-resource under an existing product. The parent
	// ids must already be set on the record.
	CreateVariante(ctx context.Context, v *model.Variante) error
	CreateColor(ctx context.Context, c *model.Color) error
	CreateTalla(ctx context.Context, t *model.Talla) error

	// Leaf stock primitives — tx-only, invoked from the sale state machine and
	// inventory adjustments so the stock write commits with its ledger entry.
	TallaStockForUpdateTx(tx *gorm.DB, id uuid.UUID) (int, error)
	ColorStockForUpdateTx(tx *gorm.DB, id uuid.UUID) (*int, error)
	AjustarStockTallaTx(tx *gorm.DB, id uuid.UUID, delta int) error
	AjustarStockColorTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

// preloadTree attaches all four levels ordered by display order.
func preloadTree(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Variantes", func(db *gorm.DB) *gorm.DB { return db.Order("orden ASC") }).
		Preload("Variantes.Calidades", func(db *gorm.DB) *gorm.DB { return db.Order("orden ASC") }).
		Preload("Variantes.Calidades.Colores", func(db *gorm.DB) *gorm.DB { return db.Order("orden ASC") }).
		Preload("Variantes.Calidades.Colores.Tallas", func(db *gorm.DB) *gorm.DB { return db.Order("orden ASC") }).
		Preload("Imagenes", func(db *gorm.DB) *gorm.DB { return db.Order("orden ASC") }).
		Preload("Subcategoria")
}

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := preloadTree(r.db.WithContext(ctx)).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var p model.Producto
	err := preloadTree(db.WithContext(ctx)).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.Categoria != "" {
		q = q.Where("categoria_id = ?", filter.Categoria)
	}
	if filter.Subcategoria != "" {
		q = q.Where("subcategoria_id = ?", filter.Subcategoria)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := preloadTree(q).Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(p).Error
}

func (r *productoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *productoRepo) FindSubcategoria(ctx context.Context, id uuid.UUID) (*model.Subcategoria, error) {
	var s model.Subcategoria
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *productoRepo) CreateVariante(ctx context.Context, v *model.Variante) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *productoRepo) CreateColor(ctx context.Context, c *model.Color) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *productoRepo) CreateTalla(ctx context.Context, t *model.Talla) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// TallaStockForUpdateTx reads the current stock of a size leaf while holding a
// row lock, so concurrent sale transitions on the same leaf serialize.
func (r *productoRepo) TallaStockForUpdateTx(tx *gorm.DB, id uuid.UUID) (int, error) {
	var t model.Talla
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, id).Error
	return t.Stock, err
}

func (r *productoRepo) ColorStockForUpdateTx(tx *gorm.DB, id uuid.UUID) (*int, error) {
	var c model.Color
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error
	return c.Stock, err
}

// ErrStockNegativo signals that a guarded stock update would drive the leaf
// below zero. The service layer translates it into its business error.
var ErrStockNegativo = errors.New("el ajuste dejaria el stock en negativo")

// AjustarStockTallaTx applies a guarded delta: the UPDATE only fires when the
// resulting stock stays non-negative, RowsAffected tells us which case we hit.
func (r *productoRepo) AjustarStockTallaTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	res := tx.Model(&model.Talla{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockNegativo
	}
	return nil
}

func (r *productoRepo) AjustarStockColorTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	res := tx.Model(&model.Color{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockNegativo
	}
	return nil
}
