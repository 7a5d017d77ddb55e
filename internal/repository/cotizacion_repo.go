package repository

import (
	"context"
	"time"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CotizacionRepository interface {
	Create(ctx context.Context, c *model.Cotizacion) error
	CreateTx(tx *gorm.DB, c *model.Cotizacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error)
	// FindByIDForUpdateTx locks the quotation row: the at-most-once conversion
	// guarantee rests on this lock plus the convertida_a_venta_id check.
	FindByIDForUpdateTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Cotizacion, error)
	MarcarConvertidaTx(tx *gorm.DB, id, ventaID uuid.UUID) error
	Update(ctx context.Context, c *model.Cotizacion) error
	// ReemplazarItemsTx swaps the line items wholesale and saves the header.
	ReemplazarItemsTx(tx *gorm.DB, c *model.Cotizacion) error
	ListActivas(ctx context.Context, ahora time.Time) ([]model.Cotizacion, error)
	ListFiltradas(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type cotizacionRepo struct{ db *gorm.DB }

func NewCotizacionRepository(db *gorm.DB) CotizacionRepository { return &cotizacionRepo{db: db} }

func (r *cotizacionRepo) DB() *gorm.DB { return r.db }

func preloadCotizacion(q *gorm.DB) *gorm.DB {
	return q.Preload("Productos.Extras").Preload("Cliente")
}

func (r *cotizacionRepo) Create(ctx context.Context, c *model.Cotizacion) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cotizacionRepo) CreateTx(tx *gorm.DB, c *model.Cotizacion) error {
	return tx.Create(c).Error
}

func (r *cotizacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := preloadCotizacion(r.db.WithContext(ctx)).First(&c, id).Error
	return &c, err
}

func (r *cotizacionRepo) FindByIDForUpdateTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Cotizacion, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var c model.Cotizacion
	if err := db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error; err != nil {
		return nil, err
	}
	err := preloadCotizacion(db.WithContext(ctx)).First(&c, id).Error
	return &c, err
}

func (r *cotizacionRepo) MarcarConvertidaTx(tx *gorm.DB, id, ventaID uuid.UUID) error {
	return tx.Model(&model.Cotizacion{}).Where("id = ?", id).Updates(map[string]interface{}{
		"convertida_a_venta_id": ventaID,
		"activa":                false,
	}).Error
}

func (r *cotizacionRepo) ReemplazarItemsTx(tx *gorm.DB, c *model.Cotizacion) error {
	sub := tx.Model(&model.CotizacionItem{}).Select("id").Where("cotizacion_id = ?", c.ID)
	if err := tx.Where("cotizacion_item_id IN (?)", sub).Delete(&model.CotizacionItemExtra{}).Error; err != nil {
		return err
	}
	if err := tx.Where("cotizacion_id = ?", c.ID).Delete(&model.CotizacionItem{}).Error; err != nil {
		return err
	}
	return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(c).Error
}

func (r *cotizacionRepo) Update(ctx context.Context, c *model.Cotizacion) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(c).Error
}

func (r *cotizacionRepo) ListActivas(ctx context.Context, ahora time.Time) ([]model.Cotizacion, error) {
	var cotizaciones []model.Cotizacion
	err := preloadCotizacion(r.db.WithContext(ctx)).
		Where("convertida_a_venta_id IS NULL AND activa = true AND expira > ?", ahora).
		Order("created_at DESC").
		Find(&cotizaciones).Error
	return cotizaciones, err
}

func (r *cotizacionRepo) ListFiltradas(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, error) {
	q := r.db.WithContext(ctx).Model(&model.Cotizacion{})

	if filter.Cliente != "" {
		q = q.Where("cliente_id = ?", filter.Cliente)
	}
	if filter.FechaInicio != "" {
		q = q.Where("created_at >= ?", filter.FechaInicio)
	}
	if filter.FechaFin != "" {
		q = q.Where("created_at <= ?", filter.FechaFin)
	}
	switch filter.Convertidas {
	case "true":
		q = q.Where("convertida_a_venta_id IS NOT NULL")
	case "false":
		q = q.Where("convertida_a_venta_id IS NULL")
	}
	switch filter.Expiradas {
	case "true":
		q = q.Where("expira < now()")
	case "false":
		q = q.Where("expira >= now()")
	}

	var cotizaciones []model.Cotizacion
	err := preloadCotizacion(q).Order("created_at DESC").Find(&cotizaciones).Error
	return cotizaciones, err
}

func (r *cotizacionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&model.Cotizacion{ID: id}).Error
}
