package repository

import (
	"context"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VentaRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	// FindByIDForUpdateTx locks the sale row so concurrent transitions and
	// payments on the same sale serialize instead of racing the guards.
	FindByIDForUpdateTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Venta, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	UpdateTx(tx *gorm.DB, v *model.Venta) error
	CreatePagoTx(tx *gorm.DB, p *model.Pago) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Create(v).Error
}

func preloadVenta(q *gorm.DB) *gorm.DB {
	return q.Preload("Productos.Extras").Preload("Pagos").Preload("Cliente").Preload("Vendedor")
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := preloadVenta(r.db.WithContext(ctx)).First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) FindByIDForUpdateTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var v model.Venta
	// The lock applies to the ventas row; preloads are read in follow-up
	// queries within the same transaction.
	err := db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, id).Error
	if err != nil {
		return nil, err
	}
	err = preloadVenta(db.WithContext(ctx)).First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ventaRepo) UpdateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Model(&model.Venta{}).Where("id = ?", v.ID).Updates(map[string]interface{}{
		"estado":            v.Estado,
		"restante":          v.Restante,
		"liquidado":         v.Liquidado,
		"fecha_liquidacion": v.FechaLiquidacion,
	}).Error
}

func (r *ventaRepo) CreatePagoTx(tx *gorm.DB, p *model.Pago) error {
	return tx.Create(p).Error
}

func (r *ventaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Select(clause.Associations).Delete(&model.Venta{ID: id}).Error
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Cliente != "" {
		q = q.Where("cliente_id = ?", filter.Cliente)
	}
	if filter.FechaInicio != "" {
		q = q.Where("created_at >= ?", filter.FechaInicio)
	}
	if filter.FechaFin != "" {
		q = q.Where("created_at <= ?", filter.FechaFin)
	}
	if filter.Liquidado != "" {
		q = q.Where("liquidado = ?", filter.Liquidado == "true")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := preloadVenta(q).Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&ventas).Error
	return ventas, total, err
}
