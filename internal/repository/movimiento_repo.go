package repository

import (
	"context"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovimientoRepository persists the append-only inventory ledger. The tx-only
// mutators keep ledger writes atomic with the stock and state writes they
// belong to.
type MovimientoRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovimientoInventario) error
	// FindByVentaTx returns every movement referencing the sale, oldest first.
	FindByVentaTx(tx *gorm.DB, ventaID uuid.UUID) ([]model.MovimientoInventario, error)
	// ReclasificarMotivoTx relabels the motive of all movements referencing the
	// sale (venta → perdida on a return). The only in-place update allowed.
	ReclasificarMotivoTx(tx *gorm.DB, ventaID uuid.UUID, motivo string) error
	// DeleteByVentaTx removes the sale's movements when a transition is reversed.
	DeleteByVentaTx(tx *gorm.DB, ventaID uuid.UUID) error
	List(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error)
}

type movimientoRepo struct{ db *gorm.DB }

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository { return &movimientoRepo{db: db} }

func (r *movimientoRepo) CreateTx(tx *gorm.DB, m *model.MovimientoInventario) error {
	return tx.Create(m).Error
}

func (r *movimientoRepo) FindByVentaTx(tx *gorm.DB, ventaID uuid.UUID) ([]model.MovimientoInventario, error) {
	var movs []model.MovimientoInventario
	err := tx.Where("referencia_tipo = ? AND referencia_id = ?", model.ReferenciaVenta, ventaID).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *movimientoRepo) ReclasificarMotivoTx(tx *gorm.DB, ventaID uuid.UUID, motivo string) error {
	return tx.Model(&model.MovimientoInventario{}).
		Where("referencia_tipo = ? AND referencia_id = ?", model.ReferenciaVenta, ventaID).
		Update("motivo", motivo).Error
}

func (r *movimientoRepo) DeleteByVentaTx(tx *gorm.DB, ventaID uuid.UUID) error {
	return tx.Where("referencia_tipo = ? AND referencia_id = ?", model.ReferenciaVenta, ventaID).
		Delete(&model.MovimientoInventario{}).Error
}

func (r *movimientoRepo) List(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	var movs []model.MovimientoInventario
	var total int64

	q := r.db.WithContext(ctx).Model(&model.MovimientoInventario{})

	if filter.Producto != "" {
		q = q.Where("producto_id = ?", filter.Producto)
	}
	if filter.Motivo != "" {
		q = q.Where("motivo = ?", filter.Motivo)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.FechaInicio != "" {
		q = q.Where("created_at >= ?", filter.FechaInicio)
	}
	if filter.FechaFin != "" {
		q = q.Where("created_at <= ?", filter.FechaFin)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Usuario").Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&movs).Error
	return movs, total, err
}
