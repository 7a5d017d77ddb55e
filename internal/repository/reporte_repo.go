package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResumenVentas aggregates the sales ledger for one period.
type ResumenVentas struct {
	Ventas         int64                      `json:"ventas"`
	TotalVendido   decimal.Decimal            `json:"totalVendido"`
	TotalCobrado   decimal.Decimal            `json:"totalCobrado"`
	TotalPorCobrar decimal.Decimal            `json:"totalPorCobrar"`
	PorEstado      map[string]int64           `json:"porEstado"`
	PagosPorMetodo map[string]decimal.Decimal `json:"pagosPorMetodo"`
}

// ReporteRepository runs the aggregate queries the reporting endpoints need.
type ReporteRepository interface {
	ResumenVentas(ctx context.Context, desde, hasta time.Time) (*ResumenVentas, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) ResumenVentas(ctx context.Context, desde, hasta time.Time) (*ResumenVentas, error) {
	res := &ResumenVentas{
		TotalVendido:   decimal.Zero,
		TotalCobrado:   decimal.Zero,
		TotalPorCobrar: decimal.Zero,
		PorEstado:      make(map[string]int64),
		PagosPorMetodo: make(map[string]decimal.Decimal),
	}

	type totalesRow struct {
		Ventas   int64
		Total    decimal.Decimal
		Restante decimal.Decimal
	}
	var tot totalesRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS ventas,
		       COALESCE(SUM(total), 0)    AS total,
		       COALESCE(SUM(restante), 0) AS restante
		FROM ventas
		WHERE created_at BETWEEN ? AND ?`, desde, hasta).Scan(&tot).Error
	if err != nil {
		return nil, err
	}
	res.Ventas = tot.Ventas
	res.TotalVendido = tot.Total
	res.TotalPorCobrar = tot.Restante
	res.TotalCobrado = tot.Total.Sub(tot.Restante)

	type estadoRow struct {
		Estado string
		N      int64
	}
	var estados []estadoRow
	err = r.db.WithContext(ctx).Raw(`
		SELECT estado, COUNT(*) AS n
		FROM ventas
		WHERE created_at BETWEEN ? AND ?
		GROUP BY estado`, desde, hasta).Scan(&estados).Error
	if err != nil {
		return nil, err
	}
	for _, e := range estados {
		res.PorEstado[e.Estado] = e.N
	}

	type metodoRow struct {
		Metodo string
		Monto  decimal.Decimal
	}
	var metodos []metodoRow
	err = r.db.WithContext(ctx).Raw(`
		SELECT p.metodo, COALESCE(SUM(p.monto), 0) AS monto
		FROM pagos p
		JOIN ventas v ON v.id = p.venta_id
		WHERE v.created_at BETWEEN ? AND ?
		GROUP BY p.metodo`, desde, hasta).Scan(&metodos).Error
	if err != nil {
		return nil, err
	}
	for _, m := range metodos {
		res.PagosPorMetodo[m.Metodo] = m.Monto
	}

	return res, nil
}
