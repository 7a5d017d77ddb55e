package service

import (
	"context"
	"testing"
	"time"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/model"
	"github.com/upstagebunion/craftzApp/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverPeriodoExplicito(t *testing.T) {
	desde, hasta, err := resolverPeriodo(dto.ReporteFilter{
		FechaInicio: "2026-08-01",
		FechaFin:    "2026-08-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-08-01", desde.Format("2006-01-02"))
	// end date inclusive through the last second of the day
	assert.Equal(t, "2026-08-15", hasta.Format("2006-01-02"))
	assert.Equal(t, 23, hasta.Hour())
	assert.Equal(t, 59, hasta.Minute())
}

func TestResolverPeriodoPorDefectoMesActual(t *testing.T) {
	desde, hasta, err := resolverPeriodo(dto.ReporteFilter{})
	require.NoError(t, err)

	ahora := time.Now()
	assert.Equal(t, ahora.Year(), desde.Year())
	assert.Equal(t, ahora.Month(), desde.Month())
	assert.Equal(t, 1, desde.Day())
	assert.Equal(t, ahora.Month(), hasta.Month())
	assert.True(t, hasta.After(desde))
}

func TestResolverPeriodoInvertido(t *testing.T) {
	_, _, err := resolverPeriodo(dto.ReporteFilter{
		FechaInicio: "2026-08-15",
		FechaFin:    "2026-08-01",
	})
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestResolverPeriodoFechaInvalida(t *testing.T) {
	_, _, err := resolverPeriodo(dto.ReporteFilter{FechaInicio: "15/08/2026"})
	assert.ErrorIs(t, err, ErrValidacion)
}

// ── ResumenVentas ────────────────────────────────────────────────────────────

type stubReporteRepo struct {
	resumen  *repository.ResumenVentas
	llamadas int
}

func (r *stubReporteRepo) ResumenVentas(_ context.Context, _, _ time.Time) (*repository.ResumenVentas, error) {
	r.llamadas++
	return r.resumen, nil
}

func TestResumenVentasSinCache(t *testing.T) {
	repo := &stubReporteRepo{resumen: &repository.ResumenVentas{
		Ventas:         3,
		TotalVendido:   decimal.NewFromInt(450),
		TotalCobrado:   decimal.NewFromInt(300),
		TotalPorCobrar: decimal.NewFromInt(150),
		PorEstado:      map[string]int64{model.EstadoEntregado: 2, model.EstadoPendiente: 1},
		PagosPorMetodo: map[string]decimal.Decimal{model.MetodoEfectivo: decimal.NewFromInt(300)},
	}}
	svc := NewReporteService(repo, nil, "Craftz", t.TempDir())

	resp, err := svc.ResumenVentas(context.Background(), dto.ReporteFilter{
		FechaInicio: "2026-08-01",
		FechaFin:    "2026-08-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.llamadas)
	assert.Equal(t, "2026-08-01", resp.FechaInicio)
	assert.Equal(t, "2026-08-31", resp.FechaFin)
	assert.Equal(t, int64(3), resp.Ventas)
	assert.True(t, resp.TotalVendido.Equal(decimal.NewFromInt(450)))
	assert.True(t, resp.TotalPorCobrar.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, int64(2), resp.PorEstado[model.EstadoEntregado])
	assert.True(t, resp.PagosPorMetodo[model.MetodoEfectivo].Equal(decimal.NewFromInt(300)))
}

func TestResumenVentasPeriodoInvalido(t *testing.T) {
	svc := NewReporteService(&stubReporteRepo{}, nil, "Craftz", t.TempDir())

	_, err := svc.ResumenVentas(context.Background(), dto.ReporteFilter{
		FechaInicio: "2026-09-01",
		FechaFin:    "2026-08-01",
	})
	assert.ErrorIs(t, err, ErrValidacion)
}
