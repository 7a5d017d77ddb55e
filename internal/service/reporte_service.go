package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/infra"
	"github.com/upstagebunion/craftzApp/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// resumenCacheTTL keeps the summary fresh enough for dashboards without
// re-running the aggregates on every poll.
const resumenCacheTTL = 5 * time.Minute

// ReporteService produces the period sales summaries.
type ReporteService interface {
	ResumenVentas(ctx context.Context, filter dto.ReporteFilter) (*dto.ResumenVentasResponse, error)
	// ExportarResumenPDF renders the period summary to a PDF file and
	// returns its path on disk.
	ExportarResumenPDF(ctx context.Context, filter dto.ReporteFilter) (string, error)
}

type reporteService struct {
	repo        repository.ReporteRepository
	rdb         *redis.Client
	negocio     string
	storagePath string
}

func NewReporteService(repo repository.ReporteRepository, rdb *redis.Client, negocio, storagePath string) ReporteService {
	return &reporteService{repo: repo, rdb: rdb, negocio: negocio, storagePath: storagePath}
}

func (s *reporteService) ResumenVentas(ctx context.Context, filter dto.ReporteFilter) (*dto.ResumenVentasResponse, error) {
	desde, hasta, err := resolverPeriodo(filter)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("reporte:resumen:%s:%s", desde.Format("20060102"), hasta.Format("20060102"))
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.ResumenVentasResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	resumen, err := s.repo.ResumenVentas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	resp := resumenToResponse(resumen, desde, hasta)

	if s.rdb != nil {
		if encoded, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, encoded, resumenCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", cacheKey).Msg("no se pudo cachear el resumen")
			}
		}
	}
	return resp, nil
}

func (s *reporteService) ExportarResumenPDF(ctx context.Context, filter dto.ReporteFilter) (string, error) {
	desde, hasta, err := resolverPeriodo(filter)
	if err != nil {
		return "", err
	}
	resumen, err := s.repo.ResumenVentas(ctx, desde, hasta)
	if err != nil {
		return "", err
	}
	return infra.GenerarResumenPDF(resumen, desde, hasta, s.negocio, s.storagePath)
}

// resolverPeriodo parses the filter dates; with both empty the period is the
// current calendar month. The end date is inclusive through 23:59:59.
func resolverPeriodo(filter dto.ReporteFilter) (time.Time, time.Time, error) {
	ahora := time.Now()
	desde := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())
	hasta := desde.AddDate(0, 1, 0).Add(-time.Second)

	if filter.FechaInicio != "" {
		t, err := time.Parse("2006-01-02", filter.FechaInicio)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: fechaInicio inválida", ErrValidacion)
		}
		desde = t
	}
	if filter.FechaFin != "" {
		t, err := time.Parse("2006-01-02", filter.FechaFin)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: fechaFin inválida", ErrValidacion)
		}
		hasta = t.Add(24*time.Hour - time.Second)
	}
	if hasta.Before(desde) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: el periodo termina antes de empezar", ErrValidacion)
	}
	return desde, hasta, nil
}

func resumenToResponse(r *repository.ResumenVentas, desde, hasta time.Time) *dto.ResumenVentasResponse {
	return &dto.ResumenVentasResponse{
		FechaInicio:    desde.Format("2006-01-02"),
		FechaFin:       hasta.Format("2006-01-02"),
		Ventas:         r.Ventas,
		TotalVendido:   r.TotalVendido,
		TotalCobrado:   r.TotalCobrado,
		TotalPorCobrar: r.TotalPorCobrar,
		PorEstado:      r.PorEstado,
		PagosPorMetodo: r.PagosPorMetodo,
	}
}
