package service

import (
	"context"
	"time"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/model"
	"github.com/upstagebunion/craftzApp/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventarioService interface {
	// RegistrarAjuste applies a manual stock correction and appends the ledger
	// entry in the same transaction. Cantidad is signed.
	RegistrarAjuste(ctx context.Context, usuarioID uuid.UUID, req dto.AjusteInventarioRequest) (*dto.MovimientoResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
}

type inventarioService struct {
	repo     repository.MovimientoRepository
	producto ProductoService
	db       *gorm.DB
}

func NewInventarioService(repo repository.MovimientoRepository, producto ProductoService, db *gorm.DB) InventarioService {
	return &inventarioService{repo: repo, producto: producto, db: db}
}

func (s *inventarioService) RegistrarAjuste(ctx context.Context, usuarioID uuid.UUID, req dto.AjusteInventarioRequest) (*dto.MovimientoResponse, error) {
	ref, err := ajusteAHojaRef(req)
	if err != nil {
		return nil, err
	}

	var mov model.MovimientoInventario
	txErr := runTx(ctx, s.db, func(tx *gorm.DB) error {
		hoja, err := s.producto.ResolverHoja(ctx, tx, ref)
		if err != nil {
			return err
		}
		if err := s.producto.AjustarStockHojaTx(tx, hoja, req.Cantidad); err != nil {
			return err
		}

		tipo := model.MovimientoEntrada
		cantidad := req.Cantidad
		if cantidad < 0 {
			tipo = model.MovimientoSalida
			cantidad = -cantidad
		}
		mov = model.MovimientoInventario{
			ProductoID:   hoja.ProductoID,
			VarianteID:   hoja.VarianteID,
			CalidadID:    hoja.CalidadID,
			ColorID:      hoja.ColorID,
			TallaID:      hoja.TallaID,
			ProductoInfo: hoja.Descripcion,
			Tipo:         tipo,
			Cantidad:     cantidad,
			Motivo:       req.Motivo,
			UsuarioID:    usuarioID,
			Comentarios:  req.Comentarios,
		}
		return s.repo.CreateTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	resp := movimientoToResponse(&mov)
	return &resp, nil
}

func ajusteAHojaRef(req dto.AjusteInventarioRequest) (HojaRef, error) {
	productoID, err := uuid.Parse(req.Producto)
	if err != nil {
		return HojaRef{}, ErrValidacion
	}
	varianteID, err := uuid.Parse(req.Variante)
	if err != nil {
		return HojaRef{}, ErrValidacion
	}
	calidadID, err := uuid.Parse(req.Calidad)
	if err != nil {
		return HojaRef{}, ErrValidacion
	}
	colorID, err := uuid.Parse(req.Color)
	if err != nil {
		return HojaRef{}, ErrValidacion
	}
	ref := HojaRef{
		Producto: productoID,
		Variante: &varianteID,
		Calidad:  &calidadID,
		Color:    &colorID,
	}
	if req.Talla != nil {
		tallaID, err := uuid.Parse(*req.Talla)
		if err != nil {
			return HojaRef{}, ErrValidacion
		}
		ref.Talla = &tallaID
	}
	return ref, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoResponse, 0, len(movs))
	for i := range movs {
		data = append(data, movimientoToResponse(&movs[i]))
	}
	return &dto.MovimientoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func movimientoToResponse(m *model.MovimientoInventario) dto.MovimientoResponse {
	usuarioNombre := ""
	if m.Usuario != nil {
		usuarioNombre = m.Usuario.Nombre
	}
	return dto.MovimientoResponse{
		ID:             m.ID.String(),
		Producto:       m.ProductoID.String(),
		Variante:       m.VarianteID.String(),
		Calidad:        m.CalidadID.String(),
		Color:          m.ColorID.String(),
		Talla:          uuidPtrToStr(m.TallaID),
		ProductoInfo:   m.ProductoInfo,
		Tipo:           m.Tipo,
		Cantidad:       m.Cantidad,
		Motivo:         m.Motivo,
		ReferenciaTipo: m.ReferenciaTipo,
		Referencia:     uuidPtrToStr(m.ReferenciaID),
		Usuario:        m.UsuarioID.String(),
		UsuarioNombre:  usuarioNombre,
		Comentarios:    m.Comentarios,
		Fecha:          m.CreatedAt.Format(time.RFC3339),
	}
}
