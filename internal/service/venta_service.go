package service

import (
	"context"
	"time"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/model"
	"github.com/upstagebunion/craftzApp/internal/repository"
	"github.com/upstagebunion/craftzApp/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type VentaService interface {
	Crear(ctx context.Context, vendedorID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	// CambiarEstado drives the state machine. Stock mutation, ledger writes,
	// client counter moves and the estado write commit in one transaction.
	CambiarEstado(ctx context.Context, id, usuarioID uuid.UUID, destino string) (*dto.VentaResponse, error)
	RegistrarPago(ctx context.Context, id uuid.UUID, req dto.PagoRequest) (*dto.VentaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	// RevertirACotizacion demotes a pending, unpaid sale back into an editable
	// quotation, deleting the sale.
	RevertirACotizacion(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error)
}

type ventaService struct {
	repo           repository.VentaRepository
	cotizacionRepo repository.CotizacionRepository
	movimientoRepo repository.MovimientoRepository
	clienteRepo    repository.ClienteRepository
	producto       ProductoService
	resolver       *itemResolver
	dispatcher     *worker.Dispatcher
	vigenciaDias   int
}

func NewVentaService(
	repo repository.VentaRepository,
	cotizacionRepo repository.CotizacionRepository,
	movimientoRepo repository.MovimientoRepository,
	clienteRepo repository.ClienteRepository,
	producto ProductoService,
	productoRepo repository.ProductoRepository,
	catalogoRepo repository.CatalogoRepository,
	dispatcher *worker.Dispatcher,
	vigenciaDias int,
) VentaService {
	return &ventaService{
		repo:           repo,
		cotizacionRepo: cotizacionRepo,
		movimientoRepo: movimientoRepo,
		clienteRepo:    clienteRepo,
		producto:       producto,
		resolver:       &itemResolver{productoRepo: productoRepo, catalogoRepo: catalogoRepo},
		dispatcher:     dispatcher,
		vigenciaDias:   vigenciaDias,
	}
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func esNoTerminal(estado string) bool {
	switch estado {
	case model.EstadoPendiente, model.EstadoConfirmado, model.EstadoPreparado:
		return true
	}
	return false
}

// ── Crear ────────────────────────────────────────────────────────────────────

func (s *ventaService) Crear(ctx context.Context, vendedorID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	clienteID, err := uuid.Parse(req.Cliente)
	if err != nil {
		return nil, ErrValidacion
	}
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return nil, traducirNoEncontrado(err)
	}

	lineas, subTotal, err := s.resolver.resolverLineas(ctx, req.Productos)
	if err != nil {
		return nil, err
	}
	total := aplicarDescuento(subTotal, req.DescuentoGlobal)
	if total.IsNegative() {
		return nil, ErrValidacion
	}

	venta := model.Venta{
		ClienteID:       clienteID,
		VendedorID:      vendedorID,
		SubTotal:        subTotal,
		Total:           total,
		Restante:        total,
		Estado:          model.EstadoPendiente,
		DescuentoGlobal: descuentoToModel(req.DescuentoGlobal),
		VentaEnLinea:    req.VentaEnLinea,
	}
	for i := range lineas {
		venta.Productos = append(venta.Productos, lineas[i].comoVentaItem())
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateTx(ctx, tx, &venta)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, venta.ID)
}

// ── Estado ───────────────────────────────────────────────────────────────────

func (s *ventaService) CambiarEstado(ctx context.Context, id, usuarioID uuid.UUID, destino string) (*dto.VentaResponse, error) {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		v, err := s.repo.FindByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			return traducirNoEncontrado(err)
		}
		if v.Estado == destino {
			return ErrTransicionInvalida
		}

		switch {
		case esNoTerminal(v.Estado) && esNoTerminal(destino):
			// free movement among pre-delivery states, no stock effect

		case esNoTerminal(v.Estado) && destino == model.EstadoEntregado:
			if err := s.entregar(ctx, tx, v, usuarioID); err != nil {
				return err
			}

		case destino == model.EstadoDevuelto:
			if err := s.devolver(ctx, tx, v, usuarioID); err != nil {
				return err
			}

		case v.EsTerminal() && esNoTerminal(destino):
			if err := s.revertirEfectos(tx, v); err != nil {
				return err
			}

		default:
			// devuelto → entregado: returned goods re-enter via a new sale
			return ErrTransicionInvalida
		}

		return s.repo.UpdateEstadoTx(tx, id, destino)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Str("venta_id", id.String()).Str("estado", destino).Msg("venta transicionada")
	return s.Obtener(ctx, id)
}

// entregar decrements every referenced leaf and appends the salida movements.
// Any insufficient leaf aborts the whole transaction untouched.
func (s *ventaService) entregar(ctx context.Context, tx *gorm.DB, v *model.Venta, usuarioID uuid.UUID) error {
	if err := s.moverStockSalida(ctx, tx, v, usuarioID, model.MotivoVenta); err != nil {
		return err
	}
	return s.clienteRepo.IncrementarComprasTx(tx, v.ClienteID, 1)
}

// devolver relabels the existing venta movements as perdida — the stock was
// already decremented at delivery and returned goods are not assumed sellable.
// A return before delivery decrements directly with motive perdida.
func (s *ventaService) devolver(ctx context.Context, tx *gorm.DB, v *model.Venta, usuarioID uuid.UUID) error {
	movs, err := s.movimientoRepo.FindByVentaTx(tx, v.ID)
	if err != nil {
		return err
	}
	if len(movs) > 0 {
		if err := s.movimientoRepo.ReclasificarMotivoTx(tx, v.ID, model.MotivoPerdida); err != nil {
			return err
		}
	} else if err := s.moverStockSalida(ctx, tx, v, usuarioID, model.MotivoPerdida); err != nil {
		return err
	}
	return s.clienteRepo.IncrementarComprasTx(tx, v.ClienteID, -1)
}

func (s *ventaService) moverStockSalida(ctx context.Context, tx *gorm.DB, v *model.Venta, usuarioID uuid.UUID, motivo string) error {
	for i := range v.Productos {
		item := &v.Productos[i]
		if item.EsTemporal || item.ProductoRefID == nil {
			continue
		}
		hoja, err := s.producto.ResolverHoja(ctx, tx, HojaRef{
			Producto: *item.ProductoRefID,
			Variante: item.VarianteID,
			Calidad:  item.CalidadID,
			Color:    item.ColorID,
			Talla:    item.TallaID,
		})
		if err != nil {
			return err
		}
		if hoja.Stock < item.Cantidad {
			return ErrStockInsuficiente
		}
		if err := s.producto.AjustarStockHojaTx(tx, hoja, -item.Cantidad); err != nil {
			return err
		}

		refTipo := model.ReferenciaVenta
		refID := v.ID
		mov := &model.MovimientoInventario{
			ProductoID:     hoja.ProductoID,
			VarianteID:     hoja.VarianteID,
			CalidadID:      hoja.CalidadID,
			ColorID:        hoja.ColorID,
			TallaID:        hoja.TallaID,
			ProductoInfo:   hoja.Descripcion,
			Tipo:           model.MovimientoSalida,
			Cantidad:       item.Cantidad,
			Motivo:         motivo,
			ReferenciaTipo: &refTipo,
			ReferenciaID:   &refID,
			UsuarioID:      usuarioID,
		}
		if err := s.movimientoRepo.CreateTx(tx, mov); err != nil {
			return err
		}
	}
	return nil
}

// revertirEfectos undoes a terminal state: every movement tied to the sale
// re-increments its leaf and disappears from the ledger.
func (s *ventaService) revertirEfectos(tx *gorm.DB, v *model.Venta) error {
	movs, err := s.movimientoRepo.FindByVentaTx(tx, v.ID)
	if err != nil {
		return err
	}
	for i := range movs {
		hoja := &Hoja{ColorID: movs[i].ColorID, TallaID: movs[i].TallaID}
		if err := s.producto.AjustarStockHojaTx(tx, hoja, movs[i].Cantidad); err != nil {
			return err
		}
	}
	if err := s.movimientoRepo.DeleteByVentaTx(tx, v.ID); err != nil {
		return err
	}
	return s.clienteRepo.IncrementarComprasTx(tx, v.ClienteID, -1)
}

// ── Pagos ────────────────────────────────────────────────────────────────────

func (s *ventaService) RegistrarPago(ctx context.Context, id uuid.UUID, req dto.PagoRequest) (*dto.VentaResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, ErrValidacion
	}

	liquidada := false
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		v, err := s.repo.FindByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			return traducirNoEncontrado(err)
		}
		if v.Liquidado {
			return ErrVentaLiquidada
		}
		if req.Monto.GreaterThan(v.Restante) {
			return ErrPagoExcedeSaldo
		}

		pago := &model.Pago{
			VentaID: v.ID,
			Razon:   req.Razon,
			Monto:   req.Monto,
			Metodo:  req.Metodo,
			Fecha:   time.Now().UTC(),
		}
		if err := s.repo.CreatePagoTx(tx, pago); err != nil {
			return err
		}

		v.Restante = v.Restante.Sub(req.Monto)
		if v.Restante.IsZero() {
			v.Liquidado = true
			ahora := time.Now().UTC()
			v.FechaLiquidacion = &ahora
			liquidada = true
		}
		return s.repo.UpdateTx(tx, v)
	})
	if txErr != nil {
		return nil, txErr
	}

	if liquidada && s.dispatcher != nil {
		// best effort: the receipt email never holds the request hostage
		if err := s.dispatcher.EncolarRecibo(ctx, id); err != nil {
			log.Warn().Err(err).Str("venta_id", id.String()).Msg("no se pudo encolar el recibo")
		}
	}
	return s.Obtener(ctx, id)
}

// ── Eliminar / Revertir ──────────────────────────────────────────────────────

func (s *ventaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		v, err := s.repo.FindByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			return traducirNoEncontrado(err)
		}
		if v.Estado != model.EstadoPendiente {
			return ErrTransicionInvalida
		}
		if len(v.Pagos) > 0 {
			return ErrVentaConPagos
		}
		return s.repo.DeleteTx(tx, id)
	})
}

func (s *ventaService) RevertirACotizacion(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error) {
	var cotizacion model.Cotizacion
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		v, err := s.repo.FindByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			return traducirNoEncontrado(err)
		}
		if v.Estado != model.EstadoPendiente {
			return ErrTransicionInvalida
		}
		if len(v.Pagos) > 0 {
			return ErrVentaConPagos
		}

		cotizacion = model.Cotizacion{
			ClienteID:       v.ClienteID,
			VendedorID:      v.VendedorID,
			SubTotal:        v.SubTotal,
			Total:           v.Total,
			DescuentoGlobal: v.DescuentoGlobal,
			VentaEnLinea:    v.VentaEnLinea,
			Expira:          time.Now().UTC().AddDate(0, 0, s.vigenciaDias),
			Activa:          true,
		}
		for i := range v.Productos {
			cotizacion.Productos = append(cotizacion.Productos, ventaItemACotizacionItem(&v.Productos[i]))
		}

		if err := s.cotizacionRepo.CreateTx(tx, &cotizacion); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
	if txErr != nil {
		return nil, txErr
	}

	creada, err := s.cotizacionRepo.FindByID(ctx, cotizacion.ID)
	if err != nil {
		return nil, err
	}
	return cotizacionToResponse(creada, time.Now().UTC()), nil
}

func ventaItemACotizacionItem(item *model.VentaItem) model.CotizacionItem {
	extras := make([]model.CotizacionItemExtra, 0, len(item.Extras))
	for _, e := range item.Extras {
		extras = append(extras, model.CotizacionItemExtra{
			EsTemporal:      e.EsTemporal,
			ExtraRefID:      e.ExtraRefID,
			Nombre:          e.Nombre,
			Unidad:          e.Unidad,
			Monto:           e.Monto,
			AnchoCm:         e.AnchoCm,
			LargoCm:         e.LargoCm,
			ParametroNombre: e.ParametroNombre,
			ParametroValor:  e.ParametroValor,
		})
	}
	return model.CotizacionItem{
		EsTemporal:          item.EsTemporal,
		ProductoRefID:       item.ProductoRefID,
		ProductoNombre:      item.ProductoNombre,
		ProductoDescripcion: item.ProductoDescripcion,
		VarianteID:          item.VarianteID,
		VarianteNombre:      item.VarianteNombre,
		CalidadID:           item.CalidadID,
		CalidadNombre:       item.CalidadNombre,
		ColorID:             item.ColorID,
		ColorNombre:         item.ColorNombre,
		TallaID:             item.TallaID,
		TallaNombre:         item.TallaNombre,
		Cantidad:            item.Cantidad,
		PrecioBase:          item.PrecioBase,
		Precio:              item.Precio,
		PrecioFinal:         item.PrecioFinal,
		Descuento:           item.Descuento,
		Extras:              extras,
	}
}

// ── Consultas ────────────────────────────────────────────────────────────────

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducirNoEncontrado(err)
	}
	return ventaToResponse(v), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Mapeo a DTOs ─────────────────────────────────────────────────────────────

func uuidPtrToStr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func itemVentaToResponse(item *model.VentaItem) dto.ItemVentaResponse {
	extras := make([]dto.ExtraItemResponse, 0, len(item.Extras))
	for _, e := range item.Extras {
		extras = append(extras, dto.ExtraItemResponse{
			ID:         e.ID.String(),
			EsTemporal: e.EsTemporal,
			Nombre:     e.Nombre,
			Unidad:     e.Unidad,
			Monto:      e.Monto,
			AnchoCm:    e.AnchoCm,
			LargoCm:    e.LargoCm,
		})
	}
	return dto.ItemVentaResponse{
		ID:          item.ID.String(),
		EsTemporal:  item.EsTemporal,
		Producto:    uuidPtrToStr(item.ProductoRefID),
		Nombre:      item.ProductoNombre,
		Descripcion: item.ProductoDescripcion,
		Variante:    uuidPtrToStr(item.VarianteID),
		Calidad:     uuidPtrToStr(item.CalidadID),
		Color:       uuidPtrToStr(item.ColorID),
		Talla:       uuidPtrToStr(item.TallaID),
		Cantidad:    item.Cantidad,
		PrecioBase:  item.PrecioBase,
		Precio:      item.Precio,
		PrecioFinal: item.PrecioFinal,
		Descuento:   descuentoToDTO(item.Descuento),
		Extras:      extras,
	}
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	productos := make([]dto.ItemVentaResponse, 0, len(v.Productos))
	for i := range v.Productos {
		productos = append(productos, itemVentaToResponse(&v.Productos[i]))
	}
	pagos := make([]dto.PagoResponse, 0, len(v.Pagos))
	for _, p := range v.Pagos {
		pagos = append(pagos, dto.PagoResponse{
			ID:     p.ID.String(),
			Razon:  p.Razon,
			Monto:  p.Monto,
			Metodo: p.Metodo,
			Fecha:  p.Fecha.Format(time.RFC3339),
		})
	}
	clienteNombre := ""
	if v.Cliente != nil {
		clienteNombre = v.Cliente.Nombre
	}
	var fechaLiquidacion *string
	if v.FechaLiquidacion != nil {
		f := v.FechaLiquidacion.Format(time.RFC3339)
		fechaLiquidacion = &f
	}
	return &dto.VentaResponse{
		ID:               v.ID.String(),
		Cliente:          v.ClienteID.String(),
		ClienteNombre:    clienteNombre,
		Vendedor:         v.VendedorID.String(),
		Productos:        productos,
		SubTotal:         v.SubTotal,
		Total:            v.Total,
		Restante:         v.Restante,
		Estado:           v.Estado,
		Liquidado:        v.Liquidado,
		FechaLiquidacion: fechaLiquidacion,
		Pagos:            pagos,
		DescuentoGlobal:  descuentoToDTO(v.DescuentoGlobal),
		VentaEnLinea:     v.VentaEnLinea,
		OrigenCotizacion: uuidPtrToStr(v.OrigenCotizacionID),
		FechaCreacion:    v.CreatedAt.Format(time.RFC3339),
	}
}
