package service

import (
	"context"
	"time"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/model"
	"github.com/upstagebunion/craftzApp/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CotizacionService interface {
	Crear(ctx context.Context, vendedorID uuid.UUID, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error)
	ListActivas(ctx context.Context) ([]dto.CotizacionResponse, error)
	ListFiltradas(ctx context.Context, filter dto.CotizacionFilter) ([]dto.CotizacionResponse, error)
	// Actualizar replaces the line items while the quotation is still mutable.
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCotizacionRequest) (*dto.CotizacionResponse, error)
	// Convertir promotes the quotation into a pending sale, at most once. The
	// frozen prices are copied verbatim; the current catalog is not consulted.
	Convertir(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type cotizacionService struct {
	repo         repository.CotizacionRepository
	ventaRepo    repository.VentaRepository
	clienteRepo  repository.ClienteRepository
	resolver     *itemResolver
	vigenciaDias int
}

func NewCotizacionService(
	repo repository.CotizacionRepository,
	ventaRepo repository.VentaRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	catalogoRepo repository.CatalogoRepository,
	vigenciaDias int,
) CotizacionService {
	return &cotizacionService{
		repo:         repo,
		ventaRepo:    ventaRepo,
		clienteRepo:  clienteRepo,
		resolver:     &itemResolver{productoRepo: productoRepo, catalogoRepo: catalogoRepo},
		vigenciaDias: vigenciaDias,
	}
}

func (s *cotizacionService) Crear(ctx context.Context, vendedorID uuid.UUID, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error) {
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

	expira, err := s.resolverExpira(req.Expira)
	if err != nil {
		return nil, err
	}

	cotizacion := model.Cotizacion{
		ClienteID:       clienteID,
		VendedorID:      vendedorID,
		SubTotal:        subTotal,
		Total:           total,
		DescuentoGlobal: descuentoToModel(req.DescuentoGlobal),
		VentaEnLinea:    req.VentaEnLinea,
		Expira:          expira,
		Activa:          true,
	}
	for i := range lineas {
		cotizacion.Productos = append(cotizacion.Productos, lineas[i].comoCotizacionItem())
	}

	if err := s.repo.Create(ctx, &cotizacion); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, cotizacion.ID)
}

func (s *cotizacionService) resolverExpira(raw *string) (time.Time, error) {
	if raw == nil || *raw == "" {
		return time.Now().UTC().AddDate(0, 0, s.vigenciaDias), nil
	}
	expira, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return time.Time{}, ErrValidacion
	}
	// the quotation is honored through the whole expiry day
	return expira.Add(24*time.Hour - time.Second), nil
}

func (s *cotizacionService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducirNoEncontrado(err)
	}
	return cotizacionToResponse(c, time.Now().UTC()), nil
}

func (s *cotizacionService) ListActivas(ctx context.Context) ([]dto.CotizacionResponse, error) {
	ahora := time.Now().UTC()
	cotizaciones, err := s.repo.ListActivas(ctx, ahora)
	if err != nil {
		return nil, err
	}
	return mapCotizaciones(cotizaciones, ahora), nil
}

func (s *cotizacionService) ListFiltradas(ctx context.Context, filter dto.CotizacionFilter) ([]dto.CotizacionResponse, error) {
	cotizaciones, err := s.repo.ListFiltradas(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapCotizaciones(cotizaciones, time.Now().UTC()), nil
}

func mapCotizaciones(cotizaciones []model.Cotizacion, ahora time.Time) []dto.CotizacionResponse {
	data := make([]dto.CotizacionResponse, 0, len(cotizaciones))
	for i := range cotizaciones {
		data = append(data, *cotizacionToResponse(&cotizaciones[i], ahora))
	}
	return data
}

func (s *cotizacionService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCotizacionRequest) (*dto.CotizacionResponse, error) {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.FindByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			return traducirNoEncontrado(err)
		}
		ahora := time.Now().UTC()
		if err := mutabilidad(c, ahora); err != nil {
			return err
		}

		lineas, subTotal, err := s.resolver.resolverLineas(ctx, req.Productos)
		if err != nil {
			return err
		}
		total := aplicarDescuento(subTotal, req.DescuentoGlobal)
		if total.IsNegative() {
			return ErrValidacion
		}

		c.SubTotal = subTotal
		c.Total = total
		c.DescuentoGlobal = descuentoToModel(req.DescuentoGlobal)
		c.Productos = nil
		for i := range lineas {
			item := lineas[i].comoCotizacionItem()
			item.CotizacionID = c.ID
			c.Productos = append(c.Productos, item)
		}
		if req.Expira != nil {
			expira, err := s.resolverExpira(req.Expira)
			if err != nil {
				return err
			}
			c.Expira = expira
		}
		return s.repo.ReemplazarItemsTx(tx, c)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, id)
}

// mutabilidad reports why a quotation can no longer change, most specific
// reason first.
func mutabilidad(c *model.Cotizacion, ahora time.Time) error {
	if c.ConvertidaAVentaID != nil {
		return ErrCotizacionConvertida
	}
	if c.Expirada(ahora) {
		return ErrCotizacionExpirada
	}
	if !c.Activa {
		return ErrCotizacionInmutable
	}
	return nil
}

func (s *cotizacionService) Convertir(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.FindByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			return traducirNoEncontrado(err)
		}
		if err := mutabilidad(c, time.Now().UTC()); err != nil {
			return err
		}

		origen := c.ID
		venta = model.Venta{
			ClienteID:          c.ClienteID,
			VendedorID:         c.VendedorID,
			SubTotal:           c.SubTotal,
			Total:              c.Total,
			Restante:           c.Total,
			Estado:             model.EstadoPendiente,
			DescuentoGlobal:    c.DescuentoGlobal,
			VentaEnLinea:       c.VentaEnLinea,
			OrigenCotizacionID: &origen,
		}
		for i := range c.Productos {
			venta.Productos = append(venta.Productos, cotizacionItemAVentaItem(&c.Productos[i]))
		}

		if err := s.ventaRepo.CreateTx(ctx, tx, &venta); err != nil {
			return err
		}
		return s.repo.MarcarConvertidaTx(tx, c.ID, venta.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Str("cotizacion_id", id.String()).Str("venta_id", venta.ID.String()).Msg("cotizacion convertida")
	creada, err := s.ventaRepo.FindByID(ctx, venta.ID)
	if err != nil {
		return nil, err
	}
	return ventaToResponse(creada), nil
}

func (s *cotizacionService) Eliminar(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return traducirNoEncontrado(err)
	}
	if c.ConvertidaAVentaID != nil {
		return ErrCotizacionConvertida
	}
	return s.repo.Delete(ctx, id)
}

func cotizacionItemAVentaItem(item *model.CotizacionItem) model.VentaItem {
	extras := make([]model.VentaItemExtra, 0, len(item.Extras))
	for _, e := range item.Extras {
		extras = append(extras, model.VentaItemExtra{
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
	return model.VentaItem{
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

// ── Mapeo a DTOs ─────────────────────────────────────────────────────────────

func itemCotizacionToResponse(item *model.CotizacionItem) dto.ItemVentaResponse {
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

func cotizacionToResponse(c *model.Cotizacion, ahora time.Time) *dto.CotizacionResponse {
	productos := make([]dto.ItemVentaResponse, 0, len(c.Productos))
	for i := range c.Productos {
		productos = append(productos, itemCotizacionToResponse(&c.Productos[i]))
	}
	clienteNombre := ""
	if c.Cliente != nil {
		clienteNombre = c.Cliente.Nombre
	}
	diasRestantes := int(c.Expira.Sub(ahora).Hours() / 24)
	if diasRestantes < 0 || c.Expirada(ahora) {
		diasRestantes = 0
	}
	return &dto.CotizacionResponse{
		ID:               c.ID.String(),
		Cliente:          c.ClienteID.String(),
		ClienteNombre:    clienteNombre,
		Vendedor:         c.VendedorID.String(),
		Productos:        productos,
		SubTotal:         c.SubTotal,
		Total:            c.Total,
		DescuentoGlobal:  descuentoToDTO(c.DescuentoGlobal),
		VentaEnLinea:     c.VentaEnLinea,
		Expira:           c.Expira.Format(time.RFC3339),
		DiasRestantes:    diasRestantes,
		Activa:           c.Activa,
		PuedeConvertir:   c.PuedeConvertir(ahora),
		ConvertidaAVenta: uuidPtrToStr(c.ConvertidaAVentaID),
		FechaCreacion:    c.CreatedAt.Format(time.RFC3339),
	}
}
