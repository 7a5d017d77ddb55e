package service

import (
	"context"

	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/model"
	"github.com/upstagebunion/craftzApp/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// itemResolver turns request lines into the immutable priced snapshots sales
// and quotations share. Catalog references are resolved against the live tree
// once, here; after that the snapshot is authoritative and catalog edits no
// longer touch it.
type itemResolver struct {
	productoRepo repository.ProductoRepository
	catalogoRepo repository.CatalogoRepository
}

// lineaResuelta carries everything needed to build either a VentaItem or a
// CotizacionItem.
type lineaResuelta struct {
	esTemporal          bool
	productoRefID       *uuid.UUID
	productoNombre      string
	productoDescripcion string

	varianteID     *uuid.UUID
	varianteNombre *string
	calidadID      *uuid.UUID
	calidadNombre  *string
	colorID        *uuid.UUID
	colorNombre    *string
	tallaID        *uuid.UUID
	tallaNombre    *string

	cantidad    int
	precioBase  decimal.Decimal
	precio      decimal.Decimal
	precioFinal decimal.Decimal
	descuento   model.Descuento

	extras []model.VentaItemExtra
}

func (r *itemResolver) resolverLineas(ctx context.Context, items []dto.ItemVentaRequest) ([]lineaResuelta, decimal.Decimal, error) {
	lineas := make([]lineaResuelta, 0, len(items))
	subTotal := decimal.Zero

	for _, item := range items {
		linea, err := r.resolverLinea(ctx, item)
		if err != nil {
			return nil, decimal.Zero, err
		}
		lineas = append(lineas, *linea)
		subTotal = subTotal.Add(linea.precioFinal)
	}
	return lineas, subTotal, nil
}

func (r *itemResolver) resolverLinea(ctx context.Context, item dto.ItemVentaRequest) (*lineaResuelta, error) {
	linea := &lineaResuelta{
		esTemporal: item.EsTemporal,
		cantidad:   item.Cantidad,
		precioBase: item.PrecioBase,
		precio:     item.Precio,
		descuento:  descuentoToModel(item.Descuento),
	}

	if item.EsTemporal {
		linea.productoNombre = item.Nombre
		linea.productoDescripcion = item.Descripcion
	} else {
		if err := r.snapshotCatalogo(ctx, item, linea); err != nil {
			return nil, err
		}
	}

	extras, montoExtras, err := r.resolverExtras(ctx, item.Extras)
	if err != nil {
		return nil, err
	}
	linea.extras = extras

	bruto := item.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad))).Add(montoExtras)
	linea.precioFinal = aplicarDescuento(bruto, item.Descuento)
	if linea.precioFinal.IsNegative() {
		return nil, ErrValidacion
	}
	return linea, nil
}

// snapshotCatalogo freezes the leaf path names onto the line. The walk mirrors
// ResolverHoja but tolerates an absent talla here — availability is only
// enforced at the entregado transition, not at capture time.
func (r *itemResolver) snapshotCatalogo(ctx context.Context, item dto.ItemVentaRequest, linea *lineaResuelta) error {
	if item.Producto == nil {
		return ErrValidacion
	}
	productoID, err := uuid.Parse(*item.Producto)
	if err != nil {
		return ErrValidacion
	}
	p, err := r.productoRepo.FindByIDTx(ctx, nil, productoID)
	if err != nil {
		return traducirNoEncontrado(err)
	}
	if p.Subcategoria == nil {
		return ErrJerarquiaInvalida
	}

	varianteID, err := parseOpcional(item.Variante)
	if err != nil {
		return err
	}
	calidadID, err := parseOpcional(item.Calidad)
	if err != nil {
		return err
	}
	colorID, err := parseOpcional(item.Color)
	if err != nil {
		return err
	}
	tallaID, err := parseOpcional(item.Talla)
	if err != nil {
		return err
	}

	variante, err := elegirVariante(p, varianteID)
	if err != nil {
		return err
	}
	calidad, err := elegirCalidad(p, variante, calidadID)
	if err != nil {
		return err
	}
	if colorID == nil {
		return ErrJerarquiaInvalida
	}
	var color *model.Color
	for i := range calidad.Colores {
		if calidad.Colores[i].ID == *colorID {
			color = &calidad.Colores[i]
			break
		}
	}
	if color == nil {
		return ErrNoEncontrado
	}

	linea.productoRefID = &p.ID
	linea.productoNombre = p.Nombre
	linea.productoDescripcion = p.Descripcion
	linea.varianteID = &variante.ID
	linea.varianteNombre = variante.Nombre
	linea.calidadID = &calidad.ID
	linea.calidadNombre = calidad.Nombre
	linea.colorID = &color.ID
	nombreColor := color.Nombre
	linea.colorNombre = &nombreColor

	if p.Subcategoria.UsaTallas {
		if tallaID == nil {
			return ErrJerarquiaInvalida
		}
		var talla *model.Talla
		for i := range color.Tallas {
			if color.Tallas[i].ID == *tallaID {
				talla = &color.Tallas[i]
				break
			}
		}
		if talla == nil {
			return ErrNoEncontrado
		}
		linea.tallaID = &talla.ID
		if talla.Nombre != nil {
			linea.tallaNombre = talla.Nombre
		} else {
			codigo := talla.Codigo
			linea.tallaNombre = &codigo
		}
	} else if tallaID != nil {
		return ErrJerarquiaInvalida
	}
	return nil
}

func (r *itemResolver) resolverExtras(ctx context.Context, extras []dto.ExtraItemRequest) ([]model.VentaItemExtra, decimal.Decimal, error) {
	total := decimal.Zero
	resultado := make([]model.VentaItemExtra, 0, len(extras))

	for _, e := range extras {
		extra := model.VentaItemExtra{
			EsTemporal: e.EsTemporal,
			Nombre:     e.Nombre,
			Unidad:     e.Unidad,
			AnchoCm:    e.AnchoCm,
			LargoCm:    e.LargoCm,
		}

		if !e.EsTemporal {
			if e.Extra == nil {
				return nil, decimal.Zero, ErrValidacion
			}
			extraID, err := uuid.Parse(*e.Extra)
			if err != nil {
				return nil, decimal.Zero, ErrValidacion
			}
			cat, err := r.catalogoRepo.FindExtra(ctx, extraID)
			if err != nil {
				return nil, decimal.Zero, traducirNoEncontrado(err)
			}
			extra.ExtraRefID = &cat.ID
			extra.Nombre = cat.Nombre
			extra.Unidad = cat.Unidad
			extra.Monto = cat.Monto
		} else if e.Monto != nil {
			extra.Monto = *e.Monto
		}

		if extra.Unidad == model.UnidadCmCuadrado {
			monto, err := r.costoPorArea(ctx, e, &extra)
			if err != nil {
				return nil, decimal.Zero, err
			}
			extra.Monto = monto
		}

		if extra.Monto.IsNegative() {
			return nil, decimal.Zero, ErrValidacion
		}
		total = total.Add(extra.Monto)
		resultado = append(resultado, extra)
	}
	return resultado, total, nil
}

// costoPorArea prices an area-based extra against a production cost parameter:
// the plate cost spread over its area, times the requested print area.
func (r *itemResolver) costoPorArea(ctx context.Context, e dto.ExtraItemRequest, extra *model.VentaItemExtra) (decimal.Decimal, error) {
	if e.AnchoCm == nil || e.LargoCm == nil || e.CostoElaboracion == nil {
		return decimal.Zero, ErrValidacion
	}
	costoID, err := uuid.Parse(*e.CostoElaboracion)
	if err != nil {
		return decimal.Zero, ErrValidacion
	}
	costo, err := r.catalogoRepo.FindCosto(ctx, costoID)
	if err != nil {
		return decimal.Zero, traducirNoEncontrado(err)
	}
	if costo.AnchoPlancha == nil || costo.LargoPlancha == nil {
		return decimal.Zero, ErrValidacion
	}
	areaPlancha := costo.AnchoPlancha.Mul(*costo.LargoPlancha)
	if areaPlancha.IsZero() {
		return decimal.Zero, ErrValidacion
	}
	costoPorCm2 := costo.Costo.Div(areaPlancha)
	area := e.AnchoCm.Mul(*e.LargoCm)

	extra.ParametroNombre = &costo.Nombre
	valor := costo.Costo
	extra.ParametroValor = &valor
	return area.Mul(costoPorCm2).Round(2), nil
}

// ── Conversión a modelos ─────────────────────────────────────────────────────

func (l *lineaResuelta) comoVentaItem() model.VentaItem {
	return model.VentaItem{
		EsTemporal:          l.esTemporal,
		ProductoRefID:       l.productoRefID,
		ProductoNombre:      l.productoNombre,
		ProductoDescripcion: l.productoDescripcion,
		VarianteID:          l.varianteID,
		VarianteNombre:      l.varianteNombre,
		CalidadID:           l.calidadID,
		CalidadNombre:       l.calidadNombre,
		ColorID:             l.colorID,
		ColorNombre:         l.colorNombre,
		TallaID:             l.tallaID,
		TallaNombre:         l.tallaNombre,
		Cantidad:            l.cantidad,
		PrecioBase:          l.precioBase,
		Precio:              l.precio,
		PrecioFinal:         l.precioFinal,
		Descuento:           l.descuento,
		Extras:              l.extras,
	}
}

func (l *lineaResuelta) comoCotizacionItem() model.CotizacionItem {
	extras := make([]model.CotizacionItemExtra, 0, len(l.extras))
	for _, e := range l.extras {
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
		EsTemporal:          l.esTemporal,
		ProductoRefID:       l.productoRefID,
		ProductoNombre:      l.productoNombre,
		ProductoDescripcion: l.productoDescripcion,
		VarianteID:          l.varianteID,
		VarianteNombre:      l.varianteNombre,
		CalidadID:           l.calidadID,
		CalidadNombre:       l.calidadNombre,
		ColorID:             l.colorID,
		ColorNombre:         l.colorNombre,
		TallaID:             l.tallaID,
		TallaNombre:         l.tallaNombre,
		Cantidad:            l.cantidad,
		PrecioBase:          l.precioBase,
		Precio:              l.precio,
		PrecioFinal:         l.precioFinal,
		Descuento:           l.descuento,
		Extras:              extras,
	}
}

// ── Descuentos ───────────────────────────────────────────────────────────────

var cien = decimal.NewFromInt(100)

func aplicarDescuento(monto decimal.Decimal, d *dto.DescuentoDTO) decimal.Decimal {
	if d == nil || d.Valor == nil || d.Tipo == nil {
		return monto
	}
	switch *d.Tipo {
	case "porcentaje":
		return monto.Sub(monto.Mul(d.Valor.Div(cien))).Round(2)
	case "cantidad":
		return monto.Sub(*d.Valor)
	}
	return monto
}

func descuentoToModel(d *dto.DescuentoDTO) model.Descuento {
	if d == nil {
		return model.Descuento{}
	}
	return model.Descuento{Razon: d.Razon, Tipo: d.Tipo, Valor: d.Valor}
}

func descuentoToDTO(d model.Descuento) *dto.DescuentoDTO {
	if !d.Aplicado() {
		return nil
	}
	return &dto.DescuentoDTO{Razon: d.Razon, Tipo: d.Tipo, Valor: d.Valor}
}

func parseOpcional(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, ErrValidacion
	}
	return &id, nil
}
