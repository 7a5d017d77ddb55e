package handler

import (
	"net/http"

	"github.com/upstagebunion/craftzApp/internal/apierror"
	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/middleware"
	"github.com/upstagebunion/craftzApp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CotizacionesHandler struct{ svc service.CotizacionService }

func NewCotizacionesHandler(svc service.CotizacionService) *CotizacionesHandler {
	return &CotizacionesHandler{svc: svc}
}

// CrearCotizacion godoc
// @Summary      Registrar cotización
// @Description  Crea una cotización con los precios congelados al momento de la captura y vigencia configurable.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCotizacionRequest true "Detalle de la cotización"
// @Success      201  {object} dto.CotizacionResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/cotizaciones [post]
func (h *CotizacionesHandler) CrearCotizacion(c *gin.Context) {
	var req dto.CrearCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), middleware.UsuarioID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObtenerCotizacion godoc
// @Summary      Consultar cotización
// @Tags         cotizaciones
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la cotización"
// @Success      200 {object} dto.CotizacionResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/cotizaciones/{id} [get]
func (h *CotizacionesHandler) ObtenerCotizacion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarCotizaciones godoc
// @Summary      Listar cotizaciones
// @Description  Sin filtros retorna solo las cotizaciones vigentes; con filtros incluye expiradas y convertidas según se pida.
// @Tags         cotizaciones
// @Produce      json
// @Security     BearerAuth
// @Param        cliente     query string false "UUID del cliente"
// @Param        fechaInicio query string false "Fecha YYYY-MM-DD"
// @Param        fechaFin    query string false "Fecha YYYY-MM-DD"
// @Param        convertidas query string false "true | false"
// @Param        expiradas   query string false "true | false"
// @Success      200 {array} dto.CotizacionResponse
// @Router       /v1/cotizaciones [get]
func (h *CotizacionesHandler) ListarCotizaciones(c *gin.Context) {
	var filter dto.CotizacionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	sinFiltros := filter.Cliente == "" && filter.FechaInicio == "" && filter.FechaFin == "" &&
		filter.Convertidas == "" && filter.Expiradas == ""

	var (
		resp []dto.CotizacionResponse
		err  error
	)
	if sinFiltros {
		resp, err = h.svc.ListActivas(c.Request.Context())
	} else {
		resp, err = h.svc.ListFiltradas(c.Request.Context(), filter)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarCotizacion godoc
// @Summary      Actualizar cotización
// @Description  Reemplaza las líneas de una cotización aún vigente y recalcula los totales. Convertidas o expiradas no se pueden editar.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la cotización"
// @Param        body body dto.ActualizarCotizacionRequest true "Líneas nuevas"
// @Success      200  {object} dto.CotizacionResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/cotizaciones/{id} [put]
func (h *CotizacionesHandler) ActualizarCotizacion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConvertirCotizacion godoc
// @Summary      Convertir cotización en venta
// @Description  Promueve la cotización a venta pendiente copiando los precios congelados tal cual. Cada cotización se convierte a lo más una vez.
// @Tags         cotizaciones
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la cotización"
// @Success      201 {object} dto.VentaResponse
// @Failure      409 {object} apierror.APIError
// @Failure      410 {object} apierror.APIError
// @Router       /v1/cotizaciones/{id}/convertir [post]
func (h *CotizacionesHandler) ConvertirCotizacion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Convertir(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EliminarCotizacion godoc
// @Summary      Eliminar cotización
// @Tags         cotizaciones
// @Security     BearerAuth
// @Param        id path string true "UUID de la cotización"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/cotizaciones/{id} [delete]
func (h *CotizacionesHandler) EliminarCotizacion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
