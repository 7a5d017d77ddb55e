package handler

import (
	"net/http"

	"github.com/upstagebunion/craftzApp/internal/apierror"
	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// ResumenVentas godoc
// @Summary      Resumen de ventas del periodo
// @Description  Totales vendido, cobrado y por cobrar, conteo por estado y pagos por método. Sin fechas el periodo es el mes en curso.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        fechaInicio query string false "Fecha YYYY-MM-DD"
// @Param        fechaFin    query string false "Fecha YYYY-MM-DD"
// @Success      200 {object} dto.ResumenVentasResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes/ventas [get]
func (h *ReportesHandler) ResumenVentas(c *gin.Context) {
	var filter dto.ReporteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ResumenVentas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarResumenPDF godoc
// @Summary      Descargar resumen de ventas en PDF
// @Tags         reportes
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        fechaInicio query string false "Fecha YYYY-MM-DD"
// @Param        fechaFin    query string false "Fecha YYYY-MM-DD"
// @Success      200 {file} binary
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes/ventas/pdf [get]
func (h *ReportesHandler) ExportarResumenPDF(c *gin.Context) {
	var filter dto.ReporteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	path, err := h.svc.ExportarResumenPDF(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "resumen_ventas.pdf")
}
