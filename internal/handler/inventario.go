package handler

import (
	"net/http"

	"github.com/upstagebunion/craftzApp/internal/apierror"
	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/middleware"
	"github.com/upstagebunion/craftzApp/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// RegistrarAjuste godoc
// @Summary      Ajustar stock
// @Description  Aplica una corrección manual de stock sobre una hoja del árbol y registra el movimiento en la bitácora, en una sola transacción.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AjusteInventarioRequest true "Ajuste con ruta a la hoja"
// @Success      201  {object} dto.MovimientoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/inventario/ajustes [post]
func (h *InventarioHandler) RegistrarAjuste(c *gin.Context) {
	var req dto.AjusteInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarAjuste(c.Request.Context(), middleware.UsuarioID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarMovimientos godoc
// @Summary      Consultar bitácora de inventario
// @Description  Lista paginada de movimientos, filtrable por producto, motivo, tipo y fechas. La bitácora es de solo lectura.
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        producto    query string false "UUID del producto"
// @Param        motivo      query string false "compra | venta | ajuste | devolucion | perdida"
// @Param        tipo        query string false "entrada | salida"
// @Param        fechaInicio query string false "Fecha YYYY-MM-DD"
// @Param        fechaFin    query string false "Fecha YYYY-MM-DD"
// @Param        page        query int    false "Página (default 1)"
// @Param        limit       query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.MovimientoListResponse
// @Router       /v1/inventario/movimientos [get]
func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	var filter dto.MovimientoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
