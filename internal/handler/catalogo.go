package handler

import (
	"net/http"

	"github.com/upstagebunion/craftzApp/internal/apierror"
	"github.com/upstagebunion/craftzApp/internal/dto"
	"github.com/upstagebunion/craftzApp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogoHandler serves the supporting catalogs: categorías con sus
// subcategorías, extras y costos de elaboración.
type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// ── Categorías ────────────────────────────────────────────────────────────────

// CrearCategoria godoc
// @Summary      Registrar categoría
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCategoriaRequest true "Datos de la categoría"
// @Success      201  {object} dto.CategoriaResponse
// @Router       /v1/catalogo/categorias [post]
func (h *CatalogoHandler) CrearCategoria(c *gin.Context) {
	var req dto.CrearCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCategoria(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarCategorias godoc
// @Summary      Listar categorías con subcategorías
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.CategoriaResponse
// @Router       /v1/catalogo/categorias [get]
func (h *CatalogoHandler) ListarCategorias(c *gin.Context) {
	resp, err := h.svc.ListarCategorias(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarCategoria godoc
// @Summary      Actualizar categoría
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la categoría"
// @Param        body body dto.CrearCategoriaRequest true "Datos nuevos"
// @Success      200  {object} dto.CategoriaResponse
// @Router       /v1/catalogo/categorias/{id} [put]
func (h *CatalogoHandler) ActualizarCategoria(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CrearCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCategoria(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarCategoria godoc
// @Summary      Eliminar categoría
// @Tags         catalogo
// @Security     BearerAuth
// @Param        id path string true "UUID de la categoría"
// @Success      204
// @Router       /v1/catalogo/categorias/{id} [delete]
func (h *CatalogoHandler) EliminarCategoria(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarCategoria(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Subcategorías ─────────────────────────────────────────────────────────────

// CrearSubcategoria godoc
// @Summary      Registrar subcategoría
// @Description  Agrega una subcategoría a la categoría indicada; usaTallas decide si las hojas del árbol llegan hasta talla.
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la categoría"
// @Param        body body dto.CrearSubcategoriaRequest true "Datos de la subcategoría"
// @Success      201  {object} dto.SubcategoriaResponse
// @Router       /v1/catalogo/categorias/{id}/subcategorias [post]
func (h *CatalogoHandler) CrearSubcategoria(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CrearSubcategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearSubcategoria(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ActualizarSubcategoria godoc
// @Summary      Actualizar subcategoría
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la subcategoría"
// @Param        body body dto.CrearSubcategoriaRequest true "Datos nuevos"
// @Success      200  {object} dto.SubcategoriaResponse
// @Router       /v1/catalogo/subcategorias/{id} [put]
func (h *CatalogoHandler) ActualizarSubcategoria(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CrearSubcategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarSubcategoria(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarSubcategoria godoc
// @Summary      Eliminar subcategoría
// @Tags         catalogo
// @Security     BearerAuth
// @Param        id path string true "UUID de la subcategoría"
// @Success      204
// @Router       /v1/catalogo/subcategorias/{id} [delete]
func (h *CatalogoHandler) EliminarSubcategoria(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarSubcategoria(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Extras ────────────────────────────────────────────────────────────────────

// CrearExtra godoc
// @Summary      Registrar extra
// @Description  Alta de un cargo adicional aplicable a las líneas de venta: por pieza o por centímetro cuadrado.
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearExtraRequest true "Datos del extra"
// @Success      201  {object} dto.ExtraResponse
// @Router       /v1/catalogo/extras [post]
func (h *CatalogoHandler) CrearExtra(c *gin.Context) {
	var req dto.CrearExtraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearExtra(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarExtras godoc
// @Summary      Listar extras
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ExtraResponse
// @Router       /v1/catalogo/extras [get]
func (h *CatalogoHandler) ListarExtras(c *gin.Context) {
	resp, err := h.svc.ListarExtras(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarExtra godoc
// @Summary      Actualizar extra
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del extra"
// @Param        body body dto.ActualizarExtraRequest true "Campos a modificar"
// @Success      200  {object} dto.ExtraResponse
// @Router       /v1/catalogo/extras/{id} [patch]
func (h *CatalogoHandler) ActualizarExtra(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarExtraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarExtra(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarExtra godoc
// @Summary      Eliminar extra
// @Tags         catalogo
// @Security     BearerAuth
// @Param        id path string true "UUID del extra"
// @Success      204
// @Router       /v1/catalogo/extras/{id} [delete]
func (h *CatalogoHandler) EliminarExtra(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarExtra(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Costos de elaboración ─────────────────────────────────────────────────────

// CrearCosto godoc
// @Summary      Registrar costo de elaboración
// @Description  Alta de un parámetro de costo usado por los extras cobrados por área (costo de plancha y sus dimensiones).
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCostoElaboracionRequest true "Datos del costo"
// @Success      201  {object} dto.CostoElaboracionResponse
// @Router       /v1/catalogo/costos [post]
func (h *CatalogoHandler) CrearCosto(c *gin.Context) {
	var req dto.CrearCostoElaboracionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCosto(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarCostos godoc
// @Summary      Listar costos de elaboración
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.CostoElaboracionResponse
// @Router       /v1/catalogo/costos [get]
func (h *CatalogoHandler) ListarCostos(c *gin.Context) {
	resp, err := h.svc.ListarCostos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarCosto godoc
// @Summary      Actualizar costo de elaboración
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del costo"
// @Param        body body dto.ActualizarCostoElaboracionRequest true "Campos a modificar"
// @Success      200  {object} dto.CostoElaboracionResponse
// @Router       /v1/catalogo/costos/{id} [patch]
func (h *CatalogoHandler) ActualizarCosto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarCostoElaboracionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCosto(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarCosto godoc
// @Summary      Eliminar costo de elaboración
// @Tags         catalogo
// @Security     BearerAuth
// @Param        id path string true "UUID del costo"
// @Success      204
// @Router       /v1/catalogo/costos/{id} [delete]
func (h *CatalogoHandler) EliminarCosto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarCosto(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
