package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/upstagebunion/craftzApp/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTienePermiso(t *testing.T) {
	casos := []struct {
		rol      string
		permiso  Permiso
		esperado bool
	}{
		{model.RolVendedor, PermisoVentasGestionar, true},
		{model.RolVendedor, PermisoCotizacionesGestionar, true},
		{model.RolVendedor, PermisoClientesGestionar, true},
		{model.RolVendedor, PermisoVentasEliminar, false},
		{model.RolVendedor, PermisoCatalogoGestionar, false},
		{model.RolVendedor, PermisoReportesVer, false},
		{model.RolVendedor, PermisoUsuariosGestionar, false},

		{model.RolGerente, PermisoVentasEliminar, true},
		{model.RolGerente, PermisoCatalogoGestionar, true},
		{model.RolGerente, PermisoInventarioAjustar, true},
		{model.RolGerente, PermisoReportesVer, true},
		{model.RolGerente, PermisoUsuariosGestionar, false},

		{model.RolAdmin, PermisoUsuariosGestionar, true},
		{model.RolAdmin, PermisoVentasEliminar, true},

		{"desconocido", PermisoVentasGestionar, false},
		{"", PermisoVentasGestionar, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, TienePermiso(c.rol, c.permiso),
			"rol %q permiso %q", c.rol, c.permiso)
	}
}

func TestRequierePermiso(t *testing.T) {
	gin.SetMode(gin.TestMode)

	servir := func(rol string, permiso Permiso) int {
		r := gin.New()
		r.GET("/recurso",
			JWTAuth(secretPrueba),
			RequierePermiso(permiso),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)
		req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
		req.Header.Set("Authorization", "Bearer "+firmarToken(t, claimsVigentes(rol), secretPrueba))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, servir(model.RolVendedor, PermisoVentasGestionar))
	assert.Equal(t, http.StatusForbidden, servir(model.RolVendedor, PermisoVentasEliminar))
	assert.Equal(t, http.StatusOK, servir(model.RolGerente, PermisoReportesVer))
	assert.Equal(t, http.StatusForbidden, servir(model.RolGerente, PermisoUsuariosGestionar))
	assert.Equal(t, http.StatusOK, servir(model.RolAdmin, PermisoUsuariosGestionar))
}
