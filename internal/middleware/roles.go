package middleware

// roles.go
// Authorization runs on a closed permission table instead of ad-hoc role
// checks scattered over the handlers. Routes declare the permission they
// need; the table maps each role to the permissions it holds.

import (
	"net/http"

	"github.com/upstagebunion/craftzApp/internal/apierror"
	"github.com/upstagebunion/craftzApp/internal/model"

	"github.com/gin-gonic/gin"
)

// Permiso names one guarded capability of the API.
type Permiso string

const (
	PermisoVentasGestionar       Permiso = "ventas:gestionar"
	PermisoVentasEliminar        Permiso = "ventas:eliminar"
	PermisoCotizacionesGestionar Permiso = "cotizaciones:gestionar"
	PermisoClientesGestionar     Permiso = "clientes:gestionar"
	PermisoCatalogoGestionar     Permiso = "catalogo:gestionar"
	PermisoInventarioAjustar     Permiso = "inventario:ajustar"
	PermisoReportesVer           Permiso = "reportes:ver"
	PermisoUsuariosGestionar     Permiso = "usuarios:gestionar"
)

// permisosPorRol is the closed table. Roles not listed here hold nothing;
// permissions not listed for a role are denied.
var permisosPorRol = map[string]map[Permiso]bool{
	model.RolVendedor: {
		PermisoVentasGestionar:       true,
		PermisoCotizacionesGestionar: true,
		PermisoClientesGestionar:     true,
	},
	model.RolGerente: {
		PermisoVentasGestionar:       true,
		PermisoVentasEliminar:        true,
		PermisoCotizacionesGestionar: true,
		PermisoClientesGestionar:     true,
		PermisoCatalogoGestionar:     true,
		PermisoInventarioAjustar:     true,
		PermisoReportesVer:           true,
	},
	model.RolAdmin: {
		PermisoVentasGestionar:       true,
		PermisoVentasEliminar:        true,
		PermisoCotizacionesGestionar: true,
		PermisoClientesGestionar:     true,
		PermisoCatalogoGestionar:     true,
		PermisoInventarioAjustar:     true,
		PermisoReportesVer:           true,
		PermisoUsuariosGestionar:     true,
	},
}

// TienePermiso consults the table directly; exported so services and tests
// can reuse the same source of truth as the middleware.
func TienePermiso(rol string, permiso Permiso) bool {
	return permisosPorRol[rol][permiso]
}

// RequierePermiso rejects requests whose role lacks the permission.
// Must run after JWTAuth.
func RequierePermiso(permiso Permiso) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || !TienePermiso(claims.Rol, permiso) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}
