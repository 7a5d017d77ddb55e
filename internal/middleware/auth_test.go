package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secretPrueba = "secreto-de-prueba"

func firmarToken(t *testing.T, claims *JWTClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	firmado, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return firmado
}

func claimsVigentes(rol string) *JWTClaims {
	return &JWTClaims{
		UserID: uuid.NewString(),
		Correo: "vendedor@craftz.mx",
		Rol:    rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func routerProtegido(handler gin.HandlerFunc, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cadena := append([]gin.HandlerFunc{JWTAuth(secretPrueba)}, extra...)
	cadena = append(cadena, handler)
	r.GET("/protegida", cadena...)
	return r
}

func TestJWTAuthTokenValido(t *testing.T) {
	claims := claimsVigentes("vendedor")
	var recibidos *JWTClaims
	r := routerProtegido(func(c *gin.Context) {
		recibidos = GetClaims(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+firmarToken(t, claims, secretPrueba))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, recibidos)
	assert.Equal(t, claims.UserID, recibidos.UserID)
	assert.Equal(t, "vendedor", recibidos.Rol)
}

func TestJWTAuthSinHeader(t *testing.T) {
	r := routerProtegido(func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protegida", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthTokenExpirado(t *testing.T) {
	claims := claimsVigentes("vendedor")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	r := routerProtegido(func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+firmarToken(t, claims, secretPrueba))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthFirmaAjena(t *testing.T) {
	r := routerProtegido(func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+firmarToken(t, claimsVigentes("admin"), "otro-secreto"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUsuarioID(t *testing.T) {
	claims := claimsVigentes("vendedor")
	var id uuid.UUID
	r := routerProtegido(func(c *gin.Context) {
		id = UsuarioID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+firmarToken(t, claims, secretPrueba))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, claims.UserID, id.String())
}
