package router

import (
	"time"

	"github.com/upstagebunion/craftzApp/internal/config"
	"github.com/upstagebunion/craftzApp/internal/handler"
	"github.com/upstagebunion/craftzApp/internal/middleware"
	"github.com/upstagebunion/craftzApp/internal/repository"
	"github.com/upstagebunion/craftzApp/internal/service"
	"github.com/upstagebunion/craftzApp/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	catalogoRepo := repository.NewCatalogoRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cotizacionRepo := repository.NewCotizacionRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	catalogoSvc := service.NewCatalogoService(catalogoRepo)
	productoSvc := service.NewProductoService(productoRepo)
	ventaSvc := service.NewVentaService(ventaRepo, cotizacionRepo, movimientoRepo, clienteRepo,
		productoSvc, productoRepo, catalogoRepo, dispatcher, cfg.CotizacionDias)
	cotizacionSvc := service.NewCotizacionService(cotizacionRepo, ventaRepo, clienteRepo,
		productoRepo, catalogoRepo, cfg.CotizacionDias)
	inventarioSvc := service.NewInventarioService(movimientoRepo, productoSvc, db)
	reporteSvc := service.NewReporteService(reporteRepo, rdb, cfg.NombreNegocio, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	cotizacionesH := handler.NewCotizacionesHandler(cotizacionSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes — authorization runs on the permission table, declared
	// per group or per endpoint.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		ventas := v1.Group("/ventas", middleware.RequierePermiso(middleware.PermisoVentasGestionar))
		{
			ventas.POST("", ventasH.CrearVenta)
			ventas.GET("", ventasH.ListarVentas)
			ventas.GET("/:id", ventasH.ObtenerVenta)
			ventas.PATCH("/:id/estado", ventasH.CambiarEstado)
			ventas.POST("/:id/pagos", ventasH.RegistrarPago)
			ventas.POST("/:id/revertir", ventasH.RevertirACotizacion)
		}
		v1.DELETE("/ventas/:id", middleware.RequierePermiso(middleware.PermisoVentasEliminar), ventasH.EliminarVenta)

		cotizaciones := v1.Group("/cotizaciones", middleware.RequierePermiso(middleware.PermisoCotizacionesGestionar))
		{
			cotizaciones.POST("", cotizacionesH.CrearCotizacion)
			cotizaciones.GET("", cotizacionesH.ListarCotizaciones)
			cotizaciones.GET("/:id", cotizacionesH.ObtenerCotizacion)
			cotizaciones.PUT("/:id", cotizacionesH.ActualizarCotizacion)
			cotizaciones.POST("/:id/convertir", cotizacionesH.ConvertirCotizacion)
			cotizaciones.DELETE("/:id", cotizacionesH.EliminarCotizacion)
		}

		clientes := v1.Group("/clientes", middleware.RequierePermiso(middleware.PermisoClientesGestionar))
		{
			clientes.POST("", clientesH.CrearCliente)
			clientes.GET("", clientesH.ListarClientes)
			clientes.GET("/:id", clientesH.ObtenerCliente)
			clientes.PATCH("/:id", clientesH.ActualizarCliente)
			clientes.DELETE("/:id", clientesH.EliminarCliente)
		}

		// Product reads are open to any authenticated user; writes need the
		// catalog permission.
		v1.GET("/productos", productosH.ListarProductos)
		v1.GET("/productos/:id", productosH.ObtenerProducto)
		prods := v1.Group("/productos", middleware.RequierePermiso(middleware.PermisoCatalogoGestionar))
		{
			prods.POST("", productosH.CrearProducto)
			prods.PATCH("/:id", productosH.ActualizarProducto)
			prods.POST("/:id/variantes", productosH.AgregarVariante)
			prods.POST("/:id/colores", productosH.AgregarColor)
			prods.POST("/:id/tallas", productosH.AgregarTalla)
			prods.DELETE("/:id", productosH.DesactivarProducto)
			prods.POST("/:id/reactivar", productosH.ReactivarProducto)
		}

		v1.GET("/catalogo/categorias", catalogoH.ListarCategorias)
		v1.GET("/catalogo/extras", catalogoH.ListarExtras)
		v1.GET("/catalogo/costos", catalogoH.ListarCostos)
		catalogo := v1.Group("/catalogo", middleware.RequierePermiso(middleware.PermisoCatalogoGestionar))
		{
			catalogo.POST("/categorias", catalogoH.CrearCategoria)
			catalogo.PUT("/categorias/:id", catalogoH.ActualizarCategoria)
			catalogo.DELETE("/categorias/:id", catalogoH.EliminarCategoria)
			catalogo.POST("/categorias/:id/subcategorias", catalogoH.CrearSubcategoria)
			catalogo.PUT("/subcategorias/:id", catalogoH.ActualizarSubcategoria)
			catalogo.DELETE("/subcategorias/:id", catalogoH.EliminarSubcategoria)
			catalogo.POST("/extras", catalogoH.CrearExtra)
			catalogo.PATCH("/extras/:id", catalogoH.ActualizarExtra)
			catalogo.DELETE("/extras/:id", catalogoH.EliminarExtra)
			catalogo.POST("/costos", catalogoH.CrearCosto)
			catalogo.PATCH("/costos/:id", catalogoH.ActualizarCosto)
			catalogo.DELETE("/costos/:id", catalogoH.EliminarCosto)
		}

		inv := v1.Group("/inventario")
		{
			inv.POST("/ajustes", middleware.RequierePermiso(middleware.PermisoInventarioAjustar), inventarioH.RegistrarAjuste)
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
		}

		reportes := v1.Group("/reportes", middleware.RequierePermiso(middleware.PermisoReportesVer))
		{
			reportes.GET("/ventas", reportesH.ResumenVentas)
			reportes.GET("/ventas/pdf", reportesH.ExportarResumenPDF)
		}

		usuarios := v1.Group("/usuarios", middleware.RequierePermiso(middleware.PermisoUsuariosGestionar))
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PATCH("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
