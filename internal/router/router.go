package router

import (
	"time"

	"salelog/internal/config"
	"salelog/internal/handler"
	"salelog/internal/infra"
	"salelog/internal/middleware"
	"salelog/internal/model"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// New returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, svcs *Services, health gin.HandlerFunc, reg *prometheus.Registry) *gin.Engine {
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
	if reg != nil {
		r.Use(middleware.NewHTTPMetrics(reg).Middleware())
	}
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(svcs.Auth)
	salesH := handler.NewSalesHandler(svcs.Sales)
	dashboardH := handler.NewDashboardHandler(svcs.Sales, cfg.ShopName)
	itemsH := handler.NewItemsHandler(svcs.Items)
	handoverH := handler.NewHandoverHandler(svcs.Handover)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", health)
	if reg != nil {
		r.GET("/metrics", gin.WrapH(infra.MetricsHandler(reg)))
	}

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	anyRole := middleware.RequireRole(model.RoleStaff, model.RoleAdmin)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		v1.POST("/sales", anyRole, salesH.Record)
		v1.GET("/sales", anyRole, salesH.List)
		v1.GET("/sales/export", anyRole, salesH.Export)
		v1.DELETE("/sales/:id", adminOnly, salesH.Delete)

		v1.GET("/dashboard", anyRole, dashboardH.Dashboard)
		v1.GET("/dashboard/chart", anyRole, dashboardH.Chart)

		v1.GET("/items", anyRole, itemsH.List)
		v1.GET("/items/:id", anyRole, itemsH.Get)
		items := v1.Group("/items", adminOnly)
		{
			items.POST("", itemsH.Create)
			items.PUT("/:id", itemsH.Update)
			items.DELETE("/:id", itemsH.Delete)
		}

		v1.POST("/shifts/:shift/handover", anyRole, handoverH.Request)
	}

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
