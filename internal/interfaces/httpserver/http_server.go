package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"studio-server/internal/config"
	"studio-server/internal/infrastructure"
	middleware "studio-server/internal/interfaces/httpserver/middlewares"
	"studio-server/internal/interfaces/httpserver/routes/admin"
	"studio-server/internal/interfaces/httpserver/routes/public"
)

type HTTPServer struct {
	engine      *gin.Engine
	infra       *infrastructure.Infrastructure
	publicRoute *public.PublicRoute
	adminRoute  *admin.AdminRoute
	config      *config.Config
}

func NewHttpServer(
	publicRoute *public.PublicRoute,
	adminRoute *admin.AdminRoute,
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		gin.New(),
		infra,
		publicRoute,
		adminRoute,
		cfg,
	}
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware())

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server.engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	return &server
}

func (httpServer *HTTPServer) Run() error {
	root := httpServer.engine.Group("/")

	httpServer.publicRoute.RegisterRoutes(root)
	httpServer.adminRoute.RegisterRoutes(root)

	if err := httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort)); err != nil {
		return err
	}
	return nil
}
