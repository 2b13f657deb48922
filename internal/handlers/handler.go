package handlers

import (
	"net/http"

	"timesketch/internal/logger"
	"timesketch/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIdMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	auth := router.Group("/auth")
	{
		auth.POST("/sign-in", h.signIn)
	}

	api := router.Group("/api/v1", h.userIdMiddleware)
	{
		sketches := api.Group("/sketches")
		{
			sketches.GET("/", h.listSketches)
			sketches.GET("/:id", h.getSketch)
			sketches.POST("/:id/explore", h.explore)
			sketches.GET("/:id/views", h.listViews)
			sketches.GET("/:id/views/:viewId", h.getView)
			sketches.POST("/:id/views", h.saveView)
		}
	}

	// Live explore stream over a WebSocket upgrade, same port.
	router.GET("/ws/sketches/:id", h.userIdMiddleware, h.wsExplore)

	return router
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
