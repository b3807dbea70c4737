package handlers

import (
	"errors"
	"net/http"

	"happy_thoughts/internal/logger"
	"happy_thoughts/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
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
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.welcome)
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerThoughtRoutes(router)

	// Live feed of the newest thoughts — same port, HTTP upgrade
	router.GET("/ws", h.wsFeed)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.POST("/register", h.register)
	r.POST("/login", h.login)
}

func (h *Handler) registerThoughtRoutes(r *gin.Engine) {
	thoughts := r.Group("/thoughts")
	{
		thoughts.GET("", h.listThoughts)
		thoughts.GET("/:id", h.getThought)
		thoughts.POST("", h.authOptional, h.createThought)
		thoughts.PATCH("/:id", h.authRequired, h.updateThought)
		thoughts.DELETE("/:id", h.authRequired, h.deleteThought)
		thoughts.POST("/:id/like", h.likeThought)
	}
}

// writeServiceError translates a service-layer error into the stable
// {"error": "..."} shape and status code. Store internals never reach
// the response body.
func (h *Handler) writeServiceError(c *gin.Context, err error, logKey string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		if h.log != nil {
			h.log.Errorw(logKey, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// @Summary      Welcome
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       / [get]
func (h *Handler) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Happy Thoughts API",
		"endpoints": []string{
			"GET /thoughts",
			"GET /thoughts/:id",
			"POST /thoughts",
			"PATCH /thoughts/:id",
			"DELETE /thoughts/:id",
			"POST /thoughts/:id/like",
			"POST /register",
			"POST /login",
			"GET /ws",
		},
	})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
