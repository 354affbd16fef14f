package handler

import (
	"html/template"
	"net/http"

	"burn_tokens_back/pkg/middleware"
	"burn_tokens_back/pkg/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const DefaultVersion = "1.0.0"

type Options struct {
	// Debug echoes internal error text in 500 responses.
	Debug        bool
	AllowOrigins []string
	Version      string
}

type Handler struct {
	service *service.Service
	opts    Options
}

func NewHandler(service *service.Service, opts Options) *Handler {
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	return &Handler{
		service: service,
		opts:    opts,
	}
}

func (h *Handler) InitRoute() *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.CustomRecovery(recovery),
		cors.New(h.corsConfig()),
	)
	router.SetHTMLTemplate(template.Must(template.New("index.html").Funcs(templateFuncs).Parse(indexHTML)))
	router.NoRoute(endpointNotFound)

	router.GET("/", h.Index)

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/burn", h.CreateBurn)
		api.GET("/burns", h.ListBurns)
		api.GET("/burns/:id", h.GetBurn)
		api.GET("/stats", h.GetStats)
	}
	return router
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
	}
	for _, origin := range h.opts.AllowOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(h.opts.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = h.opts.AllowOrigins
	return cfg
}

func recovery(c *gin.Context, err any) {
	logrus.WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(c),
		"panic":      err,
	}).Error("handler panicked")
	c.AbortWithStatusJSON(http.StatusInternalServerError, Error{Message: "Internal server error"})
}

func endpointNotFound(c *gin.Context) {
	newErrorResponse(c, http.StatusNotFound, "Endpoint not found")
}
