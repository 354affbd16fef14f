package handler

import (
	_ "embed"
	"html/template"
	"net/http"
	"time"

	"burn_tokens_back/models"

	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html
var indexHTML string

var templateFuncs = template.FuncMap{
	"lastBurn": func(t *time.Time) string {
		if t == nil {
			return "Never"
		}
		return models.FormatTimestamp(*t)
	},
}

func (h *Handler) Index(c *gin.Context) {
	stats, err := h.service.Burn.Stats(c.Request.Context())
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"stats":   stats,
		"version": h.opts.Version,
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": models.FormatTimestamp(time.Now()),
		"version":   h.opts.Version,
	})
}
