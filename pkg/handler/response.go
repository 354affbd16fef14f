package handler

import (
	"net/http"

	"burn_tokens_back/models"
	"burn_tokens_back/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Error struct {
	Message string `json:"error"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	entry := logrus.WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(c),
		"status":     statusCode,
	})
	if statusCode >= http.StatusInternalServerError {
		entry.Error(message)
	} else {
		entry.Debug(message)
	}
	c.AbortWithStatusJSON(statusCode, Error{Message: message})
}

// errorResponse maps service errors onto status codes.
func (h *Handler) errorResponse(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		newErrorResponse(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, models.ErrBurnNotFound):
		newErrorResponse(c, http.StatusNotFound, models.ErrBurnNotFound.Error())
	default:
		logrus.WithField("request_id", middleware.GetRequestID(c)).Errorf("%+v", err)
		message := "Internal server error"
		if h.opts.Debug {
			message = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, Error{Message: message})
	}
}
