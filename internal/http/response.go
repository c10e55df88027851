package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkenzh/buildops/internal/service"
)

// Every response carries a success flag; errors carry a message, data
// responses the payload under "data".
func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrConflict):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, err.Error())
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}
