package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/latest"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/storefront"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	App    *storefront.App
	Logger *zap.Logger
}

// respondError maps the storefront error taxonomy onto HTTP statuses.
func (h *Handlers) respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	var aerr *models.AuthError
	var nerr *models.NotFoundError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.As(err, &aerr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": aerr.Message})
	case errors.As(err, &nerr):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, latest.ErrSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": "Request superseded by a newer one"})
	default:
		h.Logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("requestID")),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return 0, false
	}
	return id, true
}
