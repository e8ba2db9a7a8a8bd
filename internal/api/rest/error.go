package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-ownership/internal/api/shared/errors"
	"github.com/feral-file/ff-ownership/internal/logger"
)

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.Response{Error: apierrors.NewBadRequestError(message, details...)})
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, apierrors.Response{Error: apierrors.NewValidationError(details)})
}

// respondError maps an operation error to the error envelope. Server-side failures are logged.
func respondError(c *gin.Context, err error, fields ...zap.Field) {
	status, apiErr := apierrors.FromError(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err, append(fields, zap.String("path", c.Request.URL.Path))...)
	}
	c.JSON(status, apierrors.Response{Error: apiErr})
}
