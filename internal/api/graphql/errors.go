package graphql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-ownership/internal/api/shared/errors"
	"github.com/feral-file/ff-ownership/internal/logger"
)

// ErrorPresenter formats resolver errors with the same codes as the REST error envelope.
// Parse and validation errors pass through unchanged.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	var gqlErr *gqlerror.Error
	if !errors.As(err, &gqlErr) {
		gqlErr = &gqlerror.Error{Message: err.Error(), Err: err}
	}
	if gqlErr.Err == nil {
		return gqlErr
	}

	status, apiErr := apierrors.FromError(gqlErr.Err)
	if status >= http.StatusInternalServerError {
		logger.ErrorCtx(ctx, gqlErr.Err, zap.String("path", gqlErr.Path.String()))
	}

	presented := &gqlerror.Error{
		Err:     gqlErr.Err,
		Message: apiErr.Message,
		Path:    gqlErr.Path,
		Extensions: map[string]interface{}{
			"code":    string(apiErr.Code),
			"message": apiErr.Message,
		},
	}
	if apiErr.Details != "" {
		presented.Extensions["details"] = apiErr.Details
	}
	return presented
}

// RecoverFunc handles panics in resolvers
func RecoverFunc(ctx context.Context, err interface{}) error {
	logger.ErrorCtx(ctx, fmt.Errorf("panic: %v", err), zap.Any("panic", err))
	return apierrors.NewInternalError("Internal server error")
}
