package handlers

import (
	"errors"
	"net/http"

	"eisenq/internal/adapter/http/middleware"
	"eisenq/internal/core/domain"
	"eisenq/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// failure names the messages used when an operation fails: invalidKey for
// rejected input and failKey for unexpected errors.
type failure struct {
	invalidKey string
	failKey    string
	logMessage string
}

// writeError maps a service error onto the JSON error envelope. Only
// unexpected errors are logged.
func writeError(c *gin.Context, err error, f failure, fields ...zap.Field) {
	lang := middleware.GetLang(c)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateValidationError(http.StatusBadRequest, f.invalidKey, lang, verr.Fields),
		)
	case errors.Is(err, domain.ErrInvalidID):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang),
		)
	case errors.Is(err, domain.ErrInvalidParent):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateValidationError(http.StatusBadRequest, apierrors.MsgInvalidParent, lang,
				map[string]string{"parentTaskId": "parent"}),
		)
	case errors.Is(err, domain.ErrSubtaskQuadrant):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateValidationError(http.StatusBadRequest, apierrors.MsgSubtaskQuadrant, lang,
				map[string]string{"quadrant": "parent"}),
		)
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthenticated, lang),
		)
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
	case errors.Is(err, domain.ErrRoutineTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgRoutineTaskNotFound, lang),
		)
	default:
		zap.L().Error(f.logMessage, append(fields, zap.Error(err))...)
		_ = c.Error(err)
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, f.failKey, lang),
		)
	}
}
