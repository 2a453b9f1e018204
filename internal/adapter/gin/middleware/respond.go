package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "user-post-service/pkg/errors"
	"user-post-service/pkg/logger"
)

// InvalidFieldsMessage is the top-level message of every validation failure.
const InvalidFieldsMessage = "Error Make sure you entered the correct fields"

// ErrorDetail is the sanitized error attached to 500 responses.
type ErrorDetail struct {
	Kind    apperrors.Kind `json:"kind"`
	Message string         `json:"message"`
}

// InvalidBody wraps a JSON decode failure as a validation error on "body".
func InvalidBody(err error) *apperrors.ValidationError {
	return apperrors.NewValidationError(InvalidFieldsMessage, map[string]string{"body": err.Error()})
}

// RespondError aborts c with the JSON form of err. Validation errors carry
// their field map, not-found and duplicate errors their own message.
// Anything else is logged and answered with internalMessage and a sanitized
// detail.
func RespondError(c *gin.Context, log *zap.Logger, err error, internalMessage string) {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(ve.HTTPStatus(), gin.H{"message": ve.Message, "error": ve.Fields})
		return
	}

	status, kind := apperrors.StatusOf(err)
	if kind == apperrors.KindNotFound || kind == apperrors.KindAlreadyExists {
		c.AbortWithStatusJSON(status, gin.H{"message": err.Error()})
		return
	}

	_ = c.Error(err)
	logger.WithContext(c.Request.Context(), log).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	abortInternal(c, internalMessage)
}

func abortInternal(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"message": message,
		"error":   ErrorDetail{Kind: apperrors.KindInternal, Message: "internal server error"},
	})
}
