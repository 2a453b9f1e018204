package middleware

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "user-post-service/pkg/errors"
	"user-post-service/pkg/logger"
	"user-post-service/pkg/validation"
)

const bodyKey = "validated_body"

// Body decodes the JSON body into T and runs rules against it. Failures are
// answered with 400 before the handler runs; on success the decoded body is
// available through BodyFrom. An empty body decodes to the zero T.
func Body[T any](v *validator.Validate, rules validation.RuleSet[T], log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body T
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			RespondError(c, log, InvalidBody(err), "")
			return
		}

		if failed := rules.Check(v, body); failed != nil {
			logger.WithContext(c.Request.Context(), log).Debug("request body rejected",
				zap.String("rules", rules.Name),
				zap.Any("fields", failed),
			)
			RespondError(c, log, apperrors.NewValidationError(InvalidFieldsMessage, failed), "")
			return
		}

		c.Set(bodyKey, body)
		c.Next()
	}
}

// BodyFrom returns the body stored by Body. ok is false when the route was
// not wrapped by Body[T].
func BodyFrom[T any](c *gin.Context) (body T, ok bool) {
	v, exists := c.Get(bodyKey)
	if !exists {
		return body, false
	}
	body, ok = v.(T)
	return body, ok
}
