package middleware

import (
	"errors"
	"net/http"

	"go-candidate-backend/internal/delivery/http/response"
	"go-candidate-backend/pkg/apperror"
	"go-candidate-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorSummaryKey lets a handler name the operation that failed, e.g.
// "Error adding candidate". It becomes the response message of 4xx errors.
const ErrorSummaryKey = "ErrorSummary"

const msgInternal = "Internal server error"

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		summary := c.GetString(ErrorSummaryKey)

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		switch appErr.Kind {
		case apperror.KindValidation, apperror.KindConflict, apperror.KindNotFound:
			if summary == "" {
				summary = appErr.Message
			}
			response.Error(c, appErr.Code, summary, appErr.Message)
		default:
			logger.Log.Error("request failed",
				"request_id", c.GetString(response.RequestIDKey),
				"kind", appErr.Kind,
				"error", appErr.Err,
			)
			code := appErr.Code
			if code < http.StatusInternalServerError {
				code = http.StatusInternalServerError
			}
			response.Error(c, code, msgInternal, appErr.Message)
		}
	}
}
