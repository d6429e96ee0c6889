package middleware

import (
	"errors"
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("Request failed",
					"request_id", c.GetString(RequestIDKey),
					"kind", appErr.Kind,
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Error("Internal Server Error", "request_id", c.GetString(RequestIDKey), "error", err)
		response.Error(c, http.StatusInternalServerError, apperror.MsgSendFailed)
	}
}

// Recovery turns panics into the same JSON error body as any other failure.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("Panic recovered", "request_id", c.GetString(RequestIDKey), "panic", recovered)
		response.Error(c, http.StatusInternalServerError, apperror.MsgSendFailed)
		c.Abort()
	})
}
