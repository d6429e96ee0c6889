package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the body of every non-2xx contact response
type ErrorBody struct {
	Error string `json:"error"`
}

// SendResult is the body of a successful contact submission
type SendResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

// MessageBody carries an informational message, e.g. the preflight acknowledgment
type MessageBody struct {
	Message string `json:"message"`
}

// HealthBody is returned by the health check
type HealthBody struct {
	Status          string `json:"status"`
	EmailConfigured bool   `json:"emailConfigured"`
}

// Success sends a successful send result
func Success(c *gin.Context, code int, message, messageID string) {
	c.JSON(code, SendResult{
		Success:   true,
		Message:   message,
		MessageID: messageID,
	})
}

// Message sends an informational message
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, MessageBody{Message: message})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorBody{Error: message})
}
