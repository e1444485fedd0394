package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// GetRequestID exposes the request id to other api packages.
func GetRequestID(c *gin.Context) string {
	return getRequestID(c)
}

// HandleSuccess writes a 200 envelope.
func HandleSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, &Response{
		Success:   true,
		Data:      data,
		Code:      http.StatusOK,
		Message:   message,
		RequestID: getRequestID(c),
	})
}

// HandleCreated writes a 201 envelope.
func HandleCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, &Response{
		Success:   true,
		Data:      data,
		Code:      http.StatusCreated,
		Message:   message,
		RequestID: getRequestID(c),
	})
}

// HandleNoContent writes an empty 204.
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
