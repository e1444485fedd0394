/*
Package response owns the HTTP surface of the error taxonomy. The
status mapping lives only here: lower layers speak error codes, never
HTTP. Internal errors are surfaced opaque and logged with the stack
captured at the point the error was born (shared.Stacker), falling
back to the handling point when the error carries none.
*/
package response

import (
	stdErrors "errors"
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"huerto/domain/shared"
	"huerto/pkg/errors"
	"huerto/pkg/logger"
)

var httpStatusMap = map[errors.ErrorCode]int{
	errors.CodeInternal:     http.StatusInternalServerError,
	errors.CodeValidation:   http.StatusBadRequest,
	errors.CodeNotFound:     http.StatusNotFound,
	errors.CodeConflict:     http.StatusConflict,
	errors.CodeUnauthorized: http.StatusUnauthorized,

	errors.CodeOrderNotFound:      http.StatusNotFound,
	errors.CodeProductNotFound:    http.StatusNotFound,
	errors.CodeSaleNotFound:       http.StatusNotFound,
	errors.CodeInvalidOrderStatus: http.StatusBadRequest,
	errors.CodeConcurrentModify:   http.StatusConflict,
}

func mapErrorCodeToHTTPStatus(code errors.ErrorCode) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func captureStack(skip int) []string {
	var pcs [16]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		frame, more := frames.Next()
		if frame.Function != "" {
			stack = append(stack, frame.Function)
		}
		if !more {
			break
		}
	}
	return stack
}

func extractStack(err error) []string {
	var stacker shared.Stacker
	if stdErrors.As(err, &stacker) {
		if stack := stacker.Stack(); len(stack) > 0 {
			return stack
		}
	}
	return captureStack(4)
}

// HandleError reports framework-level failures such as body binding,
// with a fixed status chosen by the caller.
func HandleError(c *gin.Context, err error, message string, code int) {
	requestID := getRequestID(c)

	logger.Error(message,
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", code),
		zap.Error(err))

	c.JSON(code, &Response{
		Success:   false,
		Error:     "BAD_REQUEST",
		Message:   message,
		Code:      code,
		RequestID: requestID,
	})
}

// HandleAppError maps a business error to its HTTP status via the
// error code. Internal errors are replaced with an opaque message.
func HandleAppError(c *gin.Context, err error) {
	requestID := getRequestID(c)
	appErr := errors.FromDomainError(err)
	httpStatus := mapErrorCodeToHTTPStatus(appErr.Code)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", httpStatus),
		zap.Strings("stack", extractStack(err)),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}
	logger.Error(appErr.Message, fields...)

	userMessage := appErr.Message
	if appErr.Code == errors.CodeInternal {
		userMessage = "internal server error"
	}

	c.JSON(httpStatus, &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Message:   userMessage,
		Code:      httpStatus,
		RequestID: requestID,
	})
}
