package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the success envelope: {message, data, meta}.
type APIResponse[T any] struct {
	Message string      `json:"message"`
	Data    T           `json:"data"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorBody is the inner object of the failure envelope.
type ErrorBody struct {
	Message   string      `json:"message"`
	Status    int         `json:"status"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
}

// ErrorResponse is the failure envelope: {error: {message, status}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Success writes a success envelope.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// Error writes a failure envelope and aborts the handler chain.
func Error(ctx *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{
		Message:   message,
		Status:    status,
		Details:   details,
		RequestID: ctx.GetString("request_id"),
	}})
}
