package response

import (
	"errors"
	"net/http"

	"donation-slip-gateway/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is the envelope returned on an accepted slip.
// Code and Message echo the vendor's success status.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the rejection envelope: a stable classification under
// "error", a user-presentable message, and the raw vendor code when one
// exists. Raw vendor payloads are never exposed on the failure path.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, vendorCode string, message string, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Code:    vendorCode,
		Message: message,
		Data:    data,
	})
}

// Data sends a 200 response with a bare data envelope (no vendor echo).
func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// Error sends an error response. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, ErrorResponse{
			Error:   appErr.Code,
			Message: appErr.Message,
			Code:    appErr.VendorCode,
		})
		return
	}

	// Unknown error -> 500
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "server_error",
		Message: "Internal server error",
	})
}
