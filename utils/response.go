package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/services"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	if data == nil {
		c.JSON(code, gin.H{"success": true})
		return
	}
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// StatusFor maps an error kind to the HTTP status reported to the dashboard.
func StatusFor(err error) int {
	switch services.KindOf(err) {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindInvalidState, services.KindInsufficientInventory, services.KindConflict:
		return http.StatusConflict
	case services.KindPricing:
		return http.StatusUnprocessableEntity
	case services.KindStorage:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// RespondError writes err with its mapped status. Storage and unknown errors
// are not echoed verbatim.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		msg = "storage unavailable"
	case http.StatusInternalServerError:
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"success": false, "error": msg, "kind": services.KindOf(err).String()})
}
