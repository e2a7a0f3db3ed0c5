package core

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondResult writes an AuthResult with its mapped HTTP status.
func respondResult(c *gin.Context, res AuthResult) {
	c.JSON(httpStatusFor(res.Status), res)
}

// respondError is shorthand for an error-class result.
func respondError(c *gin.Context, status Status, key string) {
	respondResult(c, resultError(status, key))
}

func httpStatusFor(s Status) int {
	switch s {
	case StatusOK:
		return http.StatusOK
	case StatusUnauthorized:
		return http.StatusUnauthorized
	case StatusNotFound:
		return http.StatusNotFound
	case StatusBadRequest:
		return http.StatusBadRequest
	case StatusConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
