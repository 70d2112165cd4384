package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam reads an int64 path parameter. On failure it writes a 400
// response and returns false.
func ParseIDParam(c *gin.Context, name, resource string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		HandleInvalidID(c, resource)
		return 0, false
	}
	return id, true
}

// BindJSON binds and validates a JSON body. On failure it writes a 400
// response and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleBindingError(c, err)
		return false
	}
	return true
}

// BindQuery binds and validates query parameters. On failure it writes a 400
// response and returns false.
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		HandleBindingError(c, err)
		return false
	}
	return true
}
