package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination reads the page/limit query params, clamping nonsense values to
// the defaults every list endpoint shares.
func Pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
