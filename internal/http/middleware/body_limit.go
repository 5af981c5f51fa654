package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roguepikachu/synopsis/pkg"
)

// BodyLimit rejects requests whose body exceeds limit bytes. A declared
// Content-Length over the limit is refused up front; otherwise reads past the
// limit fail with *http.MaxBytesError.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, pkg.NewError(pkg.MsgBodyTooLarge))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
