package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is the slack allowed on top of the file ceiling for
// multipart boundaries and headers.
const multipartOverhead = 1 << 20

// BodyLimit caps request bodies at maxFileSize plus multipart overhead.
// Reads past the cap fail with *http.MaxBytesError.
func BodyLimit(maxFileSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxFileSize > 0 && c.Request.Body != nil {
			limit := maxFileSize + multipartOverhead
			if c.Request.ContentLength > limit {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
					"success": false,
					"error":   gin.H{"code": "FILE_TOO_LARGE", "message": "file exceeds maximum allowed size"},
				})
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
