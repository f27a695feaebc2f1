package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest inflates gzip request bodies for API handlers, capping the
// inflated size at maxBytes. Other content codings are refused with 415.
func DecompressRequest(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		coding := strings.ToLower(strings.TrimSpace(c.GetHeader("Content-Encoding")))
		switch coding {
		case "", "identity":
			c.Next()
			return
		case "gzip", "x-gzip":
		default:
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{"error": "Unsupported content encoding"})
			return
		}

		body := c.Request.Body
		zr, err := gzip.NewReader(body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid gzip body"})
			return
		}
		defer func() {
			_ = zr.Close()
			_ = body.Close()
		}()

		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Request.Body = http.MaxBytesReader(c.Writer, zr, maxBytes)
		c.Next()
	}
}
