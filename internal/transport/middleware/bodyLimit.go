package middleware

import (
	"net/http"

	"github.com/ds124wfegd/adstudio/internal/entity"
	"github.com/gin-gonic/gin"
)

// BodyLimit rejects requests whose declared length exceeds max and caps the body of the
// rest, so chunked uploads fail once they cross the limit.
func BodyLimit(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > max {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": entity.ErrTooLarge.Error()})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}
