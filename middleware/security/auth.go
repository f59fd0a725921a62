package security

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hsumonkyi-hmk/ayar-farm-sub000/tools/errs"
)

const HeaderInternalKey = "X-Internal-Key"

// InternalKey guards the server-to-server surface with a shared key.
// An empty configured key disables the check, which is only acceptable
// for local development.
func InternalKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		got := strings.TrimSpace(c.GetHeader(HeaderInternalKey))
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errs.ErrPermission)
			return
		}
		c.Next()
	}
}
