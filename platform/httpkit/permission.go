package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequirePermission aborts with 403 unless allow accepts the caller's
// roles. It must run after AuthRequired.
func RequirePermission(allow func(roles []string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := MustGetIdentity(c)
		if id == nil {
			return
		}
		if !allow(id.Roles()) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
			return
		}
		c.Next()
	}
}
