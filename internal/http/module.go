package http

import (
	"github.com/gin-gonic/gin"
)

// Module is one API resource family that mounts its own routes.
type Module interface {
	Name() string
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext carries the groups modules mount on.
type RouterContext struct {
	// V1 is /api/v1 without authentication.
	V1 *gin.RouterGroup
	// Protected is /api/v1 behind the bearer token check.
	Protected *gin.RouterGroup
}
