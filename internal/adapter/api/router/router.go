package router

import (
	"github.com/labstack/echo/v4"

	"boardshelf/internal/adapter/api/middleware"
)

// Setup wires every route. authMiddleware is nil when the deployment runs
// without the remote backend, in which case mutating routes are open.
func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupSchemaRouter(e, authMiddleware)
	SetupRecordRouter(e, authMiddleware)
	SetupHealthRouter(e)
}

func adminGroup(e *echo.Echo, prefix string, authMiddleware *middleware.AuthMiddleware) *echo.Group {
	group := e.Group(prefix)
	if authMiddleware != nil {
		group.Use(authMiddleware.Authenticate)
	}
	return group
}
