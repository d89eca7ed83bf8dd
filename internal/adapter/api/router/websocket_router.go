package router

import (
	"github.com/labstack/echo/v4"

	"boardshelf/internal/adapter/api/handler"
)

// SetupWebSocketRouter sets up the live record feed endpoint.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/v1/ws/records", wsHandler.HandleRecordFeed)
}
