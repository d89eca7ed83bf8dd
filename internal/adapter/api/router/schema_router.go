package router

import (
	"github.com/labstack/echo/v4"

	"boardshelf/internal/adapter/api/handler"
	"boardshelf/internal/adapter/api/middleware"
)

// SetupSchemaRouter initializes the schema editor routes.
func SetupSchemaRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	schemaHandler := handler.GetSchemaHandler()

	e.GET("/v1/schema", schemaHandler.GetSchema)

	admin := adminGroup(e, "/v1/schema/fields", authMiddleware)
	admin.POST("", schemaHandler.AddField)
	admin.PUT("/:index", schemaHandler.UpdateField)
	admin.POST("/:index/save", schemaHandler.SaveField)
	admin.DELETE("/:index", schemaHandler.DeleteField)
}
