package router

import (
	"github.com/labstack/echo/v4"

	"boardshelf/internal/adapter/api/handler"
	"boardshelf/internal/adapter/api/middleware"
)

// SetupRecordRouter initializes the record CRUD and form routes.
func SetupRecordRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	recordHandler := handler.GetRecordHandler()

	e.GET("/v1/records", recordHandler.ListRecords)
	e.GET("/v1/records/form", recordHandler.CreateForm)
	e.GET("/v1/records/:id/form", recordHandler.EditForm)

	admin := adminGroup(e, "/v1/records", authMiddleware)
	admin.POST("", recordHandler.CreateRecord)
	admin.PUT("/:id", recordHandler.UpdateRecord)
	admin.DELETE("/:id", recordHandler.DeleteRecord)
}
