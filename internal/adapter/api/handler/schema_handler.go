package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"boardshelf/internal/domain/entity"
	"boardshelf/internal/usecase"
	"boardshelf/pkg/errors"
	"boardshelf/pkg/response"
)

type SchemaHandler struct {
	schemaUseCase *usecase.SchemaUseCase
}

func NewSchemaHandler(schemaUseCase *usecase.SchemaUseCase) *SchemaHandler {
	return &SchemaHandler{
		schemaUseCase: schemaUseCase,
	}
}

// Default values arrive as the raw input text; the usecase coerces them per
// the field type.
type addFieldRequest struct {
	Key          string `json:"key" validate:"required"`
	Label        string `json:"label" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=text number"`
	DefaultValue string `json:"defaultValue"`
}

type updateFieldRequest struct {
	Label        string `json:"label" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=text number"`
	DefaultValue string `json:"defaultValue"`
}

func (h *SchemaHandler) GetSchema(c echo.Context) error {
	ctx := c.Request().Context()

	schema := h.schemaUseCase.Load(ctx)
	dirty := h.schemaUseCase.DirtyIndexes(ctx)
	if dirty == nil {
		dirty = []int{}
	}

	return response.Success(c, map[string]interface{}{
		"fields": schema.Fields,
		"dirty":  dirty,
	})
}

func (h *SchemaHandler) AddField(c echo.Context) error {
	var req addFieldRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	err := h.schemaUseCase.AddField(
		c.Request().Context(),
		req.Key,
		req.Label,
		entity.FieldType(req.Type),
		req.DefaultValue,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"message": "Field added",
	})
}

func (h *SchemaHandler) UpdateField(c echo.Context) error {
	index, err := fieldIndex(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req updateFieldRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	err = h.schemaUseCase.UpdateField(
		c.Request().Context(),
		index,
		req.Label,
		entity.FieldType(req.Type),
		req.DefaultValue,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"dirty": h.schemaUseCase.IsDirty(c.Request().Context(), index),
	})
}

func (h *SchemaHandler) SaveField(c echo.Context) error {
	index, err := fieldIndex(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.schemaUseCase.SaveField(c.Request().Context(), index); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message": "Schema saved",
	})
}

func (h *SchemaHandler) DeleteField(c echo.Context) error {
	index, err := fieldIndex(c)
	if err != nil {
		return response.Error(c, err)
	}

	deleted, err := h.schemaUseCase.DeleteField(c.Request().Context(), index)
	if err != nil {
		return response.Error(c, err)
	}
	if !deleted {
		return response.Success(c, map[string]interface{}{
			"message": "Deletion cancelled",
		})
	}

	return response.Success(c, map[string]interface{}{
		"message": "Field removed",
	})
}

func fieldIndex(c echo.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, errors.BadRequest("Invalid field index", err)
	}
	return index, nil
}
