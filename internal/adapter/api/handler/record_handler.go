package handler

import (
	"github.com/labstack/echo/v4"

	"boardshelf/internal/domain/entity"
	"boardshelf/internal/usecase"
	"boardshelf/pkg/response"
)

type RecordHandler struct {
	recordUseCase *usecase.RecordUseCase
}

func NewRecordHandler(recordUseCase *usecase.RecordUseCase) *RecordHandler {
	return &RecordHandler{
		recordUseCase: recordUseCase,
	}
}

func (h *RecordHandler) ListRecords(c echo.Context) error {
	records, err := h.recordUseCase.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}
	if records == nil {
		records = []*entity.Record{}
	}

	return response.Success(c, records)
}

func (h *RecordHandler) CreateRecord(c echo.Context) error {
	var input map[string]interface{}
	if err := c.Bind(&input); err != nil {
		return response.Error(c, err)
	}

	record, err := h.recordUseCase.Create(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, record)
}

func (h *RecordHandler) UpdateRecord(c echo.Context) error {
	var input map[string]interface{}
	if err := c.Bind(&input); err != nil {
		return response.Error(c, err)
	}

	if err := h.recordUseCase.Update(c.Request().Context(), c.Param("id"), input); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message": "Record updated",
	})
}

func (h *RecordHandler) DeleteRecord(c echo.Context) error {
	deleted, err := h.recordUseCase.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	if !deleted {
		return response.Success(c, map[string]interface{}{
			"message": "Deletion cancelled",
		})
	}

	return response.Success(c, map[string]interface{}{
		"message": "Record deleted",
	})
}

func (h *RecordHandler) CreateForm(c echo.Context) error {
	return response.Success(c, h.recordUseCase.CreateForm(c.Request().Context()))
}

func (h *RecordHandler) EditForm(c echo.Context) error {
	form, err := h.recordUseCase.EditForm(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, form)
}
