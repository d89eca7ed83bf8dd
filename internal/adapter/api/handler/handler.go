package handler

import (
	"boardshelf/internal/usecase"
)

var (
	schemaHandler *SchemaHandler
	recordHandler *RecordHandler
)

func Setup(
	schemaUseCase *usecase.SchemaUseCase,
	recordUseCase *usecase.RecordUseCase,
) {
	schemaHandler = NewSchemaHandler(schemaUseCase)
	recordHandler = NewRecordHandler(recordUseCase)
}

func GetSchemaHandler() *SchemaHandler {
	return schemaHandler
}

func GetRecordHandler() *RecordHandler {
	return recordHandler
}
