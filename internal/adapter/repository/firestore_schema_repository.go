package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"boardshelf/internal/domain/entity"
	"boardshelf/internal/domain/repository"
	"boardshelf/pkg/errors"
	"boardshelf/pkg/logger"
)

const (
	configCollection = "config"
	schemaDocID      = "schema"
)

type firestoreSchemaRepository struct {
	client *firestore.Client
}

func NewFirestoreSchemaRepository(client *firestore.Client) repository.SchemaRepository {
	return &firestoreSchemaRepository{client: client}
}

func (r *firestoreSchemaRepository) Get(ctx context.Context) (*entity.Schema, error) {
	doc, err := r.client.Collection(configCollection).Doc(schemaDocID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Schema", err)
		}
		return nil, errors.Internal("Failed to get schema", err)
	}

	schema, ok := schemaFromDoc(doc.Data())
	if !ok {
		logger.Warn("Schema document malformed, treating as absent")
		return nil, errors.NotFound("Schema", nil)
	}

	return schema, nil
}

func (r *firestoreSchemaRepository) Set(ctx context.Context, schema *entity.Schema) error {
	fields := make([]map[string]interface{}, len(schema.Fields))
	for i, f := range schema.Fields {
		fields[i] = map[string]interface{}{
			"key":          f.Key,
			"label":        f.Label,
			"type":         string(f.Type),
			"defaultValue": f.DefaultValue.Native(),
		}
	}

	_, err := r.client.Collection(configCollection).Doc(schemaDocID).Set(ctx, map[string]interface{}{
		"gameFields": fields,
	})
	if err != nil {
		return errors.Internal("Failed to write schema", err)
	}
	return nil
}

func schemaFromDoc(data map[string]interface{}) (*entity.Schema, bool) {
	rawFields, ok := data["gameFields"].([]interface{})
	if !ok {
		return nil, false
	}

	schema := &entity.Schema{Fields: make([]entity.FieldDefinition, 0, len(rawFields))}
	for _, rawField := range rawFields {
		m, ok := rawField.(map[string]interface{})
		if !ok {
			return nil, false
		}
		key, _ := m["key"].(string)
		label, _ := m["label"].(string)
		fieldType, _ := m["type"].(string)
		if key == "" {
			return nil, false
		}
		schema.Fields = append(schema.Fields, entity.FieldDefinition{
			Key:          key,
			Label:        label,
			Type:         entity.FieldType(fieldType),
			DefaultValue: entity.FromNative(m["defaultValue"]),
		})
	}
	return schema, true
}
