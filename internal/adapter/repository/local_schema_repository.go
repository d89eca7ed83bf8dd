package repository

import (
	"context"
	"encoding/json"

	"boardshelf/internal/domain/entity"
	"boardshelf/internal/domain/repository"
	"boardshelf/internal/infrastructure/localkv"
	"boardshelf/pkg/errors"
	"boardshelf/pkg/logger"
)

// Storage key carried over from the original browser deployment, so an
// exported localStorage dump drops straight into the data directory.
const settingsKey = "admin_settings_v1"

type localSchemaRepository struct {
	store *localkv.Store
}

func NewLocalSchemaRepository(store *localkv.Store) repository.SchemaRepository {
	return &localSchemaRepository{store: store}
}

func (r *localSchemaRepository) Get(ctx context.Context) (*entity.Schema, error) {
	data, ok, err := r.store.Get(settingsKey)
	if err != nil {
		return nil, errors.Internal("Failed to read schema", err)
	}
	if !ok {
		return nil, errors.NotFound("Schema", nil)
	}

	var schema entity.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		logger.Warn("Schema JSON invalid, treating as absent: %v", err)
		return nil, errors.NotFound("Schema", err)
	}

	return &schema, nil
}

func (r *localSchemaRepository) Set(ctx context.Context, schema *entity.Schema) error {
	data, err := json.Marshal(schema)
	if err != nil {
		return errors.Internal("Failed to serialize schema", err)
	}
	if err := r.store.Set(settingsKey, data); err != nil {
		return errors.Internal("Failed to write schema", err)
	}
	return nil
}
