package repository

import (
	"context"

	"boardshelf/internal/domain/entity"
)

// SchemaRepository persists the single schema document. Get returns a
// NOT_FOUND error when nothing has been persisted yet; malformed content is
// reported the same way so callers can apply the default-schema fallback.
type SchemaRepository interface {
	Get(ctx context.Context) (*entity.Schema, error)
	Set(ctx context.Context, schema *entity.Schema) error
}
