package repository

import (
	"context"

	"boardshelf/internal/domain/entity"
)

// RecordRepository owns the authoritative record collection.
//
// List returns records newest first. Create assigns the identifier and
// creation timestamp. Update and Delete are silent no-ops when the id is
// unknown; that only happens from stale UI state and is harmless.
type RecordRepository interface {
	List(ctx context.Context) ([]*entity.Record, error)
	Create(ctx context.Context, fields map[string]entity.Value) (*entity.Record, error)
	Update(ctx context.Context, id string, fields map[string]entity.Value) error
	Delete(ctx context.Context, id string) error

	// Subscribe delivers the full record list on every change where the
	// backend supports push. The returned release func must be called on
	// teardown; no notifications fire after release.
	Subscribe(ctx context.Context, onChange func([]*entity.Record)) (func(), error)
}
