package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterrepo "boardshelf/internal/adapter/repository"
	"boardshelf/internal/domain/entity"
	"boardshelf/internal/domain/repository"
	"boardshelf/internal/infrastructure/localkv"
	"boardshelf/pkg/errors"
)

func newSchemaRepo(t *testing.T) repository.SchemaRepository {
	t.Helper()
	store, err := localkv.NewStore(t.TempDir())
	require.NoError(t, err)
	return adapterrepo.NewLocalSchemaRepository(store)
}

func TestLoadFallsBackToDefaultSchema(t *testing.T) {
	uc := NewSchemaUseCase(newSchemaRepo(t), nil)

	schema := uc.Load(context.Background())
	require.Len(t, schema.Fields, 7)
	assert.Equal(t, []string{"name", "imageUrl", "players", "difficulty", "genre", "time", "type"}, schema.Keys())
}

func TestAddFieldValidation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		key   string
		label string
	}{
		{"empty key", "", "Label"},
		{"whitespace key", "min age", "Label"},
		{"duplicate key", "players", "Label"},
		{"reserved key", "id", "Label"},
		{"empty label", "minAge", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewSchemaUseCase(newSchemaRepo(t), nil)
			before := uc.Load(ctx)

			err := uc.AddField(ctx, tc.key, tc.label, entity.FieldText, "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

			// A rejected mutation leaves the schema untouched.
			assert.Equal(t, before.Keys(), uc.Load(ctx).Keys())
		})
	}
}

func TestAddFieldNumericDefaultCoercion(t *testing.T) {
	ctx := context.Background()

	uc := NewSchemaUseCase(newSchemaRepo(t), nil)
	require.NoError(t, uc.AddField(ctx, "minAge", "Minimum Age", entity.FieldNumber, ""))

	schema := uc.Load(ctx)
	field := schema.FieldByKey("minAge")
	require.NotNil(t, field)
	assert.True(t, field.DefaultValue.Equal(entity.Number(0)))

	require.NoError(t, uc.AddField(ctx, "maxAge", "Maximum Age", entity.FieldNumber, "99"))
	assert.True(t, uc.Load(ctx).FieldByKey("maxAge").DefaultValue.Equal(entity.Number(99)))

	err := uc.AddField(ctx, "weight", "Weight", entity.FieldNumber, "abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	assert.False(t, uc.Load(ctx).HasKey("weight"))
}

func TestAddFieldPersistsImmediately(t *testing.T) {
	ctx := context.Background()
	repo := newSchemaRepo(t)

	uc := NewSchemaUseCase(repo, nil)
	require.NoError(t, uc.AddField(ctx, "minAge", "Minimum Age", entity.FieldNumber, "8"))

	persisted, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, persisted.HasKey("minAge"))
	// A structural change carries no save affordance.
	assert.Empty(t, uc.DirtyIndexes(ctx))
}

func TestDirtyTrackingAndSaveField(t *testing.T) {
	ctx := context.Background()
	repo := newSchemaRepo(t)
	uc := NewSchemaUseCase(repo, nil)

	schema := uc.Load(ctx)
	timeIndex := -1
	for i, f := range schema.Fields {
		if f.Key == "time" {
			timeIndex = i
		}
	}
	require.GreaterOrEqual(t, timeIndex, 0)

	// Edit time's label without persisting.
	require.NoError(t, uc.UpdateField(ctx, timeIndex, "Duration", entity.FieldNumber, "30"))

	for i := range schema.Fields {
		assert.Equal(t, i == timeIndex, uc.IsDirty(ctx, i), "index %d", i)
	}
	assert.Equal(t, []int{timeIndex}, uc.DirtyIndexes(ctx))

	require.NoError(t, uc.SaveField(ctx, timeIndex))
	assert.Empty(t, uc.DirtyIndexes(ctx))

	persisted, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Duration", persisted.FieldByKey("time").Label)
}

func TestSaveFieldIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newSchemaRepo(t)
	uc := NewSchemaUseCase(repo, nil)

	require.NoError(t, uc.UpdateField(ctx, 0, "Title", entity.FieldText, ""))

	require.NoError(t, uc.SaveField(ctx, 0))
	first, err := repo.Get(ctx)
	require.NoError(t, err)

	require.NoError(t, uc.SaveField(ctx, 0))
	second, err := repo.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Empty(t, uc.DirtyIndexes(ctx))
}

func TestSaveFieldClearsAllDirtiness(t *testing.T) {
	ctx := context.Background()
	uc := NewSchemaUseCase(newSchemaRepo(t), nil)

	require.NoError(t, uc.UpdateField(ctx, 0, "Title", entity.FieldText, ""))
	require.NoError(t, uc.UpdateField(ctx, 4, "Category", entity.FieldText, ""))
	assert.Len(t, uc.DirtyIndexes(ctx), 2)

	// Saving one field is a whole-schema write; every field comes back clean.
	require.NoError(t, uc.SaveField(ctx, 0))
	assert.Empty(t, uc.DirtyIndexes(ctx))
}

func TestDeleteFieldPersistsAndKeepsUnsavedEdits(t *testing.T) {
	ctx := context.Background()
	repo := newSchemaRepo(t)
	uc := NewSchemaUseCase(repo, nil)

	require.NoError(t, uc.UpdateField(ctx, 0, "Title", entity.FieldText, ""))

	genreIndex := 4
	deleted, err := uc.DeleteField(ctx, genreIndex)
	require.NoError(t, err)
	require.True(t, deleted)

	schema := uc.Load(ctx)
	assert.False(t, schema.HasKey("genre"))

	persisted, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.False(t, persisted.HasKey("genre"))
	// The unsaved label edit neither persisted nor lost its dirty state.
	assert.Equal(t, "Name", persisted.Fields[0].Label)
	assert.Equal(t, []int{0}, uc.DirtyIndexes(ctx))
}

func TestDeleteFieldDeclinedConfirmation(t *testing.T) {
	ctx := context.Background()
	uc := NewSchemaUseCase(newSchemaRepo(t), func(string) bool { return false })

	deleted, err := uc.DeleteField(ctx, 0)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.True(t, uc.Load(ctx).HasKey("name"))
}

// faultySchemaRepo wraps a real repository and fails writes while setErr is
// non-nil, simulating storage going away mid-session.
type faultySchemaRepo struct {
	repository.SchemaRepository
	setErr error
}

func (r *faultySchemaRepo) Set(ctx context.Context, schema *entity.Schema) error {
	if r.setErr != nil {
		return r.setErr
	}
	return r.SchemaRepository.Set(ctx, schema)
}

func TestSaveFieldWriteFailureKeepsDirtyEdit(t *testing.T) {
	ctx := context.Background()
	base := newSchemaRepo(t)
	repo := &faultySchemaRepo{SchemaRepository: base}
	uc := NewSchemaUseCase(repo, nil)

	require.NoError(t, uc.UpdateField(ctx, 0, "Title", entity.FieldText, ""))

	repo.setErr = errors.Internal("Failed to write settings", nil)
	require.Error(t, uc.SaveField(ctx, 0))

	// The edit survives in the working copy, still marked dirty for a retry,
	// and the snapshot never picked it up.
	assert.Equal(t, "Title", uc.Load(ctx).Fields[0].Label)
	assert.Equal(t, []int{0}, uc.DirtyIndexes(ctx))
	assert.Equal(t, "Name", uc.Persisted(ctx).Fields[0].Label)

	// Once storage recovers, retrying the save lands the edit.
	repo.setErr = nil
	require.NoError(t, uc.SaveField(ctx, 0))
	assert.Empty(t, uc.DirtyIndexes(ctx))

	persisted, err := base.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Title", persisted.FieldByKey("name").Label)
}

func TestAddFieldWriteFailureLeavesSchemaUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := &faultySchemaRepo{
		SchemaRepository: newSchemaRepo(t),
		setErr:           errors.Internal("Failed to write settings", nil),
	}
	uc := NewSchemaUseCase(repo, nil)
	before := uc.Load(ctx)

	require.Error(t, uc.AddField(ctx, "minAge", "Minimum Age", entity.FieldNumber, "8"))

	assert.Equal(t, before.Keys(), uc.Load(ctx).Keys())
	assert.Empty(t, uc.DirtyIndexes(ctx))
}

func TestDeleteFieldWriteFailureLeavesSchemaUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := &faultySchemaRepo{
		SchemaRepository: newSchemaRepo(t),
		setErr:           errors.Internal("Failed to write settings", nil),
	}
	uc := NewSchemaUseCase(repo, nil)

	deleted, err := uc.DeleteField(ctx, 4)
	require.Error(t, err)
	assert.False(t, deleted)
	assert.True(t, uc.Load(ctx).HasKey("genre"))
	assert.True(t, uc.Persisted(ctx).HasKey("genre"))
}

func TestUpdateFieldRejectsBadDefault(t *testing.T) {
	ctx := context.Background()
	uc := NewSchemaUseCase(newSchemaRepo(t), nil)

	err := uc.UpdateField(ctx, 2, "Amount of Players", entity.FieldNumber, "abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	assert.Empty(t, uc.DirtyIndexes(ctx))
}
