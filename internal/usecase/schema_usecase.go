package usecase

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"boardshelf/internal/domain/entity"
	"boardshelf/internal/domain/repository"
	"boardshelf/pkg/errors"
	"boardshelf/pkg/logger"
)

// ConfirmFunc asks the operator to approve a destructive action before it
// runs. The serving layer decides how the question is actually posed.
type ConfirmFunc func(prompt string) bool

func confirmAlways(string) bool { return true }

// SchemaUseCase owns the working schema for the editing session plus the
// snapshot of what was last persisted. In-place field edits accumulate in the
// working copy and only reach storage through SaveField; structural changes
// (add/remove) are persisted immediately. The working copy and the snapshot
// therefore always agree on the key sequence, and per-index dirty comparison
// always lines up field for field.
type SchemaUseCase struct {
	schemaRepo repository.SchemaRepository
	confirm    ConfirmFunc

	mu       sync.Mutex
	schema   *entity.Schema // working copy, may hold unsaved edits
	snapshot *entity.Schema // last persisted state
}

func NewSchemaUseCase(schemaRepo repository.SchemaRepository, confirm ConfirmFunc) *SchemaUseCase {
	if confirm == nil {
		confirm = confirmAlways
	}
	return &SchemaUseCase{
		schemaRepo: schemaRepo,
		confirm:    confirm,
	}
}

// ensureLoaded populates the working schema and snapshot on first use.
// Absent or unreadable persisted data degrades to the built-in default
// schema; that is the fallback policy, not an error to propagate.
func (uc *SchemaUseCase) ensureLoaded(ctx context.Context) {
	if uc.schema != nil {
		return
	}

	schema, err := uc.schemaRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			logger.Warn("Failed to load schema, falling back to default: %v", err)
		}
		schema = entity.DefaultSchema()
	}

	uc.schema = schema
	uc.snapshot = schema.Clone()
}

// Load returns the current working schema.
func (uc *SchemaUseCase) Load(ctx context.Context) *entity.Schema {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ensureLoaded(ctx)
	return uc.schema.Clone()
}

// Persisted returns the last-persisted schema. Record and form operations
// project against this, never against unsaved editor state.
func (uc *SchemaUseCase) Persisted(ctx context.Context) *entity.Schema {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ensureLoaded(ctx)
	return uc.snapshot.Clone()
}

// AddField validates and appends a new field definition, persisting the
// change immediately. Keys are immutable once created, so uniqueness is only
// checked here.
func (uc *SchemaUseCase) AddField(ctx context.Context, key, label string, fieldType entity.FieldType, rawDefault string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ensureLoaded(ctx)

	key = strings.TrimSpace(key)
	label = strings.TrimSpace(label)

	if key == "" {
		return errors.Validation("Key must not be empty")
	}
	if strings.ContainsFunc(key, unicode.IsSpace) {
		return errors.Validation("Key must not contain whitespace")
	}
	if entity.ReservedKey(key) {
		return errors.Validation("Key is reserved")
	}
	if uc.schema.HasKey(key) {
		return errors.Validation("Key must be unique")
	}
	if label == "" {
		return errors.Validation("Label is required")
	}
	if fieldType != entity.FieldText && fieldType != entity.FieldNumber {
		return errors.Validation("Type must be text or number")
	}

	defaultValue, err := entity.CoerceDefault(fieldType, rawDefault)
	if err != nil {
		return err
	}

	field := entity.FieldDefinition{
		Key:          key,
		Label:        label,
		Type:         fieldType,
		DefaultValue: defaultValue,
	}

	// Persist the snapshot plus the structural change so other fields'
	// unsaved edits stay unsaved (and stay dirty).
	next := uc.snapshot.Clone()
	next.Fields = append(next.Fields, field)
	if err := uc.schemaRepo.Set(ctx, next); err != nil {
		return err
	}

	uc.snapshot = next
	uc.schema.Fields = append(uc.schema.Fields, field)
	return nil
}

// UpdateField edits label, type, and default value of the field at index in
// the working copy only. The key never changes. Nothing is persisted until
// SaveField.
func (uc *SchemaUseCase) UpdateField(ctx context.Context, index int, label string, fieldType entity.FieldType, rawDefault string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ensureLoaded(ctx)

	if index < 0 || index >= len(uc.schema.Fields) {
		return errors.BadRequest("Invalid field index", nil)
	}

	label = strings.TrimSpace(label)
	if label == "" {
		return errors.Validation("Label is required")
	}
	if fieldType != entity.FieldText && fieldType != entity.FieldNumber {
		return errors.Validation("Type must be text or number")
	}

	defaultValue, err := entity.CoerceDefault(fieldType, rawDefault)
	if err != nil {
		return err
	}

	field := &uc.schema.Fields[index]
	field.Label = label
	field.Type = fieldType
	field.DefaultValue = defaultValue
	return nil
}

// DeleteField removes the field at index from the schema and persists the
// change. Data already stored under the key stays on existing records; only
// the schema stops describing it. Returns false without error when the
// operator declines the confirmation prompt.
func (uc *SchemaUseCase) DeleteField(ctx context.Context, index int) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ensureLoaded(ctx)

	if index < 0 || index >= len(uc.schema.Fields) {
		return false, errors.BadRequest("Invalid field index", nil)
	}

	if !uc.confirm("Remove this field from schema?") {
		return false, nil
	}

	next := uc.snapshot.Clone()
	next.Fields = append(next.Fields[:index], next.Fields[index+1:]...)
	if err := uc.schemaRepo.Set(ctx, next); err != nil {
		return false, err
	}

	uc.snapshot = next
	uc.schema.Fields = append(uc.schema.Fields[:index], uc.schema.Fields[index+1:]...)
	return true, nil
}

// IsDirty reports whether the field at index differs from the persisted
// snapshot in label, type, or default value. Keys are immutable and not
// compared.
func (uc *SchemaUseCase) IsDirty(ctx context.Context, index int) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ensureLoaded(ctx)
	return uc.isDirtyLocked(index)
}

func (uc *SchemaUseCase) isDirtyLocked(index int) bool {
	if index < 0 || index >= len(uc.schema.Fields) || index >= len(uc.snapshot.Fields) {
		return false
	}
	current := uc.schema.Fields[index]
	saved := uc.snapshot.Fields[index]
	return current.Label != saved.Label ||
		current.Type != saved.Type ||
		!current.DefaultValue.Equal(saved.DefaultValue)
}

// DirtyIndexes lists every field index with unsaved in-place edits.
func (uc *SchemaUseCase) DirtyIndexes(ctx context.Context) []int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ensureLoaded(ctx)

	var dirty []int
	for i := range uc.schema.Fields {
		if uc.isDirtyLocked(i) {
			dirty = append(dirty, i)
		}
	}
	return dirty
}

// SaveField persists the entire working schema and replaces the snapshot.
// The storage layer has no partial-write primitive, so the per-field save
// affordance is a whole-schema write and clears dirtiness for every field,
// not only the one at index. On a write failure the working copy keeps the
// operator's edits so the save can be retried.
func (uc *SchemaUseCase) SaveField(ctx context.Context, index int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ensureLoaded(ctx)

	if index < 0 || index >= len(uc.schema.Fields) {
		return errors.BadRequest("Invalid field index", nil)
	}

	if err := uc.schemaRepo.Set(ctx, uc.schema); err != nil {
		return err
	}

	uc.snapshot = uc.schema.Clone()
	return nil
}
