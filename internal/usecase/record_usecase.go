package usecase

import (
	"context"
	"fmt"
	"strings"

	"boardshelf/internal/domain/entity"
	"boardshelf/internal/domain/repository"
	"boardshelf/pkg/errors"
)

// Display field the list filter searches on.
const filterKey = "name"

type RecordUseCase struct {
	recordRepo repository.RecordRepository
	schemaUC   *SchemaUseCase
	confirm    ConfirmFunc
}

func NewRecordUseCase(recordRepo repository.RecordRepository, schemaUC *SchemaUseCase, confirm ConfirmFunc) *RecordUseCase {
	if confirm == nil {
		confirm = confirmAlways
	}
	return &RecordUseCase{
		recordRepo: recordRepo,
		schemaUC:   schemaUC,
		confirm:    confirm,
	}
}

// List returns the collection newest first, narrowed by the free-text query.
func (uc *RecordUseCase) List(ctx context.Context, query string) ([]*entity.Record, error) {
	records, err := uc.recordRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRecords(records, query), nil
}

// FilterRecords narrows records to those whose display name contains the
// trimmed query, case-insensitively. An empty query returns the input
// unchanged.
func FilterRecords(records []*entity.Record, query string) []*entity.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	var matched []*entity.Record
	for _, rec := range records {
		name := strings.ToLower(rec.Get(filterKey).String())
		if strings.Contains(name, q) {
			matched = append(matched, rec)
		}
	}
	return matched
}

// Create stores a new record. Input values are coerced per the persisted
// schema; fields the input leaves out take the schema default, and keys
// outside the schema never reach storage.
func (uc *RecordUseCase) Create(ctx context.Context, input map[string]interface{}) (*entity.Record, error) {
	schema := uc.schemaUC.Persisted(ctx)

	form := entity.ProjectForm(schema, nil)
	applyInput(form, schema, input)

	fields, err := form.Submission(schema)
	if err != nil {
		return nil, err
	}
	return uc.recordRepo.Create(ctx, fields)
}

// Update shallow-merges the given fields into an existing record. Unknown
// record ids are silent no-ops; fields absent from the patch are preserved,
// including schema keys the record never had.
func (uc *RecordUseCase) Update(ctx context.Context, id string, input map[string]interface{}) error {
	schema := uc.schemaUC.Persisted(ctx)

	patch := make(map[string]entity.Value, len(input))
	for key, raw := range input {
		def := schema.FieldByKey(key)
		if def == nil {
			continue
		}
		v := entity.CoerceNative(def.Type, raw)
		if v.IsNaN() {
			return errors.Validation(fmt.Sprintf("%s must be a number", def.Label))
		}
		patch[key] = v.Trimmed()
	}

	return uc.recordRepo.Update(ctx, id, patch)
}

// Delete removes the record after operator confirmation. Unknown ids are
// silent no-ops. Returns false without error when the operator declines the
// confirmation prompt.
func (uc *RecordUseCase) Delete(ctx context.Context, id string) (bool, error) {
	if !uc.confirm("Delete this game?") {
		return false, nil
	}
	if err := uc.recordRepo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// CreateForm projects an empty form from the persisted schema.
func (uc *RecordUseCase) CreateForm(ctx context.Context) entity.FormState {
	return entity.ProjectForm(uc.schemaUC.Persisted(ctx), nil)
}

// EditForm projects a form for the record with the given id. Keys the record
// carries outside the current schema are omitted; schema keys it lacks fall
// back to their defaults.
func (uc *RecordUseCase) EditForm(ctx context.Context, id string) (entity.FormState, error) {
	records, err := uc.recordRepo.List(ctx)
	if err != nil {
		return entity.FormState{}, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return entity.ProjectForm(uc.schemaUC.Persisted(ctx), rec), nil
		}
	}
	return entity.FormState{}, errors.NotFound("Record", nil)
}

// Subscribe registers for full-collection change notifications.
func (uc *RecordUseCase) Subscribe(ctx context.Context, onChange func([]*entity.Record)) (func(), error) {
	return uc.recordRepo.Subscribe(ctx, onChange)
}

func applyInput(form entity.FormState, schema *entity.Schema, input map[string]interface{}) {
	for key, raw := range input {
		def := schema.FieldByKey(key)
		if def == nil {
			continue
		}
		form.Values[key] = entity.CoerceNative(def.Type, raw)
	}
}
