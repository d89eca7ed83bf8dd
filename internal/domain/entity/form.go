package entity

import (
	"fmt"

	"boardshelf/pkg/errors"
)

type FormMode string

const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// FormState is the transient edit buffer for one open create/edit session.
// Its value set always matches the schema it was projected from exactly.
type FormState struct {
	Mode     FormMode         `json:"mode"`
	RecordID string           `json:"recordId,omitempty"`
	Values   map[string]Value `json:"values"`
}

// ProjectForm derives a form's initial values from a schema and an optional
// source record (nil means create mode). Every schema field gets an entry:
// the record's value when present, the field default otherwise. Keys the
// record carries outside the schema are dropped. Whenever the schema or the
// identity of the source record changes, callers must re-project and replace
// the whole FormState; partial merges across a schema change are not allowed
// because the key sets may differ.
func ProjectForm(schema *Schema, source *Record) FormState {
	values := make(map[string]Value, len(schema.Fields))
	for _, f := range schema.Fields {
		if source != nil {
			if v, ok := source.Fields[f.Key]; ok {
				values[f.Key] = v
				continue
			}
		}
		values[f.Key] = f.DefaultValue
	}

	form := FormState{Mode: FormCreate, Values: values}
	if source != nil {
		form.Mode = FormEdit
		form.RecordID = source.ID
	}
	return form
}

// SetValue coerces a raw input for the named field and stores it in the form.
// Unknown keys are rejected so stale forms cannot smuggle values past a
// changed schema. The HTTP layer submits whole forms at once; this per-field
// entry point is for UI clients that hold a FormState and apply keystrokes
// field by field before submitting.
func (f *FormState) SetValue(schema *Schema, key, raw string) error {
	def := schema.FieldByKey(key)
	if def == nil {
		return errors.Validation(fmt.Sprintf("Unknown field %q", key))
	}
	f.Values[key] = CoerceFormValue(def.Type, raw)
	return nil
}

// Submission extracts the persistable field set from the form: only keys in
// the current schema, text trimmed, numbers passed through unchanged. An
// unparsable number blocks the submission.
func (f FormState) Submission(schema *Schema) (map[string]Value, error) {
	fields := make(map[string]Value, len(schema.Fields))
	for _, def := range schema.Fields {
		v, ok := f.Values[def.Key]
		if !ok {
			v = def.DefaultValue
		}
		if v.IsNaN() {
			return nil, errors.Validation(fmt.Sprintf("%s must be a number", def.Label))
		}
		fields[def.Key] = v.Trimmed()
	}
	return fields, nil
}
