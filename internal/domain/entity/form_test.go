package entity

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardshelf/pkg/errors"
)

func sortedKeys(values map[string]Value) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestProjectFormCreateMode(t *testing.T) {
	schema := DefaultSchema()

	form := ProjectForm(schema, nil)

	assert.Equal(t, FormCreate, form.Mode)
	assert.Empty(t, form.RecordID)

	expected := schema.Keys()
	sort.Strings(expected)
	assert.Equal(t, expected, sortedKeys(form.Values))

	assert.True(t, form.Values["players"].Equal(Number(2)))
	assert.True(t, form.Values["time"].Equal(Number(30)))
	assert.True(t, form.Values["name"].IsUnset())
}

func TestProjectFormKeySetMatchesSchema(t *testing.T) {
	schema := DefaultSchema()

	// The record carries an orphaned key and lacks a schema key.
	record := &Record{
		ID: "r1",
		Fields: map[string]Value{
			"name":     Text("Catan"),
			"orphaned": Text("stale"),
		},
	}

	form := ProjectForm(schema, record)

	assert.Equal(t, FormEdit, form.Mode)
	assert.Equal(t, "r1", form.RecordID)

	expected := schema.Keys()
	sort.Strings(expected)
	assert.Equal(t, expected, sortedKeys(form.Values))

	assert.True(t, form.Values["name"].Equal(Text("Catan")))
	// Missing schema key falls back to the field default.
	assert.True(t, form.Values["time"].Equal(Number(30)))
	_, hasOrphan := form.Values["orphaned"]
	assert.False(t, hasOrphan)
}

func TestSubmissionTrimsAndFilters(t *testing.T) {
	schema := DefaultSchema()

	form := ProjectForm(schema, nil)
	form.Values["name"] = Text("  Catan ")
	form.Values["stray"] = Text("nope")

	fields, err := form.Submission(schema)
	require.NoError(t, err)

	assert.True(t, fields["name"].Equal(Text("Catan")))
	_, hasStray := fields["stray"]
	assert.False(t, hasStray)

	expected := schema.Keys()
	sort.Strings(expected)
	assert.Equal(t, expected, sortedKeys(fields))
}

func TestSubmissionRejectsUnparsableNumber(t *testing.T) {
	schema := DefaultSchema()

	form := ProjectForm(schema, nil)
	form.Values["players"] = Number(math.NaN())

	_, err := form.Submission(schema)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestSetValue(t *testing.T) {
	schema := DefaultSchema()
	form := ProjectForm(schema, nil)

	require.NoError(t, form.SetValue(schema, "players", "4"))
	assert.True(t, form.Values["players"].Equal(Number(4)))

	require.NoError(t, form.SetValue(schema, "players", ""))
	assert.True(t, form.Values["players"].IsUnset())

	err := form.SetValue(schema, "ghost", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}
