package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardshelf/pkg/errors"
)

func TestCoerceFormValueNumber(t *testing.T) {
	// Empty input stays the unset sentinel, distinct from zero.
	v := CoerceFormValue(FieldNumber, "")
	assert.True(t, v.IsUnset())
	assert.False(t, v.Equal(Number(0)))

	v = CoerceFormValue(FieldNumber, "5")
	assert.True(t, v.Equal(Number(5)))

	// Unparsable input is carried as NaN so submission can reject it.
	v = CoerceFormValue(FieldNumber, "abc")
	assert.True(t, v.IsNaN())
}

func TestCoerceFormValueText(t *testing.T) {
	v := CoerceFormValue(FieldText, "Catan")
	assert.Equal(t, "Catan", v.Str())
}

func TestCoerceDefault(t *testing.T) {
	v, err := CoerceDefault(FieldNumber, "")
	require.NoError(t, err)
	assert.True(t, v.Equal(Number(0)))

	v, err = CoerceDefault(FieldNumber, "5")
	require.NoError(t, err)
	assert.True(t, v.Equal(Number(5)))

	_, err = CoerceDefault(FieldNumber, "abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	v, err = CoerceDefault(FieldText, "  hi ")
	require.NoError(t, err)
	assert.Equal(t, "  hi ", v.Str())
}

func TestCoerceNative(t *testing.T) {
	assert.True(t, CoerceNative(FieldNumber, float64(4)).Equal(Number(4)))
	assert.True(t, CoerceNative(FieldNumber, "4").Equal(Number(4)))
	assert.True(t, CoerceNative(FieldNumber, "").IsUnset())
	assert.True(t, CoerceNative(FieldNumber, "x").IsNaN())
	assert.Equal(t, "4", CoerceNative(FieldText, float64(4)).Str())
}

func TestValueJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(map[string]Value{
		"a": Text("hello"),
		"b": Number(2.5),
		"c": Unset(),
	})
	require.NoError(t, err)

	var decoded map[string]Value
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.True(t, decoded["a"].Equal(Text("hello")))
	assert.True(t, decoded["b"].Equal(Number(2.5)))
	assert.True(t, decoded["c"].IsUnset())
}

func TestValueTrimmed(t *testing.T) {
	assert.Equal(t, "Catan", Text("  Catan ").Trimmed().Str())
	assert.True(t, Number(3).Trimmed().Equal(Number(3)))
}
