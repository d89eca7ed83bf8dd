package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordJSONIsFlat(t *testing.T) {
	record := &Record{
		ID:        "abc",
		CreatedAt: time.UnixMilli(1700000000000),
		Fields: map[string]Value{
			"name":    Text("Catan"),
			"players": Number(4),
		},
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	// Dynamic fields sit flat beside id and createdAt, the way the browser
	// deployment stored them.
	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "abc", flat["id"])
	assert.Equal(t, float64(1700000000000), flat["createdAt"])
	assert.Equal(t, "Catan", flat["name"])
	assert.Equal(t, float64(4), flat["players"])

	var decoded Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, record.ID, decoded.ID)
	assert.Equal(t, record.CreatedAt.UnixMilli(), decoded.CreatedAt.UnixMilli())
	assert.True(t, decoded.Fields["name"].Equal(Text("Catan")))
	assert.True(t, decoded.Fields["players"].Equal(Number(4)))
}

func TestRecordGetFallsBackToUnset(t *testing.T) {
	record := &Record{ID: "abc", Fields: map[string]Value{"name": Text("Catan")}}
	assert.True(t, record.Get("missing").IsUnset())
	assert.True(t, record.Get("name").Equal(Text("Catan")))
}

func TestReservedKey(t *testing.T) {
	assert.True(t, ReservedKey("id"))
	assert.True(t, ReservedKey("createdAt"))
	assert.False(t, ReservedKey("name"))
}
