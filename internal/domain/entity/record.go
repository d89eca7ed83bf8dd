package entity

import (
	"encoding/json"
	"time"
)

// Record is one catalogued game. Its dynamic fields follow whatever schema was
// current when it was written: stale records may carry keys no longer in the
// schema (never auto-pruned) or lack keys added later (reads fall back to the
// field default via form projection).
type Record struct {
	ID        string
	CreatedAt time.Time
	Fields    map[string]Value
}

// id and createdAt live flat alongside the dynamic fields in serialized form,
// so they are reserved and never valid as schema keys.
const (
	reservedKeyID        = "id"
	reservedKeyCreatedAt = "createdAt"
)

// ReservedKey reports whether key collides with a record's fixed properties.
func ReservedKey(key string) bool {
	return key == reservedKeyID || key == reservedKeyCreatedAt
}

func (r *Record) Clone() *Record {
	fields := make(map[string]Value, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return &Record{ID: r.ID, CreatedAt: r.CreatedAt, Fields: fields}
}

// Get returns the record's value for key; unset if the record never had it.
func (r *Record) Get(key string) Value {
	if v, ok := r.Fields[key]; ok {
		return v
	}
	return Unset()
}

func (r *Record) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(r.Fields)+2)
	for k, v := range r.Fields {
		flat[k] = v.Native()
	}
	flat[reservedKeyID] = r.ID
	flat[reservedKeyCreatedAt] = r.CreatedAt.UnixMilli()
	return json.Marshal(flat)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var flat map[string]interface{}
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	rec := Record{Fields: make(map[string]Value)}
	for k, raw := range flat {
		switch k {
		case reservedKeyID:
			if s, ok := raw.(string); ok {
				rec.ID = s
			}
		case reservedKeyCreatedAt:
			if ms, ok := raw.(float64); ok {
				rec.CreatedAt = time.UnixMilli(int64(ms))
			}
		default:
			rec.Fields[k] = FromNative(raw)
		}
	}

	*r = rec
	return nil
}
