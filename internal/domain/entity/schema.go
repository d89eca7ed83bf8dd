package entity

// FieldDefinition is one schema entry. Key is the record property name and is
// immutable once the field exists; Label is what the UI shows.
type FieldDefinition struct {
	Key          string    `json:"key"`
	Label        string    `json:"label"`
	Type         FieldType `json:"type"`
	DefaultValue Value     `json:"defaultValue"`
}

// Schema is the ordered set of field definitions describing a record's shape.
// Field order drives form and list rendering order.
type Schema struct {
	Fields []FieldDefinition `json:"gameFields"`
}

// DefaultSchema returns the built-in seed schema used when no schema has been
// persisted yet.
func DefaultSchema() *Schema {
	return &Schema{
		Fields: []FieldDefinition{
			{Key: "name", Label: "Name", Type: FieldText, DefaultValue: Text("")},
			{Key: "imageUrl", Label: "Image URL", Type: FieldText, DefaultValue: Text("")},
			{Key: "players", Label: "Amount of Players", Type: FieldNumber, DefaultValue: Number(2)},
			{Key: "difficulty", Label: "Difficulty Level", Type: FieldText, DefaultValue: Text("")},
			{Key: "genre", Label: "Genre", Type: FieldText, DefaultValue: Text("")},
			{Key: "time", Label: "Time", Type: FieldNumber, DefaultValue: Number(30)},
			{Key: "type", Label: "Type", Type: FieldText, DefaultValue: Text("")},
		},
	}
}

func (s *Schema) Keys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	return keys
}

func (s *Schema) HasKey(key string) bool {
	for _, f := range s.Fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

// FieldByKey returns the definition for key, or nil if the schema has no such
// field.
func (s *Schema) FieldByKey(key string) *FieldDefinition {
	for i := range s.Fields {
		if s.Fields[i].Key == key {
			return &s.Fields[i]
		}
	}
	return nil
}

func (s *Schema) Clone() *Schema {
	fields := make([]FieldDefinition, len(s.Fields))
	copy(fields, s.Fields)
	return &Schema{Fields: fields}
}
