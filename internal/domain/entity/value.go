package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"boardshelf/pkg/errors"
)

type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
)

type ValueKind int

const (
	KindUnset ValueKind = iota
	KindText
	KindNumber
)

// Value is one dynamic record or form value: text, number, or the unset
// sentinel. Unset represents "no value entered" on a numeric field and is
// distinct from zero; it serializes as the empty string.
type Value struct {
	kind ValueKind
	str  string
	num  float64
}

func Text(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: KindText, str: s}
}

func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

func Unset() Value {
	return Value{}
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsUnset() bool   { return v.kind == KindUnset }

// Str returns the textual payload; empty for non-text values.
func (v Value) Str() string { return v.str }

// Num returns the numeric payload; zero for non-number values.
func (v Value) Num() float64 { return v.num }

// IsNaN reports an unparsable numeric input carried through a form edit.
func (v Value) IsNaN() bool {
	return v.kind == KindNumber && math.IsNaN(v.num)
}

func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	}
	return true
}

// Trimmed returns the value with surrounding whitespace removed from text;
// numbers and unset pass through unchanged.
func (v Value) Trimmed() Value {
	if v.kind == KindText {
		return Text(strings.TrimSpace(v.str))
	}
	return v
}

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return ""
}

// Native converts to the plain representation used by the storage backends:
// string for text, float64 for number, "" for unset.
func (v Value) Native() interface{} {
	switch v.kind {
	case KindText:
		return v.str
	case KindNumber:
		return v.num
	}
	return ""
}

// FromNative converts a deserialized storage value back into a Value. Types
// outside text/number degrade to their string form rather than erroring.
func FromNative(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return Unset()
	case string:
		return Text(t)
	case float64:
		return Number(t)
	case int64:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Text(t.String())
		}
		return Number(f)
	default:
		return Text(fmt.Sprint(t))
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromNative(raw)
	return nil
}

// CoerceFormValue applies the form-edit coercion rule: numeric fields parse
// their raw input, keeping "" as the unset sentinel and carrying unparsable
// input as NaN so the submission step rejects it.
func CoerceFormValue(fieldType FieldType, raw string) Value {
	if fieldType != FieldNumber {
		return Text(raw)
	}
	if raw == "" {
		return Unset()
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Number(math.NaN())
	}
	return Number(f)
}

// CoerceNative reconciles an arbitrary deserialized input value with a field
// type: numeric fields parse textual input under the form-edit rule, text
// fields keep the string form of whatever arrived.
func CoerceNative(fieldType FieldType, raw interface{}) Value {
	v := FromNative(raw)
	if fieldType == FieldNumber {
		if v.Kind() == KindText {
			return CoerceFormValue(FieldNumber, v.Str())
		}
		return v
	}
	if v.Kind() == KindNumber {
		return Text(v.String())
	}
	return v
}

// CoerceDefault validates and coerces a raw default value for a new schema
// field. A blank numeric default becomes 0; non-numeric input is rejected.
func CoerceDefault(fieldType FieldType, raw string) (Value, error) {
	if fieldType != FieldNumber {
		return Text(raw), nil
	}
	if raw == "" {
		return Number(0), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Unset(), errors.Validation("Default value must be a number")
	}
	return Number(f), nil
}
