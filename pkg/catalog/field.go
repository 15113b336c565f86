package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type fieldKind uint8

const (
	kindString fieldKind = iota
	kindNumber
	kindBool
)

// Field is one loosely typed dataset value. Source files mix strings,
// numbers and booleans for the same column, so the raw JSON kind is kept
// for truthiness checks while Value always holds the text form.
type Field struct {
	Value string
	Set   bool
	kind  fieldKind
}

// Text builds a present string field.
func Text(s string) Field {
	return Field{Value: s, Set: true}
}

// Bool builds a present boolean field.
func Bool(b bool) Field {
	return Field{Value: strconv.FormatBool(b), Set: true, kind: kindBool}
}

// Number builds a present numeric field.
func Number(n int) Field {
	return Field{Value: strconv.Itoa(n), Set: true, kind: kindNumber}
}

// Truthy follows the loose truthiness of the source data: non-empty strings,
// non-zero numbers and true.
func (f Field) Truthy() bool {
	if !f.Set {
		return false
	}
	switch f.kind {
	case kindBool:
		return f.Value == "true"
	case kindNumber:
		n, err := strconv.ParseFloat(f.Value, 64)
		return err == nil && n != 0
	default:
		return f.Value != ""
	}
}

// Or returns the value when the field is present, else fallback.
// A present empty string is kept.
func (f Field) Or(fallback string) string {
	if f.Set {
		return f.Value
	}
	return fallback
}

// String returns the text value or "" when absent.
func (f Field) String() string {
	return f.Value
}

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = Field{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Text(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*f = Bool(b)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unsupported field value %s: %w", data, err)
		}
		*f = Field{Value: n.String(), Set: true, kind: kindNumber}
	}
	return nil
}

// MarshalJSON writes the field back in its original kind.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	switch f.kind {
	case kindBool, kindNumber:
		return []byte(f.Value), nil
	default:
		return json.Marshal(f.Value)
	}
}
