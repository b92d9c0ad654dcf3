package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one named column value of a flight row. After repository
// normalization Value is always a JSON scalar: string, float64, int64,
// json.Number, bool or nil.
type Field struct {
	Name  string
	Value any
}

// FlightRecord is one row of the flights query, kept as an ordered list of
// column/value pairs. The order is the query's select order and survives
// JSON encoding, which a plain map would not guarantee. Any column may be
// present and any value may be null.
type FlightRecord []Field

// Get returns the value of the named column and whether it exists.
func (r FlightRecord) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func (r FlightRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal column %q: %w", f.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a record from its cached form, preserving column
// order. Numbers are kept as json.Number so decimal values round-trip
// without drift.
func (r *FlightRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("flight record: expected object, got %v", tok)
	}

	record := FlightRecord{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("flight record: unexpected key token %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		if _, isDelim := valTok.(json.Delim); isDelim {
			return fmt.Errorf("flight record: column %q is not a scalar", key)
		}
		record = append(record, Field{Name: key, Value: valTok})
	}

	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = record
	return nil
}
