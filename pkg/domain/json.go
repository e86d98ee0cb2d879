package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// DecodeJSON decodes data into v keeping integers exact. Numbers that fit an
// int64 become int64; every other number becomes float64. Values of type any
// reached through maps and slices are converted; typed fields are untouched.
func DecodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("invalid character after top-level value")
	}
	return nil
}

// DecodeObject decodes a JSON object with DecodeJSON number handling.
func DecodeObject(data []byte) (map[string]any, error) {
	var obj map[string]any
	if err := DecodeJSON(data, &obj); err != nil {
		return nil, err
	}
	return NormalizeNumbers(obj).(map[string]any), nil
}

// NormalizeNumbers replaces every json.Number inside v with an int64 when it
// is an integer in range, or a float64 otherwise. Maps and slices are
// rewritten in place.
func NormalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		for k, item := range val {
			val[k] = NormalizeNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = NormalizeNumbers(item)
		}
		return val
	default:
		return v
	}
}
