package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractOutermostObject returns the text between the first '{' and the last
// '}' of raw, inclusive. Prose around the payload is discarded. Unrelated
// braces before or after the payload widen the slice and make it undecodable;
// callers treat that like any other invalid output.
func ExtractOutermostObject(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	return raw[start : end+1], nil
}

// Field is one member of a JSON object, in document order.
type Field struct {
	Key   string
	Value json.RawMessage
}

// DecodeObject decodes a JSON object into its members, preserving the order
// in which keys appear. Later duplicates replace earlier values in place.
func DecodeObject(data []byte) ([]Field, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidOutput)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected JSON object", ErrInvalidOutput)
	}

	var fields []Field
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected object key %v", ErrInvalidOutput, keyTok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
		if i, seen := index[key]; seen {
			fields[i].Value = value
			continue
		}
		index[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: value})
	}
	return fields, nil
}
