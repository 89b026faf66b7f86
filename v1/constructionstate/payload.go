package constructionstate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// decodeObject parses an insert body. Scalars are rendered as strings, the
// form leaf values are stored and queried in: numbers keep their source text
// and booleans become "true" or "false". Null stays null.
func decodeObject(payload []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after object", ErrInvalidPayload)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrInvalidPayload
	}
	return renderScalars(obj).(map[string]any), nil
}

func renderScalars(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = renderScalars(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = renderScalars(item)
		}
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return v
	}
}
