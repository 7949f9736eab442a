package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// parseJSON decodes a top-level array of objects. Numbers are kept as
// json.Number so integers and floats survive unchanged.
func parseJSON(data []byte) ([]record, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, malformed("invalid JSON: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("invalid JSON: unexpected data after top-level value")
	}

	return recordsFrom(doc)
}

// recordsFrom converts a decoded document into records. The document must
// be a sequence whose items are all objects.
func recordsFrom(doc any) ([]record, error) {
	items, ok := doc.([]any)
	if !ok {
		if doc == nil {
			return nil, nil
		}
		return nil, malformed("top-level value must be a list of records")
	}

	records := make([]record, 0, len(items))
	for i, item := range items {
		switch obj := item.(type) {
		case map[string]any:
			records = append(records, record(obj))
		case map[any]any:
			rec := make(record, len(obj))
			for k, v := range obj {
				if key, ok := k.(string); ok {
					rec[key] = v
				}
			}
			records = append(records, rec)
		default:
			return nil, malformed("record %d is not an object", i+1)
		}
	}

	return records, nil
}
