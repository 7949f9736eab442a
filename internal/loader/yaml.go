package loader

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// parseYAML decodes a top-level sequence of mappings. Unquoted numbers
// decode as int or float64 and are numeric; quoted ones stay strings.
func parseYAML(data []byte) ([]record, error) {
	var doc any
	if err := yaml.Unmarshal(bytes.TrimPrefix(data, utf8BOM), &doc); err != nil {
		return nil, malformed("invalid YAML: %v", err)
	}
	return recordsFrom(doc)
}
