package ingest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadKeywords reads a YAML keyword dictionary and merges it over the
// defaults. The file maps field names to keyword lists:
//
//	date: ["date", "booked on"]
//	reference: ["stmt no"]
//
// Listed fields replace the default list wholesale; omitted fields keep their
// defaults. Unknown field names are rejected so typos surface at startup
// instead of silently mapping nothing.
func LoadKeywords(path string) (Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords file: %w", err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse keywords file %s: %w", path, err)
	}

	kw := DefaultKeywords()
	for name, words := range raw {
		field := Field(name)
		if _, ok := kw[field]; !ok {
			return nil, fmt.Errorf("keywords file %s: unknown field %q", path, name)
		}
		if len(words) == 0 {
			return nil, fmt.Errorf("keywords file %s: field %q has no keywords", path, name)
		}
		kw[field] = words
	}
	return kw, nil
}
