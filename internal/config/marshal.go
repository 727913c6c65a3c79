package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Marshal renders c as a YAML config document. Durations are written in their
// string form so the document passes the schema.
func Marshal(c Config) ([]byte, error) {
	doc := map[string]map[string]any{}
	for key, value := range c.Settings() {
		section, field, _ := strings.Cut(key, ".")
		if doc[section] == nil {
			doc[section] = map[string]any{}
		}
		doc[section][field] = value
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}
