package loader

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// refList accepts the reference field spellings found in the wild: a single
// string, a list of strings, or a list of {id: ...} mappings. It always
// normalizes to a flat id list.
type refList struct {
	ids []string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *refList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			return nil
		}
		var single string
		if err := value.Decode(&single); err != nil {
			return fmt.Errorf("invalid reference: %w", err)
		}
		r.ids = []string{single}
		return nil
	case yaml.SequenceNode:
		for _, item := range value.Content {
			id, err := refID(item)
			if err != nil {
				return err
			}
			r.ids = append(r.ids, id)
		}
		return nil
	}
	return fmt.Errorf("invalid reference list: expected string or sequence")
}

// refID extracts the id from a sequence entry: a plain string or a mapping
// with an id key.
func refID(item *yaml.Node) (string, error) {
	switch item.Kind {
	case yaml.ScalarNode:
		var id string
		if err := item.Decode(&id); err != nil {
			return "", fmt.Errorf("invalid reference entry: %w", err)
		}
		return id, nil
	case yaml.MappingNode:
		var m struct {
			ID string `yaml:"id"`
		}
		if err := item.Decode(&m); err != nil {
			return "", fmt.Errorf("invalid reference entry: %w", err)
		}
		return m.ID, nil
	}
	return "", fmt.Errorf("invalid reference entry: expected string or mapping")
}

// UnmarshalJSON implements json.Unmarshaler with the same leniency as the
// YAML side.
func (r *refList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		r.ids = []string{single}
		return nil
	}

	var null any
	if err := json.Unmarshal(data, &null); err == nil && null == nil {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("invalid reference list: expected string or array")
	}
	for _, entry := range entries {
		var id string
		if err := json.Unmarshal(entry, &id); err == nil {
			r.ids = append(r.ids, id)
			continue
		}
		var m struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(entry, &m); err != nil {
			return fmt.Errorf("invalid reference entry: expected string or object")
		}
		r.ids = append(r.ids, m.ID)
	}
	return nil
}
