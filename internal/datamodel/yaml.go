package datamodel

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlModel is the on-disk definition format. Each relationship is declared
// once, from either side; Connect materializes the reversal.
type yamlModel struct {
	Tables []yamlTable `yaml:"tables"`
}

type yamlTable struct {
	Name         string            `yaml:"name"`
	Associations []yamlAssociation `yaml:"associations,omitempty"`
}

type yamlAssociation struct {
	To      string `yaml:"to"`
	Kind    string `yaml:"kind,omitempty"` // parent | child | association
	Ignored bool   `yaml:"ignored,omitempty"`
}

// LoadYAML reads a schema definition file into a DataModel.
func LoadYAML(path string) (*DataModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}
	return ParseYAML(data)
}

// ParseYAML builds a DataModel from YAML bytes.
func ParseYAML(data []byte) (*DataModel, error) {
	var def yamlModel
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse model definition: %w", err)
	}

	m := New()
	for _, t := range def.Tables {
		if t.Name == "" {
			return nil, fmt.Errorf("table with empty name in model definition")
		}
		m.AddTable(t.Name)
	}
	for _, t := range def.Tables {
		for _, a := range t.Associations {
			if a.To == "" {
				return nil, fmt.Errorf("association without target on table %s", t.Name)
			}
			kind, err := ParseKind(a.Kind)
			if err != nil {
				return nil, fmt.Errorf("table %s: %w", t.Name, err)
			}
			m.Connect(t.Name, a.To, kind, a.Ignored)
		}
	}
	return m, nil
}
