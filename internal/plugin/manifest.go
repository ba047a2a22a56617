package plugin

import (
	"encoding/json"
	"fmt"
)

// Metadata is the static package description an extension ships with.
type Metadata struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// ParseMetadata decodes a package.json document.
func ParseMetadata(data []byte) (Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return m, nil
}

func (m Metadata) validate() error {
	if m.Name == "" {
		return fmt.Errorf("extension metadata must have a name")
	}
	if m.Version == "" {
		return fmt.Errorf("extension metadata must have a version")
	}
	return nil
}

// Navigation is everything the DSL collected for one product namespace.
type Navigation struct {
	Products     []ProductConfig     `json:"products"`
	VirtualTypes []VirtualTypeConfig `json:"virtualTypes"`
	BasicTypes   []string            `json:"basicTypes"`
}
