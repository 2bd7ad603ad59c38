package rules

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Catalog is the YAML layout of a rules file.
type Catalog struct {
	Rules []Rule `yaml:"rules"`
}

// LoadCatalog reads a rules YAML file and seeds an engine. Rules without an
// id get a generated one. The second result lists ids of duplicate rules
// that were dropped; callers should warn about them.
func LoadCatalog(path string) (*Engine, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading rules file: %w", err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, nil, fmt.Errorf("parsing rules file: %w", err)
	}

	engine := NewEngine()
	var dropped []string
	for _, r := range cat.Rules {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if !engine.AddRule(r) {
			dropped = append(dropped, r.ID)
		}
	}
	return engine, dropped, nil
}

// SaveCatalog writes the engine's rules back to a YAML file in evaluation
// order.
func SaveCatalog(path string, e *Engine) error {
	data, err := yaml.Marshal(Catalog{Rules: e.Rules()})
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules file: %w", err)
	}
	return nil
}
