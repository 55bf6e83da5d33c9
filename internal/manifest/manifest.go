// Package manifest reads action metadata (action.yml) so a step can verify
// its declared inputs before doing any work.
package manifest

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"actionkit/pkg/runner"
)

// Input is one declared input of an action.
type Input struct {
	Description        string `yaml:"description"`
	Required           bool   `yaml:"required"`
	Default            string `yaml:"default"`
	DeprecationMessage string `yaml:"deprecationMessage"`
}

// Manifest is the subset of action.yml this tool cares about.
type Manifest struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Inputs      map[string]Input `yaml:"inputs"`
}

// Load parses an action.yml file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading action metadata: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}

// MissingRequired returns the sorted names of required inputs that have
// neither an INPUT_* environment binding nor a declared default.
func (m *Manifest) MissingRequired(getenv func(string) string) []string {
	var missing []string
	for name, input := range m.Inputs {
		if !input.Required || input.Default != "" {
			continue
		}
		if getenv(runner.InputEnvName(name)) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// Deprecated returns the inputs that are both bound in the environment and
// carry a deprecation message, mapped to that message.
func (m *Manifest) Deprecated(getenv func(string) string) map[string]string {
	used := make(map[string]string)
	for name, input := range m.Inputs {
		if input.DeprecationMessage == "" {
			continue
		}
		if getenv(runner.InputEnvName(name)) != "" {
			used[name] = input.DeprecationMessage
		}
	}
	return used
}
