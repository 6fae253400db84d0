package params

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads parameters from a YAML file. Fields absent from the file keep
// their default values.
func Load(path string) (*Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}

	return &p, nil
}
