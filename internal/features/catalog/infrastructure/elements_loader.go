package infrastructure

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/IAnMove/ideagenerator/internal/features/catalog/domain"
)

// LoadElements reads a server-side elements file. YAML and JSON are both
// accepted; the document goes through the same JSON decoding as request
// bodies so legacy keys are normalized in one place.
func LoadElements(path string) (*domain.ElementsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read elements file %s: %w", path, err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse elements file %s: %w", path, err)
	}

	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("elements file %s is not JSON-compatible: %w", path, err)
	}

	var cfg domain.ElementsConfig
	if err := json.Unmarshal(asJSON, &cfg); err != nil {
		return nil, fmt.Errorf("invalid elements file %s: %w", path, err)
	}
	return &cfg, nil
}
