package gridact

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridact/gridact-go/pkg/gridact/models"
)

// ParseActions decodes a batch of action records from YAML. JSON action
// files decode too, YAML being a superset for this shape.
func ParseActions(data []byte) ([]models.ActionRecord, error) {
	var actions []models.ActionRecord
	if err := yaml.Unmarshal(data, &actions); err != nil {
		return nil, fmt.Errorf("invalid actions file: %w", err)
	}
	return actions, nil
}

// LoadActions reads and decodes an actions file.
func LoadActions(path string) ([]models.ActionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseActions(data)
}
