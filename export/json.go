package export

import (
	"encoding/json"
	"os"

	"github.com/binstack/cellpack/internal/entity"
)

// ToJSON serializes the cage's current state to indented JSON, via
// Cage.ToDict's primitive-leaf mapping.
func ToJSON(cage *entity.Cage) ([]byte, error) {
	return json.MarshalIndent(cage.ToDict(), "", "  ")
}

// ToJSONCompact serializes the cage's current state to compact JSON,
// suitable for the decision-loop HTTP responses.
func ToJSONCompact(cage *entity.Cage) ([]byte, error) {
	return json.Marshal(cage.ToDict())
}

// SaveJSONToFile writes ToJSON's output to path with 0644 permissions.
func SaveJSONToFile(cage *entity.Cage, path string) error {
	data, err := ToJSON(cage)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
