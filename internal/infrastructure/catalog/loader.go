package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gearmatch/backend/internal/domain"
)

// LoadFromFile reads a vehicle catalog from a JSON file. The file holds a
// plain array of vehicles; ordering does not matter, the catalog store
// re-sorts by MSRP on load.
func LoadFromFile(path string) ([]domain.Vehicle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
	}

	var vehicles []domain.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}

	for i, v := range vehicles {
		if v.ID == "" {
			return nil, fmt.Errorf("catalog file %s: vehicle at index %d has no id", path, i)
		}
	}

	return vehicles, nil
}
