package loader

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/draftkit/internal/domain/model"
)

// Keeper is an athlete committed before the draft, at a fixed price.
type Keeper struct {
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
}

// KeeperFile is the on-disk keeper roster (YAML).
//
//	keepers:
//	  - name: Aaron Rodgers
//	    price: 31
type KeeperFile struct {
	Keepers []Keeper `yaml:"keepers"`
}

// LoadKeepers reads and validates a keeper roster file.
func LoadKeepers(path string) ([]Keeper, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keepers: %w", err)
	}
	return ParseKeepers(raw)
}

// ParseKeepers decodes and validates keeper YAML.
func ParseKeepers(raw []byte) ([]Keeper, error) {
	var f KeeperFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKeepers, err)
	}
	for i, k := range f.Keepers {
		if strings.TrimSpace(k.Name) == "" {
			return nil, fmt.Errorf("%w: keeper %d has no name", ErrMalformedKeepers, i)
		}
		if err := model.ValidatePrice(k.Price); err != nil {
			return nil, fmt.Errorf("keeper %q: %w", k.Name, err)
		}
	}
	return f.Keepers, nil
}
