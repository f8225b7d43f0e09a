package army

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
)

// Catalog is the list of unit prototypes armies are built from
type Catalog struct {
	Units []core.UnitPrototype `yaml:"units"`
}

// LoadCatalog reads and validates a YAML unit catalog
func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(b)
}

// ParseCatalog decodes a YAML unit catalog. Attack types may use either
// the short ("ranged") or long ("Ranged combat") spelling.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(c.Units) == 0 {
		return nil, core.ErrNoUnits
	}
	seen := make(map[string]bool, len(c.Units))
	for i := range c.Units {
		p := &c.Units[i]
		at, err := core.ParseAttackType(string(p.AttackType))
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", p.Name, err)
		}
		p.AttackType = at
		if p.UnitType == "" {
			p.UnitType = p.Name
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate unit %q in catalog", p.Name)
		}
		seen[p.Name] = true
	}
	return &c, nil
}
