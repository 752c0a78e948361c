package data

import (
	"fmt"
	"os"

	"github.com/noname-game/horde/internal/component"
	"github.com/noname-game/horde/internal/core/rng"
	"gopkg.in/yaml.v3"
)

// DropWeight is the relative chance of one resource kind.
type DropWeight struct {
	Kind   string  `yaml:"kind"`
	Weight float64 `yaml:"weight"`
}

type dropListFile struct {
	Resources []DropWeight `yaml:"resources"`
}

// DropTable picks a resource kind from a cumulative weight table.
type DropTable struct {
	kinds      []component.ResourceKind
	cumulative []float64 // normalised, last entry is 1
}

// DefaultDropWeights: gold, wood, sulfur and ore 20% each, mercury 10%,
// crystals and gems 5% each.
func DefaultDropWeights() []DropWeight {
	return []DropWeight{
		{Kind: "gold", Weight: 20},
		{Kind: "wood", Weight: 20},
		{Kind: "sulfur", Weight: 20},
		{Kind: "ore", Weight: 20},
		{Kind: "mercury", Weight: 10},
		{Kind: "crystals", Weight: 5},
		{Kind: "gems", Weight: 5},
	}
}

// NewDropTable builds a table; bucket order follows the given order.
func NewDropTable(weights []DropWeight) (*DropTable, error) {
	var total float64
	for _, w := range weights {
		if w.Weight < 0 {
			return nil, fmt.Errorf("drop weight for %q is negative", w.Kind)
		}
		total += w.Weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("drop table has no weight")
	}

	t := &DropTable{
		kinds:      make([]component.ResourceKind, 0, len(weights)),
		cumulative: make([]float64, 0, len(weights)),
	}
	var acc float64
	for _, w := range weights {
		kind, ok := component.ParseResourceKind(w.Kind)
		if !ok {
			return nil, fmt.Errorf("unknown resource kind %q", w.Kind)
		}
		if w.Weight == 0 {
			continue
		}
		acc += w.Weight
		t.kinds = append(t.kinds, kind)
		t.cumulative = append(t.cumulative, acc/total)
	}
	t.cumulative[len(t.cumulative)-1] = 1
	return t, nil
}

// DefaultDropTable returns the built-in distribution.
func DefaultDropTable() *DropTable {
	t, err := NewDropTable(DefaultDropWeights())
	if err != nil {
		panic(err)
	}
	return t
}

// LoadDropTable loads resource drop weights from a YAML file.
func LoadDropTable(path string) (*DropTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resource_drops: %w", err)
	}
	var f dropListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse resource_drops: %w", err)
	}
	t, err := NewDropTable(f.Resources)
	if err != nil {
		return nil, fmt.Errorf("parse resource_drops: %w", err)
	}
	return t, nil
}

// Pick maps a uniform draw u in [0,1) to the first bucket whose cumulative
// weight exceeds u.
func (t *DropTable) Pick(u float64) component.ResourceKind {
	for i, c := range t.cumulative {
		if u < c {
			return t.kinds[i]
		}
	}
	return t.kinds[len(t.kinds)-1]
}

// Roll draws once from src.
func (t *DropTable) Roll(src rng.Source) component.ResourceKind {
	return t.Pick(src.Float64())
}

// Count returns the number of buckets.
func (t *DropTable) Count() int {
	return len(t.kinds)
}
