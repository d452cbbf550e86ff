package mapgen

import (
	"fmt"

	"github.com/mitchelldurbincs/war/internal/game/core"
	"github.com/mitchelldurbincs/war/internal/game/dice"
)

// MapConfig holds configuration for random map generation
type MapConfig struct {
	TerritoryCount int
	NamePool       []string
	Factions       []string
	MinTroops      int
	MaxTroops      int
}

// DefaultNamePool lists the territory names drawn from by default.
func DefaultNamePool() []string {
	return []string{
		"América", "Europa", "Ásia", "África", "Oceania",
		"Alasca", "Groenlândia", "Brasil", "Sibéria", "Japão",
		"Egito", "Austrália",
	}
}

// DefaultFactions lists the army colors used by default.
func DefaultFactions() []string {
	return []string{"Verde", "Azul", "Vermelho", "Amarelo"}
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(territories int) MapConfig {
	return MapConfig{
		TerritoryCount: territories,
		NamePool:       DefaultNamePool(),
		Factions:       DefaultFactions(),
		MinTroops:      1,
		MaxTroops:      5,
	}
}

// Validate checks that a map can be generated from the configuration.
func (c MapConfig) Validate() error {
	if c.TerritoryCount <= 0 {
		return fmt.Errorf("territory count must be positive, got %d: %w", c.TerritoryCount, core.ErrInvalidValue)
	}
	if c.TerritoryCount > len(c.NamePool) {
		return fmt.Errorf("territory count %d exceeds name pool of %d: %w", c.TerritoryCount, len(c.NamePool), core.ErrInvalidValue)
	}
	if len(c.Factions) == 0 {
		return fmt.Errorf("no factions configured: %w", core.ErrInvalidValue)
	}
	if c.MinTroops < 0 || c.MaxTroops < c.MinTroops {
		return fmt.Errorf("invalid troop range [%d, %d]: %w", c.MinTroops, c.MaxTroops, core.ErrInvalidValue)
	}
	return nil
}

// Generator handles map generation with a deterministic source
type Generator struct {
	config MapConfig
	src    dice.Source
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, src dice.Source) *Generator {
	return &Generator{
		config: config,
		src:    src,
	}
}

// GenerateMap draws TerritoryCount distinct names from the pool and deals
// them out to the factions in turn, so every faction holds a territory
// when there are enough of them. Troops are uniform in [MinTroops, MaxTroops].
func (g *Generator) GenerateMap() ([]core.Territory, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	names := g.shuffled(g.config.NamePool)[:g.config.TerritoryCount]
	factions := g.shuffled(g.config.Factions)

	territories := make([]core.Territory, len(names))
	for i, name := range names {
		territories[i] = core.Territory{
			Name:   name,
			Owner:  factions[i%len(factions)],
			Troops: g.troops(),
		}
	}
	return territories, nil
}

// shuffled returns a Fisher-Yates permutation of in; in is left untouched.
func (g *Generator) shuffled(in []string) []string {
	out := append([]string(nil), in...)
	for i := len(out) - 1; i > 0; i-- {
		j := g.src.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (g *Generator) troops() int {
	span := g.config.MaxTroops - g.config.MinTroops
	if span == 0 {
		return g.config.MinTroops
	}
	return g.config.MinTroops + g.src.Intn(span+1)
}
