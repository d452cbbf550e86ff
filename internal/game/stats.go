package game

import "github.com/mitchelldurbincs/war/internal/game/core"

// FactionStats summarizes what one faction holds on the map.
type FactionStats struct {
	Faction     string
	Territories int
	Troops      int
}

// ComputeFactionStats aggregates reg per faction, in the order factions
// first appear in the registry.
func ComputeFactionStats(reg *core.Registry) []FactionStats {
	factions := reg.Factions()
	index := make(map[string]int, len(factions))
	stats := make([]FactionStats, len(factions))
	for i, f := range factions {
		index[f] = i
		stats[i].Faction = f
	}

	for _, t := range reg.Snapshot() {
		s := &stats[index[t.Owner]]
		s.Territories++
		s.Troops += t.Troops
	}
	return stats
}
