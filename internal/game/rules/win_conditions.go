package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/war/internal/game/core"
	"github.com/mitchelldurbincs/war/internal/game/dice"
	"github.com/rs/zerolog"
)

// MissionCatalog parameterizes the missions that can be drawn.
type MissionCatalog struct {
	ConquerTarget    int
	EliminateTargets []string
}

// DefaultMissionCatalog is the two-mission set of the classic game.
func DefaultMissionCatalog() MissionCatalog {
	return MissionCatalog{ConquerTarget: 3, EliminateTargets: []string{"Verde"}}
}

// Bounded returns a copy of the catalog whose elimination targets are cut
// to the faction limit, so they compare equal to registry owners.
func (c MissionCatalog) Bounded(limits core.Limits) MissionCatalog {
	out := MissionCatalog{
		ConquerTarget:    c.ConquerTarget,
		EliminateTargets: make([]string, 0, len(c.EliminateTargets)),
	}
	for _, target := range c.EliminateTargets {
		if target = limits.Faction(target); target != "" {
			out.EliminateTargets = append(out.EliminateTargets, target)
		}
	}
	return out
}

// MissionEngine assigns missions and decides whether they are fulfilled.
type MissionEngine struct {
	catalog MissionCatalog
	logger  zerolog.Logger
}

// NewMissionEngine creates a mission engine for catalog.
func NewMissionEngine(catalog MissionCatalog, logger zerolog.Logger) *MissionEngine {
	return &MissionEngine{
		catalog: catalog,
		logger:  logger.With().Str("component", "MissionEngine").Logger(),
	}
}

// Candidates lists the conditions player can be given. Elimination targets
// equal to the player's own faction are skipped.
func (me *MissionEngine) Candidates(player *Player) []Condition {
	out := []Condition{ConquerTerritories{N: me.catalog.ConquerTarget}}
	for _, target := range me.catalog.EliminateTargets {
		if target == player.Faction {
			continue
		}
		out = append(out, EliminateFaction{Faction: target})
	}
	return out
}

// Assign draws one candidate uniformly with a single Intn call, stores it
// on player and returns it.
func (me *MissionEngine) Assign(player *Player, src dice.Source) Mission {
	candidates := me.Candidates(player)
	m := NewMission(candidates[src.Intn(len(candidates))])
	player.Mission = m

	me.logger.Info().
		Str("faction", player.Faction).
		Str("mission", m.Description()).
		Int("candidates", len(candidates)).
		Msg("Mission assigned")
	return m
}

// Evaluate reports whether player's mission holds on reg. The first true
// result marks the mission complete; later calls return true without
// touching it again.
func (me *MissionEngine) Evaluate(reg *core.Registry, player *Player) bool {
	if player.Mission.completed {
		return true
	}

	if !satisfied(reg, player) {
		me.logger.Debug().
			Str("faction", player.Faction).
			Str("mission", player.Mission.Description()).
			Msg("Mission not yet fulfilled")
		return false
	}

	player.Mission.completed = true
	me.logger.Info().
		Str("faction", player.Faction).
		Str("mission", player.Mission.Description()).
		Msg("Mission fulfilled")
	return true
}

// Progress describes how far player is from the goal without changing the
// completion flag.
func (me *MissionEngine) Progress(reg *core.Registry, player *Player) MissionReport {
	report := MissionReport{
		Description: player.Mission.Description(),
		Condition:   player.Mission.condition,
		Completed:   player.Mission.completed,
	}
	switch c := player.Mission.condition.(type) {
	case ConquerTerritories:
		report.Current = reg.CountByFaction(player.Faction)
		report.Target = c.N
	case EliminateFaction:
		report.Current = reg.CountByFaction(c.Faction)
		report.Target = 0
	default:
		panic(unknownCondition(c))
	}
	return report
}

func satisfied(reg *core.Registry, player *Player) bool {
	switch c := player.Mission.condition.(type) {
	case ConquerTerritories:
		return reg.CountByFaction(player.Faction) >= c.N
	case EliminateFaction:
		return !reg.FactionStillPresent(c.Faction)
	default:
		panic(unknownCondition(c))
	}
}

func unknownCondition(c Condition) string {
	return fmt.Sprintf("rules: unknown mission condition %T", c)
}
