// Package combat resolves a single one-die-per-side battle round between
// two territories and applies its result to the registry.
package combat

import (
	"fmt"

	"github.com/mitchelldurbincs/war/internal/game/core"
	"github.com/mitchelldurbincs/war/internal/game/dice"
	"github.com/rs/zerolog"
)

// Side identifies who won a round.
type Side int

const (
	SideAttacker Side = iota
	SideDefender
)

func (s Side) String() string {
	if s == SideAttacker {
		return "attacker"
	}
	return "defender"
}

// BattleOutcome describes one resolved round. The territory snapshots are
// taken after the round so a renderer never has to re-read the registry.
type BattleOutcome struct {
	AttackerIndex int
	DefenderIndex int
	AttackerDie   int
	DefenderDie   int
	Winner        Side
	Conquered     bool
	// PreviousOwner is the defender's owner before the round.
	PreviousOwner string
	Attacker      core.Territory
	Defender      core.Territory
}

// AttackerWon reports whether the attacker took the round.
func (o BattleOutcome) AttackerWon() bool { return o.Winner == SideAttacker }

// Resolver applies battle rounds using a shared dice source.
type Resolver struct {
	src    dice.Source
	logger zerolog.Logger
}

// NewResolver creates a resolver drawing from src.
func NewResolver(src dice.Source, logger zerolog.Logger) *Resolver {
	return &Resolver{
		src:    src,
		logger: logger.With().Str("component", "CombatResolver").Logger(),
	}
}

// Resolve fights one round of attackerIdx against defenderIdx.
//
// The caller guarantees distinct, in-range indices and an attacker with
// troops; Resolve does not repeat that validation. The attacker die is
// drawn first, then the defender die. Ties go to the attacker. A win
// removes one defending troop; a defender brought to zero changes hands
// and keeps a single occupying troop. Losing a round costs the attacker
// nothing.
func (r *Resolver) Resolve(reg *core.Registry, attackerIdx, defenderIdx int) (BattleOutcome, error) {
	attacker, err := reg.Get(attackerIdx)
	if err != nil {
		return BattleOutcome{}, fmt.Errorf("attacker: %w", err)
	}
	defender, err := reg.Get(defenderIdx)
	if err != nil {
		return BattleOutcome{}, fmt.Errorf("defender: %w", err)
	}

	out := BattleOutcome{
		AttackerIndex: attackerIdx,
		DefenderIndex: defenderIdx,
		AttackerDie:   r.src.Roll(),
		DefenderDie:   r.src.Roll(),
		PreviousOwner: defender.Owner,
	}

	if out.AttackerDie >= out.DefenderDie {
		out.Winner = SideAttacker
		out.Conquered, err = r.applyHit(reg, defenderIdx, defender, attacker.Owner)
		if err != nil {
			return BattleOutcome{}, err
		}
	} else {
		out.Winner = SideDefender
	}

	// Snapshots reflect post-round state.
	out.Attacker, _ = reg.Get(attackerIdx)
	out.Defender, _ = reg.Get(defenderIdx)

	r.logger.Debug().
		Int("attacker", attackerIdx).
		Int("defender", defenderIdx).
		Int("attacker_die", out.AttackerDie).
		Int("defender_die", out.DefenderDie).
		Str("winner", out.Winner.String()).
		Bool("conquered", out.Conquered).
		Msg("Battle round resolved")

	return out, nil
}

// applyHit removes one defending troop and performs the conquest when the
// territory empties. Owner and troops are written back to back with no
// observer in between, so the registry is never seen at zero troops under
// the old owner.
func (r *Resolver) applyHit(reg *core.Registry, idx int, defender core.Territory, conqueror string) (bool, error) {
	remaining := defender.Troops - 1
	if remaining > 0 {
		return false, reg.SetTroops(idx, remaining)
	}

	if err := reg.SetOwner(idx, conqueror); err != nil {
		return false, err
	}
	if err := reg.SetTroops(idx, 1); err != nil {
		return false, err
	}
	r.logger.Info().
		Str("territory", defender.Name).
		Str("from", defender.Owner).
		Str("to", conqueror).
		Msg("Territory conquered")
	return true, nil
}
