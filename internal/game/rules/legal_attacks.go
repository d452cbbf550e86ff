package rules

import "github.com/mitchelldurbincs/war/internal/game/core"

// LegalAttackCalculator lists the attacks the turn controller would accept.
type LegalAttackCalculator struct{}

// NewLegalAttackCalculator creates a new legal attack calculator
func NewLegalAttackCalculator() *LegalAttackCalculator {
	return &LegalAttackCalculator{}
}

// LegalAttacks returns every valid attack on reg, ordered by attacker then
// defender index.
func (lac *LegalAttackCalculator) LegalAttacks(reg *core.Registry) []core.AttackAction {
	var out []core.AttackAction
	for a := 0; a < reg.Len(); a++ {
		for d := 0; d < reg.Len(); d++ {
			attack := core.AttackAction{Attacker: a, Defender: d}
			if attack.Validate(reg) == nil {
				out = append(out, attack)
			}
		}
	}
	return out
}

// HostileAttacks narrows LegalAttacks to attacks launched by faction
// against territories it does not own.
func (lac *LegalAttackCalculator) HostileAttacks(reg *core.Registry, faction string) []core.AttackAction {
	snap := reg.Snapshot()
	var out []core.AttackAction
	for _, attack := range lac.LegalAttacks(reg) {
		if snap[attack.Attacker].OwnedBy(faction) && !snap[attack.Defender].OwnedBy(faction) {
			out = append(out, attack)
		}
	}
	return out
}
