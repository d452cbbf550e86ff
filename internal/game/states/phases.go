package states

import "fmt"

// TurnPhase is where the turn controller stands in the current cycle.
type TurnPhase int

const (
	// PhaseAwaitingAction - waiting for the next player action
	PhaseAwaitingAction TurnPhase = iota

	// PhaseResolving - a validated attack is being fought
	PhaseResolving

	// PhaseMissionCheck - the mission engine is evaluating the player's mission
	PhaseMissionCheck

	// PhaseTerminated - the session is over, by victory or quit
	PhaseTerminated
)

func (p TurnPhase) String() string {
	switch p {
	case PhaseAwaitingAction:
		return "AwaitingAction"
	case PhaseResolving:
		return "Resolving"
	case PhaseMissionCheck:
		return "MissionCheck"
	case PhaseTerminated:
		return "Terminated"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if no transition leaves the phase
func (p TurnPhase) IsTerminal() bool {
	return p == PhaseTerminated
}

// CanReceiveActions returns true if the session accepts a new action in this phase
func (p TurnPhase) CanReceiveActions() bool {
	return p == PhaseAwaitingAction
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p TurnPhase) AllowedTransitions() []TurnPhase {
	switch p {
	case PhaseAwaitingAction:
		return []TurnPhase{PhaseResolving, PhaseMissionCheck, PhaseTerminated}
	case PhaseResolving:
		return []TurnPhase{PhaseMissionCheck}
	case PhaseMissionCheck:
		return []TurnPhase{PhaseAwaitingAction, PhaseTerminated}
	default:
		return []TurnPhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p TurnPhase) CanTransitionTo(target TurnPhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a TurnPhase.
func ParsePhase(s string) (TurnPhase, error) {
	for _, p := range []TurnPhase{PhaseAwaitingAction, PhaseResolving, PhaseMissionCheck, PhaseTerminated} {
		if p.String() == s {
			return p, nil
		}
	}
	return PhaseAwaitingAction, fmt.Errorf("unknown turn phase %q", s)
}
