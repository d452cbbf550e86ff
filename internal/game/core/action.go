package core

// ActionType represents the type of action
type ActionType int

const (
	ActionAttack ActionType = iota
	ActionCheckMission
	ActionQuit
)

func (t ActionType) String() string {
	switch t {
	case ActionAttack:
		return "attack"
	case ActionCheckMission:
		return "check_mission"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Action is one player command handed to the turn controller.
type Action interface {
	GetType() ActionType
	Validate(r *Registry) error
}

// AttackAction attacks Defender from Attacker. Indices are 0-based.
type AttackAction struct {
	Attacker int
	Defender int
}

// CheckMissionAction asks whether the player's mission is fulfilled.
type CheckMissionAction struct{}

// QuitAction ends the session without a victory.
type QuitAction struct{}

func (a *AttackAction) GetType() ActionType       { return ActionAttack }
func (a *CheckMissionAction) GetType() ActionType { return ActionCheckMission }
func (a *QuitAction) GetType() ActionType         { return ActionQuit }

// Validate checks the attack against the current registry: both indices
// in range, distinct, and an attacker with at least one troop.
func (a *AttackAction) Validate(r *Registry) error {
	if a == nil {
		return ErrUnknownAction
	}
	if !r.InBounds(a.Attacker) || !r.InBounds(a.Defender) {
		return ErrOutOfRange
	}
	if a.Attacker == a.Defender {
		return ErrSameTerritory
	}
	if !r.t[a.Attacker].CanAttack() {
		return ErrNoTroopsAvailable
	}
	return nil
}

func (a *CheckMissionAction) Validate(*Registry) error { return nil }
func (a *QuitAction) Validate(*Registry) error         { return nil }
