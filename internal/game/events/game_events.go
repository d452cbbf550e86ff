package events

import (
	"time"

	"github.com/mitchelldurbincs/war/internal/game/combat"
	"github.com/mitchelldurbincs/war/internal/game/core"
)

// Event type constants
const (
	TypeSessionStarted     = "session.started"
	TypeSessionEnded       = "session.ended"
	TypeMissionAssigned    = "mission.assigned"
	TypeActionSubmitted    = "action.submitted"
	TypeActionRejected     = "action.rejected"
	TypeCombatResolved     = "combat.resolved"
	TypeTerritoryConquered = "territory.conquered"
	TypeMissionEvaluated   = "mission.evaluated"
	TypeMissionCompleted   = "mission.completed"
	TypeStateTransition    = "state.transition"
)

// SessionStartedEvent is published once the registry and mission are ready
type SessionStartedEvent struct {
	BaseEvent
	Metadata    EventMetadata
	Territories int
	Bootstrap   string
	Seed        uint64
}

// NewSessionStartedEvent creates a new SessionStartedEvent
func NewSessionStartedEvent(sessionID, faction string, territories int, bootstrap string, seed uint64) *SessionStartedEvent {
	return &SessionStartedEvent{
		BaseEvent:   newBase(TypeSessionStarted, sessionID),
		Metadata:    EventMetadata{Faction: faction},
		Territories: territories,
		Bootstrap:   bootstrap,
		Seed:        seed,
	}
}

// SessionEndedEvent is published when the session reaches Terminated
type SessionEndedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Victory  bool
	Reason   string
	Duration time.Duration
}

// NewSessionEndedEvent creates a new SessionEndedEvent
func NewSessionEndedEvent(sessionID, faction string, turn int, victory bool, reason string, duration time.Duration) *SessionEndedEvent {
	return &SessionEndedEvent{
		BaseEvent: newBase(TypeSessionEnded, sessionID),
		Metadata:  EventMetadata{Turn: turn, Faction: faction},
		Victory:   victory,
		Reason:    reason,
		Duration:  duration,
	}
}

// MissionAssignedEvent is published when the player receives a mission
type MissionAssignedEvent struct {
	BaseEvent
	Metadata    EventMetadata
	Description string
}

// NewMissionAssignedEvent creates a new MissionAssignedEvent
func NewMissionAssignedEvent(sessionID, faction, description string) *MissionAssignedEvent {
	return &MissionAssignedEvent{
		BaseEvent:   newBase(TypeMissionAssigned, sessionID),
		Metadata:    EventMetadata{Faction: faction},
		Description: description,
	}
}

// ActionSubmittedEvent is published for every action the session receives
type ActionSubmittedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Action   core.Action
}

// NewActionSubmittedEvent creates a new ActionSubmittedEvent
func NewActionSubmittedEvent(sessionID string, turn int, action core.Action) *ActionSubmittedEvent {
	return &ActionSubmittedEvent{
		BaseEvent: newBase(TypeActionSubmitted, sessionID),
		Metadata:  EventMetadata{Turn: turn},
		Action:    action,
	}
}

// ActionRejectedEvent is published when validation refuses an action
type ActionRejectedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Action   core.Action
	Reason   string
}

// NewActionRejectedEvent creates a new ActionRejectedEvent
func NewActionRejectedEvent(sessionID string, turn int, action core.Action, err error) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: newBase(TypeActionRejected, sessionID),
		Metadata:  EventMetadata{Turn: turn},
		Action:    action,
		Reason:    err.Error(),
	}
}

// CombatResolvedEvent is published after each battle round
type CombatResolvedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Outcome  combat.BattleOutcome
}

// NewCombatResolvedEvent creates a new CombatResolvedEvent
func NewCombatResolvedEvent(sessionID string, turn int, outcome combat.BattleOutcome) *CombatResolvedEvent {
	return &CombatResolvedEvent{
		BaseEvent: newBase(TypeCombatResolved, sessionID),
		Metadata:  EventMetadata{Turn: turn, Faction: outcome.Attacker.Owner},
		Outcome:   outcome,
	}
}

// TerritoryConqueredEvent is published when a territory changes hands
type TerritoryConqueredEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Index     int
	Territory string
	From      string
	To        string
}

// NewTerritoryConqueredEvent creates a new TerritoryConqueredEvent
func NewTerritoryConqueredEvent(sessionID string, turn int, outcome combat.BattleOutcome) *TerritoryConqueredEvent {
	return &TerritoryConqueredEvent{
		BaseEvent: newBase(TypeTerritoryConquered, sessionID),
		Metadata:  EventMetadata{Turn: turn, Faction: outcome.Defender.Owner},
		Index:     outcome.DefenderIndex,
		Territory: outcome.Defender.Name,
		From:      outcome.PreviousOwner,
		To:        outcome.Defender.Owner,
	}
}

// MissionEvaluatedEvent is published after every mission check
type MissionEvaluatedEvent struct {
	BaseEvent
	Metadata    EventMetadata
	Description string
	Fulfilled   bool
}

// NewMissionEvaluatedEvent creates a new MissionEvaluatedEvent
func NewMissionEvaluatedEvent(sessionID, faction string, turn int, description string, fulfilled bool) *MissionEvaluatedEvent {
	return &MissionEvaluatedEvent{
		BaseEvent:   newBase(TypeMissionEvaluated, sessionID),
		Metadata:    EventMetadata{Turn: turn, Faction: faction},
		Description: description,
		Fulfilled:   fulfilled,
	}
}

// MissionCompletedEvent is published once, the first time a mission holds
type MissionCompletedEvent struct {
	BaseEvent
	Metadata    EventMetadata
	Description string
}

// NewMissionCompletedEvent creates a new MissionCompletedEvent
func NewMissionCompletedEvent(sessionID, faction string, turn int, description string) *MissionCompletedEvent {
	return &MissionCompletedEvent{
		BaseEvent:   newBase(TypeMissionCompleted, sessionID),
		Metadata:    EventMetadata{Turn: turn, Faction: faction},
		Description: description,
	}
}

// StateTransitionEvent is published by the turn state machine
type StateTransitionEvent struct {
	BaseEvent
	FromState string
	ToState   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(sessionID, from, to, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, sessionID),
		FromState: from,
		ToState:   to,
		Reason:    reason,
	}
}
