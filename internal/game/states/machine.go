package states

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/war/internal/game/events"
)

// State represents a turn phase with lifecycle callbacks
type State interface {
	// Phase returns the TurnPhase this state represents
	Phase() TurnPhase

	// Enter is called when transitioning into this state
	Enter(ctx *TurnContext) error

	// Exit is called when transitioning out of this state
	Exit(ctx *TurnContext) error

	// Validate checks if the state is valid given the context
	Validate(ctx *TurnContext) error
}

// Transition represents a state transition in the history
type Transition struct {
	From      TurnPhase
	To        TurnPhase
	Timestamp time.Time
	Reason    string
}

// StateMachine drives a session through its turn phases. It is owned by
// one session and used from a single goroutine.
type StateMachine struct {
	currentPhase   TurnPhase
	states         map[TurnPhase]State
	context        *TurnContext
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
}

// NewStateMachine creates a state machine in PhaseAwaitingAction.
// publisher may be nil.
func NewStateMachine(ctx *TurnContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase:   PhaseAwaitingAction,
		states:         make(map[TurnPhase]State),
		context:        ctx,
		history:        make([]Transition, 0, 64),
		maxHistorySize: 1000,
		publisher:      publisher,
	}

	sm.RegisterState(NewAwaitingActionState())
	sm.RegisterState(NewResolvingState())
	sm.RegisterState(NewMissionCheckState())
	sm.RegisterState(NewTerminatedState())

	return sm
}

// RegisterState registers a state implementation
func (sm *StateMachine) RegisterState(state State) {
	sm.states[state.Phase()] = state
}

// CurrentPhase returns the current turn phase
func (sm *StateMachine) CurrentPhase() TurnPhase {
	return sm.currentPhase
}

// TransitionTo attempts to transition to the specified phase
func (sm *StateMachine) TransitionTo(targetPhase TurnPhase, reason string) error {
	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return fmt.Errorf("invalid transition from %s to %s", sm.currentPhase, targetPhase)
	}

	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]
	if !hasTargetState {
		return fmt.Errorf("no state implementation for phase %s", targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return fmt.Errorf("target state validation failed: %w", err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
		}
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase

	if err := targetState.Enter(sm.context); err != nil {
		// Rollback on enter failure
		sm.currentPhase = previousPhase
		return fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	sm.addToHistory(Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	if sm.publisher != nil {
		sm.publisher.Publish(events.NewStateTransitionEvent(
			sm.context.SessionID,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.context.Logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

// addToHistory adds a transition to the history, maintaining max size
func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)
	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// GetContext returns the turn context
func (sm *StateMachine) GetContext() *TurnContext {
	return sm.context
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(targetPhase TurnPhase) bool {
	return sm.currentPhase.CanTransitionTo(targetPhase)
}
