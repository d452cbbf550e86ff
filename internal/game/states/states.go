package states

import (
	"fmt"
	"time"
)

// AwaitingActionState waits for the next player action
type AwaitingActionState struct{}

func NewAwaitingActionState() State { return &AwaitingActionState{} }

func (s *AwaitingActionState) Phase() TurnPhase { return PhaseAwaitingAction }

func (s *AwaitingActionState) Enter(ctx *TurnContext) error {
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Awaiting action")
	return nil
}

func (s *AwaitingActionState) Exit(ctx *TurnContext) error { return nil }

func (s *AwaitingActionState) Validate(ctx *TurnContext) error {
	if ctx.Victory {
		return fmt.Errorf("cannot await actions after the mission was fulfilled")
	}
	return nil
}

// ResolvingState covers one combat round
type ResolvingState struct{}

func NewResolvingState() State { return &ResolvingState{} }

func (s *ResolvingState) Phase() TurnPhase { return PhaseResolving }

func (s *ResolvingState) Enter(ctx *TurnContext) error {
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Resolving attack")
	return nil
}

func (s *ResolvingState) Exit(ctx *TurnContext) error { return nil }

func (s *ResolvingState) Validate(ctx *TurnContext) error {
	if ctx.Turn < 1 {
		return fmt.Errorf("resolving requires an accepted action, turn is %d", ctx.Turn)
	}
	return nil
}

// MissionCheckState covers a mission evaluation
type MissionCheckState struct{}

func NewMissionCheckState() State { return &MissionCheckState{} }

func (s *MissionCheckState) Phase() TurnPhase { return PhaseMissionCheck }

func (s *MissionCheckState) Enter(ctx *TurnContext) error {
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Checking mission")
	return nil
}

func (s *MissionCheckState) Exit(ctx *TurnContext) error { return nil }

func (s *MissionCheckState) Validate(ctx *TurnContext) error { return nil }

// TerminatedState is the absorbing end of a session
type TerminatedState struct{}

func NewTerminatedState() State { return &TerminatedState{} }

func (s *TerminatedState) Phase() TurnPhase { return PhaseTerminated }

func (s *TerminatedState) Enter(ctx *TurnContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Bool("victory", ctx.Victory).
		Str("reason", ctx.Reason).
		Int("turns", ctx.Turn).
		Dur("session_duration", ctx.GetElapsedTime()).
		Msg("Session terminated")
	return nil
}

func (s *TerminatedState) Exit(ctx *TurnContext) error {
	return fmt.Errorf("terminated sessions cannot be left")
}

func (s *TerminatedState) Validate(ctx *TurnContext) error {
	if ctx.Reason == "" {
		return fmt.Errorf("termination requires a reason")
	}
	return nil
}
