package game

import (
	"context"
	"fmt"

	"github.com/mitchelldurbincs/war/internal/game/combat"
	"github.com/mitchelldurbincs/war/internal/game/core"
	"github.com/mitchelldurbincs/war/internal/game/events"
	"github.com/mitchelldurbincs/war/internal/game/processor"
	"github.com/mitchelldurbincs/war/internal/game/rules"
	"github.com/mitchelldurbincs/war/internal/game/states"
	"github.com/rs/zerolog"
)

// TurnResult describes what one submitted action did.
type TurnResult struct {
	Turn       int
	Action     core.Action
	Battle     *combat.BattleOutcome
	Mission    *rules.MissionReport
	Phase      states.TurnPhase
	Victory    bool
	Terminated bool
}

// Session is one single-player game: the registry it owns, the player and
// mission, and the turn state machine driving them. It is not safe for
// concurrent use; one action runs to completion before the next.
type Session struct {
	id        string
	bootstrap BootstrapMode
	seed      uint64

	registry        *core.Registry
	player          *rules.Player
	missions        *rules.MissionEngine
	actionProcessor *processor.ActionProcessor
	legalAttacks    *rules.LegalAttackCalculator
	stateMachine    *states.StateMachine
	eventBus        *events.EventBus
	logger          zerolog.Logger
}

// Submit runs action to completion.
//
// A rejected action returns the wrapped validation error and leaves the
// registry, turn counter and phase untouched. Once the session has
// terminated every action is refused with core.ErrSessionTerminated.
func (s *Session) Submit(ctx context.Context, action core.Action) (TurnResult, error) {
	if s.IsTerminated() {
		return s.result(action), core.WrapActionError(action, core.ErrSessionTerminated)
	}
	if err := ctx.Err(); err != nil {
		return s.result(action), err
	}

	if err := s.actionProcessor.Validate(ctx, s.registry, action, s.Turn()+1); err != nil {
		return s.result(action), err
	}

	tc := s.stateMachine.GetContext()
	tc.Turn++
	s.eventBus.Publish(events.NewActionSubmittedEvent(s.id, tc.Turn, action))

	s.logger.Debug().
		Int("turn", tc.Turn).
		Str("action", action.GetType().String()).
		Msg("Processing action")

	switch act := action.(type) {
	case *core.AttackAction:
		return s.attack(act)
	case *core.CheckMissionAction:
		if err := s.transition(states.PhaseMissionCheck, "mission check requested"); err != nil {
			return s.result(action), err
		}
		return s.checkMission(action)
	case *core.QuitAction:
		tc.Reason = ReasonQuit
		if err := s.transition(states.PhaseTerminated, "player quit"); err != nil {
			return s.result(action), err
		}
		s.publishEnded()
		return s.result(action), nil
	default:
		// Validate already refuses anything else.
		return s.result(action), core.WrapActionError(action, core.ErrUnknownAction)
	}
}

func (s *Session) attack(act *core.AttackAction) (TurnResult, error) {
	if err := s.transition(states.PhaseResolving, "attack accepted"); err != nil {
		return s.result(act), err
	}

	outcome, err := s.actionProcessor.ExecuteAttack(s.registry, act, s.Turn())
	if err != nil {
		// The resolver fails before mutating anything; hand the turn back.
		if terr := s.transition(states.PhaseMissionCheck, "attack failed"); terr == nil {
			if terr := s.transition(states.PhaseAwaitingAction, "attack failed"); terr != nil {
				s.logger.Error().Err(terr).Msg("Could not hand the turn back after a failed attack")
			}
		}
		return s.result(act), err
	}

	if err := s.transition(states.PhaseMissionCheck, "combat resolved"); err != nil {
		return s.result(act), err
	}
	res, err := s.checkMission(act)
	res.Battle = &outcome
	return res, err
}

// checkMission evaluates the mission and leaves MissionCheck: to
// Terminated on victory, back to AwaitingAction otherwise.
func (s *Session) checkMission(action core.Action) (TurnResult, error) {
	tc := s.stateMachine.GetContext()
	wasCompleted := s.player.Mission.Completed()

	fulfilled := s.missions.Evaluate(s.registry, s.player)
	report := s.missions.Progress(s.registry, s.player)

	s.eventBus.Publish(events.NewMissionEvaluatedEvent(s.id, s.player.Faction, tc.Turn, report.Description, fulfilled))
	if fulfilled && !wasCompleted {
		s.eventBus.Publish(events.NewMissionCompletedEvent(s.id, s.player.Faction, tc.Turn, report.Description))
	}

	if fulfilled {
		tc.Victory = true
		tc.Reason = ReasonMissionFulfilled
		if err := s.transition(states.PhaseTerminated, "mission fulfilled"); err != nil {
			return s.result(action), err
		}
		s.publishEnded()
	} else if err := s.transition(states.PhaseAwaitingAction, "mission pending"); err != nil {
		return s.result(action), err
	}

	res := s.result(action)
	res.Mission = &report
	return res, nil
}

func (s *Session) transition(phase states.TurnPhase, reason string) error {
	if err := s.stateMachine.TransitionTo(phase, reason); err != nil {
		s.logger.Error().Err(err).Str("to_phase", phase.String()).Msg("State transition failed")
		return core.WrapSessionError(s.Turn(), s.Phase().String(), err)
	}
	return nil
}

func (s *Session) publishEnded() {
	tc := s.stateMachine.GetContext()
	s.eventBus.Publish(events.NewSessionEndedEvent(
		s.id, s.player.Faction, tc.Turn, tc.Victory, tc.Reason, tc.GetElapsedTime(),
	))
}

func (s *Session) result(action core.Action) TurnResult {
	return TurnResult{
		Turn:       s.Turn(),
		Action:     action,
		Phase:      s.Phase(),
		Victory:    s.Victory(),
		Terminated: s.IsTerminated(),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Bootstrap returns the mode the registry was populated with.
func (s *Session) Bootstrap() BootstrapMode { return s.bootstrap }

// Seed returns the seed of the session's dice source, or 0 when an
// external source was supplied.
func (s *Session) Seed() uint64 { return s.seed }

// Phase returns the current turn phase.
func (s *Session) Phase() states.TurnPhase { return s.stateMachine.CurrentPhase() }

// Turn returns how many actions have been accepted.
func (s *Session) Turn() int { return s.stateMachine.GetContext().Turn }

// IsTerminated reports whether the session has ended.
func (s *Session) IsTerminated() bool { return s.Phase().IsTerminal() }

// Victory reports whether the mission was fulfilled.
func (s *Session) Victory() bool { return s.stateMachine.GetContext().Victory }

// Reason explains why the session ended; empty while it is running.
func (s *Session) Reason() string { return s.stateMachine.GetContext().Reason }

// Registry returns a copy of the territory registry.
func (s *Session) Registry() *core.Registry { return s.registry.Clone() }

// Territories returns a copy of every territory in registry order.
func (s *Session) Territories() []core.Territory { return s.registry.Snapshot() }

// Player returns a copy of the player and its mission.
func (s *Session) Player() rules.Player { return *s.player }

// MissionProgress reports how close the player is to the mission goal.
func (s *Session) MissionProgress() rules.MissionReport {
	return s.missions.Progress(s.registry, s.player)
}

// Stats returns territory and troop totals per faction.
func (s *Session) Stats() []FactionStats { return ComputeFactionStats(s.registry) }

// History returns the phase transitions the session went through.
func (s *Session) History() []states.Transition { return s.stateMachine.GetHistory() }

// LegalAttacks lists every attack Submit would accept right now.
func (s *Session) LegalAttacks() []core.AttackAction {
	if s.IsTerminated() {
		return nil
	}
	return s.legalAttacks.LegalAttacks(s.registry)
}

// HostileAttacks lists the legal attacks from the player's territories
// against territories held by other factions.
func (s *Session) HostileAttacks() []core.AttackAction {
	if s.IsTerminated() {
		return nil
	}
	return s.legalAttacks.HostileAttacks(s.registry, s.player.Faction)
}

// EventBus returns the bus session events are published on.
func (s *Session) EventBus() events.Bus { return s.eventBus }

// String renders a one-line summary for logs.
func (s *Session) String() string {
	return fmt.Sprintf("session %s turn %d (%s)", s.id, s.Turn(), s.Phase())
}
