package processor

import (
	"context"

	"github.com/mitchelldurbincs/war/internal/game/combat"
	"github.com/mitchelldurbincs/war/internal/game/core"
	"github.com/mitchelldurbincs/war/internal/game/events"
	"github.com/rs/zerolog"
)

// EventPublisher receives the events the processor emits.
type EventPublisher interface {
	Publish(event interface{})
}

// Resolver fights one battle round.
type Resolver interface {
	Resolve(reg *core.Registry, attackerIdx, defenderIdx int) (combat.BattleOutcome, error)
}

// ActionProcessor validates player actions and executes attacks.
type ActionProcessor struct {
	sessionID string
	resolver  Resolver
	publisher EventPublisher
	logger    zerolog.Logger
}

// NewActionProcessor creates a new action processor
func NewActionProcessor(sessionID string, resolver Resolver, logger zerolog.Logger) *ActionProcessor {
	return &ActionProcessor{
		sessionID: sessionID,
		resolver:  resolver,
		logger:    logger.With().Str("component", "ActionProcessor").Logger(),
	}
}

// SetEventPublisher sets where rejection and combat events go.
func (ap *ActionProcessor) SetEventPublisher(p EventPublisher) {
	ap.publisher = p
}

func (ap *ActionProcessor) publish(e events.Event) {
	if ap.publisher != nil {
		ap.publisher.Publish(e)
	}
}

// Validate checks action against reg. A refused action is logged,
// published as action.rejected and returned wrapped with its context;
// nothing is mutated either way.
func (ap *ActionProcessor) Validate(ctx context.Context, reg *core.Registry, action core.Action, turn int) error {
	if err := ctx.Err(); err != nil {
		ap.logger.Warn().Err(err).Msg("Action validation skipped, context done")
		return err
	}

	if action == nil {
		return ap.reject(action, turn, core.ErrUnknownAction)
	}
	switch action.(type) {
	case *core.AttackAction, *core.CheckMissionAction, *core.QuitAction:
	default:
		return ap.reject(action, turn, core.ErrUnknownAction)
	}

	if err := action.Validate(reg); err != nil {
		return ap.reject(action, turn, err)
	}
	return nil
}

func (ap *ActionProcessor) reject(action core.Action, turn int, err error) error {
	wrapped := core.WrapActionError(action, err)
	ap.logger.Warn().
		Err(wrapped).
		Int("turn", turn).
		Str("action_type", core.GetActionType(action)).
		Msg("Action rejected")
	if action != nil {
		ap.publish(events.NewActionRejectedEvent(ap.sessionID, turn, action, wrapped))
	}
	return wrapped
}

// ExecuteAttack resolves a validated attack and publishes its outcome.
func (ap *ActionProcessor) ExecuteAttack(reg *core.Registry, attack *core.AttackAction, turn int) (combat.BattleOutcome, error) {
	ap.logger.Debug().
		Int("attacker", attack.Attacker).
		Int("defender", attack.Defender).
		Int("turn", turn).
		Msg("Applying attack")

	outcome, err := ap.resolver.Resolve(reg, attack.Attacker, attack.Defender)
	if err != nil {
		wrapped := core.WrapActionError(attack, err)
		ap.logger.Error().Err(wrapped).Msg("Failed to resolve attack")
		return combat.BattleOutcome{}, wrapped
	}

	ap.publish(events.NewCombatResolvedEvent(ap.sessionID, turn, outcome))
	if outcome.Conquered {
		ap.publish(events.NewTerritoryConqueredEvent(ap.sessionID, turn, outcome))
	}
	return outcome, nil
}
