package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/war/internal/game/combat"
	"github.com/mitchelldurbincs/war/internal/game/core"
	"github.com/mitchelldurbincs/war/internal/game/dice"
	"github.com/mitchelldurbincs/war/internal/game/events"
	"github.com/mitchelldurbincs/war/internal/game/mapgen"
	"github.com/mitchelldurbincs/war/internal/game/processor"
	"github.com/mitchelldurbincs/war/internal/game/rules"
	"github.com/mitchelldurbincs/war/internal/game/states"
	"github.com/rs/zerolog"
)

// BootstrapMode selects how the registry is populated.
type BootstrapMode string

const (
	BootstrapCanonical BootstrapMode = "canonical"
	BootstrapRandom    BootstrapMode = "random"
	BootstrapManual    BootstrapMode = "manual"
)

// ParseBootstrapMode converts a configuration string to a BootstrapMode.
// The empty string selects BootstrapCanonical.
func ParseBootstrapMode(s string) (BootstrapMode, error) {
	switch BootstrapMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", BootstrapCanonical:
		return BootstrapCanonical, nil
	case BootstrapRandom:
		return BootstrapRandom, nil
	case BootstrapManual:
		return BootstrapManual, nil
	default:
		return "", fmt.Errorf("unknown bootstrap mode %q: %w", s, core.ErrInvalidValue)
	}
}

// TerritoryProvider supplies territories entered by hand.
type TerritoryProvider interface {
	ReadTerritories(ctx context.Context, count int, limits core.Limits) ([]core.Territory, error)
}

// SessionConfig holds everything needed to start a session.
type SessionConfig struct {
	SessionID string
	Logger    zerolog.Logger

	// Source drives mission assignment, random maps and combat. When nil
	// a source is seeded from Seed, or from the clock when Seed is 0.
	Source dice.Source
	Seed   uint64

	Bootstrap      BootstrapMode
	Territories    []core.Territory // canonical mode; defaults to core.CanonicalSeed
	TerritoryCount int              // random and manual modes
	NamePool       []string         // random mode; defaults to mapgen.DefaultNamePool
	Provider       TerritoryProvider
	Limits         core.Limits

	PlayerFaction string
	Catalog       rules.MissionCatalog

	// Subscribers are attached to the event bus before the first event.
	Subscribers []events.Subscriber
}

// SessionInitializer handles the multi-step construction of a Session
type SessionInitializer struct {
	config SessionConfig
	logger zerolog.Logger
}

// NewSessionInitializer creates a new session initializer
func NewSessionInitializer(cfg SessionConfig) *SessionInitializer {
	logger := cfg.Logger.With().Str("component", "Session").Logger()
	return &SessionInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize builds the registry, assigns the mission and returns a
// session waiting for its first action. Random draws happen in a fixed
// order: map generation (random mode), mission assignment, then combat.
func (si *SessionInitializer) Initialize(ctx context.Context) (*Session, error) {
	select {
	case <-ctx.Done():
		si.logger.Error().Err(ctx.Err()).Msg("Session creation cancelled before start")
		return nil, ctx.Err()
	default:
	}

	si.setupDefaults()

	reg, err := si.buildRegistry(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap %s: %w", si.config.Bootstrap, err)
	}

	player := &rules.Player{Faction: si.config.Limits.Faction(si.config.PlayerFaction)}
	if reg.CountByFaction(player.Faction) == 0 {
		si.logger.Warn().
			Str("faction", player.Faction).
			Strs("factions", reg.Factions()).
			Msg("Player faction holds no territory")
	}

	session := si.createSession(reg, player)

	session.missions.Assign(player, si.config.Source)

	session.eventBus.Publish(events.NewSessionStartedEvent(
		session.id,
		player.Faction,
		reg.Len(),
		string(si.config.Bootstrap),
		session.seed,
	))
	session.eventBus.Publish(events.NewMissionAssignedEvent(session.id, player.Faction, player.Mission.Description()))

	session.logger.Info().
		Str("bootstrap", string(si.config.Bootstrap)).
		Int("territories", reg.Len()).
		Str("faction", player.Faction).
		Str("mission", player.Mission.Description()).
		Uint64("seed", session.seed).
		Msg("Session created successfully")

	return session, nil
}

// setupDefaults fills in missing configuration
func (si *SessionInitializer) setupDefaults() {
	if si.config.Source == nil {
		if si.config.Seed == 0 {
			si.config.Seed = uint64(time.Now().UnixNano())
		}
		si.logger.Debug().Uint64("seed", si.config.Seed).Msg("No source provided, creating seeded source")
		si.config.Source = dice.NewSource(si.config.Seed)
	}
	if si.config.SessionID == "" {
		si.config.SessionID = uuid.NewString()
	}
	if si.config.Bootstrap == "" {
		si.config.Bootstrap = BootstrapCanonical
	}
	if si.config.Limits == (core.Limits{}) {
		si.config.Limits = core.DefaultLimits()
	}
	if si.config.TerritoryCount <= 0 {
		si.config.TerritoryCount = DefaultTerritoryCount
	}
	if strings.TrimSpace(si.config.PlayerFaction) == "" {
		si.config.PlayerFaction = DefaultPlayerFaction
	}
	if si.config.Catalog.ConquerTarget <= 0 && len(si.config.Catalog.EliminateTargets) == 0 {
		si.config.Catalog = rules.DefaultMissionCatalog()
	}
	si.config.Catalog = si.config.Catalog.Bounded(si.config.Limits)
}

// buildRegistry populates the registry for the configured bootstrap mode
func (si *SessionInitializer) buildRegistry(ctx context.Context) (*core.Registry, error) {
	var territories []core.Territory

	switch si.config.Bootstrap {
	case BootstrapCanonical:
		territories = si.config.Territories
		if len(territories) == 0 {
			territories = core.CanonicalSeed()
		}
	case BootstrapRandom:
		mapCfg := mapgen.DefaultMapConfig(si.config.TerritoryCount)
		if len(si.config.NamePool) > 0 {
			mapCfg.NamePool = si.config.NamePool
		}
		generated, err := mapgen.NewGenerator(mapCfg, si.config.Source).GenerateMap()
		if err != nil {
			return nil, err
		}
		territories = generated
	case BootstrapManual:
		if si.config.Provider == nil {
			return nil, fmt.Errorf("manual bootstrap requires a territory provider: %w", core.ErrInvalidValue)
		}
		entered, err := si.config.Provider.ReadTerritories(ctx, si.config.TerritoryCount, si.config.Limits)
		if err != nil {
			return nil, err
		}
		territories = entered
	default:
		return nil, fmt.Errorf("unknown bootstrap mode %q: %w", si.config.Bootstrap, core.ErrInvalidValue)
	}

	return core.NewRegistry(territories, si.config.Limits)
}

// createSession wires the session components together
func (si *SessionInitializer) createSession(reg *core.Registry, player *rules.Player) *Session {
	id := si.config.SessionID
	logger := si.logger.With().Str("session_id", id).Logger()

	eventBus := events.NewEventBus(logger)
	for _, sub := range si.config.Subscribers {
		eventBus.Subscribe(sub)
	}

	resolver := combat.NewResolver(si.config.Source, logger)
	actionProc := processor.NewActionProcessor(id, resolver, logger)
	actionProc.SetEventPublisher(events.NewEventPublisherAdapter(eventBus))

	turnContext := states.NewTurnContext(id, si.logger)
	stateMachine := states.NewStateMachine(turnContext, eventBus)

	var seed uint64
	if r, ok := si.config.Source.(*dice.Rand); ok {
		seed = r.Seed()
	}

	return &Session{
		id:              id,
		bootstrap:       si.config.Bootstrap,
		seed:            seed,
		registry:        reg,
		player:          player,
		missions:        rules.NewMissionEngine(si.config.Catalog, logger),
		actionProcessor: actionProc,
		legalAttacks:    rules.NewLegalAttackCalculator(),
		stateMachine:    stateMachine,
		eventBus:        eventBus,
		logger:          logger,
	}
}
