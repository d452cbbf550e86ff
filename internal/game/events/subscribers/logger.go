package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/war/internal/game/core"
	"github.com/mitchelldurbincs/war/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string { return ls.id }

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("session_id", event.SessionID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	logEvent := eventLogger.WithLevel(ls.logLevel)
	if ls.logLevel == zerolog.NoLevel {
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.SessionStartedEvent:
		logEvent.
			Str("faction", e.Metadata.Faction).
			Int("territories", e.Territories).
			Str("bootstrap", e.Bootstrap).
			Uint64("seed", e.Seed)

	case *events.SessionEndedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Bool("victory", e.Victory).
			Str("reason", e.Reason).
			Dur("duration", e.Duration)

	case *events.MissionAssignedEvent:
		logEvent.
			Str("faction", e.Metadata.Faction).
			Str("mission", e.Description)

	case *events.ActionSubmittedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("action_type", e.Action.GetType().String())
		if a, ok := e.Action.(*core.AttackAction); ok {
			logEvent.Int("attacker", a.Attacker).Int("defender", a.Defender)
		}

	case *events.ActionRejectedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("action_type", e.Action.GetType().String()).
			Str("reason", e.Reason)

	case *events.CombatResolvedEvent:
		o := e.Outcome
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("attacker", o.Attacker.Name).
			Str("defender", o.Defender.Name).
			Int("attacker_die", o.AttackerDie).
			Int("defender_die", o.DefenderDie).
			Str("winner", o.Winner.String()).
			Int("defender_troops", o.Defender.Troops).
			Bool("conquered", o.Conquered)

	case *events.TerritoryConqueredEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("territory", e.Territory).
			Str("from", e.From).
			Str("to", e.To)

	case *events.MissionEvaluatedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("mission", e.Description).
			Bool("fulfilled", e.Fulfilled)

	case *events.MissionCompletedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("faction", e.Metadata.Faction).
			Str("mission", e.Description)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.FromState).
			Str("to", e.ToState).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Session event")
}
