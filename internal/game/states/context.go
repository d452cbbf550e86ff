package states

import (
	"time"

	"github.com/rs/zerolog"
)

// TurnContext is the information states read and update while the session
// moves through its phases.
type TurnContext struct {
	// SessionID uniquely identifies this session
	SessionID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// Turn counts accepted actions, starting at 1 for the first one
	Turn int

	// StartTime is when the session was created
	StartTime time.Time

	// EndTime is when the session reached PhaseTerminated
	EndTime time.Time

	// Victory is set when the mission was fulfilled
	Victory bool

	// Reason explains why the session terminated
	Reason string
}

// NewTurnContext creates a new turn context
func NewTurnContext(sessionID string, logger zerolog.Logger) *TurnContext {
	return &TurnContext{
		SessionID: sessionID,
		Logger:    logger.With().Str("session_id", sessionID).Logger(),
		StartTime: time.Now(),
	}
}

// GetElapsedTime returns how long the session has run, or ran if it ended.
func (tc *TurnContext) GetElapsedTime() time.Duration {
	if tc.StartTime.IsZero() {
		return 0
	}
	if !tc.EndTime.IsZero() {
		return tc.EndTime.Sub(tc.StartTime)
	}
	return time.Since(tc.StartTime)
}
