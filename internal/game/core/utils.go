package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// WrapActionError adds the action's context to err. A nil err stays nil.
func WrapActionError(action Action, err error) error {
	if err == nil {
		return nil
	}
	switch a := action.(type) {
	case *AttackAction:
		if a == nil {
			return fmt.Errorf("attack: %w", err)
		}
		return fmt.Errorf("attack from %d to %d: %w", a.Attacker, a.Defender, err)
	case *CheckMissionAction:
		return fmt.Errorf("check mission: %w", err)
	case *QuitAction:
		return fmt.Errorf("quit: %w", err)
	default:
		return fmt.Errorf("player action: %w", err)
	}
}

// WrapSessionError adds the turn number and phase to err.
func WrapSessionError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("turn %d (%s): %w", turn, phase, err)
}

// GetActionType returns the dynamic type name of an action, for logs.
func GetActionType(action Action) string {
	if action == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", action)
}

// Truncate trims surrounding whitespace and cuts s to at most max runes.
// A max of zero or less leaves the trimmed string untouched.
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max]))
}
