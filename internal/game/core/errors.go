package core

import "errors"

var (
	ErrOutOfRange         = errors.New("territory index out of range")
	ErrInvalidValue       = errors.New("invalid troop count")
	ErrNoTroopsAvailable  = errors.New("attacking territory has no troops")
	ErrSameTerritory      = errors.New("territory cannot attack itself")
	ErrDuplicateTerritory = errors.New("duplicate territory name")
	ErrEmptyRegistry      = errors.New("registry needs at least one territory")
	ErrUnknownAction      = errors.New("unknown action")
	ErrSessionTerminated  = errors.New("session is terminated")
)
