package rules

import "fmt"

// Condition is a mission's victory condition. The set is closed: only
// ConquerTerritories and EliminateFaction implement it.
type Condition interface {
	// Description is a human readable summary; it depends only on the
	// condition's fields.
	Description() string
	isCondition()
}

// ConquerTerritories is fulfilled when the player holds at least N
// territories.
type ConquerTerritories struct {
	N int
}

// EliminateFaction is fulfilled when Faction holds no territory.
type EliminateFaction struct {
	Faction string
}

func (c ConquerTerritories) Description() string {
	return fmt.Sprintf("Conquer %d territories", c.N)
}

func (c EliminateFaction) Description() string {
	return fmt.Sprintf("Eliminate the %s army", c.Faction)
}

func (ConquerTerritories) isCondition() {}
func (EliminateFaction) isCondition()   {}

// Mission binds a condition to its completion flag. The condition never
// changes once assigned and the flag only ever goes from false to true.
type Mission struct {
	condition Condition
	completed bool
}

// NewMission creates an incomplete mission for c.
func NewMission(c Condition) Mission {
	return Mission{condition: c}
}

func (m Mission) Condition() Condition { return m.condition }
func (m Mission) Completed() bool      { return m.completed }

// Description returns the condition's description, or an empty string for
// a mission that was never assigned.
func (m Mission) Description() string {
	if m.condition == nil {
		return ""
	}
	return m.condition.Description()
}

// Player is the single local player: a faction label and its mission.
type Player struct {
	Faction string
	Mission Mission
}

// MissionReport is a read-only view of a mission's progress.
type MissionReport struct {
	Description string
	Condition   Condition
	Completed   bool
	// Current and Target express progress: territories held against the
	// goal for ConquerTerritories, territories left against zero for
	// EliminateFaction.
	Current int
	Target  int
}
