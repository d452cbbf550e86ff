package core

import "fmt"

// Registry holds the fixed, ordered set of territories of one session.
// Its size never changes after construction. It is not safe for
// concurrent use; the owning session serializes access.
type Registry struct {
	limits Limits
	t      []Territory
}

// NewRegistry validates and copies territories into a new registry.
// Names and faction labels are bounded by limits before the uniqueness
// check, so two names that only differ past the limit collide.
func NewRegistry(territories []Territory, limits Limits) (*Registry, error) {
	if len(territories) == 0 {
		return nil, ErrEmptyRegistry
	}

	r := &Registry{limits: limits, t: make([]Territory, len(territories))}
	seen := make(map[string]int, len(territories))
	for i, t := range territories {
		t = limits.Apply(t)
		if t.Troops < 0 {
			return nil, fmt.Errorf("territory %d (%s): %w", i, t.Name, ErrInvalidValue)
		}
		if prev, ok := seen[t.Name]; ok {
			return nil, fmt.Errorf("territories %d and %d are both named %q: %w", prev, i, t.Name, ErrDuplicateTerritory)
		}
		seen[t.Name] = i
		r.t[i] = t
	}
	return r, nil
}

// Len returns the number of territories.
func (r *Registry) Len() int { return len(r.t) }

// Limits returns the text limits the registry applies.
func (r *Registry) Limits() Limits { return r.limits }

// InBounds reports whether idx addresses a territory.
func (r *Registry) InBounds(idx int) bool {
	return idx >= 0 && idx < len(r.t)
}

// Get returns a copy of the territory at idx.
func (r *Registry) Get(idx int) (Territory, error) {
	if !r.InBounds(idx) {
		return Territory{}, fmt.Errorf("index %d of %d: %w", idx, len(r.t), ErrOutOfRange)
	}
	return r.t[idx], nil
}

// SetOwner hands the territory at idx to faction.
func (r *Registry) SetOwner(idx int, faction string) error {
	if !r.InBounds(idx) {
		return fmt.Errorf("index %d of %d: %w", idx, len(r.t), ErrOutOfRange)
	}
	r.t[idx].Owner = r.limits.Faction(faction)
	return nil
}

// SetTroops sets the troop count at idx. Negative values are rejected and
// leave the territory unchanged.
func (r *Registry) SetTroops(idx int, value int) error {
	if !r.InBounds(idx) {
		return fmt.Errorf("index %d of %d: %w", idx, len(r.t), ErrOutOfRange)
	}
	if value < 0 {
		return fmt.Errorf("troops %d for %s: %w", value, r.t[idx].Name, ErrInvalidValue)
	}
	r.t[idx].Troops = value
	return nil
}

// CountByFaction returns how many territories faction owns.
func (r *Registry) CountByFaction(faction string) int {
	n := 0
	for _, t := range r.t {
		if t.OwnedBy(faction) {
			n++
		}
	}
	return n
}

// FactionStillPresent reports whether faction owns at least one territory.
func (r *Registry) FactionStillPresent(faction string) bool {
	for _, t := range r.t {
		if t.OwnedBy(faction) {
			return true
		}
	}
	return false
}

// Factions lists the distinct owners in registry order.
func (r *Registry) Factions() []string {
	seen := make(map[string]struct{}, len(r.t))
	out := make([]string, 0, len(r.t))
	for _, t := range r.t {
		if _, ok := seen[t.Owner]; ok {
			continue
		}
		seen[t.Owner] = struct{}{}
		out = append(out, t.Owner)
	}
	return out
}

// Snapshot returns a copy of every territory.
func (r *Registry) Snapshot() []Territory {
	out := make([]Territory, len(r.t))
	copy(out, r.t)
	return out
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	return &Registry{limits: r.limits, t: r.Snapshot()}
}
