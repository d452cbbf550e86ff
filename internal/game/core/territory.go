package core

// Territory is one region of the map.
// Owner is the faction label (a color name) that holds it; there is no
// separate faction entity. Troops is never negative.
type Territory struct {
	Name   string `json:"name" mapstructure:"name"`
	Owner  string `json:"owner" mapstructure:"faction"`
	Troops int    `json:"troops" mapstructure:"troops"`
}

// OwnedBy reports whether faction holds the territory.
func (t Territory) OwnedBy(faction string) bool { return t.Owner == faction }

// CanAttack reports whether the territory has troops to launch an attack.
func (t Territory) CanAttack() bool { return t.Troops > 0 }

// Limits bounds the text fields of a territory. Values longer than the
// limit are truncated when they enter the registry.
type Limits struct {
	NameMaxLength    int
	FactionMaxLength int
}

// DefaultLimits mirrors 30 and 10 byte buffers holding a terminator.
func DefaultLimits() Limits {
	return Limits{NameMaxLength: 29, FactionMaxLength: 9}
}

// Faction returns label bounded to the faction limit.
func (l Limits) Faction(label string) string {
	return Truncate(label, l.FactionMaxLength)
}

// Name returns name bounded to the name limit.
func (l Limits) Name(name string) string {
	return Truncate(name, l.NameMaxLength)
}

// Apply returns t with both text fields bounded.
func (l Limits) Apply(t Territory) Territory {
	t.Name = l.Name(t.Name)
	t.Owner = l.Faction(t.Owner)
	return t
}
