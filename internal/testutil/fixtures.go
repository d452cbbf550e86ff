package testutil

import (
	"testing"

	"github.com/mitchelldurbincs/war/internal/game/core"
)

// CanonicalRegistry builds the default five-territory registry.
func CanonicalRegistry(t testing.TB) *core.Registry {
	t.Helper()
	return NewRegistry(t, core.CanonicalSeed()...)
}

// NewRegistry builds a registry from territories with default limits and
// fails the test if construction is refused.
func NewRegistry(t testing.TB, territories ...core.Territory) *core.Registry {
	t.Helper()
	reg, err := core.NewRegistry(territories, core.DefaultLimits())
	if err != nil {
		t.Fatalf("building test registry: %v", err)
	}
	return reg
}

// Territory is shorthand for a territory literal.
func Territory(name, owner string, troops int) core.Territory {
	return core.Territory{Name: name, Owner: owner, Troops: troops}
}

// TwoFactionSetup is a small map where "Azul" holds two of five
// territories and "Verde" holds the rest.
func TwoFactionSetup(t testing.TB) *core.Registry {
	t.Helper()
	return NewRegistry(t,
		Territory("América", "Azul", 3),
		Territory("Europa", "Verde", 1),
		Territory("Ásia", "Azul", 2),
		Territory("África", "Verde", 2),
		Territory("Oceania", "Verde", 1),
	)
}
