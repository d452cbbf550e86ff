package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "Azul", 9, "Azul"},
		{"exact", "Vermelhos", 9, "Vermelhos"},
		{"long", "Vermelho Escuro", 9, "Vermelho"},
		{"multibyte runes", "ÁÁÁÁÁÁÁÁÁÁÁ", 3, "ÁÁÁ"},
		{"trims whitespace", "  Europa \n", 29, "Europa"},
		{"no limit", "qualquer coisa", 0, "qualquer coisa"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.max))
		})
	}
}

func TestGetActionType(t *testing.T) {
	assert.Equal(t, "nil", GetActionType(nil))
	assert.Equal(t, "*core.AttackAction", GetActionType(&AttackAction{}))
	assert.Equal(t, "*core.QuitAction", GetActionType(&QuitAction{}))
}

func TestLimits(t *testing.T) {
	l := Limits{NameMaxLength: 4, FactionMaxLength: 2}
	got := l.Apply(Territory{Name: "Oceania", Owner: "Azul", Troops: 3})
	assert.Equal(t, Territory{Name: "Ocea", Owner: "Az", Troops: 3}, got)
}
