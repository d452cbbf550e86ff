package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttackAction_Validate(t *testing.T) {
	r, err := NewRegistry([]Territory{
		{Name: "A", Owner: "Azul", Troops: 3},
		{Name: "B", Owner: "Verde", Troops: 1},
		{Name: "C", Owner: "Verde", Troops: 0},
	}, DefaultLimits())
	require.NoError(t, err)

	tests := []struct {
		name    string
		action  AttackAction
		wantErr error
	}{
		{"valid attack", AttackAction{Attacker: 0, Defender: 1}, nil},
		{"attack empty territory", AttackAction{Attacker: 0, Defender: 2}, nil},
		{"attacker out of range", AttackAction{Attacker: 3, Defender: 1}, ErrOutOfRange},
		{"defender out of range", AttackAction{Attacker: 0, Defender: -1}, ErrOutOfRange},
		{"same territory", AttackAction{Attacker: 1, Defender: 1}, ErrSameTerritory},
		{"no troops", AttackAction{Attacker: 2, Defender: 0}, ErrNoTroopsAvailable},
		{"range checked before identity", AttackAction{Attacker: 9, Defender: 9}, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.action.Validate(r)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAttackAction_ValidateNil(t *testing.T) {
	r, err := NewRegistry(CanonicalSeed(), DefaultLimits())
	require.NoError(t, err)

	var a *AttackAction
	assert.ErrorIs(t, a.Validate(r), ErrUnknownAction)
}

func TestActionTypes(t *testing.T) {
	assert.Equal(t, ActionAttack, (&AttackAction{}).GetType())
	assert.Equal(t, ActionCheckMission, (&CheckMissionAction{}).GetType())
	assert.Equal(t, ActionQuit, (&QuitAction{}).GetType())

	assert.Equal(t, "attack", ActionAttack.String())
	assert.Equal(t, "check_mission", ActionCheckMission.String())
	assert.Equal(t, "quit", ActionQuit.String())
	assert.Equal(t, "unknown", ActionType(42).String())

	r, err := NewRegistry(CanonicalSeed(), DefaultLimits())
	require.NoError(t, err)
	assert.NoError(t, (&CheckMissionAction{}).Validate(r))
	assert.NoError(t, (&QuitAction{}).Validate(r))
}
