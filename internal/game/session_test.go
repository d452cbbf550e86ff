package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/war/internal/game/combat"
	"github.com/mitchelldurbincs/war/internal/game/core"
	"github.com/mitchelldurbincs/war/internal/game/dice"
	"github.com/mitchelldurbincs/war/internal/game/events"
	"github.com/mitchelldurbincs/war/internal/game/processor"
	"github.com/mitchelldurbincs/war/internal/game/rules"
	"github.com/mitchelldurbincs/war/internal/game/states"
	"github.com/mitchelldurbincs/war/internal/testutil"
)

type recordingSubscriber struct {
	events []events.Event
}

func (r *recordingSubscriber) ID() string                 { return "recorder" }
func (r *recordingSubscriber) HandleEvent(e events.Event) { r.events = append(r.events, e) }
func (r *recordingSubscriber) InterestedIn(string) bool   { return true }

func (r *recordingSubscriber) types() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type()
	}
	return out
}

// twoFactionMap: Azul holds 0 and 2, Verde holds 1, 3 and 4.
func twoFactionMap() []core.Territory {
	return []core.Territory{
		{Name: "América", Owner: "Azul", Troops: 3},
		{Name: "Europa", Owner: "Verde", Troops: 1},
		{Name: "Ásia", Owner: "Azul", Troops: 2},
		{Name: "África", Owner: "Verde", Troops: 2},
		{Name: "Oceania", Owner: "Verde", Troops: 1},
	}
}

func newTestSession(t *testing.T, rolls ...int) (*Session, *recordingSubscriber) {
	t.Helper()
	rec := &recordingSubscriber{}
	s, err := NewSessionInitializer(SessionConfig{
		Logger:        testutil.NopLogger(),
		Source:        dice.NewSequence(rolls...),
		Territories:   twoFactionMap(),
		PlayerFaction: "Azul",
		Subscribers:   []events.Subscriber{rec},
	}).Initialize(context.Background())
	require.NoError(t, err)
	return s, rec
}

func attack(a, d int) *core.AttackAction { return &core.AttackAction{Attacker: a, Defender: d} }

func TestInitialize(t *testing.T) {
	s, rec := newTestSession(t, 0)

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, BootstrapCanonical, s.Bootstrap())
	assert.Equal(t, states.PhaseAwaitingAction, s.Phase())
	assert.Equal(t, 0, s.Turn())
	assert.False(t, s.IsTerminated())
	assert.Equal(t, "Azul", s.Player().Faction)
	assert.Equal(t, rules.ConquerTerritories{N: 3}, s.Player().Mission.Condition())
	assert.Equal(t, []string{events.TypeSessionStarted, events.TypeMissionAssigned}, rec.types())
	assert.Equal(t, uint64(0), s.Seed(), "scripted sources have no seed")
}

func TestInitialize_Defaults(t *testing.T) {
	s, err := NewSessionInitializer(SessionConfig{
		Logger: testutil.NopLogger(),
		Seed:   7,
	}).Initialize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(7), s.Seed())
	assert.Equal(t, core.CanonicalSeed(), s.Territories())
	assert.Equal(t, DefaultPlayerFaction, s.Player().Faction)
	assert.NotEmpty(t, s.Player().Mission.Description())
}

func TestInitialize_Errors(t *testing.T) {
	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewSessionInitializer(SessionConfig{Logger: testutil.NopLogger()}).Initialize(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("duplicate territories", func(t *testing.T) {
		_, err := NewSessionInitializer(SessionConfig{
			Logger: testutil.NopLogger(),
			Seed:   1,
			Territories: []core.Territory{
				{Name: "Europa", Owner: "Azul", Troops: 1},
				{Name: " Europa ", Owner: "Verde", Troops: 1},
			},
		}).Initialize(context.Background())
		assert.ErrorIs(t, err, core.ErrDuplicateTerritory)
	})

	t.Run("manual without provider", func(t *testing.T) {
		_, err := NewSessionInitializer(SessionConfig{
			Logger:    testutil.NopLogger(),
			Seed:      1,
			Bootstrap: BootstrapManual,
		}).Initialize(context.Background())
		assert.ErrorIs(t, err, core.ErrInvalidValue)
	})

	t.Run("random map larger than pool", func(t *testing.T) {
		_, err := NewSessionInitializer(SessionConfig{
			Logger:         testutil.NopLogger(),
			Seed:           1,
			Bootstrap:      BootstrapRandom,
			TerritoryCount: 3,
			NamePool:       []string{"A", "B"},
		}).Initialize(context.Background())
		assert.ErrorIs(t, err, core.ErrInvalidValue)
	})
}

type stubProvider struct {
	territories []core.Territory
	err         error
	asked       int
}

func (p *stubProvider) ReadTerritories(_ context.Context, count int, _ core.Limits) ([]core.Territory, error) {
	p.asked = count
	return p.territories, p.err
}

func TestInitialize_Bootstraps(t *testing.T) {
	t.Run("manual", func(t *testing.T) {
		provider := &stubProvider{territories: twoFactionMap()}
		s, err := NewSessionInitializer(SessionConfig{
			Logger:         testutil.NopLogger(),
			Seed:           3,
			Bootstrap:      BootstrapManual,
			TerritoryCount: 5,
			Provider:       provider,
		}).Initialize(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 5, provider.asked)
		assert.Equal(t, twoFactionMap(), s.Territories())
	})

	t.Run("manual provider error", func(t *testing.T) {
		boom := errors.New("input closed")
		_, err := NewSessionInitializer(SessionConfig{
			Logger:    testutil.NopLogger(),
			Seed:      3,
			Bootstrap: BootstrapManual,
			Provider:  &stubProvider{err: boom},
		}).Initialize(context.Background())
		assert.ErrorIs(t, err, boom)
	})

	t.Run("random", func(t *testing.T) {
		s, err := NewSessionInitializer(SessionConfig{
			Logger:         testutil.NopLogger(),
			Seed:           11,
			Bootstrap:      BootstrapRandom,
			TerritoryCount: 8,
		}).Initialize(context.Background())
		require.NoError(t, err)
		assert.Len(t, s.Territories(), 8)
		assert.Equal(t, BootstrapRandom, s.Bootstrap())
	})
}

func TestInitialize_EliminateTargetFollowsFactionLimit(t *testing.T) {
	limits := core.Limits{NameMaxLength: 29, FactionMaxLength: 4}

	t.Run("target matches truncated owners", func(t *testing.T) {
		s, err := NewSessionInitializer(SessionConfig{
			Logger: testutil.NopLogger(),
			Source: dice.NewSequence(1),
			Limits: limits,
		}).Initialize(context.Background())
		require.NoError(t, err)
		assert.Equal(t, rules.EliminateFaction{Faction: "Verd"}, s.Player().Mission.Condition())
		assert.Equal(t, []string{"Verd", "Azul", "Verm", "Amar"}, s.Registry().Factions())

		res, err := s.Submit(context.Background(), &core.CheckMissionAction{})
		require.NoError(t, err)
		assert.False(t, res.Victory)
		assert.Equal(t, 2, res.Mission.Current)
	})

	t.Run("own faction compared after truncation", func(t *testing.T) {
		s, err := NewSessionInitializer(SessionConfig{
			Logger:        testutil.NopLogger(),
			Source:        dice.NewSequence(1),
			Limits:        limits,
			PlayerFaction: "Verdejante",
		}).Initialize(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Verd", s.Player().Faction)
		assert.Equal(t, rules.ConquerTerritories{N: 3}, s.Player().Mission.Condition())
	})
}

func TestParseBootstrapMode(t *testing.T) {
	tests := []struct {
		in      string
		want    BootstrapMode
		wantErr bool
	}{
		{"", BootstrapCanonical, false},
		{"canonical", BootstrapCanonical, false},
		{" Random ", BootstrapRandom, false},
		{"MANUAL", BootstrapManual, false},
		{"network", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBootstrapMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubmit_RejectedActionChangesNothing(t *testing.T) {
	tests := []struct {
		name    string
		action  core.Action
		wantErr error
	}{
		{"same territory", attack(1, 1), core.ErrSameTerritory},
		{"out of range", attack(0, 5), core.ErrOutOfRange},
		{"negative index", attack(-1, 0), core.ErrOutOfRange},
		{"nil attack", (*core.AttackAction)(nil), core.ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := newTestSession(t, 0)
			before := s.Territories()

			res, err := s.Submit(context.Background(), tt.action)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, s.Territories())
			assert.Equal(t, states.PhaseAwaitingAction, s.Phase())
			assert.Equal(t, states.PhaseAwaitingAction, res.Phase)
			assert.Equal(t, 0, s.Turn())
			assert.Nil(t, res.Battle)
			assert.Contains(t, rec.types(), events.TypeActionRejected)
		})
	}
}

type failingResolver struct{ err error }

func (f failingResolver) Resolve(*core.Registry, int, int) (combat.BattleOutcome, error) {
	return combat.BattleOutcome{}, f.err
}

func TestSubmit_FailedAttackHandsTurnBack(t *testing.T) {
	s, _ := newTestSession(t, 0)
	boom := errors.New("dice jammed")
	s.actionProcessor = processor.NewActionProcessor(s.ID(), failingResolver{err: boom}, testutil.NopLogger())
	before := s.Territories()

	res, err := s.Submit(context.Background(), attack(0, 1))
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, res.Battle)
	assert.Equal(t, before, s.Territories())
	assert.Equal(t, states.PhaseAwaitingAction, s.Phase())

	history := s.History()
	require.Len(t, history, 3)
	assert.Equal(t, states.PhaseAwaitingAction, history[2].To)
	assert.Equal(t, "attack failed", history[2].Reason)
}

func TestSubmit_NoTroopsAvailable(t *testing.T) {
	s, err := NewSessionInitializer(SessionConfig{
		Logger: testutil.NopLogger(),
		Source: dice.NewSequence(0),
		Territories: []core.Territory{
			{Name: "América", Owner: "Azul", Troops: 0},
			{Name: "Europa", Owner: "Verde", Troops: 1},
		},
	}).Initialize(context.Background())
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), attack(0, 1))
	assert.ErrorIs(t, err, core.ErrNoTroopsAvailable)
	assert.Equal(t, states.PhaseAwaitingAction, s.Phase())
}

func TestSubmit_AttackLost(t *testing.T) {
	s, _ := newTestSession(t, 0, 1, 2)
	before := s.Territories()

	res, err := s.Submit(context.Background(), attack(0, 1))
	require.NoError(t, err)

	require.NotNil(t, res.Battle)
	assert.False(t, res.Battle.AttackerWon())
	assert.Equal(t, before, s.Territories())
	assert.Equal(t, 1, res.Turn)
	assert.Equal(t, states.PhaseAwaitingAction, res.Phase)
	require.NotNil(t, res.Mission)
	assert.False(t, res.Mission.Completed)
	assert.Equal(t, 2, res.Mission.Current)
	assert.Equal(t, 3, res.Mission.Target)
	assert.False(t, res.Terminated)
}

func TestSubmit_ConquestFulfillsConquerMission(t *testing.T) {
	s, rec := newTestSession(t, 0, 6, 1)

	res, err := s.Submit(context.Background(), attack(0, 1))
	require.NoError(t, err)

	require.NotNil(t, res.Battle)
	assert.True(t, res.Battle.Conquered)
	europa := s.Territories()[1]
	assert.Equal(t, "Azul", europa.Owner)
	assert.Equal(t, 1, europa.Troops)
	assert.Equal(t, 3, s.Territories()[0].Troops, "attacker keeps its troops")

	assert.True(t, res.Victory)
	assert.True(t, res.Terminated)
	assert.Equal(t, states.PhaseTerminated, res.Phase)
	assert.True(t, s.Player().Mission.Completed())
	assert.Equal(t, ReasonMissionFulfilled, s.Reason())

	assert.Equal(t, []string{
		events.TypeSessionStarted,
		events.TypeMissionAssigned,
		events.TypeActionSubmitted,
		events.TypeStateTransition,
		events.TypeCombatResolved,
		events.TypeTerritoryConquered,
		events.TypeStateTransition,
		events.TypeMissionEvaluated,
		events.TypeMissionCompleted,
		events.TypeStateTransition,
		events.TypeSessionEnded,
	}, rec.types())

	var phases []states.TurnPhase
	for _, tr := range s.History() {
		phases = append(phases, tr.To)
	}
	assert.Equal(t, []states.TurnPhase{
		states.PhaseResolving, states.PhaseMissionCheck, states.PhaseTerminated,
	}, phases)
}

func TestSubmit_EliminateMission(t *testing.T) {
	// Mission draw 1 selects "Eliminate the Verde army".
	s, _ := newTestSession(t, 1,
		6, 1, // Europa falls
		5, 5, // África 2 -> 1, tie goes to the attacker
		4, 1, // África falls
		3, 2, // Oceania falls, Verde is gone
	)
	require.Equal(t, rules.EliminateFaction{Faction: "Verde"}, s.Player().Mission.Condition())

	steps := []*core.AttackAction{attack(0, 1), attack(0, 3), attack(0, 3)}
	for _, a := range steps {
		res, err := s.Submit(context.Background(), a)
		require.NoError(t, err)
		assert.False(t, res.Victory)
		assert.Equal(t, states.PhaseAwaitingAction, res.Phase)
	}

	res, err := s.Submit(context.Background(), attack(2, 4))
	require.NoError(t, err)
	assert.True(t, res.Victory)
	assert.Equal(t, 4, res.Turn)
	assert.Equal(t, 0, res.Mission.Current)
	assert.Equal(t, 0, s.Registry().CountByFaction("Verde"))
}

func TestSubmit_CheckMission(t *testing.T) {
	s, rec := newTestSession(t, 0)

	res, err := s.Submit(context.Background(), &core.CheckMissionAction{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Turn)
	assert.Nil(t, res.Battle)
	require.NotNil(t, res.Mission)
	assert.Equal(t, "Conquer 3 territories", res.Mission.Description)
	assert.False(t, res.Mission.Completed)
	assert.Equal(t, states.PhaseAwaitingAction, s.Phase())
	assert.NotContains(t, rec.types(), events.TypeMissionCompleted)
}

func TestSubmit_QuitIsAbsorbing(t *testing.T) {
	s, rec := newTestSession(t, 0)

	res, err := s.Submit(context.Background(), &core.QuitAction{})
	require.NoError(t, err)
	assert.True(t, res.Terminated)
	assert.False(t, res.Victory)
	assert.Equal(t, ReasonQuit, s.Reason())
	assert.Equal(t, events.TypeSessionEnded, rec.types()[len(rec.types())-1])

	before := s.Territories()
	for _, a := range []core.Action{attack(0, 1), &core.CheckMissionAction{}, &core.QuitAction{}} {
		res, err := s.Submit(context.Background(), a)
		assert.ErrorIs(t, err, core.ErrSessionTerminated)
		assert.Equal(t, states.PhaseTerminated, res.Phase)
		assert.Equal(t, 1, res.Turn)
	}
	assert.Equal(t, before, s.Territories())
	assert.Nil(t, s.LegalAttacks())
	assert.Nil(t, s.HostileAttacks())
}

func TestSubmit_AfterVictoryIsRefused(t *testing.T) {
	s, _ := newTestSession(t, 0, 6, 1)
	_, err := s.Submit(context.Background(), attack(0, 1))
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), attack(2, 3))
	assert.ErrorIs(t, err, core.ErrSessionTerminated)
}

func TestSubmit_CancelledContext(t *testing.T) {
	s, _ := newTestSession(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Submit(ctx, attack(0, 1))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, s.Turn())
	assert.Equal(t, states.PhaseAwaitingAction, s.Phase())
}

func TestSession_FixedSeedReplays(t *testing.T) {
	play := func() ([]core.Territory, string, int) {
		s, err := NewSessionInitializer(SessionConfig{
			Logger: testutil.NopLogger(),
			Seed:   42,
		}).Initialize(context.Background())
		require.NoError(t, err)

		for i := 0; i < 20 && !s.IsTerminated(); i++ {
			attacks := s.HostileAttacks()
			if len(attacks) == 0 {
				break
			}
			a := attacks[0]
			_, err := s.Submit(context.Background(), &a)
			require.NoError(t, err)
		}
		return s.Territories(), s.Player().Mission.Description(), s.Turn()
	}

	t1, m1, n1 := play()
	t2, m2, n2 := play()
	assert.Equal(t, t1, t2)
	assert.Equal(t, m1, m2)
	assert.Equal(t, n1, n2)
}

func TestSession_TroopsNeverNegative(t *testing.T) {
	s, err := NewSessionInitializer(SessionConfig{
		Logger:        testutil.NopLogger(),
		Seed:          2024,
		Territories:   twoFactionMap(),
		PlayerFaction: "Azul",
		Catalog:       rules.MissionCatalog{ConquerTarget: 99},
	}).Initialize(context.Background())
	require.NoError(t, err)

	src := testutil.NewTestSource(5)
	for i := 0; i < 200; i++ {
		legal := s.LegalAttacks()
		require.NotEmpty(t, legal)
		a := legal[src.Intn(len(legal))]
		_, err := s.Submit(context.Background(), &a)
		require.NoError(t, err)
		for _, terr := range s.Territories() {
			require.GreaterOrEqual(t, terr.Troops, 0)
		}
	}
	assert.Equal(t, 200, s.Turn())
}

func TestSession_Accessors(t *testing.T) {
	s, _ := newTestSession(t, 0)

	clone := s.Registry()
	require.NoError(t, clone.SetTroops(0, 40))
	assert.Equal(t, 3, s.Territories()[0].Troops, "Registry returns a copy")

	report := s.MissionProgress()
	assert.Equal(t, 2, report.Current)

	assert.Len(t, s.LegalAttacks(), 20)
	assert.Len(t, s.HostileAttacks(), 6)

	assert.Contains(t, s.String(), s.ID())
	assert.NotNil(t, s.EventBus())
}

func TestComputeFactionStats(t *testing.T) {
	reg := testutil.TwoFactionSetup(t)

	assert.Equal(t, []FactionStats{
		{Faction: "Azul", Territories: 2, Troops: 5},
		{Faction: "Verde", Territories: 3, Troops: 4},
	}, ComputeFactionStats(reg))
}

func TestGenerateRandomAction(t *testing.T) {
	s, _ := newTestSession(t, 0, 1, 2)

	action := GenerateRandomAction(s, dice.NewSequence(0))
	assert.Equal(t, attack(0, 1), action)

	_, err := s.Submit(context.Background(), &core.QuitAction{})
	require.NoError(t, err)
	assert.IsType(t, &core.CheckMissionAction{}, GenerateRandomAction(s, dice.NewSequence()))
}
