package console

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/war/internal/game"
	"github.com/mitchelldurbincs/war/internal/game/core"
	"github.com/mitchelldurbincs/war/internal/game/dice"
)

// Game runs a session on the terminal.
type Game struct {
	session  *game.Session
	reader   *Reader
	renderer *Renderer
	logger   zerolog.Logger
}

// NewGame creates a console game for session
func NewGame(session *game.Session, reader *Reader, renderer *Renderer, logger zerolog.Logger) *Game {
	return &Game{
		session:  session,
		reader:   reader,
		renderer: renderer,
		logger:   logger.With().Str("component", "ConsoleGame").Str("session_id", session.ID()).Logger(),
	}
}

func (g *Game) intro() {
	g.renderer.Banner()
	g.renderer.Mission(g.session.Player().Faction, g.session.MissionProgress())
	g.renderer.Map(g.session.Territories(), g.session.Stats())
}

// Run reads actions until the session terminates. End of input counts as
// quitting.
func (g *Game) Run(ctx context.Context) error {
	g.intro()

	for !g.session.IsTerminated() {
		action, err := g.reader.ReadAction(ctx, len(g.session.Territories()))
		if errors.Is(err, io.EOF) {
			g.logger.Info().Msg("Input closed, quitting")
			action = &core.QuitAction{}
		} else if err != nil {
			return err
		}
		g.play(ctx, action)
	}

	g.renderer.Result(g.session.Victory(), g.session.Turn())
	return nil
}

// Autoplay lets the demo player attack at random for at most maxTurns
// turns, then quits if the mission is still open.
func (g *Game) Autoplay(ctx context.Context, src dice.Source, maxTurns int) error {
	g.intro()

	for turn := 0; turn < maxTurns && !g.session.IsTerminated(); turn++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		action := game.GenerateRandomAction(g.session, src)
		if attack, ok := action.(*core.AttackAction); ok {
			territories := g.session.Territories()
			g.renderer.Autoplay(g.session.Turn()+1, territories[attack.Attacker].Name, territories[attack.Defender].Name)
		}
		g.play(ctx, action)
	}

	if !g.session.IsTerminated() {
		g.logger.Info().Int("max_turns", maxTurns).Msg("Autoplay turn limit reached")
		g.play(ctx, &core.QuitAction{})
	}

	g.renderer.Result(g.session.Victory(), g.session.Turn())
	return nil
}

// play submits one action and shows what it did.
func (g *Game) play(ctx context.Context, action core.Action) {
	res, err := g.session.Submit(ctx, action)
	if err != nil {
		g.logger.Debug().Err(err).Msg("Action refused")
		g.renderer.Rejected(err)
		return
	}

	if res.Battle != nil {
		g.renderer.Battle(*res.Battle)
		g.renderer.Map(g.session.Territories(), g.session.Stats())
	}

	_, checked := action.(*core.CheckMissionAction)
	if res.Mission != nil && (checked || res.Victory) {
		g.renderer.Mission(g.session.Player().Faction, *res.Mission)
	}
}
