package console

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/message"

	"github.com/mitchelldurbincs/war/internal/game"
	"github.com/mitchelldurbincs/war/internal/game/combat"
	"github.com/mitchelldurbincs/war/internal/game/core"
	"github.com/mitchelldurbincs/war/internal/game/rules"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

// factionColors maps lowercase army labels, Portuguese and English, to a
// terminal color.
var factionColors = map[string]string{
	"vermelho": ColorRed, "red": ColorRed,
	"verde": ColorGreen, "green": ColorGreen,
	"amarelo": ColorYellow, "yellow": ColorYellow,
	"azul": ColorBlue, "blue": ColorBlue,
	"roxo": ColorPurple, "purple": ColorPurple,
	"branco": ColorWhite, "white": ColorWhite,
	"preto": ColorGray, "black": ColorGray,
}

const separator = "==================================="

// Renderer writes the game screens to a terminal.
type Renderer struct {
	out   io.Writer
	p     *message.Printer
	color bool
}

// NewRenderer creates a renderer printing localized text for locale.
func NewRenderer(out io.Writer, locale string, color bool) *Renderer {
	return &Renderer{out: out, p: NewPrinter(locale), color: color}
}

// Printer exposes the localized printer, shared with the Reader.
func (r *Renderer) Printer() *message.Printer { return r.p }

func (r *Renderer) line(key string, args ...interface{}) {
	r.p.Fprintf(r.out, key, args...)
	fmt.Fprintln(r.out)
}

func (r *Renderer) prompt(key string, args ...interface{}) {
	r.p.Fprintf(r.out, key, args...)
}

func (r *Renderer) blank() { fmt.Fprintln(r.out) }

// Faction returns label painted in its army color when colors are on.
func (r *Renderer) Faction(label string) string {
	if !r.color {
		return label
	}
	c, ok := factionColors[strings.ToLower(label)]
	if !ok {
		return label
	}
	return c + label + ColorReset
}

// Banner prints the title screen.
func (r *Renderer) Banner() {
	fmt.Fprintln(r.out, separator)
	r.line(msgBanner)
	fmt.Fprintln(r.out, separator)
}

// Map prints every territory, 1-based, followed by per-faction totals.
func (r *Renderer) Map(territories []core.Territory, stats []game.FactionStats) {
	r.blank()
	fmt.Fprintln(r.out, separator)
	r.line(msgMapTitle)
	fmt.Fprintln(r.out, separator)

	width := 0
	for _, t := range territories {
		width = max(width, utf8.RuneCountInString(t.Name))
	}
	for i, t := range territories {
		r.line(msgTerritoryLine, i+1, padRight(t.Name, width), r.Faction(t.Owner), t.Troops)
	}

	if len(stats) > 0 {
		fmt.Fprintln(r.out, "-------------------------")
		for _, s := range stats {
			r.line(msgFactionLine, r.Faction(s.Faction), s.Territories, s.Troops)
		}
	}
}

// MissionText localizes the description of a mission condition.
func (r *Renderer) MissionText(c rules.Condition) string {
	switch c := c.(type) {
	case rules.ConquerTerritories:
		return r.p.Sprintf(msgMissionConquer, c.N)
	case rules.EliminateFaction:
		return r.p.Sprintf(msgMissionEliminate, r.Faction(c.Faction))
	case nil:
		return ""
	default:
		return c.Description()
	}
}

// Mission prints the player's mission and how far along it is.
func (r *Renderer) Mission(faction string, report rules.MissionReport) {
	r.blank()
	r.line(msgMissionTitle, r.Faction(faction))
	fmt.Fprintln(r.out, r.MissionText(report.Condition))

	switch report.Condition.(type) {
	case rules.ConquerTerritories:
		r.line(msgMissionProgress, report.Current, report.Target)
	case rules.EliminateFaction:
		r.line(msgMissionRemaining, report.Current)
	}

	if report.Completed {
		r.line(msgMissionDone)
	} else {
		r.line(msgMissionPending)
	}
}

// Battle prints the dice and the outcome of one round.
func (r *Renderer) Battle(outcome combat.BattleOutcome) {
	r.blank()
	r.line(msgBattleTitle)
	r.line(msgBattleDice,
		outcome.Attacker.Name, outcome.AttackerDie,
		outcome.Defender.Name, outcome.DefenderDie,
	)
	if outcome.AttackerWon() {
		r.line(msgBattleAttackerWon)
	} else {
		r.line(msgBattleDefenderWon)
	}
	if outcome.Conquered {
		r.line(msgConquered, outcome.Defender.Name, r.Faction(outcome.Defender.Owner))
	}
}

// Rejected explains why an action was refused.
func (r *Renderer) Rejected(err error) {
	switch {
	case errors.Is(err, core.ErrOutOfRange):
		r.line(msgErrOutOfRange)
	case errors.Is(err, core.ErrSameTerritory):
		r.line(msgErrSame)
	case errors.Is(err, core.ErrNoTroopsAvailable):
		r.line(msgErrNoTroops)
	case errors.Is(err, core.ErrSessionTerminated):
		r.line(msgErrTerminated)
	default:
		r.line(msgErrGeneric, err)
	}
}

// Result prints the final message of a session.
func (r *Renderer) Result(victory bool, turns int) {
	r.blank()
	fmt.Fprintln(r.out, separator)
	if victory {
		r.line(msgVictory, turns)
	} else {
		r.line(msgQuit, turns)
	}
	fmt.Fprintln(r.out, separator)
}

// Menu prints the action menu.
func (r *Renderer) Menu() {
	r.blank()
	r.line(msgMenuTitle)
	r.line(msgMenuAttack)
	r.line(msgMenuCheck)
	r.line(msgMenuQuit)
}

// Autoplay announces an attack chosen by the demo player.
func (r *Renderer) Autoplay(turn int, attacker, defender string) {
	r.blank()
	r.line(msgAutoplay, turn, attacker, defender)
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
