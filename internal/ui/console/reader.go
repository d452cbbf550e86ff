package console

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/mitchelldurbincs/war/internal/game/core"
)

// Reader turns console input into player actions. Prompts and input
// errors go through the renderer so they share its locale.
type Reader struct {
	scanner  *bufio.Scanner
	renderer *Renderer

	once  sync.Once
	lines chan scanned
}

type scanned struct {
	line string
	err  error
}

// NewReader creates a reader over in.
func NewReader(in io.Reader, renderer *Renderer) *Reader {
	return &Reader{scanner: bufio.NewScanner(in), renderer: renderer}
}

// scan feeds lines to r.lines until the input ends, then sends the final
// error and closes the channel. It runs on its own goroutine so a blocked
// read never holds up cancellation.
func (r *Reader) scan() {
	defer close(r.lines)
	for r.scanner.Scan() {
		r.lines <- scanned{line: r.scanner.Text()}
	}
	err := r.scanner.Err()
	if err == nil {
		err = io.EOF
	}
	r.lines <- scanned{err: err}
}

// readLine returns the next line without its newline. io.EOF is returned
// once the input is exhausted; ctx.Err() as soon as ctx is done, even
// while waiting for input.
func (r *Reader) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.once.Do(func() {
		r.lines = make(chan scanned)
		go r.scan()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case s, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		if s.err != nil {
			return "", s.err
		}
		return strings.TrimRight(s.line, "\r"), nil
	}
}

// readInt prompts until the user types an integer.
func (r *Reader) readInt(ctx context.Context, key string, args ...interface{}) (int, error) {
	for {
		r.renderer.prompt(key, args...)
		line, err := r.readLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return n, nil
		}
		r.renderer.line(msgNotANumber)
	}
}

// ReadAction shows the menu and reads one action. Territory numbers are
// typed 1-based and converted to 0-based indices; range checking is left
// to the session so out-of-range numbers are reported like any other
// rejected attack.
func (r *Reader) ReadAction(ctx context.Context, territories int) (core.Action, error) {
	for {
		r.renderer.Menu()
		choice, err := r.readInt(ctx, msgMenuPrompt)
		if err != nil {
			return nil, err
		}

		switch choice {
		case 1:
			attacker, err := r.readInt(ctx, msgAttackerPrompt, territories)
			if err != nil {
				return nil, err
			}
			defender, err := r.readInt(ctx, msgDefenderPrompt, territories)
			if err != nil {
				return nil, err
			}
			return &core.AttackAction{Attacker: attacker - 1, Defender: defender - 1}, nil
		case 2:
			return &core.CheckMissionAction{}, nil
		case 0:
			return &core.QuitAction{}, nil
		default:
			r.renderer.line(msgInvalidChoice)
		}
	}
}

// ReadTerritories registers count territories by hand: a name, an army
// color and a troop count for each. Troop counts are asked again until
// they are a non-negative integer. Text is bounded by limits.
func (r *Reader) ReadTerritories(ctx context.Context, count int, limits core.Limits) ([]core.Territory, error) {
	r.renderer.line(msgRegisterIntro, count)
	r.renderer.blank()

	territories := make([]core.Territory, 0, count)
	for i := 0; i < count; i++ {
		r.renderer.line(msgRegisterHeader, i+1)

		r.renderer.prompt(msgRegisterName)
		name, err := r.readLine(ctx)
		if err != nil {
			return nil, err
		}

		r.renderer.prompt(msgRegisterFaction)
		faction, err := r.readLine(ctx)
		if err != nil {
			return nil, err
		}

		troops, err := r.readTroops(ctx)
		if err != nil {
			return nil, err
		}
		r.renderer.blank()

		territories = append(territories, limits.Apply(core.Territory{
			Name:   name,
			Owner:  faction,
			Troops: troops,
		}))
	}
	return territories, nil
}

func (r *Reader) readTroops(ctx context.Context) (int, error) {
	for {
		r.renderer.prompt(msgRegisterTroops)
		line, err := r.readLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 0 {
			return n, nil
		}
		r.renderer.line(msgInvalidTroops)
	}
}
