package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/war/internal/config"
)

// Options selects where logs go. Console is the human-facing stream;
// nil means os.Stderr so log lines never interleave with the game screen.
type Options struct {
	Config  config.LogConfig
	Console io.Writer
}

// ParseLevel converts a level name to a zerolog level, falling back to
// info for anything it does not recognize.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// SetLevel changes the global level; used when the config file is reloaded.
func SetLevel(level string) zerolog.Level {
	lvl := ParseLevel(level)
	zerolog.SetGlobalLevel(lvl)
	return lvl
}

// Setup configures the global logger and returns it. When a log file is
// configured, JSON lines are also written to it through a rotating
// writer, which the returned closer releases.
func Setup(opts Options) (zerolog.Logger, io.Closer) {
	cfg := opts.Config
	SetLevel(cfg.Level)

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	var consoleOut io.Writer = console
	if strings.ToLower(cfg.Format) != "json" {
		consoleOut = zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: time.RFC3339,
		}
	}

	var closer io.Closer = nopCloser{}
	out := consoleOut
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    max(1, cfg.Rotation.MaxSizeMB),
			MaxBackups: max(0, cfg.Rotation.MaxBackups),
			MaxAge:     max(0, cfg.Rotation.MaxAgeDays),
			Compress:   cfg.Rotation.Compress,
		}
		closer = file
		// The file always receives plain JSON, never console colors.
		out = zerolog.MultiLevelWriter(consoleOut, file)
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	log.Logger = logger
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
