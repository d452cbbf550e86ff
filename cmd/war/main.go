package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/war/internal/config"
	"github.com/mitchelldurbincs/war/internal/game"
	"github.com/mitchelldurbincs/war/internal/game/dice"
	"github.com/mitchelldurbincs/war/internal/game/events"
	"github.com/mitchelldurbincs/war/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/war/internal/game/rules"
	"github.com/mitchelldurbincs/war/internal/logging"
	"github.com/mitchelldurbincs/war/internal/ui/console"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay (loads config.<env>.yaml)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	seed := flag.Uint64("seed", 0, "Random seed (0 to use config default, then the clock)")
	bootstrap := flag.String("bootstrap", "", "Map bootstrap: canonical, random or manual (empty to use config default)")
	locale := flag.String("locale", "", "Console language, pt-BR or en (empty to use config default)")
	autoplay := flag.Bool("autoplay", false, "Let the computer play random attacks for you")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	// Flags override config values and keep doing so across reloads
	if *logLevel != "" {
		config.Set("log.level", *logLevel)
	}
	if *seed != 0 {
		config.Set("game.seed", *seed)
	}
	if *bootstrap != "" {
		config.Set("game.bootstrap", *bootstrap)
	}
	if *locale != "" {
		config.Set("ui.locale", *locale)
	}

	cfg := config.Get()

	logger, closer := logging.Setup(logging.Options{Config: cfg.Log})
	defer closer.Close()

	if path := config.ConfigFilePath(); path != "" {
		log.Debug().Str("path", path).Msg("Watching config file")
		config.WatchConfig(func(c *config.Config) {
			lvl := logging.SetLevel(c.Log.Level)
			log.Info().Str("level", lvl.String()).Msg("Config reloaded")
		})
	}

	mode, err := game.ParseBootstrapMode(cfg.Game.Bootstrap)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid bootstrap mode")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer := console.NewRenderer(os.Stdout, cfg.UI.Locale, cfg.UI.Color)
	reader := console.NewReader(os.Stdin, renderer)

	eventLevel := zerolog.DebugLevel
	if cfg.Development.VerboseEvents {
		eventLevel = zerolog.InfoLevel
	}
	eventLogger := subscribers.NewLoggerSubscriber("event_logger", logger, eventLevel)
	eventLogger.SetDevMode(cfg.Development.VerboseEvents)

	session, err := game.NewSessionInitializer(game.SessionConfig{
		Logger:         logger,
		Seed:           cfg.Game.Seed,
		Bootstrap:      mode,
		Territories:    cfg.Game.Territories,
		TerritoryCount: cfg.Game.TerritoryCount,
		NamePool:       cfg.Game.NamePool,
		Provider:       reader,
		Limits:         cfg.Game.Limits(),
		PlayerFaction:  cfg.Game.PlayerFaction,
		Catalog: rules.MissionCatalog{
			ConquerTarget:    cfg.Missions.ConquerTarget,
			EliminateTargets: cfg.Missions.EliminateTargets,
		},
		Subscribers: []events.Subscriber{eventLogger},
	}).Initialize(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start session")
	}

	log.Info().
		Str("session_id", session.ID()).
		Str("bootstrap", string(mode)).
		Uint64("seed", session.Seed()).
		Str("locale", console.MatchLocale(cfg.UI.Locale).String()).
		Bool("autoplay", *autoplay).
		Msg("Starting session")

	g := console.NewGame(session, reader, renderer, logger)
	if *autoplay {
		err = g.Autoplay(ctx, dice.NewSource(session.Seed()+1), cfg.Development.AutoplayTurns)
	} else {
		err = g.Run(ctx)
	}
	if err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("Session aborted")
		return
	}

	log.Info().
		Int("turns", session.Turn()).
		Bool("victory", session.Victory()).
		Str("reason", session.Reason()).
		Msg("Session finished")
}
