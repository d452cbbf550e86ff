package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/war/internal/game/core"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Missions    MissionsConfig    `mapstructure:"missions"`
	Log         LogConfig         `mapstructure:"log"`
	UI          UIConfig          `mapstructure:"ui"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds session setup settings
type GameConfig struct {
	TerritoryCount   int              `mapstructure:"territory_count"`
	NameMaxLength    int              `mapstructure:"name_max_length"`
	FactionMaxLength int              `mapstructure:"faction_max_length"`
	PlayerFaction    string           `mapstructure:"player_faction"`
	Seed             uint64           `mapstructure:"seed"`
	Bootstrap        string           `mapstructure:"bootstrap"`
	Territories      []core.Territory `mapstructure:"territories"`
	NamePool         []string         `mapstructure:"name_pool"`
}

// Limits returns the text limits for territory fields.
func (g GameConfig) Limits() core.Limits {
	return core.Limits{NameMaxLength: g.NameMaxLength, FactionMaxLength: g.FactionMaxLength}
}

// MissionsConfig parameterizes the mission catalog
type MissionsConfig struct {
	ConquerTarget    int      `mapstructure:"conquer_target"`
	EliminateTargets []string `mapstructure:"eliminate_targets"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level    string         `mapstructure:"level"`
	Format   string         `mapstructure:"format"`
	File     string         `mapstructure:"file"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig holds log file rotation settings
type RotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	Compress   bool `mapstructure:"compress"`
}

// UIConfig holds console settings
type UIConfig struct {
	Locale string `mapstructure:"locale"`
	Color  bool   `mapstructure:"color"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseEvents bool `mapstructure:"verbose_events"`
	AutoplayTurns int  `mapstructure:"autoplay_turns"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper

	// overlayFile is merged over the base file on load and on every reload.
	overlayFile string
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.territory_count", 5)
	v.SetDefault("game.name_max_length", 29)
	v.SetDefault("game.faction_max_length", 9)
	v.SetDefault("game.player_faction", "Azul")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.bootstrap", "canonical")
	v.SetDefault("game.territories", defaultTerritories())
	v.SetDefault("game.name_pool", []string{})

	// Mission defaults
	v.SetDefault("missions.conquer_target", 3)
	v.SetDefault("missions.eliminate_targets", []string{"Verde"})

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.rotation.max_size_mb", 10)
	v.SetDefault("log.rotation.max_backups", 3)
	v.SetDefault("log.rotation.max_age_days", 28)
	v.SetDefault("log.rotation.compress", false)

	// UI defaults
	v.SetDefault("ui.locale", "pt-BR")
	v.SetDefault("ui.color", true)

	// Development defaults
	v.SetDefault("development.verbose_events", false)
	v.SetDefault("development.autoplay_turns", 50)
}

// defaultTerritories renders the canonical seed the way a config file
// would list it, so viper can decode it like user-supplied values.
func defaultTerritories() []map[string]interface{} {
	seed := core.CanonicalSeed()
	out := make([]map[string]interface{}, len(seed))
	for i, t := range seed {
		out[i] = map[string]interface{}{"name": t.Name, "faction": t.Owner, "troops": t.Troops}
	}
	return out
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()
	overlayFile = ""

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/war")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("WAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			// Specific file requested but not found - use defaults
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig loads environment-specific config overlay. The
// base file stays the one being watched; the overlay is merged again on
// every reload. A missing overlay file is not an error.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	overlayFile = fmt.Sprintf("config.%s.yaml", env)

	next, err := reload()
	if err != nil {
		return err
	}
	cfg = next
	return nil
}

// mergeOverlay merges overlayFile over the values v currently holds.
func mergeOverlay() error {
	if overlayFile == "" {
		return nil
	}

	ov := viper.New()
	ov.SetConfigFile(overlayFile)
	if err := ov.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading environment config %s: %w", overlayFile, err)
	}
	if err := v.MergeConfigMap(ov.AllSettings()); err != nil {
		return fmt.Errorf("error merging environment config %s: %w", overlayFile, err)
	}
	return nil
}

// reload builds a validated Config from the values v holds, with the
// overlay applied on top.
func reload() (*Config, error) {
	if err := mergeOverlay(); err != nil {
		return nil, err
	}

	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return next, nil
}

// Set overrides a config value, e.g. from a command line flag. Overrides
// outlive reloads of the config file.
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	_ = v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. Reloaded values that
// fail validation are discarded and the previous configuration is kept.
func WatchConfig(onChange func(*Config)) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		next, err := reload()
		if err != nil {
			return
		}
		cfg = next
		if onChange != nil {
			onChange(cfg)
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Validate game settings
	if c.Game.TerritoryCount <= 0 {
		return fmt.Errorf("game.territory_count must be positive")
	}
	if c.Game.NameMaxLength <= 0 {
		return fmt.Errorf("game.name_max_length must be positive")
	}
	if c.Game.FactionMaxLength <= 0 {
		return fmt.Errorf("game.faction_max_length must be positive")
	}
	if strings.TrimSpace(c.Game.PlayerFaction) == "" {
		return fmt.Errorf("game.player_faction must not be empty")
	}
	switch strings.ToLower(c.Game.Bootstrap) {
	case "canonical", "random", "manual":
	default:
		return fmt.Errorf("game.bootstrap must be one of canonical, random, manual")
	}
	for i, t := range c.Game.Territories {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("game.territories[%d].name must not be empty", i)
		}
		if t.Troops < 0 {
			return fmt.Errorf("game.territories[%d].troops must be non-negative", i)
		}
	}

	// Validate missions
	if c.Missions.ConquerTarget <= 0 {
		return fmt.Errorf("missions.conquer_target must be positive")
	}

	// Validate logging
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json")
	}
	if c.Log.Rotation.MaxSizeMB < 0 || c.Log.Rotation.MaxBackups < 0 || c.Log.Rotation.MaxAgeDays < 0 {
		return fmt.Errorf("log.rotation values must be non-negative")
	}

	// Validate development settings
	if c.Development.AutoplayTurns < 0 {
		return fmt.Errorf("development.autoplay_turns must be non-negative")
	}

	return nil
}
