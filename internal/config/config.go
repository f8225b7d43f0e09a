package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/BattleHeroesAI/internal/game/core"
)

// Config holds all configuration for the application
type Config struct {
	Battle     BattleConfig     `mapstructure:"battle"`
	Army       ArmyConfig       `mapstructure:"army"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// BattleConfig holds battlefield settings
type BattleConfig struct {
	Field FieldConfig `mapstructure:"field"`
}

// FieldConfig holds the grid dimensions. They must match the coordinate
// convention of whatever places units on the field.
type FieldConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	Layers int `mapstructure:"layers"`
}

// ArmyConfig holds preset generation weights
type ArmyConfig struct {
	AttackWeight         float64 `mapstructure:"attack_weight"`
	HealthWeight         float64 `mapstructure:"health_weight"`
	RangedAttackModifier float64 `mapstructure:"ranged_attack_modifier"`
	MaxUnitsPerType      int     `mapstructure:"max_units_per_type"`
	MaxPoints            int     `mapstructure:"max_points"`
	CatalogPath          string  `mapstructure:"catalog_path"`
}

// SimulationConfig holds battle simulation limits
type SimulationConfig struct {
	MaxRounds          int  `mapstructure:"max_rounds"`
	ParallelPathSearch bool `mapstructure:"parallel_path_search"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	PathServer PathServerConfig `mapstructure:"path_server"`
}

// PathServerConfig holds gRPC path service configuration
type PathServerConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	LogLevel              string `mapstructure:"log_level"`
	EnableReflection      bool   `mapstructure:"enable_reflection"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
	MetricsInterval       int    `mapstructure:"metrics_interval"` // seconds, 0 disables
}

// LoggingConfig holds logging settings for the CLIs
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Field converts the field section into the core type
func (c *Config) Field() core.Field {
	return core.Field{
		Width:  c.Battle.Field.Width,
		Height: c.Battle.Field.Height,
		Layers: c.Battle.Field.Layers,
	}
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("battle.field.width", core.DefaultFieldWidth)
	v.SetDefault("battle.field.height", core.DefaultFieldHeight)
	v.SetDefault("battle.field.layers", core.DefaultArmyLayers)

	v.SetDefault("army.attack_weight", 0.6)
	v.SetDefault("army.health_weight", 0.4)
	v.SetDefault("army.ranged_attack_modifier", 1.2)
	v.SetDefault("army.max_units_per_type", 11)
	v.SetDefault("army.max_points", 1500)
	v.SetDefault("army.catalog_path", "configs/units.yaml")

	v.SetDefault("simulation.max_rounds", 200)
	v.SetDefault("simulation.parallel_path_search", true)

	v.SetDefault("server.path_server.host", "0.0.0.0")
	v.SetDefault("server.path_server.port", 50061)
	v.SetDefault("server.path_server.log_level", "info")
	v.SetDefault("server.path_server.enable_reflection", true)
	v.SetDefault("server.path_server.graceful_shutdown_delay", 2)
	v.SetDefault("server.path_server.metrics_interval", 30)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/battle-heroes")
	}

	v.SetEnvPrefix("BHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing explicit file falls back to defaults; for the search
		// paths only ConfigFileNotFoundError is tolerated.
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(loaded); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = loaded
	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. Reloads that fail
// validation are dropped and the previous values stay in effect.
func WatchConfig(onChange func(*Config, error)) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		reloaded := &Config{}
		err := v.Unmarshal(reloaded)
		if err == nil {
			err = Validate(reloaded)
		}
		if err == nil {
			cfg = reloaded
		}
		if onChange != nil {
			onChange(cfg, err)
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if err := c.Field().Validate(); err != nil {
		return fmt.Errorf("battle.field: %w", err)
	}

	if c.Army.AttackWeight < 0 || c.Army.HealthWeight < 0 {
		return fmt.Errorf("army weights must be non-negative")
	}
	if c.Army.AttackWeight+c.Army.HealthWeight == 0 {
		return fmt.Errorf("army.attack_weight and army.health_weight cannot both be zero")
	}
	if c.Army.RangedAttackModifier <= 0 {
		return fmt.Errorf("army.ranged_attack_modifier must be positive")
	}
	if c.Army.MaxUnitsPerType <= 0 {
		return fmt.Errorf("army.max_units_per_type must be positive")
	}
	if c.Army.MaxPoints <= 0 {
		return fmt.Errorf("army.max_points must be positive")
	}

	if c.Simulation.MaxRounds <= 0 {
		return fmt.Errorf("simulation.max_rounds must be positive")
	}

	if c.Server.PathServer.Port <= 0 || c.Server.PathServer.Port > 65535 {
		return fmt.Errorf("server.path_server.port must be between 1 and 65535")
	}
	if c.Server.PathServer.GracefulShutdownDelay < 0 {
		return fmt.Errorf("server.path_server.graceful_shutdown_delay must be non-negative")
	}
	if c.Server.PathServer.MetricsInterval < 0 {
		return fmt.Errorf("server.path_server.metrics_interval must be non-negative")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}
