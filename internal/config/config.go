// internal/config/config.go
//
// Runtime configuration.
// Values are layered, lowest first: built-in defaults, an optional YAML config
// file, a `.env` file in the working directory, then process environment.
// Nested keys map to upper-case env names with "." replaced by "_"
// (storage.driver → STORAGE_DRIVER).

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/robalobadob/magicnumbers/internal/kv"
)

// StorageConfig selects where the progress record lives.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | file | memory
	Path   string `mapstructure:"path"`   // database file for sqlite, directory for file
}

// DefaultSQLitePath is the database used when sqlite is picked without a path.
const DefaultSQLitePath = "./data/progress.db"

// defaultPath is the storage location for the driver when none is configured.
func (s StorageConfig) defaultPath() string {
	switch s.Driver {
	case "sqlite":
		return DefaultSQLitePath
	case "file":
		return kv.DefaultDir()
	}
	return ""
}

// Config holds all runtime configuration.
type Config struct {
	Port              int           `mapstructure:"port"`
	ClientOrigin      string        `mapstructure:"client_origin"`
	LogLevel          string        `mapstructure:"log_level"`
	Storage           StorageConfig `mapstructure:"storage"`
	CertificateSecret string        `mapstructure:"certificate_secret"`
	ResetPIN          string        `mapstructure:"reset_pin"`
	RunTTL            time.Duration `mapstructure:"run_ttl"`
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 5175)
	v.SetDefault("client_origin", "http://localhost:5173")
	v.SetDefault("log_level", "info")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "")
	v.SetDefault("certificate_secret", "dev_secret_change_me")
	v.SetDefault("reset_pin", "")
	v.SetDefault("run_ttl", 2*time.Hour)
}

// Load builds a Config. configFile may be empty; a named file that cannot be
// read is an error, a missing `.env` is not.
func Load(configFile string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = cfg.Storage.defaultPath()
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	switch c.Storage.Driver {
	case "sqlite", "file", "memory":
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.RunTTL <= 0 {
		return errors.New("config: run_ttl must be positive")
	}
	return nil
}
