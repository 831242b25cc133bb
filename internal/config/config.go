package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"` // SQLite database file path
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"` // listen address (e.g. ":8080")
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// StorageConfig contains filesystem locations.
type StorageConfig struct {
	AssetsDir string `mapstructure:"assets_dir"` // uploaded product photos
	DataDir   string `mapstructure:"data_dir"`   // exports and reports
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.inventory/")
	v.AddConfigPath("/etc/inventory/")

	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.path", "data/estoque.db")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("storage.assets_dir", "assets")
	v.SetDefault("storage.data_dir", "data")
	return v
}

// Load reads config.yaml (if present) and INVENTORY_* environment overrides.
// It fails when no JWT secret is configured; use LoadWithDefaults in
// development.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is not set (INVENTORY_AUTH_JWT_SECRET); required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but falls back to a development JWT secret.
// WARNING: only use in development.
func LoadWithDefaults() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

func load() (*Config, error) {
	v := newViper()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// String returns a representation of the config with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, HTTP: %s, Assets: %s, Data: %s, Auth: *** (masked) ***}",
		c.Database.Path, c.Server.Addr, c.Storage.AssetsDir, c.Storage.DataDir)
}
