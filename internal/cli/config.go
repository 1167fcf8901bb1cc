package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/unitpile/unitpile/pkg/pipeline"
)

// Store backends selectable via config.
const (
	storeMemory = "memory"
	storeMongo  = "mongo"
)

// Cache backends selectable via config.
const (
	cacheFile  = "file"
	cacheRedis = "redis"
	cacheNone  = "none"
)

// Config holds user settings loaded from ~/.config/unitpile/config.toml.
// Every field has a working default, so a missing file is not an error.
type Config struct {
	// Store selects the habit store backend: "memory" (default) or "mongo".
	Store string `toml:"store"`

	// Cache selects the cache backend: "file" (default), "redis", or "none".
	Cache string `toml:"cache"`

	// Defaults applied to layout and render commands when flags are omitted.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Style  string  `toml:"style"`

	Mongo MongoConfig `toml:"mongo"`
	Redis RedisConfig `toml:"redis"`
	Serve ServeConfig `toml:"serve"`
}

// MongoConfig configures the MongoDB store backend.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ServeConfig configures the HTTP API server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Store:  storeMemory,
		Cache:  cacheFile,
		Width:  pipeline.DefaultWidth,
		Height: pipeline.DefaultHeight,
		Style:  pipeline.DefaultStyle,
		Mongo:  MongoConfig{URI: "mongodb://localhost:27017", Database: "unitpile"},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		Serve:  ServeConfig{Addr: ":8080"},
	}
}

// configPath returns the config file location using the XDG standard
// (~/.config/unitpile/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file, filling any unset field with its
// default. A missing file yields the defaults; a malformed file is an error.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return defaultConfig(), nil
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero fields after decoding, so a partial config file
// behaves like the full default one.
func (c *Config) applyDefaults() {
	d := defaultConfig()
	if c.Store == "" {
		c.Store = d.Store
	}
	if c.Cache == "" {
		c.Cache = d.Cache
	}
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.Style == "" {
		c.Style = d.Style
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = d.Mongo.URI
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = d.Mongo.Database
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = d.Redis.Addr
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = d.Serve.Addr
	}
}
