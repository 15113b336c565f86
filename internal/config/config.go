// Package config loads the service configuration from config/dexbox.yaml or
// config/dexbox.toml, then the environment (optionally seeded from .env),
// on top of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/latoulicious/dexbox/pkg/catalog"
)

// Catalogue source kinds.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourceDatabase = "database"
)

// ServerConfig contains HTTP listener configuration
type ServerConfig struct {
	Address        string   `yaml:"address" toml:"address" env:"DEXBOX_SERVER_ADDRESS"`
	Mode           string   `yaml:"mode" toml:"mode" env:"DEXBOX_SERVER_MODE"`
	AllowedOrigins []string `yaml:"allowed_origins" toml:"allowed_origins" env:"DEXBOX_SERVER_ALLOWED_ORIGINS"`
}

// DataConfig locates the reference dataset and lookup lists
type DataConfig struct {
	Source         string        `yaml:"source" toml:"source" env:"DEXBOX_DATA_SOURCE"`
	BaseDir        string        `yaml:"base_dir" toml:"base_dir" env:"DEXBOX_DATA_BASE_DIR"`
	BaseURL        string        `yaml:"base_url" toml:"base_url" env:"DEXBOX_DATA_BASE_URL"`
	Dataset        string        `yaml:"dataset" toml:"dataset" env:"DEXBOX_DATA_DATASET"`
	BallList       string        `yaml:"ball_list" toml:"ball_list" env:"DEXBOX_DATA_BALL_LIST"`
	ItemList       string        `yaml:"item_list" toml:"item_list" env:"DEXBOX_DATA_ITEM_LIST"`
	NatureList     string        `yaml:"nature_list" toml:"nature_list" env:"DEXBOX_DATA_NATURE_LIST"`
	ReloadSchedule string        `yaml:"reload_schedule" toml:"reload_schedule" env:"DEXBOX_DATA_RELOAD_SCHEDULE"`
	Timeout        time.Duration `yaml:"timeout" toml:"timeout" env:"DEXBOX_DATA_TIMEOUT"`
}

// Paths names the four catalogue documents.
func (d DataConfig) Paths() catalog.Paths {
	return catalog.Paths{
		Dataset: d.Dataset,
		Balls:   d.BallList,
		Items:   d.ItemList,
		Natures: d.NatureList,
	}
}

// AssetsConfig locates sprite images
type AssetsConfig struct {
	PictureDir   string        `yaml:"picture_dir" toml:"picture_dir" env:"DEXBOX_ASSETS_PICTURE_DIR"`
	Root         string        `yaml:"root" toml:"root" env:"DEXBOX_ASSETS_ROOT"`
	ProbeTimeout time.Duration `yaml:"probe_timeout" toml:"probe_timeout" env:"DEXBOX_ASSETS_PROBE_TIMEOUT"`
}

// EditorConfig contains editor defaults
type EditorConfig struct {
	DefaultHeldItemID   string        `yaml:"default_held_item_id" toml:"default_held_item_id" env:"DEXBOX_EDITOR_DEFAULT_HELD_ITEM_ID"`
	DefaultHeldItemName string        `yaml:"default_held_item_name" toml:"default_held_item_name" env:"DEXBOX_EDITOR_DEFAULT_HELD_ITEM_NAME"`
	NotificationTTL     time.Duration `yaml:"notification_ttl" toml:"notification_ttl" env:"DEXBOX_EDITOR_NOTIFICATION_TTL"`
	Locale              string        `yaml:"locale" toml:"locale" env:"DEXBOX_EDITOR_LOCALE"`
}

// DatabaseConfig contains the database connection
type DatabaseConfig struct {
	URL          string        `yaml:"url" toml:"url" env:"DATABASE_URL"`
	LogRetention time.Duration `yaml:"log_retention" toml:"log_retention" env:"DEXBOX_DATABASE_LOG_RETENTION"`
}

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level    string `yaml:"level" toml:"level" env:"DEXBOX_LOGGER_LEVEL"`
	Format   string `yaml:"format" toml:"format" env:"DEXBOX_LOGGER_FORMAT"`
	SaveToDB bool   `yaml:"save_to_db" toml:"save_to_db" env:"DEXBOX_LOGGER_SAVE_TO_DB"`
}

// DiscordConfig contains the notification webhook
type DiscordConfig struct {
	WebhookID    string `yaml:"webhook_id" toml:"webhook_id" env:"DEXBOX_DISCORD_WEBHOOK_ID"`
	WebhookToken string `yaml:"webhook_token" toml:"webhook_token" env:"DEXBOX_DISCORD_WEBHOOK_TOKEN"`
}

// Enabled reports whether a webhook is configured.
func (d DiscordConfig) Enabled() bool {
	return d.WebhookID != "" && d.WebhookToken != ""
}

// Config represents the complete configuration structure for YAML/TOML files
type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Data     DataConfig     `yaml:"data" toml:"data"`
	Assets   AssetsConfig   `yaml:"assets" toml:"assets"`
	Editor   EditorConfig   `yaml:"editor" toml:"editor"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Logger   LoggerConfig   `yaml:"logger" toml:"logger"`
	Discord  DiscordConfig  `yaml:"discord" toml:"discord"`

	// Origin names where the file part came from: "yaml", "toml" or
	// "defaults".
	Origin string `yaml:"-" toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:        ":8080",
			Mode:           "release",
			AllowedOrigins: []string{"*"},
		},
		Data: DataConfig{
			Source:     SourceFile,
			BaseDir:    ".",
			Dataset:    "test.json",
			BallList:   "ball_list.txt",
			ItemList:   "itemlist.txt",
			NatureList: "NatureList.txt",
			Timeout:    30 * time.Second,
		},
		Assets: AssetsConfig{
			PictureDir:   "picture",
			Root:         ".",
			ProbeTimeout: 5 * time.Second,
		},
		Editor: EditorConfig{
			DefaultHeldItemID:   "1",
			DefaultHeldItemName: "大师球",
			NotificationTTL:     2400 * time.Millisecond,
			Locale:              "zh-Hans",
		},
		Database: DatabaseConfig{
			LogRetention: 30 * 24 * time.Hour,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
		Origin: "defaults",
	}
}

// LoadConfig loads config/dexbox.yaml or config/dexbox.toml and .env from
// the working directory.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom("config", ".env")
}

// LoadConfigFrom loads dexbox.yaml, else dexbox.toml, from dir over the
// defaults, then applies the environment. envFile is loaded first when it
// exists; variables already set win over it.
func LoadConfigFrom(dir, envFile string) (*Config, error) {
	config := Default()

	if err := loadYAMLConfig(dir, config); err == nil {
		config.Origin = "yaml"
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	} else if err := loadTOMLConfig(dir, config); err == nil {
		config.Origin = "toml"
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := loadEnvConfig(envFile, config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// loadYAMLConfig attempts to load configuration from YAML file
func loadYAMLConfig(dir string, config *Config) error {
	yamlPath := filepath.Join(dir, "dexbox.yaml")
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		return fmt.Errorf("failed to read YAML config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

// loadTOMLConfig attempts to load configuration from TOML file
func loadTOMLConfig(dir string, config *Config) error {
	tomlPath := filepath.Join(dir, "dexbox.toml")
	if _, err := os.Stat(tomlPath); err != nil {
		return fmt.Errorf("TOML config file not found: %w", err)
	}

	if _, err := toml.DecodeFile(tomlPath, config); err != nil {
		return fmt.Errorf("failed to parse TOML config: %w", err)
	}
	return nil
}

// loadEnvConfig overrides configuration with environment variables
func loadEnvConfig(envFile string, config *Config) error {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("failed to load %s file: %w", envFile, err)
			}
		}
	}

	s := &config.Server
	s.Address = getEnvString("DEXBOX_SERVER_ADDRESS", s.Address)
	s.Mode = getEnvString("DEXBOX_SERVER_MODE", s.Mode)
	s.AllowedOrigins = getEnvStringSlice("DEXBOX_SERVER_ALLOWED_ORIGINS", s.AllowedOrigins)

	d := &config.Data
	d.Source = getEnvString("DEXBOX_DATA_SOURCE", d.Source)
	d.BaseDir = getEnvString("DEXBOX_DATA_BASE_DIR", d.BaseDir)
	d.BaseURL = getEnvString("DEXBOX_DATA_BASE_URL", d.BaseURL)
	d.Dataset = getEnvString("DEXBOX_DATA_DATASET", d.Dataset)
	d.BallList = getEnvString("DEXBOX_DATA_BALL_LIST", d.BallList)
	d.ItemList = getEnvString("DEXBOX_DATA_ITEM_LIST", d.ItemList)
	d.NatureList = getEnvString("DEXBOX_DATA_NATURE_LIST", d.NatureList)
	d.ReloadSchedule = getEnvString("DEXBOX_DATA_RELOAD_SCHEDULE", d.ReloadSchedule)
	d.Timeout = getEnvDuration("DEXBOX_DATA_TIMEOUT", d.Timeout)

	a := &config.Assets
	a.PictureDir = getEnvString("DEXBOX_ASSETS_PICTURE_DIR", a.PictureDir)
	a.Root = getEnvString("DEXBOX_ASSETS_ROOT", a.Root)
	a.ProbeTimeout = getEnvDuration("DEXBOX_ASSETS_PROBE_TIMEOUT", a.ProbeTimeout)

	e := &config.Editor
	e.DefaultHeldItemID = getEnvString("DEXBOX_EDITOR_DEFAULT_HELD_ITEM_ID", e.DefaultHeldItemID)
	e.DefaultHeldItemName = getEnvString("DEXBOX_EDITOR_DEFAULT_HELD_ITEM_NAME", e.DefaultHeldItemName)
	e.NotificationTTL = getEnvDuration("DEXBOX_EDITOR_NOTIFICATION_TTL", e.NotificationTTL)
	e.Locale = getEnvString("DEXBOX_EDITOR_LOCALE", e.Locale)

	db := &config.Database
	db.URL = getEnvString("DEXBOX_DATABASE_URL", getEnvString("DATABASE_URL", db.URL))
	db.LogRetention = getEnvDuration("DEXBOX_DATABASE_LOG_RETENTION", db.LogRetention)

	l := &config.Logger
	l.Level = getEnvString("DEXBOX_LOGGER_LEVEL", l.Level)
	l.Format = getEnvString("DEXBOX_LOGGER_FORMAT", l.Format)
	l.SaveToDB = getEnvBool("DEXBOX_LOGGER_SAVE_TO_DB", l.SaveToDB)

	dc := &config.Discord
	dc.WebhookID = getEnvString("DEXBOX_DISCORD_WEBHOOK_ID", dc.WebhookID)
	dc.WebhookToken = getEnvString("DEXBOX_DISCORD_WEBHOOK_TOKEN", dc.WebhookToken)

	return nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	if !isOneOf(c.Server.Mode, "debug", "release", "test") {
		return fmt.Errorf("invalid server mode: %s (must be debug, release, or test)", c.Server.Mode)
	}

	switch c.Data.Source {
	case SourceFile:
		if c.Data.BaseDir == "" {
			return fmt.Errorf("data base_dir cannot be empty for the file source")
		}
	case SourceHTTP:
		if c.Data.BaseURL == "" {
			return fmt.Errorf("data base_url cannot be empty for the http source")
		}
	case SourceDatabase:
		if c.Database.URL == "" {
			return fmt.Errorf("database url cannot be empty for the database source")
		}
	default:
		return fmt.Errorf("invalid data source: %s (must be file, http, or database)", c.Data.Source)
	}
	if c.Data.Dataset == "" {
		return fmt.Errorf("data dataset cannot be empty")
	}
	if c.Data.Timeout <= 0 {
		return fmt.Errorf("data timeout must be positive, got %v", c.Data.Timeout)
	}
	if c.Data.ReloadSchedule != "" {
		if _, err := cron.ParseStandard(c.Data.ReloadSchedule); err != nil {
			return fmt.Errorf("invalid data reload_schedule %q: %w", c.Data.ReloadSchedule, err)
		}
	}

	if c.Assets.PictureDir == "" {
		return fmt.Errorf("assets picture_dir cannot be empty")
	}
	if c.Assets.ProbeTimeout <= 0 {
		return fmt.Errorf("assets probe_timeout must be positive, got %v", c.Assets.ProbeTimeout)
	}

	if c.Editor.NotificationTTL <= 0 {
		return fmt.Errorf("editor notification_ttl must be positive, got %v", c.Editor.NotificationTTL)
	}

	if c.Database.LogRetention < 0 {
		return fmt.Errorf("database log_retention must be non-negative, got %v", c.Database.LogRetention)
	}

	if !isOneOf(c.Logger.Level, "debug", "info", "warn", "error") {
		return fmt.Errorf("invalid logger level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if !isOneOf(c.Logger.Format, "json", "text") {
		return fmt.Errorf("invalid logger format: %s (must be json or text)", c.Logger.Format)
	}
	if c.Logger.SaveToDB && c.Database.URL == "" {
		return fmt.Errorf("logger save_to_db requires database url")
	}

	if (c.Discord.WebhookID == "") != (c.Discord.WebhookToken == "") {
		return fmt.Errorf("discord webhook_id and webhook_token must be set together")
	}

	return nil
}

func isOneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
