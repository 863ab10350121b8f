package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

const defaultSQLitePath = "seat-arranger.db"

// DefaultsConfig holds the settings a fresh snapshot starts with
type DefaultsConfig struct {
	GroupCount   int    `yaml:"groupCount" validate:"omitempty,min=2,max=8"`
	MinPerGroup  int    `yaml:"minPerGroup" validate:"omitempty,min=2,max=8"`
	MaxPerGroup  int    `yaml:"maxPerGroup" validate:"omitempty,min=2,max=8"`
	GenderPolicy string `yaml:"genderPolicy" validate:"omitempty,oneof=balanced random separate"`
}

// S3Config locates the bucket used by the s3 driver
type S3Config struct {
	Bucket    string `yaml:"bucket" validate:"required"`
	Region    string `yaml:"region,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty" validate:"omitempty,url"`
	PathStyle bool   `yaml:"pathStyle,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`
}

// StorageConfig selects where snapshots are kept
type StorageConfig struct {
	Driver      string    `yaml:"driver" validate:"omitempty,oneof=sqlite postgres s3"`
	SQLitePath  string    `yaml:"sqlitePath,omitempty"`
	PostgresURL string    `yaml:"postgresURL,omitempty" validate:"required_if=Driver postgres"`
	S3          *S3Config `yaml:"s3,omitempty" validate:"required_if=Driver s3"`
}

// SheetsConfig names the spreadsheets used by sheets-pull and sheets-push
type SheetsConfig struct {
	RosterSheetID      string `yaml:"rosterSheetID,omitempty"`
	RosterRange        string `yaml:"rosterRange,omitempty"`
	ArrangementSheetID string `yaml:"arrangementSheetID,omitempty"`
	ArrangementRange   string `yaml:"arrangementRange,omitempty"`
}

// RotationConfig describes when the class is reshuffled
type RotationConfig struct {
	RRule string `yaml:"rrule,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Storage  StorageConfig  `yaml:"storage"`
	Sheets   SheetsConfig   `yaml:"sheets,omitempty"`
	Rotation RotationConfig `yaml:"rotation,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from seat_arranger_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment.
// For example, env="test" will look for "seat_arranger_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the resulting default settings and the rrule
// syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := cfg.Settings().Validate(); err != nil {
		return fmt.Errorf("invalid defaults: %w", err)
	}

	if cfg.Rotation.RRule != "" {
		if _, err := rrule.StrToRRule(cfg.Rotation.RRule); err != nil {
			return fmt.Errorf("invalid rrule in rotation: %w", err)
		}
	}

	return nil
}

// Settings returns the configured defaults, filling unset fields from model.DefaultSettings
func (c *Config) Settings() model.Settings {
	settings := model.DefaultSettings()
	if c.Defaults.GroupCount != 0 {
		settings.GroupCount = c.Defaults.GroupCount
	}
	if c.Defaults.MinPerGroup != 0 {
		settings.MinPerGroup = c.Defaults.MinPerGroup
	}
	if c.Defaults.MaxPerGroup != 0 {
		settings.MaxPerGroup = c.Defaults.MaxPerGroup
	}
	if c.Defaults.GenderPolicy != "" {
		settings.Policy = model.GenderPolicy(c.Defaults.GenderPolicy)
	}
	return settings
}

// StorageDriver returns the configured driver, sqlite when unset
func (c *Config) StorageDriver() string {
	if c.Storage.Driver == "" {
		return DriverSQLite
	}
	return c.Storage.Driver
}

// SQLitePath returns the sqlite database path, seat-arranger.db when unset
func (c *Config) SQLitePath() string {
	if c.Storage.SQLitePath == "" {
		return defaultSQLitePath
	}
	return c.Storage.SQLitePath
}

// findConfigFile searches for the config file of an environment
func findConfigFile(env string) (string, error) {
	return findFile(envFileName("seat_arranger_config", env, ".yaml"))
}

// envFileName inserts the environment before the extension, e.g. "seat_arranger_config.test.yaml"
func envFileName(base, env, ext string) string {
	if env == "" {
		return base + ext
	}
	return base + "." + env + ext
}

// findFile looks for a file in the current directory, then in the user's home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
