package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"repohub/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	GitHub GitHubSettings `toml:"github"`
	UI     UISettings     `toml:"ui"`
	Log    LogSettings    `toml:"log"`
}

// GitHubSettings configures API access
type GitHubSettings struct {
	Token   string `toml:"token"`
	BaseURL string `toml:"base_url"` // GitHub Enterprise API root, empty for github.com
	PerPage int    `toml:"per_page"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowDescriptions bool `toml:"show_descriptions"`
	NearEndThreshold int  `toml:"near_end_threshold"` // rows from the end that request the next page
}

// LogSettings configures the log file
type LogSettings struct {
	File string `toml:"file"` // "-" disables logging
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the default path
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultConfigPath()}
}

// NewConfigServiceForPath creates a config service for a specific file
func NewConfigServiceForPath(path string) ConfigService {
	if path == "" {
		path = DefaultConfigPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	cs := NewConfigServiceForPath(path).(*configService)
	cs.bus = bus
	return cs
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/repohub/config.toml
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "config.toml"
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "repohub", "config.toml")
}

// DefaultLogPath returns the default log file location
func DefaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "repohub", "repohub.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "repohub.log"
	}
	return filepath.Join(home, ".local", "state", "repohub", "repohub.log")
}

// Path returns the file this service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file, merged over the
// defaults and overridden by the environment. A missing file is not an error.
func (cs *configService) Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(cs.filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path; the file must exist
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return (&configService{filePath: path}).Load()
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold a token
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variables on top of file values
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if base := os.Getenv("REPOHUB_GITHUB_BASE_URL"); base != "" {
		cfg.GitHub.BaseURL = base
	}
	if file := os.Getenv("REPOHUB_LOG_FILE"); file != "" {
		cfg.Log.File = file
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.GitHub.PerPage < 1 || c.GitHub.PerPage > 100 {
		return fmt.Errorf("github.per_page must be between 1 and 100, got %d", c.GitHub.PerPage)
	}
	if c.UI.NearEndThreshold < 0 {
		return fmt.Errorf("ui.near_end_threshold must not be negative, got %d", c.UI.NearEndThreshold)
	}
	return nil
}

// LogPath resolves the log file, empty when logging is disabled
func (c *Config) LogPath() string {
	switch c.Log.File {
	case "-":
		return ""
	case "":
		return DefaultLogPath()
	default:
		return c.Log.File
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubSettings{
			PerPage: 30,
		},
		UI: UISettings{
			ShowDescriptions: true,
			NearEndThreshold: 5,
		},
	}
}
