package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the local development address of the CMS backend
const DefaultAPIURL = "http://localhost:8000/api/v1"

// Config represents the application configuration
type Config struct {
	API         APIConfig     `yaml:"api"`
	Polling     PollingConfig `yaml:"polling"`
	KeyMappings KeyMappings   `yaml:"key_mappings"`
	ColorScheme ColorScheme   `yaml:"theme"`
}

// APIConfig locates the CMS backend
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// PollingConfig holds the background refetch period per resource.
// Zero means the resource is fetched on demand only.
type PollingConfig struct {
	Tasks         time.Duration `yaml:"tasks"`
	Announcements time.Duration `yaml:"announcements"`
	Dashboard     time.Duration `yaml:"dashboard"`
	Users         time.Duration `yaml:"users"`
	Ventures      time.Duration `yaml:"ventures"`
}

// DefaultPolling returns the stock refresh periods
func DefaultPolling() PollingConfig {
	return PollingConfig{
		Tasks:         5 * time.Second,
		Announcements: 5 * time.Second,
		Dashboard:     30 * time.Second,
	}
}

// Default returns a fully populated config without touching the filesystem
func Default() *Config {
	return &Config{
		API:         APIConfig{BaseURL: DefaultAPIURL, Timeout: 15 * time.Second},
		Polling:     DefaultPolling(),
		KeyMappings: DefaultKeyMappings(),
		ColorScheme: *DefaultColorScheme(),
	}
}

// loadThemeFile merges the theme from AGENCY_THEME_FILE when set
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("AGENCY_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// applyEnv lets AGENCY_API_URL override the configured backend
func applyEnv(config *Config) {
	if url := os.Getenv("AGENCY_API_URL"); url != "" {
		config.API.BaseURL = url
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		config := Default()
		loadThemeFile(config)
		applyEnv(config)
		return config, nil
	}

	return LoadFile(configPath)
}

// LoadFile reads the config at path, falling back to defaults if it is missing
func LoadFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := Default()
		loadThemeFile(config)
		applyEnv(config)
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Decode over the defaults so absent keys keep their stock values
	config := Default()
	config.ColorScheme = ColorScheme{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	loadThemeFile(config)
	config.applyDefaults()
	applyEnv(config)

	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Dir returns ~/.agency, the home of the token database and logs
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".agency"), nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "agency", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "agency", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults.
// Polling periods are left alone since an explicit zero disables polling.
func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIURL
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = 15 * time.Second
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

// Path returns where Load and Save look for the config file
func Path() (string, error) {
	return getConfigPath()
}
