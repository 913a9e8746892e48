package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the notedeck server.
type Config struct {
	// Listen is the address the notedeck server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// ServerURL is the base URL of the notedeck server.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	// LogLevel is the log level used when no --log-level flag is given.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// StaticDir is the directory served under /static.
	StaticDir string `yaml:"static_dir" mapstructure:"static_dir"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// CORS holds the CORS allow-list configuration.
	CORS *CORSConfig `yaml:"cors" mapstructure:"cors"`
	// Auth holds the JWT authentication configuration.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the SQLite database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// CORSConfig holds the CORS allow-list configuration.
type CORSConfig struct {
	// AllowedOrigins is the list of origins allowed to call the API.
	// Requests whose Origin header is missing or not listed are rejected.
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// AuthConfig holds the JWT authentication configuration.
type AuthConfig struct {
	// Enabled indicates whether the /users and /notes routes require a valid access token.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// AccessSecret is the signing secret for access tokens.
	AccessSecret string `yaml:"access_secret" mapstructure:"access_secret"`
	// RefreshSecret is the signing secret for refresh tokens.
	RefreshSecret string `yaml:"refresh_secret" mapstructure:"refresh_secret"`
	// AccessTokenTTL is the access token lifetime in seconds.
	AccessTokenTTL int `yaml:"access_token_ttl" mapstructure:"access_token_ttl"`
	// RefreshTokenTTL is the refresh token lifetime in seconds.
	RefreshTokenTTL int `yaml:"refresh_token_ttl" mapstructure:"refresh_token_ttl"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Configure Viper
	v.SetConfigType("yaml")
	v.SetEnvPrefix("NOTEDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		// Use specific config file
		v.SetConfigFile(path)
	} else {
		// Search for config in common locations
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.notedeck")
		v.AddConfigPath("/etc/notedeck")
	}

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with NOTEDECK_ prefix will override config file values")
	}

	// Validate required configs
	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3500")
	v.SetDefault("server_url", "http://localhost:3500")
	v.SetDefault("log_level", "info")
	v.SetDefault("static_dir", "./public")

	v.SetDefault("database.path", "./data/notedeck.db")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.access_token_ttl", 900)     // 15 minutes
	v.SetDefault("auth.refresh_token_ttl", 604800) // 7 days
}

// validateConfig validates the loaded configuration.
func validateConfig(c *Config) error {
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.CORS == nil || len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin is required")
	}
	if c.Auth != nil && c.Auth.Enabled {
		if c.Auth.AccessSecret == "" {
			return fmt.Errorf("auth.access_secret is required when auth is enabled")
		}
		if c.Auth.RefreshSecret == "" {
			return fmt.Errorf("auth.refresh_secret is required when auth is enabled")
		}
		if c.Auth.AccessTokenTTL <= 0 {
			return fmt.Errorf("auth.access_token_ttl must be positive")
		}
		if c.Auth.RefreshTokenTTL <= 0 {
			return fmt.Errorf("auth.refresh_token_ttl must be positive")
		}
	}
	return nil
}
