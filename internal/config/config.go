// Package config loads the world generator configuration from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// WorldConfig holds generator-wide configuration settings.
type WorldConfig struct {
	World    WorldGenConfig `yaml:"world"`
	Database DatabaseConfig `yaml:"database"`
	Viewer   ViewerConfig   `yaml:"viewer"`
}

// WorldGenConfig holds terrain generation settings.
type WorldGenConfig struct {
	// Name identifies this world in the snapshot store.
	Name string `yaml:"name"`

	// Seed is the world seed. All terrain derives deterministically from it.
	Seed int64 `yaml:"seed"`

	// BlockSize is the side length of a generated block in world cells.
	// Fixed for the lifetime of a world; changing it invalidates saves.
	BlockSize int `yaml:"block_size"`
}

// DatabaseConfig holds snapshot store connection settings.
type DatabaseConfig struct {
	// Driver specifies which database to use: "sqlite" or "postgres"
	Driver string `yaml:"driver"`

	// SQLitePath is the database file path when Driver is "sqlite"
	SQLitePath string `yaml:"sqlite_path"`

	// Postgres holds the connection settings when Driver is "postgres"
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL-specific configuration.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// ViewerConfig holds map preview server settings.
type ViewerConfig struct {
	// ListenAddr is the address the preview server binds to.
	ListenAddr string `yaml:"listen_addr"`

	// AllowedOrigins is a list of origins allowed to connect via WebSocket.
	// Empty list enforces same-origin policy. "*" allows all origins.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxViewport caps the width and height of a single view request.
	MaxViewport int `yaml:"max_viewport"`
}

// DefaultConfig returns a WorldConfig with sensible defaults.
func DefaultConfig() *WorldConfig {
	return &WorldConfig{
		World: WorldGenConfig{
			Name:      "overworld",
			Seed:      0,
			BlockSize: 8,
		},
		Database: DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: "data/worlds.db",
		},
		Viewer: ViewerConfig{
			ListenAddr:     ":8777",
			AllowedOrigins: []string{},
			MaxViewport:    256,
		},
	}
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (*WorldConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	if config.World.BlockSize <= 0 {
		return DefaultConfig(), fmt.Errorf("config: invalid block_size %d", config.World.BlockSize)
	}

	return config, nil
}

// PostgresDSN builds a lib/pq connection string from the settings.
func (c *PostgresConfig) PostgresDSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, sslMode)
}

// IsOriginAllowed checks if the given origin may open a viewer connection.
// An empty allow list enforces same-origin; "*" allows everything.
func (c *ViewerConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" {
			return true
		}
		if allowed == origin {
			return true
		}
	}

	return false
}

// isSameOrigin checks if the origin matches the request host.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // No origin header means a non-browser client
	}

	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
