package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Data      DataConfig
	Canvas    CanvasConfig
	Map       MapConfig
	Location  LocationConfig
	Narration NarrationConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           int
	GinMode        string   // debug, release, test
	TrustedProxies []string // proxies allowed to set X-Forwarded-For; none by default
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// DataConfig points at the boundary and fact resources.
// Values are "embed:<name>", a file path, or an http(s) URL. Facts also
// accept sqlite:// and redis:// locations.
type DataConfig struct {
	Boundaries string
	Facts      string
}

// CanvasConfig describes the auxiliary drawing surface
type CanvasConfig struct {
	ID     string
	Width  int
	Height int
}

// MapConfig holds viewport settings
type MapConfig struct {
	ThemeToggle    bool
	ViewportWidth  int // pixel size used when fitting bounds
	ViewportHeight int
	TileURL        string
	Attribution    string
}

// LocationConfig selects the geolocation capability
type LocationConfig struct {
	Provider       string // geoip, reported, none
	GeoIPDatabase  string
	Timezone       bool
	ReverseGeocode bool
}

// NarrationConfig selects the speech capability
type NarrationConfig struct {
	Command   string // empty disables narration; a missing binary leaves it unavailable
	Args      []string
	QueueSize int
}

// Load reads configuration from .env, file and environment variables
func Load() (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(".env")

	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.history-map")

	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("HISTORY_MAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true) // an empty HISTORY_MAP_NARRATION_COMMAND disables speech
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.trustedproxies", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("data.boundaries", "embed:countries.geojson")
	v.SetDefault("data.facts", "embed:historical_facts.json")
	v.SetDefault("canvas.id", "countryCanvas")
	v.SetDefault("canvas.width", 800)
	v.SetDefault("canvas.height", 400)
	v.SetDefault("map.themetoggle", true)
	v.SetDefault("map.viewportwidth", 1024)
	v.SetDefault("map.viewportheight", 768)
	v.SetDefault("map.tileurl", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png")
	v.SetDefault("map.attribution", "&copy; OpenStreetMap contributors")
	v.SetDefault("location.provider", "reported")
	v.SetDefault("location.geoipdatabase", "")
	v.SetDefault("location.timezone", false)
	v.SetDefault("location.reversegeocode", false)
	v.SetDefault("narration.command", "espeak")
	v.SetDefault("narration.args", []string{})
	v.SetDefault("narration.queuesize", 8)
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
