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
	"gopkg.in/yaml.v3"

	"github.com/kode4food/flagstaff/pkg/log"
)

type (
	// Config holds configuration settings for the runtime and its server
	Config struct {
		// API Server
		APIHost  string `toml:"api_host" yaml:"api_host"`
		APIPort  int    `toml:"api_port" yaml:"api_port"`
		LogLevel string `toml:"log_level" yaml:"log_level"`

		// Project
		ProjectURL string `toml:"project_url" yaml:"project_url"`
		ProjectKey string `toml:"project_key" yaml:"project_key"`
		Username   string `toml:"username" yaml:"username"`

		// Runtime
		FPS               int  `toml:"fps" yaml:"fps"`
		StageWidth        int  `toml:"stage_width" yaml:"stage_width"`
		StageHeight       int  `toml:"stage_height" yaml:"stage_height"`
		MaxClones         int  `toml:"max_clones" yaml:"max_clones"`
		MaxWarpIterations int  `toml:"max_warp_iterations" yaml:"max_warp_iterations"`
		MaxCallDepth      int  `toml:"max_call_depth" yaml:"max_call_depth"`
		TrackCacheSize    int  `toml:"track_cache_size" yaml:"track_cache_size"`
		TerminalInput     bool `toml:"terminal_input" yaml:"terminal_input"`

		// Cloud Variables
		CloudRedisAddr    string        `toml:"cloud_redis_addr" yaml:"cloud_redis_addr"`
		CloudRedisPrefix  string        `toml:"cloud_redis_prefix" yaml:"cloud_redis_prefix"`
		CloudSyncInterval time.Duration `toml:"cloud_sync_interval" yaml:"cloud_sync_interval"`

		ShutdownTimeout time.Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	}
)

const (
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultCloudSyncInterval = time.Second

	DefaultAPIPort = 8080
	DefaultAPIHost = "0.0.0.0"
	MaxTCPPort     = 65535

	DefaultProjectURL  = "file://."
	DefaultProjectKey  = "project.sb3"
	DefaultUsername    = "player"
	DefaultCloudPrefix = "flagstaff"

	DefaultFPS               = 30
	DefaultStageWidth        = 480
	DefaultStageHeight       = 360
	DefaultMaxClones         = 300
	DefaultMaxWarpIterations = 100_000
	DefaultMaxCallDepth      = 1024
	DefaultTrackCacheSize    = 256

	MaxFPS               = 240
	MaxStageDimension    = 8192
	MaxClones            = 100_000
	MaxWarpIterations    = 100_000_000
	MaxCallDepth         = 1_000_000
	MaxTrackCacheSize    = 1_000_000
	MaxCloudSyncInterval = int64(24 * time.Hour / time.Millisecond)
	MaxShutdownTimeout   = int64(time.Hour / time.Millisecond)
)

var (
	ErrInvalidAPIPort        = errors.New("invalid API port")
	ErrInvalidFPS            = errors.New("fps must be positive")
	ErrInvalidStageSize      = errors.New("stage dimensions must be positive")
	ErrInvalidMaxClones      = errors.New("max clones cannot be negative")
	ErrInvalidWarpIterations = errors.New(
		"max warp iterations must be positive",
	)
	ErrInvalidCallDepth      = errors.New("max call depth must be positive")
	ErrInvalidTrackCacheSize = errors.New(
		"track cache size must be positive",
	)
	ErrInvalidProjectKey = errors.New("project key must not be empty")
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidCloudSync  = errors.New(
		"cloud sync interval must be positive",
	)
	ErrConfigFile        = errors.New("failed to read config file")
	ErrUnknownConfigType = errors.New("unknown config file type")
)

// NewDefaultConfig creates a configuration with sensible defaults for the
// runtime, the control server, and cloud variables
func NewDefaultConfig() *Config {
	return &Config{
		APIPort:           DefaultAPIPort,
		APIHost:           DefaultAPIHost,
		LogLevel:          "info",
		ProjectURL:        DefaultProjectURL,
		ProjectKey:        DefaultProjectKey,
		Username:          DefaultUsername,
		FPS:               DefaultFPS,
		StageWidth:        DefaultStageWidth,
		StageHeight:       DefaultStageHeight,
		MaxClones:         DefaultMaxClones,
		MaxWarpIterations: DefaultMaxWarpIterations,
		MaxCallDepth:      DefaultMaxCallDepth,
		TrackCacheSize:    DefaultTrackCacheSize,
		CloudRedisPrefix:  DefaultCloudPrefix,
		CloudSyncInterval: DefaultCloudSyncInterval,
		ShutdownTimeout:   DefaultShutdownTimeout,
	}
}

// LoadFile overlays the settings present in a TOML or YAML file. Settings
// the file omits keep their current values
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfigFile, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigType, path)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfigFile, err)
	}
	return nil
}

// LoadFromEnv populates configuration values from environment variables.
// Returns an error if any env var cannot be parsed.
func (c *Config) LoadFromEnv() error {
	if apiHost := os.Getenv("API_HOST"); apiHost != "" {
		c.APIHost = apiHost
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.LogLevel = logLevel
	}
	if projectURL := os.Getenv("PROJECT_URL"); projectURL != "" {
		c.ProjectURL = projectURL
	}
	if projectKey := os.Getenv("PROJECT_KEY"); projectKey != "" {
		c.ProjectKey = projectKey
	}
	if username := os.Getenv("PLAYER_USERNAME"); username != "" {
		c.Username = username
	}
	if addr := os.Getenv("CLOUD_REDIS_ADDR"); addr != "" {
		c.CloudRedisAddr = addr
	}
	if prefix := os.Getenv("CLOUD_REDIS_PREFIX"); prefix != "" {
		c.CloudRedisPrefix = prefix
	}
	if term := os.Getenv("TERMINAL_INPUT"); term != "" {
		v, err := strconv.ParseBool(term)
		if err != nil {
			return fmt.Errorf("invalid TERMINAL_INPUT: %q", term)
		}
		c.TerminalInput = v
	}

	if err := loadEnvInt("API_PORT", &c.APIPort, 0, MaxTCPPort); err != nil {
		return err
	}
	if err := loadEnvInt("FPS", &c.FPS, 0, MaxFPS); err != nil {
		return err
	}
	if err := loadEnvInt(
		"STAGE_WIDTH", &c.StageWidth, 0, MaxStageDimension,
	); err != nil {
		return err
	}
	if err := loadEnvInt(
		"STAGE_HEIGHT", &c.StageHeight, 0, MaxStageDimension,
	); err != nil {
		return err
	}
	if err := loadEnvInt(
		"MAX_CLONES", &c.MaxClones, -1, MaxClones,
	); err != nil {
		return err
	}
	if err := loadEnvInt(
		"MAX_WARP_ITERATIONS", &c.MaxWarpIterations, 0, MaxWarpIterations,
	); err != nil {
		return err
	}
	if err := loadEnvInt(
		"MAX_CALL_DEPTH", &c.MaxCallDepth, 0, MaxCallDepth,
	); err != nil {
		return err
	}
	if err := loadEnvInt(
		"TRACK_CACHE_SIZE", &c.TrackCacheSize, 0, MaxTrackCacheSize,
	); err != nil {
		return err
	}

	if err := loadEnvMillis(
		"CLOUD_SYNC_INTERVAL", &c.CloudSyncInterval, MaxCloudSyncInterval,
	); err != nil {
		return err
	}
	if err := loadEnvMillis(
		"SHUTDOWN_TIMEOUT", &c.ShutdownTimeout, MaxShutdownTimeout,
	); err != nil {
		return err
	}

	return nil
}

// FrameInterval returns the time budget of one frame
func (c *Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}

// CloudEnabled reports whether cloud variables are mirrored to Redis
func (c *Config) CloudEnabled() bool {
	return c.CloudRedisAddr != ""
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > MaxTCPPort {
		return fmt.Errorf("%w: %d", ErrInvalidAPIPort, c.APIPort)
	}

	if c.FPS <= 0 || c.FPS > MaxFPS {
		return fmt.Errorf("%w: %d", ErrInvalidFPS, c.FPS)
	}

	if c.StageWidth <= 0 || c.StageHeight <= 0 {
		return fmt.Errorf("%w: %dx%d",
			ErrInvalidStageSize, c.StageWidth, c.StageHeight)
	}

	if c.MaxClones < 0 {
		return ErrInvalidMaxClones
	}

	if c.MaxWarpIterations <= 0 {
		return ErrInvalidWarpIterations
	}

	if c.MaxCallDepth <= 0 {
		return ErrInvalidCallDepth
	}

	if c.TrackCacheSize <= 0 {
		return ErrInvalidTrackCacheSize
	}

	if c.ProjectKey == "" {
		return ErrInvalidProjectKey
	}

	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, c.LogLevel)
	}

	if c.CloudEnabled() && c.CloudSyncInterval <= 0 {
		return ErrInvalidCloudSync
	}

	return nil
}

// loadEnvInt reads key from the environment, parses it as an integer, and
// sets *dst if the value is in the range (min, max]. Returns an error if
// the value cannot be parsed or falls outside the valid range.
func loadEnvInt[T ~int | ~int64](key string, dst *T, min, max T) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, s)
	}
	tv := T(v)
	if tv <= min || tv > max {
		return fmt.Errorf("invalid %s: %d out of range [%d, %d]",
			key, tv, min+1, max)
	}
	*dst = tv
	return nil
}

// loadEnvMillis reads a positive millisecond count into a duration
func loadEnvMillis(key string, dst *time.Duration, max int64) error {
	var ms int64
	if err := loadEnvInt(key, &ms, 0, max); err != nil {
		return err
	}
	if ms > 0 {
		*dst = time.Duration(ms) * time.Millisecond
	}
	return nil
}
