package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Transport names for the change feed.
const (
	TransportNone      = "none"
	TransportGoChannel = "gochannel"
	TransportNATS      = "nats"
)

// Config is the resolved clicker configuration.
type Config struct {
	InitialClicks  int
	Theme          string
	LogFile        string
	LogLevel       string
	AutoClickEvery time.Duration
	Feed           Feed
}

// Feed configures where state changes are published.
type Feed struct {
	Transport string
	NATSURL   string
	Topic     string
}

// Enabled reports whether a feed transport is configured.
func (f Feed) Enabled() bool {
	return f.Transport != "" && f.Transport != TransportNone
}

const (
	defaultConfigPath = "~/.config/clicker/config.toml"
	defaultLogFile    = "~/.local/state/clicker/clicker.log"
	defaultTheme      = "Dracula"
	defaultLogLevel   = "info"
	defaultNATSURL    = "nats://localhost:4222"
	defaultTopic      = "clicker.state"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Theme:    defaultTheme,
		LogFile:  mustExpand(defaultLogFile),
		LogLevel: defaultLogLevel,
		Feed: Feed{
			Transport: TransportNone,
			NATSURL:   defaultNATSURL,
			Topic:     defaultTopic,
		},
	}
}

// Load locates and parses the clicker config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		InitialClicks  int    `toml:"initial_clicks"`
		Theme          string `toml:"theme"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
		AutoClickEvery string `toml:"auto_click_every"`
		Feed           struct {
			Transport string `toml:"transport"`
			NATSURL   string `toml:"nats_url"`
			Topic     string `toml:"topic"`
		} `toml:"feed"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.InitialClicks < 0 {
		return Config{}, fmt.Errorf("initial_clicks must not be negative, got %d", raw.InitialClicks)
	}
	cfg.InitialClicks = raw.InitialClicks

	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = defaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("unknown log_level %q", raw.LogLevel)
	}

	if every := strings.TrimSpace(raw.AutoClickEvery); every != "" {
		d, err := time.ParseDuration(every)
		if err != nil {
			return Config{}, fmt.Errorf("parse auto_click_every: %w", err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("auto_click_every must not be negative, got %s", d)
		}
		cfg.AutoClickEvery = d
	}

	transport := strings.ToLower(strings.TrimSpace(raw.Feed.Transport))
	switch transport {
	case "":
		transport = TransportNone
	case TransportNone, TransportGoChannel, TransportNATS:
	default:
		return Config{}, fmt.Errorf("unknown feed transport %q", raw.Feed.Transport)
	}
	cfg.Feed.Transport = transport
	if url := strings.TrimSpace(raw.Feed.NATSURL); url != "" {
		cfg.Feed.NATSURL = url
	}
	if topic := strings.TrimSpace(raw.Feed.Topic); topic != "" {
		cfg.Feed.Topic = topic
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
