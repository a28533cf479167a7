package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type CaptureConfig struct {
	IntervalSeconds int    `toml:"interval_seconds"`
	Command         string `toml:"command"`
}

type SessionConfig struct {
	CheckInIntervalSeconds     int  `toml:"check_in_interval_seconds"`
	DefaultDurationSeconds     int  `toml:"default_duration_seconds"`
	InactivityThresholdSeconds int  `toml:"inactivity_threshold_seconds"`
	AutoEnd                    bool `toml:"auto_end"`
}

type VisionConfig struct {
	Endpoint   string `toml:"endpoint"`
	Model      string `toml:"model"`
	TimeoutMs  int    `toml:"timeout_ms"`
	MaxRetries int    `toml:"max_retries"`
	LogCalls   bool   `toml:"log_calls"`
}

// Config is the full configuration surface. It is an explicit value passed
// into constructors, never ambient state, so tests and multiple sessions
// can run with independent settings.
type Config struct {
	DataDir string        `toml:"data_dir"`
	Capture CaptureConfig `toml:"capture"`
	Session SessionConfig `toml:"session"`
	Vision  VisionConfig  `toml:"vision"`

	// APIKey comes from the environment only, never the config file.
	APIKey string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir: defaultDataDir(),
		Capture: CaptureConfig{
			IntervalSeconds: 10,
		},
		Session: SessionConfig{
			CheckInIntervalSeconds:     60,
			DefaultDurationSeconds:     7200,
			InactivityThresholdSeconds: 300,
			AutoEnd:                    false,
		},
		Vision: VisionConfig{
			Endpoint:   "https://api.openai.com/v1",
			Model:      "gpt-4o",
			TimeoutMs:  30000,
			MaxRetries: 1,
		},
	}
}

// LoadOrCreate reads the config file at path, writing the defaults there
// first when it does not exist, then applies environment overrides.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("checking config file: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return cfg, fmt.Errorf("creating config directory: %w", err)
		}
		data, err := toml.Marshal(cfg)
		if err != nil {
			return cfg, fmt.Errorf("encoding default config: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return cfg, fmt.Errorf("writing default config: %w", err)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overlays FOCUSD_* environment variables onto cfg. Unset or
// malformed values leave the file/default value in place.
func applyEnv(cfg *Config) {
	if v := os.Getenv("FOCUSD_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	applyIntEnv(&cfg.Capture.IntervalSeconds, "FOCUSD_CAPTURE_INTERVAL")
	if v := os.Getenv("FOCUSD_CAPTURE_COMMAND"); v != "" {
		cfg.Capture.Command = v
	}
	applyIntEnv(&cfg.Session.CheckInIntervalSeconds, "FOCUSD_CHECKIN_INTERVAL")
	applyIntEnv(&cfg.Session.DefaultDurationSeconds, "FOCUSD_SESSION_DURATION")
	applyIntEnv(&cfg.Session.InactivityThresholdSeconds, "FOCUSD_INACTIVITY_THRESHOLD")
	if v := os.Getenv("FOCUSD_AUTO_END"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Session.AutoEnd = b
		}
	}
	if v := os.Getenv("FOCUSD_VISION_ENDPOINT"); v != "" {
		cfg.Vision.Endpoint = v
	}
	if v := os.Getenv("FOCUSD_VISION_MODEL"); v != "" {
		cfg.Vision.Model = v
	}
	applyIntEnv(&cfg.Vision.TimeoutMs, "FOCUSD_VISION_TIMEOUT_MS")
	applyIntEnv(&cfg.Vision.MaxRetries, "FOCUSD_VISION_MAX_RETRIES")
	if v := os.Getenv("FOCUSD_VISION_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Vision.LogCalls = b
		}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
}

func applyIntEnv(dst *int, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		*dst = n
	}
}

// SessionsDir returns the session document root.
func (c Config) SessionsDir() string {
	return filepath.Join(c.DataDir, "session_logs")
}

// HistoryDBPath returns the sqlite history index location.
func (c Config) HistoryDBPath() string {
	return filepath.Join(c.DataDir, "history.db")
}

func (c Config) CaptureInterval() time.Duration {
	return time.Duration(c.Capture.IntervalSeconds) * time.Second
}

func (c Config) CheckInInterval() time.Duration {
	return time.Duration(c.Session.CheckInIntervalSeconds) * time.Second
}

func (c Config) DefaultSessionDuration() time.Duration {
	return time.Duration(c.Session.DefaultDurationSeconds) * time.Second
}

func (c Config) InactivityThreshold() time.Duration {
	return time.Duration(c.Session.InactivityThresholdSeconds) * time.Second
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".focusd"
	}
	return filepath.Join(home, ".focusd")
}
