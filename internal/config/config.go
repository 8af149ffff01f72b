package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultDBPath           = "pulse.db"
	defaultLogLevel         = "info"
	defaultPerPage          = 10
	defaultScrollThreshold  = 5
	defaultSwipeThreshold   = 10
	defaultDismissThreshold = 4
	defaultRequestTimeout   = 10 * time.Second
	defaultStoryPolicy      = "clamp"
)

// Config holds runtime settings for the CLI app.
type Config struct {
	APIBaseURL string `yaml:"api_base_url"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	DBPath     string `yaml:"db_path"`
	LogPath    string `yaml:"log_path"`
	LogLevel   string `yaml:"log_level"`

	PerPage int `yaml:"per_page"`
	// Rows left below the viewport before the next feed page is requested.
	ScrollThreshold int `yaml:"scroll_threshold"`
	// Drag distances, in terminal cells, for story gestures.
	SwipeThreshold   int `yaml:"swipe_threshold"`
	DismissThreshold int `yaml:"dismiss_threshold"`

	RequestTimeout time.Duration `yaml:"request_timeout"`
	StoryPolicy    string        `yaml:"story_policy"`
}

// LoadFromEnv reads the optional file named by PULSE_CONFIG, then applies env overrides.
func LoadFromEnv() (Config, error) {
	return Load(os.Getenv("PULSE_CONFIG"))
}

func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %s", key, v)
		}
		*dst = n
		return nil
	}

	setString("PULSE_API_BASE_URL", &c.APIBaseURL)
	setString("PULSE_USERNAME", &c.Username)
	setString("PULSE_PASSWORD", &c.Password)
	setString("PULSE_DB_PATH", &c.DBPath)
	setString("PULSE_LOG_PATH", &c.LogPath)
	setString("PULSE_LOG_LEVEL", &c.LogLevel)
	setString("PULSE_STORY_POLICY", &c.StoryPolicy)

	for key, dst := range map[string]*int{
		"PULSE_PER_PAGE":          &c.PerPage,
		"PULSE_SCROLL_THRESHOLD":  &c.ScrollThreshold,
		"PULSE_SWIPE_THRESHOLD":   &c.SwipeThreshold,
		"PULSE_DISMISS_THRESHOLD": &c.DismissThreshold,
	} {
		if err := setInt(key, dst); err != nil {
			return err
		}
	}

	if v := os.Getenv("PULSE_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PULSE_REQUEST_TIMEOUT must be a duration: %s", v)
		}
		c.RequestTimeout = d
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.DBPath == "" {
		c.DBPath = defaultDBPath
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.PerPage == 0 {
		c.PerPage = defaultPerPage
	}
	if c.ScrollThreshold == 0 {
		c.ScrollThreshold = defaultScrollThreshold
	}
	if c.SwipeThreshold == 0 {
		c.SwipeThreshold = defaultSwipeThreshold
	}
	if c.DismissThreshold == 0 {
		c.DismissThreshold = defaultDismissThreshold
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.StoryPolicy == "" {
		c.StoryPolicy = defaultStoryPolicy
	}
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("PULSE_API_BASE_URL is required")
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LogLevel must be debug, info, warn or error: %s", c.LogLevel)
	}
	if c.PerPage < 1 || c.PerPage > 100 {
		return fmt.Errorf("PerPage must be between 1 and 100: %d", c.PerPage)
	}
	if c.ScrollThreshold < 1 || c.SwipeThreshold < 1 || c.DismissThreshold < 1 {
		return errors.New("scroll, swipe and dismiss thresholds must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("RequestTimeout must be positive: %s", c.RequestTimeout)
	}
	if c.StoryPolicy != "clamp" && c.StoryPolicy != "wrap" {
		return fmt.Errorf("StoryPolicy must be clamp or wrap: %s", c.StoryPolicy)
	}
	return nil
}
