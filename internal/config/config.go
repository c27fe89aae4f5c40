// Load envs from .env
// Load YAML config
// Resolve credentials (env first, then OS keychain)
// Validate config
// Provide default values

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go-jobsearch-automation/internal/secrets"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

// Credentials for the LinkedIn login form. Secret is never printed.
type Credentials struct {
	Identifier string
	Secret     string
}

func (c Credentials) String() string {
	return c.Identifier + " (password redacted)"
}

type BrowserConfig struct {
	Driver       string `yaml:"driver"`
	Headless     bool   `yaml:"headless"`
	SnapshotPath string `yaml:"snapshot_path"`
}

type Timeouts struct {
	Wait          time.Duration `yaml:"wait"`
	PollInterval  time.Duration `yaml:"poll_interval"`
	LoginLandmark time.Duration `yaml:"login_landmark"`
	StaleBackoff  time.Duration `yaml:"stale_backoff"`
	Run           time.Duration `yaml:"run"`
}

type Config struct {
	Email          string `yaml:"email" env:"LINKEDIN_EMAIL"`
	Password       string `yaml:"-" env:"LINKEDIN_PASSWORD"`
	KeyringAccount string `yaml:"keyring_account"`
	SearchTerm     string `yaml:"search_term" env:"SEARCH_TERM"`
	//Pages
	LandingURL string `yaml:"landing_url"`
	JobsURL    string `yaml:"jobs_url"`
	//Browser and waits
	Browser     BrowserConfig `yaml:"browser"`
	Timeouts    Timeouts      `yaml:"timeouts"`
	MaxAttempts int           `yaml:"max_attempts"`
	//Reporting
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	ScreenshotDir  string `yaml:"screenshot_dir"`
	//Server
	Port string `yaml:"port" env:"PORT"`
}

// Credentials returns the login pair for the Authenticator.
func (c *Config) Credentials() Credentials {
	return Credentials{Identifier: c.Email, Secret: c.Password}
}

// TelegramEnabled is true when both token and chat id are set.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// passwordLookup reads the password from the OS keychain.
var passwordLookup = secrets.GetLinkedInPassword

// Option adjusts the config after env overrides and before validation.
type Option func(*Config)

// WithSearchTerm overrides the configured search term when term is not blank.
func WithSearchTerm(term string) Option {
	return func(c *Config) {
		if strings.TrimSpace(term) != "" {
			c.SearchTerm = term
		}
	}
}

// Load reads the config from CONFIG_PATH (or configs/config.yaml) and exits on error.
func Load(opts ...Option) *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	cfg, err := LoadFrom(path, opts...)
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	return cfg
}

// LoadFrom reads path (a missing file is only a warning), applies env overrides,
// resolves the password and validates the result.
func LoadFrom(path string, opts ...Option) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("⚠️ Could not read %s: %v", path, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.applyDefaults()

	if cfg.Password == "" && cfg.Browser.Driver != "snapshot" {
		pw, err := passwordLookup(cfg.KeyringAccount)
		if err != nil {
			return nil, err
		}
		cfg.Password = pw
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LINKEDIN_EMAIL"); v != "" {
		c.Email = v
	}
	if v := os.Getenv("LINKEDIN_PASSWORD"); v != "" {
		c.Password = v
	}
	if v := os.Getenv("SEARCH_TERM"); v != "" {
		c.SearchTerm = v
	}
	if v := os.Getenv("BROWSER_DRIVER"); v != "" {
		c.Browser.Driver = v
	}
	if v := os.Getenv("HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid HEADLESS: %w", err)
		}
		c.Browser.Headless = headless
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Browser.Driver == "" {
		c.Browser.Driver = "playwright"
	}
	if c.KeyringAccount == "" {
		c.KeyringAccount = secrets.KeyringAccount(c.Email)
	}
	if c.Timeouts.Wait <= 0 {
		c.Timeouts.Wait = 10 * time.Second
	}
	if c.Timeouts.PollInterval <= 0 {
		c.Timeouts.PollInterval = 500 * time.Millisecond
	}
	if c.Timeouts.LoginLandmark <= 0 {
		c.Timeouts.LoginLandmark = 15 * time.Second
	}
	if c.Timeouts.StaleBackoff <= 0 {
		c.Timeouts.StaleBackoff = time.Second
	}
	if c.Timeouts.Run <= 0 {
		c.Timeouts.Run = 10 * time.Minute
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "logs/screenshots"
	}
	if c.Port == "" {
		c.Port = "8080"
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	var errs []error
	switch c.Browser.Driver {
	case "playwright", "chromedp":
		if strings.TrimSpace(c.Email) == "" {
			errs = append(errs, errors.New("LINKEDIN_EMAIL is required"))
		}
		if c.Password == "" {
			errs = append(errs, errors.New("LINKEDIN_PASSWORD is required"))
		}
	case "snapshot":
		if c.Browser.SnapshotPath == "" {
			errs = append(errs, errors.New("browser.snapshot_path is required for the snapshot driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown browser driver %q", c.Browser.Driver))
	}
	if strings.TrimSpace(c.SearchTerm) == "" {
		errs = append(errs, errors.New("SEARCH_TERM is required"))
	}
	return errors.Join(errs...)
}
