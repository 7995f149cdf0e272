package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultTargetURL is the live ExcelChat landing page.
	DefaultTargetURL = "https://www.got-it.ai/solutions/excel-chat/"
	// DefaultTimeout is the shared budget for element discovery and condition polling.
	DefaultTimeout = 20 * time.Second

	envPrefix = "LOGIN_E2E"
)

var dotEnvOnce sync.Once

// Config represents the suite configuration
type Config struct {
	Target      TargetConfig      `mapstructure:"target"`
	Browser     BrowserConfig     `mapstructure:"browser"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Fixture     FixtureConfig     `mapstructure:"fixture"`
	Report      ReportConfig      `mapstructure:"report"`
}

type TargetConfig struct {
	URL     string        `mapstructure:"url"`
	HomeURL string        `mapstructure:"home_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type BrowserConfig struct {
	Name        string        `mapstructure:"name"`
	Headless    bool          `mapstructure:"headless"`
	SlowMo      time.Duration `mapstructure:"slow_mo"`
	Maximize    bool          `mapstructure:"maximize"`
	Width       int           `mapstructure:"width"`
	Height      int           `mapstructure:"height"`
	SkipInstall bool          `mapstructure:"skip_install"`
}

// CredentialsConfig holds the accounts the scenarios log in with. The
// registered pair must exist on the target; the unregistered email must not.
type CredentialsConfig struct {
	RegisteredEmail   string `mapstructure:"registered_email"`
	Password          string `mapstructure:"password"`
	WrongPassword     string `mapstructure:"wrong_password"`
	UnregisteredEmail string `mapstructure:"unregistered_email"`
}

type FixtureConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	BasePath string `mapstructure:"base_path"`
	// Mode is the gin mode the fixture router runs in: release, debug or test.
	Mode string `mapstructure:"mode"`
}

type ReportConfig struct {
	Verbose       bool   `mapstructure:"verbose"`
	ScreenshotDir string `mapstructure:"screenshot_dir"`
	MetricsFile   string `mapstructure:"metrics_file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("target.url", DefaultTargetURL)
	v.SetDefault("target.home_url", "")
	v.SetDefault("target.timeout", DefaultTimeout)

	v.SetDefault("browser.name", "chromium")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.slow_mo", time.Duration(0))
	v.SetDefault("browser.maximize", true)
	v.SetDefault("browser.width", 1920)
	v.SetDefault("browser.height", 1080)
	v.SetDefault("browser.skip_install", false)

	v.SetDefault("credentials.registered_email", "registered@example.com")
	v.SetDefault("credentials.password", "got1tA!")
	v.SetDefault("credentials.wrong_password", "got1ta!")
	v.SetDefault("credentials.unregistered_email", "unregistered@example.com")

	v.SetDefault("fixture.enabled", true)
	v.SetDefault("fixture.addr", "127.0.0.1:0")
	v.SetDefault("fixture.base_path", "/solutions/excel-chat/")
	v.SetDefault("fixture.mode", "release")

	v.SetDefault("report.verbose", true)
	v.SetDefault("report.screenshot_dir", "")
	v.SetDefault("report.metrics_file", "")
}

// loadDotEnv loads .env if present. Existing environment variables take
// precedence and are not overwritten.
func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[e2e-config] ignoring unreadable .env: %v", err)
	}
}

// Load builds the configuration from defaults, an optional YAML file, .env and
// LOGIN_E2E_* environment variables, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	dotEnvOnce.Do(loadDotEnv)

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise surface as confusing browser errors.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Target.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid target.url %q", c.Target.URL)
	}
	if c.Target.Timeout <= 0 {
		return fmt.Errorf("target.timeout must be positive, got %s", c.Target.Timeout)
	}
	switch c.Browser.Name {
	case "chromium", "firefox", "webkit":
	default:
		return fmt.Errorf("unsupported browser.name %q (want chromium, firefox or webkit)", c.Browser.Name)
	}
	if c.Browser.Width <= 0 || c.Browser.Height <= 0 {
		return fmt.Errorf("browser viewport must be positive, got %dx%d", c.Browser.Width, c.Browser.Height)
	}
	if !strings.HasPrefix(c.Fixture.BasePath, "/") || !strings.HasSuffix(c.Fixture.BasePath, "/") {
		return fmt.Errorf("fixture.base_path must start and end with '/', got %q", c.Fixture.BasePath)
	}
	switch c.Fixture.Mode {
	case "", "release", "debug", "test":
	default:
		return fmt.Errorf("unsupported fixture.mode %q (want release, debug or test)", c.Fixture.Mode)
	}
	return nil
}

// GetHomeURL returns the authenticated landing page, which defaults to
// "home" under the target page.
func (c *TargetConfig) GetHomeURL() string {
	if c.HomeURL != "" {
		return c.HomeURL
	}
	base := c.URL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + "home"
}

// TimeoutMillis returns the timeout in the unit playwright expects.
func (c *TargetConfig) TimeoutMillis() float64 {
	return float64(c.Timeout.Milliseconds())
}

// UseTarget points the suite at a different landing page, such as a locally
// served fixture. An explicit home URL is dropped so it is derived again.
func (c *Config) UseTarget(targetURL string) {
	c.Target.URL = targetURL
	c.Target.HomeURL = ""
}
