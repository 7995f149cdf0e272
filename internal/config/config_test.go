package config

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultTargetURL, cfg.Target.URL)
	assert.Equal(t, 20*time.Second, cfg.Target.Timeout)
	assert.Equal(t, "chromium", cfg.Browser.Name)
	assert.True(t, cfg.Browser.Headless)
	assert.True(t, cfg.Browser.Maximize)
	assert.True(t, cfg.Fixture.Enabled)
	assert.Equal(t, "/solutions/excel-chat/", cfg.Fixture.BasePath)
	assert.Equal(t, "release", cfg.Fixture.Mode)
	assert.NotEqual(t, cfg.Credentials.Password, cfg.Credentials.WrongPassword)
	assert.NotEqual(t, cfg.Credentials.RegisteredEmail, cfg.Credentials.UnregisteredEmail)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "login-e2e.yaml")
	yaml := `
target:
  url: https://staging.example.com/excel-chat/
  timeout: 5s
browser:
  name: firefox
  slow_mo: 250ms
credentials:
  registered_email: qa@example.com
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Run("file values override defaults", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "https://staging.example.com/excel-chat/", cfg.Target.URL)
		assert.Equal(t, 5*time.Second, cfg.Target.Timeout)
		assert.Equal(t, "firefox", cfg.Browser.Name)
		assert.Equal(t, 250*time.Millisecond, cfg.Browser.SlowMo)
		assert.Equal(t, "qa@example.com", cfg.Credentials.RegisteredEmail)
		assert.Equal(t, "got1tA!", cfg.Credentials.Password, "unset keys keep defaults")
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("LOGIN_E2E_BROWSER_NAME", "webkit")
		t.Setenv("LOGIN_E2E_TARGET_TIMEOUT", "7s")
		t.Setenv("LOGIN_E2E_FIXTURE_ENABLED", "false")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "webkit", cfg.Browser.Name)
		assert.Equal(t, 7*time.Second, cfg.Target.Timeout)
		assert.False(t, cfg.Fixture.Enabled)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Target:  TargetConfig{URL: DefaultTargetURL, Timeout: DefaultTimeout},
			Browser: BrowserConfig{Name: "chromium", Width: 1280, Height: 720},
			Fixture: FixtureConfig{BasePath: "/"},
		}
	}

	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative target url", func(c *Config) { c.Target.URL = "/excel-chat/" }},
		{"zero timeout", func(c *Config) { c.Target.Timeout = 0 }},
		{"unknown browser", func(c *Config) { c.Browser.Name = "netscape" }},
		{"empty viewport", func(c *Config) { c.Browser.Width = 0 }},
		{"base path without trailing slash", func(c *Config) { c.Fixture.BasePath = "/excel-chat" }},
		{"unknown gin mode", func(c *Config) { c.Fixture.Mode = "production" }},
	}

	require.NoError(t, valid().Validate())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetHomeURL(t *testing.T) {
	testCases := []struct {
		name     string
		config   TargetConfig
		expected string
	}{
		{
			name:     "derived from target with trailing slash",
			config:   TargetConfig{URL: "https://www.got-it.ai/solutions/excel-chat/"},
			expected: "https://www.got-it.ai/solutions/excel-chat/home",
		},
		{
			name:     "derived from target without trailing slash",
			config:   TargetConfig{URL: "http://127.0.0.1:9000/excel-chat"},
			expected: "http://127.0.0.1:9000/excel-chat/home",
		},
		{
			name:     "explicit home url wins",
			config:   TargetConfig{URL: DefaultTargetURL, HomeURL: "https://app.example.com/dashboard"},
			expected: "https://app.example.com/dashboard",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.config.GetHomeURL())
		})
	}
}

func TestUseTargetDropsExplicitHome(t *testing.T) {
	cfg := &Config{Target: TargetConfig{URL: DefaultTargetURL, HomeURL: "https://elsewhere.example.com/home"}}
	cfg.UseTarget("http://127.0.0.1:4000/solutions/excel-chat/")

	assert.Equal(t, "http://127.0.0.1:4000/solutions/excel-chat/home", cfg.Target.GetHomeURL())
}

func TestReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.True(t, Reachable(srv.URL+"/solutions/excel-chat/"), "any HTTP status counts")
	assert.False(t, Reachable("not a url"))

	closed := httptest.NewServer(http.NotFoundHandler())
	addr := closed.URL
	closed.Close()
	assert.False(t, Reachable(addr))
}
