// Package helpers wires the login suite for go test: configuration, the
// optional fixture site and the shared playwright driver.
package helpers

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/excelchat/login-e2e/internal/config"
	"github.com/excelchat/login-e2e/internal/fixture"
	"github.com/excelchat/login-e2e/internal/loginflow"
	"github.com/excelchat/login-e2e/internal/webdriver"
)

// Harness is created once per test binary. Browsers are never shared: every
// scenario gets its own session from the launcher.
type Harness struct {
	Config   *config.Config
	Launcher *webdriver.Launcher
	fixture  *fixture.Server
}

// Start loads configuration, serves the fixture when enabled and starts the
// playwright driver.
func Start() (*Harness, error) {
	cfg, err := config.Load(os.Getenv("LOGIN_E2E_CONFIG"))
	if err != nil {
		return nil, err
	}
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") == "1" {
		cfg.Browser.SkipInstall = true
	}
	h := &Harness{Config: cfg}

	if cfg.Fixture.Enabled {
		site, err := fixture.New(fixture.Options{
			BasePath: cfg.Fixture.BasePath,
			Accounts: []fixture.Account{{Email: cfg.Credentials.RegisteredEmail, Password: cfg.Credentials.Password}},
			Mode:     cfg.Fixture.Mode,
		})
		if err != nil {
			return nil, fmt.Errorf("could not build fixture site: %w", err)
		}
		if h.fixture, err = site.Serve(cfg.Fixture.Addr); err != nil {
			return nil, err
		}
		cfg.UseTarget(h.fixture.URL)
	}
	log.Printf("[e2e-config] target=%s home=%s timeout=%s browser=%s headless=%t",
		cfg.Target.URL, cfg.Target.GetHomeURL(), cfg.Target.Timeout, cfg.Browser.Name, cfg.Browser.Headless)

	if !config.Reachable(cfg.Target.URL) {
		h.Stop()
		return nil, fmt.Errorf("target %s is unreachable", cfg.Target.URL)
	}

	if h.Launcher, err = webdriver.Start(cfg.Browser); err != nil {
		h.Stop()
		return nil, err
	}
	return h, nil
}

// Stop releases the driver and the fixture server.
func (h *Harness) Stop() {
	if h.Launcher != nil {
		if err := h.Launcher.Stop(); err != nil {
			log.Printf("[e2e] %v", err)
		}
	}
	if h.fixture != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.fixture.Shutdown(ctx); err != nil {
			log.Printf("[e2e] %v", err)
		}
	}
}

// Target returns the page under test.
func (h *Harness) Target() loginflow.Target {
	return loginflow.Target{
		URL:     h.Config.Target.URL,
		HomeURL: h.Config.Target.GetHomeURL(),
		Timeout: h.Config.Target.Timeout,
	}
}

// Scenarios returns the catalog for the configured credentials.
func (h *Harness) Scenarios() []loginflow.Scenario {
	return loginflow.Catalog(h.Config.Credentials, h.Config.Target.GetHomeURL())
}

// Runner returns a runner logging through t. Failed scenarios leave a
// screenshot under ./test-results/screenshots unless report.screenshot_dir
// says otherwise.
func (h *Harness) Runner(t *testing.T) *loginflow.Runner {
	t.Helper()
	dir := h.Config.Report.ScreenshotDir
	if dir == "" {
		dir = "./test-results/screenshots"
	}
	return &loginflow.Runner{
		NewSession:    loginflow.FromLauncher(h.Launcher),
		Target:        h.Target(),
		ScreenshotDir: dir,
		Logf:          t.Logf,
	}
}

// OpenDialog creates a session for t, opens the login dialog and closes the
// session when t finishes.
func (h *Harness) OpenDialog(t *testing.T) *loginflow.Dialog {
	t.Helper()
	session, err := h.Launcher.NewSession()
	if err != nil {
		t.Fatalf("could not create browser session: %v", err)
	}
	t.Cleanup(func() {
		if err := session.Close(); err != nil {
			t.Errorf("teardown: %v", err)
		}
	})

	dialog := loginflow.NewDialog(session, h.Target())
	if err := dialog.Open(); err != nil {
		t.Fatalf("could not open login dialog: %v", err)
	}
	return dialog
}
