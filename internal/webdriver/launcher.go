// Package webdriver wraps playwright-go behind the small set of browser
// operations the login suite consumes: sessions, navigation, element lookup,
// clicks, typed input and bounded waits.
package webdriver

import (
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"

	"github.com/excelchat/login-e2e/internal/config"
)

// Launcher owns the playwright driver process and hands out one fresh
// browser per Session.
type Launcher struct {
	pw      *playwright.Playwright
	browser playwright.BrowserType
	cfg     config.BrowserConfig
}

// Start installs the configured browser (unless SkipInstall) and starts the
// playwright driver.
func Start(cfg config.BrowserConfig) (*Launcher, error) {
	runOpts := &playwright.RunOptions{Browsers: []string{cfg.Name}}
	if !cfg.SkipInstall {
		log.Printf("[webdriver] installing playwright driver and %s", cfg.Name)
		if err := playwright.Install(runOpts); err != nil {
			return nil, fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		// Driver may be missing or mismatched; install it and retry once.
		log.Printf("[webdriver] could not start playwright (%v), reinstalling and retrying", err)
		if installErr := playwright.Install(runOpts); installErr != nil {
			log.Printf("[webdriver] reinstall failed: %v", installErr)
		}
		pw, err = playwright.Run(runOpts)
		if err != nil {
			return nil, fmt.Errorf("could not start playwright after retry: %w", err)
		}
	}

	var bt playwright.BrowserType
	switch cfg.Name {
	case "firefox":
		bt = pw.Firefox
	case "webkit":
		bt = pw.WebKit
	default:
		bt = pw.Chromium
	}

	log.Printf("[webdriver] playwright started: browser=%s headless=%t", cfg.Name, cfg.Headless)
	return &Launcher{pw: pw, browser: bt, cfg: cfg}, nil
}

// NewSession launches a new browser with its own context and page. The
// caller owns the session and must Close it.
func (l *Launcher) NewSession() (*Session, error) {
	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.cfg.Headless),
		SlowMo:   playwright.Float(float64(l.cfg.SlowMo.Milliseconds())),
	}
	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: l.cfg.Width, Height: l.cfg.Height},
	}
	// A headed chromium can be truly maximised; everywhere else the large
	// configured viewport stands in for it.
	if l.cfg.Maximize && !l.cfg.Headless && l.cfg.Name == "chromium" {
		launchOpts.Args = []string{"--start-maximized"}
		contextOpts.Viewport = nil
		contextOpts.NoViewport = playwright.Bool(true)
	}

	browser, err := l.browser.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("could not launch %s: %w", l.cfg.Name, err)
	}

	bctx, err := browser.NewContext(contextOpts)
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		_ = browser.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	return &Session{browser: browser, context: bctx, page: page}, nil
}

// Stop shuts down the playwright driver. Sessions must be closed first.
func (l *Launcher) Stop() error {
	if l == nil || l.pw == nil {
		return nil
	}
	if err := l.pw.Stop(); err != nil {
		return fmt.Errorf("could not stop playwright: %w", err)
	}
	return nil
}
