package webdriver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"
)

var (
	// ErrNotFound reports an element that never appeared within the timeout.
	ErrNotFound = errors.New("element not found")
	// ErrTimeout reports a condition that did not hold within the timeout.
	ErrTimeout = errors.New("timed out waiting for condition")
)

// Element is a handle to a located element.
type Element interface {
	Click() error
	SendKeys(text string) error
}

// Session is one browser instance with a single page. Every wait takes its
// timeout explicitly; the session carries no implicit wait.
type Session struct {
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	closed  bool
}

func millis(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

// timeoutErr maps playwright timeouts onto kind, keeping the driver error
// in the message.
func timeoutErr(kind error, what string, err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %s: %v", kind, what, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// Navigate loads url and waits for the DOM to be ready.
func (s *Session) Navigate(url string, timeout time.Duration) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   millis(timeout),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return timeoutErr(ErrTimeout, "navigate to "+url, err)
	}
	return nil
}

// Find waits until sel is attached to the DOM and returns the first match.
func (s *Session) Find(sel Selector, timeout time.Duration) (Element, error) {
	loc := s.page.Locator(sel.Playwright()).First()
	err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: millis(timeout),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, sel, err)
		}
		return nil, fmt.Errorf("find %s: %w", sel, err)
	}
	return &element{loc: loc, sel: sel, timeout: timeout}, nil
}

// WaitClickable blocks until sel is visible, stable, enabled and would
// receive a click, without clicking it.
func (s *Session) WaitClickable(sel Selector, timeout time.Duration) error {
	err := s.page.Locator(sel.Playwright()).First().Click(playwright.LocatorClickOptions{
		Trial:   playwright.Bool(true),
		Timeout: millis(timeout),
	})
	if err != nil {
		return timeoutErr(ErrTimeout, fmt.Sprintf("%s to be clickable", sel), err)
	}
	return nil
}

// WaitText blocks until the text of sel contains text. Matching is
// case-sensitive.
func (s *Session) WaitText(sel Selector, text string, timeout time.Duration) error {
	err := s.page.Locator(sel.Playwright()).
		Filter(playwright.LocatorFilterOptions{HasText: containsText(text)}).
		First().
		WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateAttached,
			Timeout: millis(timeout),
		})
	if err != nil {
		return timeoutErr(ErrTimeout, fmt.Sprintf("text %q in %s", text, sel), err)
	}
	return nil
}

// WaitURL blocks until the page URL equals url exactly.
func (s *Session) WaitURL(url string, timeout time.Duration) error {
	err := s.page.WaitForURL(exactURL(url), playwright.PageWaitForURLOptions{
		Timeout:   millis(timeout),
		WaitUntil: playwright.WaitUntilStateCommit,
	})
	if err != nil {
		return timeoutErr(ErrTimeout, fmt.Sprintf("url to be %q (currently %q)", url, s.page.URL()), err)
	}
	return nil
}

// containsText matches text literally. A plain string HasText would match
// case-insensitively.
func containsText(text string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(text))
}

// exactURL compares whole URLs. A string pattern would be read as a glob.
func exactURL(url string) func(string) bool {
	return func(u string) bool { return u == url }
}

// URL returns the current page URL.
func (s *Session) URL() string {
	return s.page.URL()
}

// Screenshot writes a full-page PNG to path, creating parent directories.
func (s *Session) Screenshot(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create screenshot dir: %w", err)
	}
	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

// Close releases the page, context and browser. It is safe to call twice.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close page: %w", err))
		}
	}
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close context: %w", err))
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	return errors.Join(errs...)
}

type element struct {
	loc     playwright.Locator
	sel     Selector
	timeout time.Duration
}

func (e *element) Click() error {
	if err := e.loc.Click(playwright.LocatorClickOptions{Timeout: millis(e.timeout)}); err != nil {
		return timeoutErr(ErrTimeout, fmt.Sprintf("click %s", e.sel), err)
	}
	return nil
}

// SendKeys focuses the element and types text key by key, whatever kind of
// element it is.
func (e *element) SendKeys(text string) error {
	err := e.loc.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{Timeout: millis(e.timeout)})
	if err != nil {
		return timeoutErr(ErrTimeout, fmt.Sprintf("send keys to %s", e.sel), err)
	}
	return nil
}
