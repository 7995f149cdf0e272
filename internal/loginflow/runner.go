package loginflow

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/excelchat/login-e2e/internal/webdriver"
)

// SessionFactory creates a fresh, exclusively owned session.
type SessionFactory func() (Driver, error)

// FromLauncher adapts a playwright launcher into a SessionFactory.
func FromLauncher(l *webdriver.Launcher) SessionFactory {
	return func() (Driver, error) {
		s, err := l.NewSession()
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Result is the outcome of one scenario.
type Result struct {
	Scenario   string
	Passed     bool
	Err        error
	Duration   time.Duration
	Screenshot string
}

// Observer receives every finished result.
type Observer interface {
	ObserveScenario(Result)
}

// Runner executes scenarios one at a time, each in its own session.
type Runner struct {
	NewSession    SessionFactory
	Target        Target
	ScreenshotDir string
	Observer      Observer
	// Logf defaults to log.Printf.
	Logf func(format string, args ...any)
}

func (r *Runner) logf(format string, args ...any) {
	if r.Logf != nil {
		r.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}

type screenshotter interface {
	Screenshot(path string) error
}

// Run acquires a session, opens the dialog, executes sc and releases the
// session on every exit path.
func (r *Runner) Run(ctx context.Context, sc Scenario) (res Result) {
	start := time.Now()
	res.Scenario = sc.Name
	defer func() {
		res.Duration = time.Since(start)
		res.Passed = res.Err == nil
		if r.Observer != nil {
			r.Observer.ObserveScenario(res)
		}
	}()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	driver, err := r.NewSession()
	if err != nil {
		res.Err = fmt.Errorf("setup: could not create session: %w", err)
		return res
	}
	defer func() {
		if res.Err != nil {
			res.Screenshot = r.capture(driver, sc.Name)
		}
		if err := driver.Close(); err != nil {
			r.logf("[loginflow] %s: teardown: %v", sc.Name, err)
			if res.Err == nil {
				res.Err = fmt.Errorf("teardown: %w", err)
			}
		}
	}()

	dialog := NewDialog(driver, r.Target)
	if err := dialog.Open(); err != nil {
		res.Err = fmt.Errorf("setup: %w", err)
		return res
	}
	if sc.Note != "" {
		r.logf("[loginflow] %s: note: %s", sc.Name, sc.Note)
	}
	res.Err = sc.Execute(dialog)
	return res
}

// RunAll runs every scenario to completion before starting the next. A
// failure does not stop the run; a cancelled ctx does.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		if ctx.Err() != nil {
			r.logf("[loginflow] run cancelled before %s", sc.Name)
			break
		}
		r.logf("[loginflow] === RUN %s", sc.Name)
		res := r.Run(ctx, sc)
		if res.Passed {
			r.logf("[loginflow] --- PASS %s (%s)", sc.Name, res.Duration.Round(time.Millisecond))
		} else {
			r.logf("[loginflow] --- FAIL %s (%s): %v", sc.Name, res.Duration.Round(time.Millisecond), res.Err)
		}
		results = append(results, res)
	}
	return results
}

func (r *Runner) capture(driver Driver, name string) string {
	if r.ScreenshotDir == "" {
		return ""
	}
	shot, ok := driver.(screenshotter)
	if !ok {
		return ""
	}
	path := filepath.Join(r.ScreenshotDir, fmt.Sprintf("%s_%d.png", name, time.Now().Unix()))
	if err := shot.Screenshot(path); err != nil {
		r.logf("[loginflow] %s: screenshot: %v", name, err)
		return ""
	}
	return path
}
