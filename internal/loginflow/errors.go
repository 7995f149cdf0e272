package loginflow

import (
	"errors"
	"fmt"

	"github.com/excelchat/login-e2e/internal/webdriver"
)

var (
	// ErrAssertionTimeout means the expected text or condition never held
	// within the wait budget.
	ErrAssertionTimeout = errors.New("assertion timed out")
	// ErrElementNotFound means a required element never appeared.
	ErrElementNotFound = errors.New("required element not found")
)

// classify tags a driver error with the failure kind it represents, keeping
// the driver error in the chain.
func classify(what string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, webdriver.ErrNotFound):
		return fmt.Errorf("%s: %w: %w", what, ErrElementNotFound, err)
	case errors.Is(err, webdriver.ErrTimeout):
		return fmt.Errorf("%s: %w: %w", what, ErrAssertionTimeout, err)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

// IsTimeout reports whether err is either failure kind; both are bounded-wait
// expiries.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrAssertionTimeout) || errors.Is(err, ErrElementNotFound)
}
