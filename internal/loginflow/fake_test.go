package loginflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/excelchat/login-e2e/internal/webdriver"
)

const (
	fakeTarget = "https://excelchat.test/solutions/excel-chat/"
	fakeHome   = "https://excelchat.test/solutions/excel-chat/home"
)

var fakeCreds = struct{ email, password, wrong, unknown string }{
	"registered@example.com", "got1tA!", "got1ta!", "unregistered@example.com",
}

// fakeDriver imitates the login page closely enough to run the catalog.
type fakeDriver struct {
	missing     map[webdriver.Selector]bool
	silent      bool // the page never shows validation feedback
	closeErr    error
	typed       map[webdriver.Selector]string
	openModals  map[string]bool
	alertText   string
	url         string
	closes      int
	screenshots []string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		missing:    map[webdriver.Selector]bool{},
		typed:      map[webdriver.Selector]string{},
		openModals: map[string]bool{},
	}
}

func timeout(what string) error {
	return fmt.Errorf("%w: %s", webdriver.ErrTimeout, what)
}

func (f *fakeDriver) Navigate(url string, _ time.Duration) error {
	f.url = url
	return nil
}

func (f *fakeDriver) Find(sel webdriver.Selector, _ time.Duration) (webdriver.Element, error) {
	if f.missing[sel] {
		return nil, fmt.Errorf("%w: %s", webdriver.ErrNotFound, sel)
	}
	return &fakeElement{d: f, sel: sel}, nil
}

func (f *fakeDriver) WaitClickable(sel webdriver.Selector, _ time.Duration) error {
	switch {
	case sel.By == webdriver.ByID && f.openModals[sel.Value]:
		return nil
	case sel == submit && f.openModals[LoginModalID]:
		return nil
	}
	return timeout("clickable " + sel.String())
}

func (f *fakeDriver) WaitText(sel webdriver.Selector, text string, _ time.Duration) error {
	if sel == alert && strings.Contains(f.alertText, text) {
		return nil
	}
	return timeout("text " + text)
}

func (f *fakeDriver) WaitURL(url string, _ time.Duration) error {
	if f.url == url {
		return nil
	}
	return timeout("url " + url)
}

func (f *fakeDriver) Screenshot(path string) error {
	f.screenshots = append(f.screenshots, path)
	return nil
}

func (f *fakeDriver) Close() error {
	f.closes++
	return f.closeErr
}

func (f *fakeDriver) submit() {
	if f.silent {
		return
	}
	addr, pw := f.typed[email], f.typed[password]
	switch {
	case addr == "":
		f.alertText = MsgEmailRequired
	case !strings.Contains(addr, "@") || strings.HasSuffix(addr, "@"):
		f.alertText = MsgInvalidEmail
	case pw == "":
		f.alertText = MsgPasswordRequired
	case addr != fakeCreds.email:
		f.alertText = MsgAccountNotFound
	case pw != fakeCreds.password:
		f.alertText = MsgInvalidCredentials
	default:
		f.url = fakeHome
	}
}

type fakeElement struct {
	d   *fakeDriver
	sel webdriver.Selector
}

func (e *fakeElement) Click() error {
	switch e.sel {
	case loginEntry:
		e.d.openModals[LoginModalID] = true
	case submit:
		e.d.submit()
	case webdriver.LinkText(ForgotPasswordLink):
		e.d.openModals[LoginModalID] = false
		e.d.openModals[PasswordRecoveryID] = true
	case webdriver.LinkText(SignUpLink):
		e.d.openModals[LoginModalID] = false
		e.d.openModals[SignUpModalID] = true
	}
	return nil
}

func (e *fakeElement) SendKeys(text string) error {
	e.d.typed[e.sel] += text
	return nil
}

// fakeFactory hands out a new fakeDriver per session and remembers them.
type fakeFactory struct {
	configure func(*fakeDriver)
	sessions  []*fakeDriver
	err       error
}

func (ff *fakeFactory) New() (Driver, error) {
	if ff.err != nil {
		return nil, ff.err
	}
	d := newFakeDriver()
	if ff.configure != nil {
		ff.configure(d)
	}
	ff.sessions = append(ff.sessions, d)
	return d, nil
}

type recordingObserver struct {
	results []Result
}

func (o *recordingObserver) ObserveScenario(r Result) {
	o.results = append(o.results, r)
}
