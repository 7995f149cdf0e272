package loginflow

import (
	"fmt"
	"time"

	"github.com/excelchat/login-e2e/internal/webdriver"
)

// Driver is the browser session a scenario runs in. *webdriver.Session
// implements it.
type Driver interface {
	Navigate(url string, timeout time.Duration) error
	Find(sel webdriver.Selector, timeout time.Duration) (webdriver.Element, error)
	WaitClickable(sel webdriver.Selector, timeout time.Duration) error
	WaitText(sel webdriver.Selector, text string, timeout time.Duration) error
	WaitURL(url string, timeout time.Duration) error
	Close() error
}

// Target describes the page under test and the wait budget.
type Target struct {
	URL     string
	HomeURL string
	Timeout time.Duration
}

// FormFields holds handles to the login form controls. They are only valid
// until the page navigates or the session closes.
type FormFields struct {
	Email    webdriver.Element
	Password webdriver.Element
	Submit   webdriver.Element
}

// Get returns the handle for f.
func (ff FormFields) Get(f Field) (webdriver.Element, error) {
	switch f {
	case FieldEmail:
		return ff.Email, nil
	case FieldPassword:
		return ff.Password, nil
	case FieldSubmit:
		return ff.Submit, nil
	}
	return nil, fmt.Errorf("unknown field %q", f)
}

// Dialog is the login modal on the target page.
type Dialog struct {
	driver Driver
	target Target
}

func NewDialog(driver Driver, target Target) *Dialog {
	return &Dialog{driver: driver, target: target}
}

// Open navigates to the target page, activates the login entry control and
// waits until the dialog and its submit control are interactable.
func (d *Dialog) Open() error {
	if err := d.driver.Navigate(d.target.URL, d.target.Timeout); err != nil {
		return classify("open target page", err)
	}
	entry, err := d.driver.Find(loginEntry, d.target.Timeout)
	if err != nil {
		return classify("locate login entry", err)
	}
	if err := entry.Click(); err != nil {
		return classify("activate login entry", err)
	}
	if err := d.driver.WaitClickable(loginModal, d.target.Timeout); err != nil {
		return classify("wait for login dialog", err)
	}
	if err := d.driver.WaitClickable(submit, d.target.Timeout); err != nil {
		return classify("wait for submit control", err)
	}
	return nil
}

// Fields resolves the email input, password input and submit control.
func (d *Dialog) Fields() (FormFields, error) {
	var ff FormFields
	var err error
	if ff.Email, err = d.driver.Find(email, d.target.Timeout); err != nil {
		return FormFields{}, classify("locate email field", err)
	}
	if ff.Password, err = d.driver.Find(password, d.target.Timeout); err != nil {
		return FormFields{}, classify("locate password field", err)
	}
	if ff.Submit, err = d.driver.Find(submit, d.target.Timeout); err != nil {
		return FormFields{}, classify("locate submit control", err)
	}
	return ff, nil
}

// ExpectAlert waits until message is present in the dialog's alert region.
// It reports true on a match; otherwise the error wraps ErrAssertionTimeout.
func (d *Dialog) ExpectAlert(message string) (bool, error) {
	if err := d.driver.WaitText(alert, message, d.target.Timeout); err != nil {
		return false, classify(fmt.Sprintf("expect alert %q", message), err)
	}
	return true, nil
}

// ExpectModal waits until the dialog with the given id is interactable.
func (d *Dialog) ExpectModal(id string) (bool, error) {
	if err := d.driver.WaitClickable(webdriver.ID(id), d.target.Timeout); err != nil {
		return false, classify(fmt.Sprintf("expect dialog %q", id), err)
	}
	return true, nil
}

// ExpectURL waits until the session URL equals url.
func (d *Dialog) ExpectURL(url string) (bool, error) {
	if err := d.driver.WaitURL(url, d.target.Timeout); err != nil {
		return false, classify(fmt.Sprintf("expect url %q", url), err)
	}
	return true, nil
}

// FollowLink activates the link whose visible text is text.
func (d *Dialog) FollowLink(text string) error {
	link, err := d.driver.Find(webdriver.LinkText(text), d.target.Timeout)
	if err != nil {
		return classify(fmt.Sprintf("locate link %q", text), err)
	}
	if err := link.Click(); err != nil {
		return classify(fmt.Sprintf("follow link %q", text), err)
	}
	return nil
}
