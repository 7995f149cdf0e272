package loginflow

import (
	"fmt"
	"strings"

	"github.com/excelchat/login-e2e/internal/config"
)

// Field names a control of the login form.
type Field string

const (
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
	FieldSubmit   Field = "submit"
)

// Input is text typed into one form control.
type Input struct {
	Field Field  `yaml:"field"`
	Text  string `yaml:"text"`
}

// Outcome is the kind of terminal UI state a scenario asserts.
type Outcome string

const (
	OutcomeAlert Outcome = "alert"
	OutcomeModal Outcome = "modal"
	OutcomeURL   Outcome = "url"
)

// Expectation is the single assertion of a scenario. Only the field matching
// Kind is used.
type Expectation struct {
	Kind    Outcome `yaml:"kind"`
	Message string  `yaml:"message,omitempty"`
	Modal   string  `yaml:"modal,omitempty"`
	URL     string  `yaml:"url,omitempty"`
}

func (e Expectation) String() string {
	switch e.Kind {
	case OutcomeAlert:
		return fmt.Sprintf("alert %q", e.Message)
	case OutcomeModal:
		return fmt.Sprintf("dialog #%s interactable", e.Modal)
	case OutcomeURL:
		return fmt.Sprintf("url = %s", e.URL)
	}
	return string(e.Kind)
}

// Scenario is one independent login-dialog test case. A scenario either
// follows Link or types Inputs and optionally submits.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Inputs      []Input     `yaml:"inputs,omitempty"`
	Submit      bool        `yaml:"submit"`
	Link        string      `yaml:"link,omitempty"`
	Expect      Expectation `yaml:"expect"`
	Note        string      `yaml:"note,omitempty"`
}

// Execute runs the scenario body against an opened dialog and performs its
// assertion.
func (s Scenario) Execute(d *Dialog) error {
	if s.Link != "" {
		if err := d.FollowLink(s.Link); err != nil {
			return err
		}
	} else {
		fields, err := d.Fields()
		if err != nil {
			return err
		}
		for _, in := range s.Inputs {
			el, err := fields.Get(in.Field)
			if err != nil {
				return err
			}
			if err := el.SendKeys(in.Text); err != nil {
				return classify(fmt.Sprintf("type into %s", in.Field), err)
			}
		}
		if s.Submit {
			if err := fields.Submit.Click(); err != nil {
				return classify("submit", err)
			}
		}
	}

	var ok bool
	var err error
	switch s.Expect.Kind {
	case OutcomeAlert:
		ok, err = d.ExpectAlert(s.Expect.Message)
	case OutcomeModal:
		ok, err = d.ExpectModal(s.Expect.Modal)
	case OutcomeURL:
		ok, err = d.ExpectURL(s.Expect.URL)
	default:
		return fmt.Errorf("scenario %s: unknown outcome %q", s.Name, s.Expect.Kind)
	}
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("scenario %s: %s did not hold", s.Name, s.Expect)
	}
	return nil
}

func alertOf(msg string) Expectation { return Expectation{Kind: OutcomeAlert, Message: msg} }

// Catalog returns the login scenarios in execution order.
func Catalog(creds config.CredentialsConfig, homeURL string) []Scenario {
	return []Scenario{
		{
			Name:        "no_email_no_password",
			Description: "empty email and password",
			Submit:      true,
			Expect:      alertOf(MsgEmailRequired),
		},
		{
			Name:        "no_email_with_password",
			Description: "empty email, password typed",
			// Kept as recorded: the text goes to the submit control, so the
			// password field stays empty.
			Inputs: []Input{{Field: FieldSubmit, Text: "123"}},
			Submit: true,
			Expect: alertOf(MsgEmailRequired),
			Note:   "input is sent to the submit control instead of the password field",
		},
		{
			Name:        "invalid_email_no_password",
			Description: "malformed email without password",
			Inputs:      []Input{{Field: FieldEmail, Text: "123"}},
			Submit:      true,
			Expect:      alertOf(MsgInvalidEmail),
		},
		{
			Name:        "invalid_email_with_password",
			Description: "malformed email with password",
			Inputs: []Input{
				{Field: FieldEmail, Text: "123@"},
				{Field: FieldPassword, Text: "123"},
			},
			Submit: true,
			Expect: alertOf(MsgInvalidEmail),
		},
		{
			Name:        "valid_email_no_password",
			Description: "well-formed email without password",
			Inputs:      []Input{{Field: FieldEmail, Text: creds.UnregisteredEmail}},
			Submit:      true,
			Expect:      alertOf(MsgPasswordRequired),
		},
		{
			Name:        "valid_unregistered_email_with_password",
			Description: "unknown account",
			Inputs: []Input{
				{Field: FieldEmail, Text: creds.UnregisteredEmail},
				{Field: FieldPassword, Text: "123"},
			},
			Submit: true,
			Expect: alertOf(MsgAccountNotFound),
		},
		{
			Name:        "valid_registered_email_with_wrong_password",
			Description: "known account, wrong password",
			Inputs: []Input{
				{Field: FieldEmail, Text: creds.RegisteredEmail},
				{Field: FieldPassword, Text: creds.WrongPassword},
			},
			Submit: true,
			Expect: alertOf(MsgInvalidCredentials),
		},
		{
			Name:        "valid_registered_email_with_right_password",
			Description: "successful login lands on home",
			Inputs: []Input{
				{Field: FieldEmail, Text: creds.RegisteredEmail},
				{Field: FieldPassword, Text: creds.Password},
			},
			Submit: true,
			Expect: Expectation{Kind: OutcomeURL, URL: homeURL},
		},
		{
			Name:        "forgot_password",
			Description: "password recovery dialog opens",
			Link:        ForgotPasswordLink,
			Expect:      Expectation{Kind: OutcomeModal, Modal: PasswordRecoveryID},
		},
		{
			Name:        "sign_up",
			Description: "sign-up dialog opens",
			Link:        SignUpLink,
			Expect:      Expectation{Kind: OutcomeModal, Modal: SignUpModalID},
		},
	}
}

// Filter keeps scenarios whose name contains any of the patterns. No
// patterns keeps everything.
func Filter(scenarios []Scenario, patterns ...string) []Scenario {
	if len(patterns) == 0 {
		return scenarios
	}
	var out []Scenario
	for _, s := range scenarios {
		for _, p := range patterns {
			if strings.Contains(s.Name, p) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}
