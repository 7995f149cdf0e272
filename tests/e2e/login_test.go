//go:build e2e

package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/excelchat/login-e2e/internal/loginflow"
)

// TestLoginScenarios runs every catalog scenario in its own browser session.
func TestLoginScenarios(t *testing.T) {
	for _, sc := range harness.Scenarios() {
		t.Run(sc.Name, func(t *testing.T) {
			res := harness.Runner(t).Run(context.Background(), sc)
			if res.Screenshot != "" {
				t.Logf("screenshot: %s", res.Screenshot)
			}
			require.NoError(t, res.Err, "expected %s", sc.Expect)
			t.Logf("passed in %s", res.Duration)
		})
	}
}

func TestLoginFieldsResolve(t *testing.T) {
	dialog := harness.OpenDialog(t)

	fields, err := dialog.Fields()
	require.NoError(t, err)
	assert.NotNil(t, fields.Email)
	assert.NotNil(t, fields.Password)
	assert.NotNil(t, fields.Submit)
}

func TestLoginLinksIgnoreTypedInput(t *testing.T) {
	links := map[string]string{
		loginflow.ForgotPasswordLink: loginflow.PasswordRecoveryID,
		loginflow.SignUpLink:         loginflow.SignUpModalID,
	}
	for link, modal := range links {
		t.Run(modal, func(t *testing.T) {
			dialog := harness.OpenDialog(t)
			fields, err := dialog.Fields()
			require.NoError(t, err)
			require.NoError(t, fields.Email.SendKeys(harness.Config.Credentials.RegisteredEmail))
			require.NoError(t, fields.Password.SendKeys("123"))

			require.NoError(t, dialog.FollowLink(link))
			ok, err := dialog.ExpectModal(modal)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestLoginErrorMessagesDiffer(t *testing.T) {
	creds := harness.Config.Credentials
	attempt := func(t *testing.T, email, password, want string) {
		dialog := harness.OpenDialog(t)
		fields, err := dialog.Fields()
		require.NoError(t, err)
		require.NoError(t, fields.Email.SendKeys(email))
		require.NoError(t, fields.Password.SendKeys(password))
		require.NoError(t, fields.Submit.Click())

		ok, err := dialog.ExpectAlert(want)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	t.Run("unknown account", func(t *testing.T) {
		attempt(t, creds.UnregisteredEmail, creds.WrongPassword, loginflow.MsgAccountNotFound)
	})
	t.Run("known account wrong password", func(t *testing.T) {
		attempt(t, creds.RegisteredEmail, creds.WrongPassword, loginflow.MsgInvalidCredentials)
	})
}
