package fixture

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/excelchat/login-e2e/internal/loginflow"
)

var validate = validator.New()

// Authenticate applies the login dialog's checks in order and returns the
// alert message for the first one that fails, or "" when the login succeeds.
func Authenticate(accounts *AccountStore, email, password string) string {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return loginflow.MsgEmailRequired
	case validate.Var(email, "email") != nil:
		return loginflow.MsgInvalidEmail
	case password == "":
		return loginflow.MsgPasswordRequired
	case !accounts.Exists(email):
		return loginflow.MsgAccountNotFound
	case !accounts.Verify(email, password):
		return loginflow.MsgInvalidCredentials
	}
	return ""
}
