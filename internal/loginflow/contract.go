// Package loginflow drives the ExcelChat login dialog through a browser
// session and asserts the outcome of each login scenario.
package loginflow

import "github.com/excelchat/login-e2e/internal/webdriver"

// DOM identifiers the target page exposes.
const (
	LoginEntryID       = "test-login-button"
	LoginModalID       = "modal-login"
	PasswordRecoveryID = "modal-password-recovery"
	SignUpModalID      = "modal-signup"
	SubmitID           = "login-button"
	EmailName          = "email"
	PasswordName       = "password"

	// AlertXPath is the structural path of the dialog's alert region.
	AlertXPath = "//*[@id='modal-login']/div/div/div[2]/div/div[1]"

	ForgotPasswordLink = "Forgot Your Password?"
	SignUpLink         = "Sign up"
)

// Messages shown in the alert region.
const (
	MsgEmailRequired      = "Please enter email address."
	MsgInvalidEmail       = "You have entered an invalid email address. Please try again."
	MsgPasswordRequired   = "Please enter password."
	MsgAccountNotFound    = "The account you've entered doesn't exist."
	MsgInvalidCredentials = "Invalid email or password."
)

var (
	loginEntry = webdriver.ID(LoginEntryID)
	loginModal = webdriver.ID(LoginModalID)
	submit     = webdriver.ID(SubmitID)
	email      = webdriver.Name(EmailName)
	password   = webdriver.Name(PasswordName)
	alert      = webdriver.XPath(AlertXPath)
)
