package output

import (
	"fmt"

	"github.com/fatih/color"
)

// Exit code constants
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitUsageError  = 2
	ExitAuthError   = 3
	ExitAPIError    = 4
	ExitConfigError = 5
	ExitValidation  = 6
)

// CLIError is a structured error with user-facing context
type CLIError struct {
	Summary    string
	Detail     string
	Suggestion string
	ExitCode   int
}

// Error implements the error interface, returning the summary
func (e *CLIError) Error() string {
	return e.Summary
}

// AuthRequiredError is returned when a protected command runs without a session.
func AuthRequiredError() *CLIError {
	return &CLIError{
		Summary:    "not logged in",
		Suggestion: "run 'pspctl login' first",
		ExitCode:   ExitAuthError,
	}
}

// PasswordChangeRequiredError is returned while the temporary-password flag is set.
func PasswordChangeRequiredError() *CLIError {
	return &CLIError{
		Summary:    "your temporary password must be changed before continuing",
		Suggestion: "run 'pspctl passwd' to set a new password",
		ExitCode:   ExitAuthError,
	}
}

// AccessDeniedError is returned when the session role is not allowed to run a
// command. Terminal state: the only way out is logging in as someone else.
func AccessDeniedError(role string) *CLIError {
	return &CLIError{
		Summary:    fmt.Sprintf("access denied for role %q", role),
		Suggestion: "run 'pspctl logout' and log in with an authorized account",
		ExitCode:   ExitAuthError,
	}
}

// ValidationError wraps a client-side input validation failure. These are
// caught before any network call is made.
func ValidationError(detail string) *CLIError {
	return &CLIError{
		Summary:  "invalid input",
		Detail:   detail,
		ExitCode: ExitValidation,
	}
}

// FormatError prints a structured error message to stderr
func (p *Printer) FormatError(e *CLIError) {
	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "Error: %s\n", e.Summary)
		if e.Detail != "" {
			fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
		}
		if e.Suggestion != "" {
			color.New(color.FgCyan).Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	} else {
		fmt.Fprintf(p.err, "[ERROR] %s\n", e.Summary)
		if e.Detail != "" {
			fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
		}
		if e.Suggestion != "" {
			fmt.Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	}
}
