package cmd

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/wastepay/pspctl/internal/api"
	"github.com/wastepay/pspctl/internal/guard"
	"github.com/wastepay/pspctl/internal/output"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the account password",
	Long: `Change your password. Two flows are supported:

Authenticated change (including clearing a temporary password):
  pspctl passwd                          # prompts for current and new password

First-time change with the challenge token printed by 'pspctl login':
  pspctl passwd --email you@example.com --change-token <token>`,
	RunE: runPasswd,
}

func init() {
	rootCmd.AddCommand(passwdCmd)

	passwdCmd.Flags().String("email", "", "account email (first-time flow)")
	passwdCmd.Flags().String("change-token", "", "challenge token from login (first-time flow)")
	passwdCmd.Flags().Bool("password-stdin", false, "read passwords from stdin without prompting")
}

type passwdInput struct {
	NewPassword string `validate:"required,min=8"`
}

func runPasswd(cmd *cobra.Command, args []string) error {
	changeToken, _ := cmd.Flags().GetString("change-token")
	email, _ := cmd.Flags().GetString("email")
	fromStdin, _ := cmd.Flags().GetBool("password-stdin")

	req := api.ChangePasswordRequest{}

	if changeToken != "" {
		// First-time flow: not logged in, authenticated by the challenge token.
		if email == "" {
			return output.ValidationError("--email is required with --change-token")
		}
		req.Email = email
		req.ChangePasswordToken = changeToken
	} else {
		// Regular flow: must hold a session, temporary-password ones included.
		switch guard.PasswordChange(store.Snapshot()) {
		case guard.DecisionAllow:
		case guard.DecisionRedirectLogin:
			return output.AuthRequiredError()
		default:
			return fmt.Errorf("session not hydrated")
		}

		req.Email = store.User().Email

		if !fromStdin {
			fmt.Fprint(cmd.ErrOrStderr(), "Current password: ")
		}
		current, err := readPassword(cmd, true)
		if err != nil {
			return err
		}
		req.CurrentPassword = current
	}

	if !fromStdin {
		fmt.Fprint(cmd.ErrOrStderr(), "New password: ")
	}
	newPassword, err := readPassword(cmd, true)
	if err != nil {
		return err
	}
	req.NewPassword = newPassword

	if err := validator.New().Struct(passwdInput{NewPassword: newPassword}); err != nil {
		return output.ValidationError(validationDetail(err))
	}

	result, err := client.ChangePassword(cmd.Context(), req)
	if errors.Is(err, api.ErrBadCredentials) {
		return &output.CLIError{
			Summary:  "current password or change token rejected",
			ExitCode: output.ExitAuthError,
		}
	}
	if err != nil {
		return err
	}

	// A successful change returns a fresh session with the temporary flag
	// cleared; committing it is what moves the state machine to authenticated.
	if result.User != nil && result.AccessToken != "" {
		if err := store.Login(cmd.Context(), result.User, result.Organization,
			result.AccessToken, result.RefreshToken, false); err != nil {
			return fmt.Errorf("persisting session: %w", err)
		}
		printer.Success("Password changed; logged in as %s", result.User.FullName())
	} else {
		printer.Success("Password changed; run 'pspctl login' with the new password")
	}

	printer.PrintHints("passwd")
	return nil
}
