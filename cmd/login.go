package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/wastepay/pspctl/internal/api"
	"github.com/wastepay/pspctl/internal/output"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the PSP API",
	Long: `Log in with your staff email and password. On success the session is
persisted so subsequent commands run authenticated.

Examples:
  pspctl login --email ops@example.com            # password prompted on stdin
  pspctl login --email ops@example.com --password-stdin < secret.txt
  PSPCTL_PASSWORD=... pspctl login --email ops@example.com`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().String("email", "", "staff email address")
	loginCmd.Flags().Bool("password-stdin", false, "read the password from stdin without prompting")
}

// loginInput is validated client-side before any network call.
type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func runLogin(cmd *cobra.Command, args []string) error {
	if err := requirePublic(); err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	fromStdin, _ := cmd.Flags().GetBool("password-stdin")

	password := os.Getenv("PSPCTL_PASSWORD")
	if password == "" {
		var err error
		password, err = readPassword(cmd, fromStdin)
		if err != nil {
			return err
		}
	}

	in := loginInput{Email: email, Password: password}
	if err := validator.New().Struct(in); err != nil {
		return output.ValidationError(validationDetail(err))
	}

	result, err := client.Login(cmd.Context(), in.Email, in.Password)
	switch {
	case errors.Is(err, api.ErrBadCredentials):
		return &output.CLIError{
			Summary:  "invalid email or password",
			ExitCode: output.ExitAuthError,
		}
	case errors.Is(err, api.ErrAccountInactive):
		return &output.CLIError{
			Summary:    "this account has been deactivated",
			Suggestion: "contact your PSP administrator to re-activate it",
			ExitCode:   output.ExitAuthError,
		}
	case err != nil:
		return err
	}

	// First-time accounts get a password-change challenge instead of a session.
	if result.RequirePasswordChange && result.User == nil {
		printer.Warning("Your temporary password must be changed before you can log in")
		printer.Info("Run: pspctl passwd --email %s --change-token %s", result.Email, result.ChangePasswordToken)
		return nil
	}

	if result.User == nil || result.AccessToken == "" {
		return fmt.Errorf("login response missing user or token")
	}

	if err := store.Login(cmd.Context(), result.User, result.Organization,
		result.AccessToken, result.RefreshToken, result.IsTemporaryPassword); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	printer.Success("Logged in as %s (%s)", result.User.FullName(), result.User.Role)
	if result.Organization != nil {
		printer.Info("PSP: %s", result.Organization.CompanyName)
	}
	if result.IsTemporaryPassword {
		printer.Warning("You are on a temporary password; run 'pspctl passwd' before anything else")
	}
	printer.PrintHints("login")
	return nil
}

// readPassword reads the password from stdin, prompting unless --password-stdin.
func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if !fromStdin {
		fmt.Fprint(os.Stderr, "Password: ")
	}
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// validationDetail flattens validator errors into one readable line.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts[i] = fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
		case "email":
			parts[i] = fmt.Sprintf("%s must be a valid email address", strings.ToLower(fe.Field()))
		case "min":
			parts[i] = fmt.Sprintf("%s must be at least %s characters", strings.ToLower(fe.Field()), fe.Param())
		default:
			parts[i] = fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field()))
		}
	}
	return strings.Join(parts, "; ")
}
