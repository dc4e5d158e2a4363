// Package cmd contains all CLI commands for pspctl
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wastepay/pspctl/internal/api"
	"github.com/wastepay/pspctl/internal/config"
	"github.com/wastepay/pspctl/internal/guard"
	"github.com/wastepay/pspctl/internal/output"
	"github.com/wastepay/pspctl/internal/session"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
	cfg     *config.Config
	logger  *slog.Logger
	store   *session.Store
	client  *api.Client
	printer *output.Printer
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pspctl",
	Short: "WastePay PSP admin console",
	Long: `pspctl is the admin console for a WastePay payment-service-provider
account: customers, invoices, payments, field agents, pickups, and
settings, from the terminal.

Example usage:
  pspctl login --email ops@example.com   # Authenticate against the PSP API
  pspctl dashboard                       # Show the cached dashboard summary
  pspctl customers list --status active  # List customers with filters
  pspctl invoices list --range this-month --watch
  pspctl settings show                   # Wards, streets, rates, categories`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Errors are printed here, structured when possible; the caller only maps the
// exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var cliErr *output.CLIError
	switch {
	case printer == nil:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	case errors.As(err, &cliErr):
		printer.FormatError(cliErr)
	default:
		printer.Error("%s", err)
	}
	return err
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.ExitCode
	}
	switch {
	case errors.Is(err, api.ErrBadCredentials),
		errors.Is(err, api.ErrAccountInactive),
		errors.Is(err, api.ErrUnauthorized),
		errors.Is(err, api.ErrForbidden):
		return output.ExitAuthError
	case errors.Is(err, api.ErrUnavailable):
		return output.ExitAPIError
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return output.ExitAPIError
	}
	return output.ExitGeneral
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .pspctl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
}

// initApp loads config, sets up logging, and restores the session. Hydration
// happens here, exactly once, before any command (or guard) runs.
func initApp() error {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return &output.CLIError{
			Summary:  "configuration error",
			Detail:   err.Error(),
			ExitCode: output.ExitConfigError,
		}
	}

	if cfg.Logging.Level == "debug" || verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	printer = output.NewPrinterWithOptions(output.PrinterOptions{
		ColorMode:    output.ColorAuto,
		ConfigColors: cfg.Output.Colors,
		Quiet:        quiet,
	})

	storage, err := session.NewFileStorage(cfg.State.Dir)
	if err != nil {
		return &output.CLIError{
			Summary:  "cannot open session state directory",
			Detail:   err.Error(),
			ExitCode: output.ExitConfigError,
		}
	}

	store = session.NewStore(storage, logger)
	store.Hydrate()

	client = api.New(api.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		Logger:    logger,
	}, store)
	store.SetSummaryFetcher(client.DashboardSummary)

	logger.Debug("pspctl initialized",
		"api_base_url", cfg.API.BaseURL,
		"state_dir", cfg.State.Dir,
		"session_state", store.State().String(),
	)

	return nil
}

// requireAuth gates a protected command on the session, translating guard
// decisions into structured errors.
func requireAuth(allowedRoles ...string) error {
	snap := store.Snapshot()
	switch guard.Protected(snap, allowedRoles...) {
	case guard.DecisionAllow:
		return nil
	case guard.DecisionRedirectLogin:
		return output.AuthRequiredError()
	case guard.DecisionRedirectPasswordChange:
		return output.PasswordChangeRequiredError()
	case guard.DecisionAccessDenied:
		return output.AccessDeniedError(snap.Role)
	default:
		return fmt.Errorf("session not hydrated")
	}
}

// requirePublic gates logged-out-only commands (login).
func requirePublic() error {
	snap := store.Snapshot()
	switch guard.PublicOnly(snap) {
	case guard.DecisionAllow:
		return nil
	case guard.DecisionRedirectPasswordChange:
		return output.PasswordChangeRequiredError()
	case guard.DecisionRedirectDashboard:
		email := ""
		if snap.User != nil {
			email = snap.User.Email
		}
		return &output.CLIError{
			Summary:    fmt.Sprintf("already logged in as %s", email),
			Suggestion: "run 'pspctl logout' first to switch accounts",
			ExitCode:   output.ExitAuthError,
		}
	default:
		return fmt.Errorf("session not hydrated")
	}
}
