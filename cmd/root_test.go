package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/wastepay/pspctl/internal/api"
	"github.com/wastepay/pspctl/internal/output"
)

// setupTest points pspctl at a throwaway state dir and the given API base URL
// so every test runs fully isolated and offline unless it spins up a server.
func setupTest(t *testing.T, baseURL string) string {
	t.Helper()
	stateDir := t.TempDir()
	t.Setenv("PSPCTL_STATE_DIR", stateDir)
	if baseURL == "" {
		baseURL = "http://127.0.0.1:1/api/v1"
	}
	t.Setenv("PSPCTL_API_BASE_URL", baseURL)
	t.Setenv("NO_COLOR", "1")
	cfgFile = ""
	return stateDir
}

// execute runs pspctl with the given arguments against the real command tree.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Help(t *testing.T) {
	setupTest(t, "")

	out, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("root --help failed: %v", err)
	}
	if !strings.Contains(out, "pspctl") {
		t.Errorf("expected help output to contain 'pspctl', got:\n%s", out)
	}
}

func TestRootCmd_SubcommandsList(t *testing.T) {
	setupTest(t, "")

	out, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("root --help failed: %v", err)
	}

	for _, name := range []string{
		"login", "logout", "whoami", "passwd", "token", "dashboard",
		"customers", "invoices", "payments", "agents", "pickups",
		"settings", "config", "version", "completion",
	} {
		if !strings.Contains(out, name) {
			t.Errorf("expected help output to list %q command, got:\n%s", name, out)
		}
	}
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	setupTest(t, "")

	if _, err := execute(t, "nonexistent-command"); err == nil {
		t.Fatal("expected error for unknown command, got nil")
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"cli error carries its code", &output.CLIError{ExitCode: output.ExitConfigError}, output.ExitConfigError},
		{"bad credentials", api.ErrBadCredentials, output.ExitAuthError},
		{"account inactive", api.ErrAccountInactive, output.ExitAuthError},
		{"unauthorized", api.ErrUnauthorized, output.ExitAuthError},
		{"wrapped unauthorized", fmt.Errorf("fetching customers: %w", api.ErrUnauthorized), output.ExitAuthError},
		{"unavailable", api.ErrUnavailable, output.ExitAPIError},
		{"api error", &api.APIError{StatusCode: 422}, output.ExitAPIError},
		{"plain error", errors.New("boom"), output.ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestInvalidConfig_ExitsWithConfigError(t *testing.T) {
	setupTest(t, "not-a-url")

	_, err := execute(t, "whoami")
	if err == nil {
		t.Fatal("expected config error, got nil")
	}
	if got := ExitCodeFor(err); got != output.ExitConfigError {
		t.Errorf("expected exit code %d, got %d (err: %v)", output.ExitConfigError, got, err)
	}
}
