package cmd

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/wastepay/pspctl/internal/output"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Inspect the access token",
	Long: `Show the claims and expiry of the stored access token. The token is
decoded without signature verification; the CLI holds no signing key.`,
	RunE: runToken,
}

var tokenRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rotate the token pair using the refresh token",
	RunE:  runTokenRefresh,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenRefreshCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(store.AccessToken(), claims)
	if err != nil {
		return fmt.Errorf("access token is not a parseable JWT: %w", err)
	}

	table := output.NewTable([]string{"CLAIM", "VALUE"})
	for _, name := range []string{"sub", "email", "role", "iss"} {
		if v, ok := claims[name]; ok {
			table.AddRow([]string{name, fmt.Sprintf("%v", v)})
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		remaining := time.Until(exp.Time).Round(time.Second)
		state := fmt.Sprintf("%s (in %s)", exp.Time.Format(time.RFC3339), remaining)
		if remaining <= 0 {
			state = fmt.Sprintf("%s (expired)", exp.Time.Format(time.RFC3339))
		}
		table.AddRow([]string{"exp", state})
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		table.AddRow([]string{"iat", iat.Time.Format(time.RFC3339)})
	}
	table.Render()

	if store.RefreshToken() == "" {
		printer.Warning("No refresh token stored; the session ends when the access token expires")
	}
	return nil
}

func runTokenRefresh(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if err := client.RefreshSession(cmd.Context()); err != nil {
		return err
	}

	printer.Success("Token pair rotated")
	return nil
}
