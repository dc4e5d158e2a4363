package cmd

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the local session",
	Long: `Log out of the PSP API. The server-side session is revoked best-effort;
local credentials are always cleared.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	if store.IsAuthenticated() {
		if err := client.Logout(cmd.Context()); err != nil {
			logger.Debug("server-side logout failed", "error", err)
		}
	}

	if err := store.Logout(); err != nil {
		return err
	}

	printer.Success("Logged out")
	return nil
}
