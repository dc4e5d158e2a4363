package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/wastepay/pspctl/internal/output"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user and PSP profile",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)

	whoamiCmd.Flags().Bool("json", false, "output as JSON")
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	user := store.User()
	org := store.Organization()

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"user": user, "psp": org})
	}

	printer.Header("Account")
	table := output.NewTable([]string{"FIELD", "VALUE"})
	table.AddRow([]string{"Name", user.FullName()})
	table.AddRow([]string{"Email", user.Email})
	table.AddRow([]string{"Role", user.Role})
	table.AddRow([]string{"Status", printer.StatusBadge(activeLabel(user.Active)) + " " + activeLabel(user.Active)})
	table.Render()

	if org != nil {
		printer.Header("PSP")
		orgTable := output.NewTable([]string{"FIELD", "VALUE"})
		orgTable.AddRow([]string{"Company", org.CompanyName})
		orgTable.AddRow([]string{"Email", org.Email})
		orgTable.AddRow([]string{"Phone", org.Phone})
		orgTable.AddRow([]string{"Address", org.Address})
		orgTable.Render()
	}

	printer.PrintHints("whoami")
	return nil
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
