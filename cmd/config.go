package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wastepay/pspctl/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Long: `Display the current pspctl configuration.

Examples:
  pspctl config                # Show all config
  pspctl config --json         # Output as JSON`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("json", false, "output as JSON")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	printer.Header("Current Configuration")

	table := output.NewTable([]string{"KEY", "VALUE"})
	table.AddRow([]string{"api.base_url", cfg.API.BaseURL})
	table.AddRow([]string{"api.timeout", cfg.API.Timeout.String()})
	table.AddRow([]string{"api.rate_limit", fmt.Sprintf("%v", cfg.API.RateLimit)})
	table.AddRow([]string{"state.dir", cfg.State.Dir})
	table.AddRow([]string{"defaults.page_size", fmt.Sprintf("%d", cfg.Defaults.PageSize)})
	table.AddRow([]string{"defaults.search_debounce", cfg.Defaults.SearchDebounce.String()})
	table.AddRow([]string{"defaults.watch_interval", cfg.Defaults.WatchInterval.String()})
	table.AddRow([]string{"logging.level", cfg.Logging.Level})
	table.AddRow([]string{"logging.format", cfg.Logging.Format})
	table.AddRow([]string{"output.colors", fmt.Sprintf("%v", cfg.Output.Colors)})
	table.Render()

	printer.Info("Session state: %s", store.State().String())
	return nil
}
