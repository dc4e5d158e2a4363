package cmd

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wastepay/pspctl/internal/api"
	"github.com/wastepay/pspctl/internal/format"
	"github.com/wastepay/pspctl/internal/output"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Browse PSP catalogue settings",
	Long:  `Browse the service catalogues: wards, streets, property types with billing rates, and expense categories.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all catalogues at once",
	RunE:  runSettingsShow,
}

var settingsWardsCmd = &cobra.Command{
	Use:   "wards",
	Short: "List wards",
	RunE:  runSettingsWards,
}

var settingsStreetsCmd = &cobra.Command{
	Use:   "streets",
	Short: "List streets",
	RunE:  runSettingsStreets,
}

var settingsPropertyTypesCmd = &cobra.Command{
	Use:   "property-types",
	Short: "List property types and billing rates",
	RunE:  runSettingsPropertyTypes,
}

var settingsExpenseCategoriesCmd = &cobra.Command{
	Use:   "expense-categories",
	Short: "List expense categories",
	RunE:  runSettingsExpenseCategories,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWardsCmd)
	settingsCmd.AddCommand(settingsStreetsCmd)
	settingsCmd.AddCommand(settingsPropertyTypesCmd)
	settingsCmd.AddCommand(settingsExpenseCategoriesCmd)

	settingsStreetsCmd.Flags().String("ward", "", "scope to one ward id")
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	var (
		wards      []api.Ward
		streets    []api.Street
		types      []api.PropertyType
		categories []api.ExpenseCategory
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		wards, err = client.ListWards(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		streets, err = client.ListStreets(ctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		types, err = client.ListPropertyTypes(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = client.ListExpenseCategories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	printer.Header("Wards")
	renderWards(wards)
	printer.Header("Streets")
	renderStreets(streets)
	printer.Header("Property types")
	renderPropertyTypes(types)
	printer.Header("Expense categories")
	renderExpenseCategories(categories)
	return nil
}

func runSettingsWards(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	wards, err := client.ListWards(cmd.Context())
	if err != nil {
		return err
	}
	renderWards(wards)
	return nil
}

func runSettingsStreets(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	ward, _ := cmd.Flags().GetString("ward")
	streets, err := client.ListStreets(cmd.Context(), ward)
	if err != nil {
		return err
	}
	renderStreets(streets)
	return nil
}

func runSettingsPropertyTypes(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	types, err := client.ListPropertyTypes(cmd.Context())
	if err != nil {
		return err
	}
	renderPropertyTypes(types)
	return nil
}

func runSettingsExpenseCategories(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	categories, err := client.ListExpenseCategories(cmd.Context())
	if err != nil {
		return err
	}
	renderExpenseCategories(categories)
	return nil
}

func renderWards(wards []api.Ward) {
	table := output.NewTable([]string{"ID", "NAME", "CODE"})
	table.SetEmptyMessage("No wards configured")
	for _, w := range wards {
		table.AddRow([]string{w.ID, w.Name, w.Code})
	}
	table.Render()
}

func renderStreets(streets []api.Street) {
	table := output.NewTable([]string{"ID", "NAME", "WARD"})
	table.SetEmptyMessage("No streets configured")
	for _, s := range streets {
		ward := s.WardName
		if ward == "" {
			ward = s.WardID
		}
		table.AddRow([]string{s.ID, s.Name, ward})
	}
	table.Render()
}

func renderPropertyTypes(types []api.PropertyType) {
	table := output.NewTable([]string{"ID", "NAME", "MONTHLY RATE"})
	table.SetEmptyMessage("No property types configured")
	for _, t := range types {
		table.AddRow([]string{t.ID, t.Name, format.NairaFull(t.Rate)})
	}
	table.Render()
}

func renderExpenseCategories(categories []api.ExpenseCategory) {
	table := output.NewTable([]string{"ID", "NAME", "DESCRIPTION"})
	table.SetEmptyMessage("No expense categories configured")
	for _, c := range categories {
		table.AddRow([]string{c.ID, c.Name, c.Description})
	}
	table.Render()
}
