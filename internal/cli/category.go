package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories"},
	Short:   "Manage skill categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			cats, err := a.manager.Categories(ctx)
			if err != nil {
				return err
			}
			renderCategories(cmd.OutOrStdout(), cats)
			return nil
		})
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Long: `Add a category. Names must be unique.

Example:
  skilltrack category add "Mobile" --color "#EC4899"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		color, _ := cmd.Flags().GetString("color")
		return withApp(cmd, func(ctx context.Context, a *app) error {
			cat, err := a.manager.AddCategory(ctx, args[0], color)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added category %s %s\n", swatch(cat.Color), cat.Name)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)

	categoryAddCmd.Flags().String("color", "", "Hex colour, e.g. #3B82F6 (default #6B7280)")
}
