package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions is shared by all subcommands; App is populated before any
// command runs.
type RootOptions struct {
	App *App
}

// NewRootCommand builds the storefront command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "storefront",
		Short:        "Canteen storefront: browse the menu, manage your cart, place and track orders",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			opts.App = app
			return nil
		},
	}

	cmd.AddCommand(
		NewMenuCommand(opts),
		NewCartCommand(opts),
		NewOrderCommand(opts),
		NewKitchenCommand(opts),
		NewAnalyticsCommand(opts),
	)
	return cmd
}
