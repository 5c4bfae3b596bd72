package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMenuCommand lists the food catalog.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "List the food catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := rootOpts.App
			if refresh {
				app.Catalog.Refresh(cmd.Context())
			}
			for _, item := range app.Catalog.Items() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-4s %-20s %8s  %s\n",
					item.ID, item.Name, item.Price.StringFixed(2), item.Category)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch the catalog from the backend first")
	return cmd
}
