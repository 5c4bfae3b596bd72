package cli

import (
	"fmt"

	"github.com/Amresh-01/Canteeno/internal/analytics"
	"github.com/spf13/cobra"
)

// NewAnalyticsCommand prints the admin aggregate dashboard.
func NewAnalyticsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show aggregate order statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := rootOpts.App
			stats, err := analytics.Fetch(cmd.Context(), app.Client, app.Session.Token)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), analytics.Format(stats))
			return nil
		},
	}
}
