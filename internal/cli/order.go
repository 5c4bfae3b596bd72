package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewOrderCommand groups checkout and order history.
func NewOrderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place orders and list past ones",
	}
	cmd.AddCommand(newOrderPlaceCommand(rootOpts), newOrderListCommand(rootOpts))
	return cmd
}

func newOrderPlaceCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "place",
		Short: "Place an order for the current cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := rootOpts.App
			return app.Checkout.PlaceOrder(cmd.Context(), app.Session.Token)
		},
	}
}

func newOrderListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your past orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := rootOpts.App
			orders, err := app.Client.UserOrders(cmd.Context(), app.Session.Token)
			if err != nil {
				return err
			}
			for _, order := range orders {
				fmt.Fprintf(cmd.OutOrStdout(), "%-26s table %-3d %-10s %s\n",
					order.ID, order.TableNumber, order.Status, order.Amount.StringFixed(2))
			}
			return nil
		},
	}
}
