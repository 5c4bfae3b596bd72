package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCartCommand groups the cart mutations and the cart view.
func NewCartCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and mutate the cart",
	}
	cmd.AddCommand(
		newCartShowCommand(rootOpts),
		newCartAddCommand(rootOpts),
		newCartRemoveCommand(rootOpts),
		newCartDropCommand(rootOpts),
	)
	return cmd
}

func newCartShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cart with totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := rootOpts.App
			for id, entry := range app.Cart.Items() {
				line := fmt.Sprintf("%-4s x%d", id, entry.Quantity())
				if item, ok := app.Catalog.Lookup(id); ok {
					line = fmt.Sprintf("%-4s %-20s x%d", id, item.Name, entry.Quantity())
				}
				if notes := entry.Notes(); notes != "" {
					line += fmt.Sprintf("  (%s)", notes)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Items: %d  Subtotal: %s\n",
				app.Cart.TotalItemCount(), app.Cart.TotalAmount(app.Catalog).StringFixed(2))
			return nil
		},
	}
}

func newCartAddCommand(rootOpts *RootOptions) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "add <item-id>",
		Short: "Add one of an item to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := rootOpts.App
			app.Cart.Add(cmd.Context(), args[0], notes)
			app.Cart.Wait()
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "preparation notes for this item")
	return cmd
}

func newCartRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove one of an item from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := rootOpts.App
			app.Cart.Remove(cmd.Context(), args[0])
			app.Cart.Wait()
			return nil
		},
	}
}

func newCartDropCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <item-id>",
		Short: "Remove an item from the cart entirely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := rootOpts.App
			app.Cart.RemoveCompletely(cmd.Context(), args[0])
			app.Cart.Wait()
			return nil
		},
	}
}
