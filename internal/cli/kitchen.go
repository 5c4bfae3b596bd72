package cli

import (
	"fmt"

	"github.com/Amresh-01/Canteeno/internal/domain"
	"github.com/Amresh-01/Canteeno/internal/events"
	"github.com/Amresh-01/Canteeno/internal/kitchen"
	"github.com/Amresh-01/Canteeno/internal/notify"
	"github.com/spf13/cobra"
)

// NewKitchenCommand groups the staff-facing kitchen display actions.
func NewKitchenCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kitchen",
		Short: "Kitchen display: track and advance orders",
	}
	cmd.AddCommand(
		newKitchenBoardCommand(rootOpts),
		newKitchenAdvanceCommand(rootOpts),
		newKitchenWatchCommand(rootOpts),
	)
	return cmd
}

func newBoard(rootOpts *RootOptions) *kitchen.Board {
	app := rootOpts.App
	return kitchen.NewBoard(app.Client, notify.LogNotifier{}, app.Session.Token)
}

func printWorking(cmd *cobra.Command, board *kitchen.Board) {
	for _, order := range board.Working() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-26s table %-3d %s\n", order.ID, order.TableNumber, order.Status)
		for _, item := range order.Items {
			name := item.Name
			if name == "" && item.Food != nil {
				name = item.Food.Name
			}
			fmt.Fprintf(cmd.OutOrStdout(), "    %dx %s\n", item.Quantity, name)
		}
	}
}

func newKitchenBoardCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Print the working view of open orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			board := newBoard(rootOpts)
			if err := board.Load(cmd.Context()); err != nil {
				return err
			}
			printWorking(cmd, board)
			return nil
		},
	}
}

func newKitchenAdvanceCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "advance <order-id> <status>",
		Short: "Advance an order to pending|preparing|ready|delivered",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := domain.OrderStatus(args[1])
			if !target.IsValid() {
				return fmt.Errorf("unknown status %q", args[1])
			}

			board := newBoard(rootOpts)
			if err := board.Load(cmd.Context()); err != nil {
				return err
			}
			return board.Advance(cmd.Context(), args[0], target)
		},
	}
}

func newKitchenWatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow realtime order events and keep the board current",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := rootOpts.App
			if len(app.Brokers) == 0 {
				return fmt.Errorf("KAFKA_BROKERS must be set to watch realtime events")
			}

			board := newBoard(rootOpts)
			if err := board.Load(cmd.Context()); err != nil {
				return err
			}
			printWorking(cmd, board)

			consumer := events.NewConsumer("storefront-kitchen", app.Brokers...)
			defer consumer.Close()

			ch := make(chan events.OrderEvent)
			go consumer.Run(cmd.Context(), ch)

			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case ev, ok := <-ch:
					if !ok {
						return nil
					}
					board.Apply(ev)
					fmt.Fprintf(cmd.OutOrStdout(), "--- %s %s\n", ev.Type, ev.Order.ID)
					printWorking(cmd, board)
				}
			}
		},
	}
}
