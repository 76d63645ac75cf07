package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"orderflow/internal/api"
	"orderflow/internal/config"
	"orderflow/internal/orders"
)

// newSkipCommand is shorthand for `stage <order-id> <stage> skipped`.
func newSkipCommand(ctx *commandContext) *cobra.Command {
	var actor, remark string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "skip <order-id> <stage>",
		Short: "Skip a skippable stage of an order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(cfg *config.Config, store *orders.Store, svc *api.OrderService) error {
				current, err := svc.Describe(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				view, err := svc.Transition(cmd.Context(), args[0], api.TransitionOrderRequest{
					Stage:           args[1],
					Target:          string(orders.StageSkipped),
					Actor:           actor,
					Remark:          remark,
					ExpectedVersion: current.Version,
				})
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, api.OrderResponse{Order: view})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Order %s: skipped %s\n", view.ID, args[1])
				fmt.Fprintf(out, "Status: %s\n", view.DerivedStatus)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "Person performing the skip")
	cmd.Flags().StringVar(&remark, "remark", "", "Free-form note recorded on the stage")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
