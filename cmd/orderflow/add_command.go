package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"orderflow/internal/api"
	"orderflow/internal/config"
	"orderflow/internal/orders"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var req api.CreateOrderRequest
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new production order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(cfg *config.Config, store *orders.Store, svc *api.OrderService) error {
				view, err := svc.Create(cmd.Context(), req)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, api.OrderResponse{Order: view})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Created order %s\n", view.ID)
				fmt.Fprintf(out, "Status: %s\n", view.DerivedStatus)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.CustomerRef, "customer-ref", "", "Customer reference (required)")
	cmd.Flags().StringVar(&req.CustomerName, "customer", "", "Customer name")
	cmd.Flags().StringVar(&req.ProductSummary, "product", "", "Product summary (required)")
	cmd.Flags().IntVar(&req.Quantity, "quantity", 1, "Quantity")
	cmd.Flags().StringVar(&req.PaymentStatus, "payment", "", "Payment status")
	cmd.Flags().StringVar(&req.DeliveryChannel, "channel", "", "Delivery channel")
	cmd.Flags().StringVar(&req.AssignedEmployee, "assignee", "", "Assigned employee")
	cmd.Flags().StringVar(&req.SalesOwner, "sales-owner", "", "Sales owner")
	cmd.Flags().StringVar(&req.Designer, "designer", "", "Designer")
	cmd.Flags().BoolVar(&req.WantsEngravingTag, "engraving-tag", false, "Order includes an engraved tag")
	cmd.Flags().BoolVar(&req.WantsRibbon, "ribbon", false, "Order includes ribbon finishing")
	cmd.Flags().IntVar(&req.PreSuppliedStages, "pre-supplied", 0, "Number of leading stages supplied by an external factory")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")

	_ = cmd.MarkFlagRequired("customer-ref")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}
