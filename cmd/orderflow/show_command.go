package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"orderflow/internal/api"
	"orderflow/internal/config"
	"orderflow/internal/orders"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order with its full stage sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(cfg *config.Config, store *orders.Store, svc *api.OrderService) error {
				view, err := svc.Describe(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, api.OrderResponse{Order: view})
				}
				printOrderDetail(cmd, view)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func printOrderDetail(cmd *cobra.Command, v api.OrderView) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Order %s (version %d)\n", v.ID, v.Version)
	fmt.Fprintf(out, "  Customer ref:  %s\n", v.CustomerRef)
	if v.CustomerName != "" {
		fmt.Fprintf(out, "  Customer:      %s\n", v.CustomerName)
	}
	fmt.Fprintf(out, "  Product:       %s\n", v.ProductSummary)
	fmt.Fprintf(out, "  Quantity:      %d\n", v.Quantity)
	if v.PaymentStatus != "" {
		fmt.Fprintf(out, "  Payment:       %s\n", v.PaymentStatus)
	}
	if v.DeliveryChannel != "" {
		fmt.Fprintf(out, "  Channel:       %s\n", v.DeliveryChannel)
	}
	if v.AssignedEmployee != "" {
		fmt.Fprintf(out, "  Assignee:      %s\n", v.AssignedEmployee)
	}
	if v.SalesOwner != "" {
		fmt.Fprintf(out, "  Sales owner:   %s\n", v.SalesOwner)
	}
	if v.Designer != "" {
		fmt.Fprintf(out, "  Designer:      %s\n", v.Designer)
	}
	fmt.Fprintf(out, "  Engraving tag: %s\n", yesNo(v.WantsEngravingTag))
	fmt.Fprintf(out, "  Ribbon:        %s\n", yesNo(v.WantsRibbon))
	fmt.Fprintf(out, "  Status:        %s\n", v.DerivedStatus)
	if v.HasIssue {
		fmt.Fprintln(out, "  Issue:         yes")
	}
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(v.Stages))
	for _, stage := range v.Stages {
		rows = append(rows, []string{
			fmt.Sprintf("%d", stage.Rank),
			stage.ID,
			stage.Status,
			stage.UpdatedBy,
			stage.Remark,
			formatFields(stage.Fields),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Stage", "Status", "By", "Remark", "Fields"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	))
}

func formatFields(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+fields[k])
	}
	return strings.Join(parts, " ")
}
