package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"orderflow/internal/api"
	"orderflow/internal/config"
	"orderflow/internal/orders"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var req api.QueryRequest
	var engraving, ribbon string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.WantsEngraving, err = parseBoolFlag("engraving-tag", engraving); err != nil {
				return err
			}
			if req.WantsRibbon, err = parseBoolFlag("ribbon", ribbon); err != nil {
				return err
			}

			return ctx.withService(func(cfg *config.Config, store *orders.Store, svc *api.OrderService) error {
				views, err := svc.Query(cmd.Context(), req)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, api.OrderListResponse{Orders: views})
				}
				printOrderList(cmd, views)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.Text, "search", "", "Free-text search over id, customer, and product")
	cmd.Flags().StringVar(&req.AssignedEmployee, "assignee", "", "Filter by assigned employee")
	cmd.Flags().StringVar(&req.SalesOwner, "sales-owner", "", "Filter by sales owner")
	cmd.Flags().StringVar(&req.Designer, "designer", "", "Filter by designer")
	cmd.Flags().StringVar(&req.PaymentStatus, "payment", "", "Filter by payment status")
	cmd.Flags().StringVar(&req.DeliveryChannel, "channel", "", "Filter by delivery channel")
	cmd.Flags().StringVar(&req.Bucket, "bucket", "", "Filter by dashboard bucket")
	cmd.Flags().StringVar(&engraving, "engraving-tag", "", "Filter by engraving tag flag (true|false)")
	cmd.Flags().StringVar(&ribbon, "ribbon", "", "Filter by ribbon flag (true|false)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func parseBoolFlag(name, value string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return nil, nil
	case "true", "1", "yes":
		v := true
		return &v, nil
	case "false", "0", "no":
		v := false
		return &v, nil
	default:
		return nil, fmt.Errorf("--%s accepts true or false, got %q", name, value)
	}
}

func printOrderList(cmd *cobra.Command, views []api.OrderView) {
	out := cmd.OutOrStdout()
	if len(views) == 0 {
		fmt.Fprintln(out, "No orders found")
		return
	}

	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{
			v.ID,
			v.CustomerRef,
			v.CustomerName,
			truncate(v.ProductSummary, 36),
			fmt.Sprintf("%d", v.Quantity),
			v.DerivedStatus,
			issueMark(v.HasIssue),
		})
	}

	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(out, renderTable(
			[]string{"ID", "Ref", "Customer", "Product", "Qty", "Status", "Issue"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
		))
		return
	}
	// Plain tab-separated rows when piped.
	for _, v := range views {
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			v.ID, v.CustomerRef, v.CustomerName, v.ProductSummary, v.Quantity, v.DerivedStatus, issueMark(v.HasIssue))
	}
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	if max <= 3 {
		return value[:max]
	}
	return value[:max-3] + "..."
}

func issueMark(hasIssue bool) string {
	if hasIssue {
		return "!"
	}
	return ""
}
