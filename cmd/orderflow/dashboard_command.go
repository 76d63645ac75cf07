package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"orderflow/internal/api"
	"orderflow/internal/config"
	"orderflow/internal/dashboard"
	"orderflow/internal/orders"
)

func newDashboardCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show order counts per monitoring bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(cfg *config.Config, store *orders.Store, svc *api.OrderService) error {
				resp, err := svc.Dashboard(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, resp)
				}

				rows := make([][]string, 0, len(resp.Counts))
				for _, bucket := range dashboard.Buckets() {
					rows = append(rows, []string{
						string(bucket),
						fmt.Sprintf("%d", resp.Counts[string(bucket)]),
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(
					[]string{"Bucket", "Orders"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				fmt.Fprintf(out, "Total orders: %d\n", resp.Total)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
