package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"orderflow/internal/api"
	"orderflow/internal/config"
	"orderflow/internal/orders"
)

func newDBHealthCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "db-health",
		Short: "Diagnose the order database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(cfg *config.Config, store *orders.Store, svc *api.OrderService) error {
				health, err := store.CheckHealth(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, health)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Database:        %s\n", health.DBPath)
				fmt.Fprintf(out, "Exists:          %s\n", yesNo(health.DatabaseExists))
				fmt.Fprintf(out, "Readable:        %s\n", yesNo(health.DatabaseReadable))
				fmt.Fprintf(out, "Orders table:    %s\n", yesNo(health.TableExists))
				fmt.Fprintf(out, "Integrity check: %s\n", yesNo(health.IntegrityCheck))
				fmt.Fprintf(out, "Total orders:    %d\n", health.TotalOrders)
				if len(health.MissingColumns) > 0 {
					fmt.Fprintf(out, "Missing columns: %s\n", strings.Join(health.MissingColumns, ", "))
				}
				if health.Error != "" {
					fmt.Fprintf(out, "Error:           %s\n", health.Error)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
