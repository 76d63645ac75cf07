package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"orderflow/internal/api"
	"orderflow/internal/config"
	"orderflow/internal/orders"
)

func newStagesCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stages",
		Short: "Show the production stage sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(cfg *config.Config, store *orders.Store, svc *api.OrderService) error {
				view := svc.Catalog()
				if jsonOut {
					return writeJSON(cmd, view)
				}

				rows := make([][]string, 0, len(view.Stages))
				for _, stage := range view.Stages {
					rows = append(rows, []string{
						fmt.Sprintf("%d", stage.Rank),
						stage.ID,
						yesNo(stage.Skippable),
						strings.Join(stage.RequiredFields, ", "),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"#", "Stage", "Skippable", "Required fields"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
