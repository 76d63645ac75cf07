package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"orderflow/internal/api"
	"orderflow/internal/config"
	"orderflow/internal/orders"
)

func newStageCommand(ctx *commandContext) *cobra.Command {
	var actor, remark string
	var fieldFlags []string
	var version int64
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stage <order-id> <stage> <status>",
		Short: "Move one stage of an order to a new status",
		Long: `Move one stage of an order to a new status.

Statuses: in_progress, complete, issue, skipped.
When --version is omitted the order's current version is read first;
a concurrent edit between that read and the write surfaces as a
conflict.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFieldFlags(fieldFlags)
			if err != nil {
				return err
			}

			return ctx.withService(func(cfg *config.Config, store *orders.Store, svc *api.OrderService) error {
				expected := version
				if expected == 0 {
					current, err := svc.Describe(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					expected = current.Version
				}

				view, err := svc.Transition(cmd.Context(), args[0], api.TransitionOrderRequest{
					Stage:           args[1],
					Target:          args[2],
					Actor:           actor,
					Remark:          remark,
					Fields:          fields,
					ExpectedVersion: expected,
				})
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, api.OrderResponse{Order: view})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Order %s: %s -> %s\n", view.ID, args[1], args[2])
				fmt.Fprintf(out, "Status: %s\n", view.DerivedStatus)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "Person performing the transition")
	cmd.Flags().StringVar(&remark, "remark", "", "Free-form note recorded on the stage")
	cmd.Flags().StringArrayVar(&fieldFlags, "field", nil, "Stage attribute as key=value (repeatable)")
	cmd.Flags().Int64Var(&version, "version", 0, "Expected order version for optimistic concurrency")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func parseFieldFlags(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	fields := make(map[string]string, len(flags))
	for _, flag := range flags {
		key, value, ok := strings.Cut(flag, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("--field expects key=value, got %q", flag)
		}
		fields[key] = strings.TrimSpace(value)
	}
	return fields, nil
}
