package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or list schema migrations (default up)",
		ValidArgs: []string{"up", "down", "status"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) == 1 {
				action = args[0]
			}

			ctx := cmd.Context()
			store, err := openStore(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close(context.WithoutCancel(ctx)) }()

			switch action {
			case "up":
				n, err := migrateUp(ctx, store)
				if err != nil {
					return err
				}
				a.log.Info().Str("store", store.Name()).Int("applied", n).Msg("migrations applied")
				return nil
			case "down":
				runner, err := migrationRunner(store)
				if err != nil {
					return err
				}
				if err := runner.Down(ctx); err != nil {
					return err
				}
				a.log.Info().Str("store", store.Name()).Msg("last migration rolled back")
				return nil
			default:
				runner, err := migrationRunner(store)
				if err != nil {
					return err
				}
				statuses, err := runner.Status(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tAPPLIED\tFILE")
				for _, s := range statuses {
					fmt.Fprintf(w, "%d\t%t\t%s\n", s.Version, s.Applied, s.Path)
				}
				return w.Flush()
			}
		},
	}
}
