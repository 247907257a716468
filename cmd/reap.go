package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newReapCmd() *cobra.Command {
	var before string

	cmd := &cobra.Command{
		Use:   "reap",
		Short: "Delete slot capacity records for past dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			n, err := a.housekeeper.Reap(ctx, before)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d capacity records\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "delete records dated before this day (default: today minus SLOT_RETENTION_DAYS)")
	return cmd
}
