package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"dineslot/config"
	"dineslot/utils"

	"github.com/spf13/cobra"
)

func newReconcileCmd() *cobra.Command {
	var (
		spaceID string
		date    string
		repair  bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare slot counters of a space/date with its confirmed reservations",
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

			day, err := utils.ParseDate(date, config.Location())
			if err != nil {
				return err
			}

			drifts, err := a.housekeeper.Reconcile(ctx, spaceID, day.Format(utils.DateLayout), repair)
			if err != nil {
				return err
			}
			if len(drifts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no drift")
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(drifts)
		},
	}

	cmd.Flags().StringVar(&spaceID, "space", "", "space id")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&repair, "repair", false, "correct drifted counters")
	_ = cmd.MarkFlagRequired("space")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
