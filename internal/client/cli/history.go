package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *app) historyCmd() *cobra.Command {
	var export string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the daily history report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.api()
			if err != nil {
				return err
			}
			if export != "" {
				content, err := api.ExportHistory(cmd.Context())
				if err != nil {
					return err
				}
				if err := os.WriteFile(export, content, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", export)
				return nil
			}
			entries, err := api.History(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded days yet.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  HR %s  gait %s  tremor %s  voice %s  sleep %sh  activity %s\n",
					e.Date, e.HeartRate, e.Gait, e.Tremor, e.Voice, e.SleepHours, e.Activity)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&export, "export", "", "write the full report to a file instead of printing")
	return cmd
}
