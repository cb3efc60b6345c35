package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"neurowatch/internal/models"
)

func (a *app) lifestyleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lifestyle",
		Short: "Log and review daily meals, sleep and activity",
	}
	cmd.AddCommand(a.lifestyleSaveCmd(), a.lifestyleListCmd())
	return cmd
}

func (a *app) lifestyleSaveCmd() *cobra.Command {
	var record models.LifestyleRecord
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save today's lifestyle record (one per day; saving again replaces it)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.api()
			if err != nil {
				return err
			}
			if err := api.SaveLifestyle(cmd.Context(), record); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Lifestyle data saved successfully!")
			return nil
		},
	}
	cmd.Flags().StringVar(&record.Date, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&record.Breakfast, "breakfast", "", "breakfast")
	cmd.Flags().StringVar(&record.Lunch, "lunch", "", "lunch")
	cmd.Flags().StringVar(&record.Snack, "snack", "", "snack")
	cmd.Flags().StringVar(&record.Dinner, "dinner", "", "dinner")
	cmd.Flags().Float64Var(&record.SleepHours, "sleep", 0, "hours slept")
	cmd.Flags().StringVar(&record.Activity, "activity", "None", "activity (Walking, Running, Swimming, Cycling, Yoga, Gym, None)")
	return cmd
}

func (a *app) lifestyleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved lifestyle records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.api()
			if err != nil {
				return err
			}
			records, err := api.Lifestyle(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No lifestyle records yet.")
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  sleep %.1fh  activity %s  meals: %s / %s / %s / %s\n",
					r.Date, r.SleepHours, r.Activity, r.Breakfast, r.Lunch, r.Snack, r.Dinner)
			}
			return nil
		},
	}
}
