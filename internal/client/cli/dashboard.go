package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"neurowatch/internal/client"
)

const placeholder = "--"

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the latest vitals and risk level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.api()
			if err != nil {
				return err
			}
			resp, err := api.Vitals(cmd.Context())
			if err != nil {
				return err
			}
			printDashboard(cmd, resp)
			return nil
		},
	}
}

func printDashboard(cmd *cobra.Command, resp client.VitalsResponse) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Live Health Dashboard")
	fmt.Fprintln(out, "---------------------")
	if !resp.HasData {
		fmt.Fprintln(out, "No readings received from the watch yet.")
	}
	s := resp.Snapshot
	fmt.Fprintf(out, "Heart Rate:      %s\n", numOr(s.HeartRate, " bpm"))
	fmt.Fprintf(out, "Gait Score:      %s\n", numOr(s.Gait, ""))
	fmt.Fprintf(out, "Tremor Score:    %s\n", numOr(s.Tremor, ""))
	fmt.Fprintf(out, "Voice Score:     %s\n", numOr(s.Voice, ""))
	fmt.Fprintf(out, "Breathing Rate:  %s\n", numOr(s.Breathing, " rpm"))
	fmt.Fprintf(out, "Sleep Quality:   %s\n", numOr(s.SleepQuality, "%"))
	fall := "No"
	if s.FallDetected != nil && *s.FallDetected {
		fall = "Yes"
	}
	fmt.Fprintf(out, "Fall Detected:   %s\n", fall)
	muscle := placeholder
	if s.MuscleMovement != nil && *s.MuscleMovement != "" {
		muscle = *s.MuscleMovement
	}
	fmt.Fprintf(out, "Muscle Movement: %s\n", muscle)
	fmt.Fprintf(out, "Risk Level:      %s\n", resp.RiskLevel)
}

func numOr(v *float64, unit string) string {
	if v == nil {
		return placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + unit
}

func (a *app) analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run voice or gait analysis on an uploaded file",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "voice <file>",
			Short: "Score a voice sample",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				api, err := a.api()
				if err != nil {
					return err
				}
				score, err := api.AnalyzeVoice(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Voice Stability Score: %d\n", score)
				return nil
			},
		},
		&cobra.Command{
			Use:   "gait <file>",
			Short: "Score a walking video",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				api, err := a.api()
				if err != nil {
					return err
				}
				score, err := api.AnalyzeGait(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Gait Score: %d\n", score)
				return nil
			},
		},
	)
	return cmd
}
