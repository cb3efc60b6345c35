package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"neurowatch/internal/models"
)

func (a *app) appointmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "Book and review neurologist appointments",
	}
	cmd.AddCommand(a.appointmentsListCmd(), a.appointmentsBookCmd(), a.doctorsCmd())
	return cmd
}

func (a *app) appointmentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List upcoming appointments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.api()
			if err != nil {
				return err
			}
			appts, err := api.Appointments(cmd.Context())
			if err != nil {
				return err
			}
			if len(appts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No upcoming appointments")
				return nil
			}
			for _, appt := range appts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s", appt.Date, appt.Time, appt.Doctor)
				if appt.Reason != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  (%s)", appt.Reason)
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

func (a *app) appointmentsBookCmd() *cobra.Command {
	var appt models.Appointment
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.api()
			if err != nil {
				return err
			}
			booked, err := api.BookAppointment(cmd.Context(), appt)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booked %s %s with %s\n", booked.Date, booked.Time, booked.Doctor)
			return nil
		},
	}
	cmd.Flags().StringVar(&appt.Doctor, "doctor", "", "doctor (see `appointments doctors`)")
	cmd.Flags().StringVar(&appt.Date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&appt.Time, "time", "", "time (HH:MM)")
	cmd.Flags().StringVar(&appt.Reason, "reason", "", "reason for the visit")
	_ = cmd.MarkFlagRequired("doctor")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func (a *app) doctorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctors",
		Short: "List bookable doctors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.api()
			if err != nil {
				return err
			}
			doctors, err := api.Doctors(cmd.Context())
			if err != nil {
				return err
			}
			for _, d := range doctors {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}
}
