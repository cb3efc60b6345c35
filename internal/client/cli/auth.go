package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) registerCmd() *cobra.Command {
	var email, fullName string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			resp, err := a.anonAPI().Signup(cmd.Context(), args[0], email, password, fullName)
			if err != nil {
				return err
			}
			if err := a.sessions.Begin(resp.User, resp.Token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are now logged in.\n", resp.User.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&fullName, "name", "", "full name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username-or-email>",
		Short: "Log in to NeuroWatch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			resp, err := a.anonAPI().Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			if err := a.sessions.Begin(resp.User, resp.Token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", resp.User.Username)
			return nil
		},
	}
}

func (a *app) forgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request password reset instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.anonAPI().ForgotPassword(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sessions.End(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, ok := a.sessions.Current()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>", identity.Username, identity.Email)
			if identity.FullName != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " (%s)", identity.FullName)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func (a *app) notificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "notifications on|off",
		Short:     "Toggle email notifications",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled := args[0] == "on"
			api, err := a.api()
			if err != nil {
				return err
			}
			if err := api.UpdateNotifications(cmd.Context(), enabled); err != nil {
				return err
			}
			if err := a.sessions.SetEmailNotifications(enabled); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Email notifications %s.\n", args[0])
			return nil
		},
	}
}
