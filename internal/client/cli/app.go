// Package cli implements the neurowatch command-line client. Session
// state lives in a local state file so a new invocation picks up where
// the last one left off, the way the web client leaned on localStorage.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"neurowatch/internal/client"
	"neurowatch/internal/localstate"
	"neurowatch/internal/session"
)

type app struct {
	serverURL string
	statePath string
	sessions  *session.Manager
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd().Execute()
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "neurowatch",
		Short:         "NeuroWatch health-monitoring client",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.statePath == "" {
				p, err := localstate.DefaultPath()
				if err != nil {
					return err
				}
				a.statePath = p
			}
			a.sessions = session.NewManager(localstate.New(a.statePath))
			return nil
		},
	}

	defaultServer := os.Getenv("NEUROWATCH_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}
	cmd.PersistentFlags().StringVar(&a.serverURL, "server", defaultServer, "NeuroWatch server URL")
	cmd.PersistentFlags().StringVar(&a.statePath, "state", "", "path to the local state file")

	cmd.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.forgotPasswordCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.notificationsCmd(),
		a.dashboardCmd(),
		a.analyzeCmd(),
		a.lifestyleCmd(),
		a.historyCmd(),
		a.appointmentsCmd(),
	)
	return cmd
}

// api returns an authenticated API client, or an error telling the user
// to log in first. Pages that need a session send the user back to the
// entry flow instead of showing stale data.
func (a *app) api() (*client.API, error) {
	token, err := a.sessions.Token()
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			return nil, fmt.Errorf("not logged in; run `neurowatch login` first")
		}
		return nil, err
	}
	return client.New(a.serverURL, token), nil
}

func (a *app) anonAPI() *client.API {
	return client.New(a.serverURL, "")
}
