package commands

import (
	"context"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewSessionCommand creates the session command group.
func NewSessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the API session",
		Long:  "Login, inspect, and clear the persisted CV-CUE API session",
	}

	cmd.AddCommand(newSessionLoginCommand())
	cmd.AddCommand(newSessionStatusCommand())
	cmd.AddCommand(newSessionClearCommand())

	return cmd
}

func newSessionLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist a session",
		Long:  "Authenticate with API-key credentials and persist the session cookie",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Prompt for the key value rather than requiring it on the
			// command line, where it would land in shell history.
			if viper.GetString("key_value") == "" {
				fmt.Print("API key value: ")

				keyValue, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("reading key value: %w", err)
				}

				fmt.Println()
				viper.Set("key_value", string(keyValue))
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Session().Login(context.Background())
			if err != nil {
				return err
			}

			cmd.Println("Session established")

			return nil
		},
	}
}

func newSessionStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the persisted session is still active",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if client.Session().IsActive(context.Background()) {
				cmd.Println("Session is active")
			} else {
				cmd.Println("No active session")
			}

			return nil
		},
	}
}

func newSessionClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the persisted session",
		Long:  "Delete the persisted session cookie. The server-side session expires on its own.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Session().Logout()
			if err != nil {
				return err
			}

			cmd.Println("Session cleared")

			return nil
		},
	}
}
