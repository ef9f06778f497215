package cli

import (
	"errors"
	"fmt"
	"net/http"

	"project-tracker/backend/internal/client"

	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:8080"

type clientOptions struct {
	serverURL string
	tokenFile string
}

func (o *clientOptions) store() (*client.TokenStore, error) {
	if o.tokenFile != "" {
		return client.NewTokenStore(o.tokenFile), nil
	}
	return client.DefaultTokenStore()
}

// anonymous builds a client without a stored session.
func (o *clientOptions) anonymous() *client.Client {
	return client.New(client.Config{BaseURL: o.serverURL})
}

// authenticated builds a client carrying the stored token.
func (o *clientOptions) authenticated() (*client.Client, error) {
	store, err := o.store()
	if err != nil {
		return nil, err
	}
	token, err := store.Load()
	if errors.Is(err, client.ErrNoToken) {
		return nil, errors.New("not logged in, run 'client login' first")
	}
	if err != nil {
		return nil, err
	}
	return client.New(client.Config{BaseURL: o.serverURL, Token: token}), nil
}

func newClientCommand() *cobra.Command {
	opts := &clientOptions{}

	cmd := &cobra.Command{
		Use:   "client",
		Short: "Use the tracker API from the terminal",
	}
	cmd.PersistentFlags().StringVar(&opts.serverURL, "server", envOr("TRACKER_URL", defaultServerURL), "API base URL")
	cmd.PersistentFlags().StringVar(&opts.tokenFile, "token-file", "", "where the session token is kept (default: user config dir)")

	cmd.AddCommand(newRegisterCommand(opts))
	cmd.AddCommand(newLoginCommand(opts))
	cmd.AddCommand(newLogoutCommand(opts))
	cmd.AddCommand(newProjectsCommand(opts))
	cmd.AddCommand(newTasksCommand(opts))

	return cmd
}

func credentialFlags(cmd *cobra.Command, email, password *string) {
	cmd.Flags().StringVar(email, "email", "", "account email")
	cmd.Flags().StringVar(password, "password", "", "account password")
}

func newRegisterCommand(opts *clientOptions) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.anonymous().Register(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Registration successful! You can now log in.")
			return nil
		},
	}
	credentialFlags(cmd, &email, &password)
	return cmd
}

func newLoginCommand(opts *clientOptions) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			token, err := opts.anonymous().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := store.Save(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
			return nil
		},
	}
	credentialFlags(cmd, &email, &password)
	return cmd
}

func newLogoutCommand(opts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

// emptyList reports whether err is the server's way of saying a list page
// has no entries.
func emptyList(cmd *cobra.Command, err error) bool {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		fmt.Fprintln(cmd.OutOrStdout(), apiErr.Message)
		return true
	}
	return false
}
