package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macormexico/sistema-pnc/internal/client"
	"github.com/macormexico/sistema-pnc/internal/session"
)

func (a *app) newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = a.readLine(cmd, "Correo: ")
			}
			if password == "" {
				password = a.readLine(cmd, "Contraseña: ")
			}
			if email == "" || password == "" {
				return errors.New("email and password are required")
			}

			s, err := a.guard.Login(cmd.Context(), a.client(""), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bienvenido, %s (%s)\n", s.Name, s.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when empty)")
	return cmd
}

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the server session and clear the local one",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.guard.Require()
			if errors.Is(err, session.ErrNotAuthenticated) {
				fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}
			if err != nil {
				return err
			}

			// A server that already dropped the session must not keep us signed in.
			if err := a.client(s.Token).Logout(cmd.Context()); err != nil {
				var apiErr *client.APIError
				if !errors.As(err, &apiErr) {
					slog.Warn("server logout failed", "error", err)
				}
			}
			if err := a.guard.End(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func (a *app) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: a.protected(func(cmd *cobra.Command, _ []string, s *session.Session, _ *client.Client) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", s.Name, s.Email, s.Role)
			return nil
		}),
	}
}
