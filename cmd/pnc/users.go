package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macormexico/sistema-pnc/internal/client"
	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/session"
)

func (a *app) newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage dashboard accounts",
	}
	cmd.AddCommand(a.newUsersListCmd(), a.newUsersAddCmd(), a.newUsersEditCmd(), a.newUsersDeleteCmd())
	return cmd
}

func (a *app) newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: a.protected(func(cmd *cobra.Command, _ []string, _ *session.Session, api *client.Client) error {
			users, err := api.ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNOMBRE\tEMAIL\tROL\tTELEFONO")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Nombre, u.Email, u.Rol, u.Telefono)
			}
			return tw.Flush()
		}),
	}
}

type userFlags struct {
	nombre, email, password, rol, telefono string
}

func (f *userFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.nombre, "nombre", "", "Full name")
	cmd.Flags().StringVar(&f.email, "email", "", "Email")
	cmd.Flags().StringVar(&f.password, "password", "", "Password")
	cmd.Flags().StringVar(&f.rol, "rol", "", "usuario, moderador or admin")
	cmd.Flags().StringVar(&f.telefono, "telefono", "", "Phone")
}

func (a *app) newUsersAddCmd() *cobra.Command {
	var f userFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user (admin only)",
		RunE: a.protected(func(cmd *cobra.Command, _ []string, _ *session.Session, api *client.Client) error {
			user, err := api.CreateUser(cmd.Context(), dto.CreateUserRequest{
				Nombre: f.nombre, Email: f.email, Password: f.password, Rol: f.rol, Telefono: f.telefono,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s <%s> %s\n", user.ID, user.Email, user.Rol)
			return nil
		}),
	}
	f.bind(cmd)
	return cmd
}

func (a *app) newUsersEditCmd() *cobra.Command {
	var f userFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a user (admin only); unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string, _ *session.Session, api *client.Client) error {
			users, err := api.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			var req *dto.UpdateUserRequest
			for _, u := range users {
				if u.ID == args[0] {
					req = &dto.UpdateUserRequest{Nombre: u.Nombre, Email: u.Email, Rol: u.Rol, Telefono: u.Telefono}
					break
				}
			}
			if req == nil {
				return fmt.Errorf("user %s not found", args[0])
			}

			flags := cmd.Flags()
			if flags.Changed("nombre") {
				req.Nombre = f.nombre
			}
			if flags.Changed("email") {
				req.Email = f.email
			}
			if flags.Changed("rol") {
				req.Rol = f.rol
			}
			if flags.Changed("telefono") {
				req.Telefono = f.telefono
			}
			req.Password = f.password

			user, err := api.UpdateUser(cmd.Context(), args[0], *req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s <%s> %s\n", user.ID, user.Email, user.Rol)
			return nil
		}),
	}
	f.bind(cmd)
	return cmd
}

func (a *app) newUsersDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string, _ *session.Session, api *client.Client) error {
			if !yes && !a.confirm(cmd, "¿Estás seguro de eliminar este usuario?") {
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}
			if err := api.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
