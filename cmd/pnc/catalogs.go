package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macormexico/sistema-pnc/internal/client"
	"github.com/macormexico/sistema-pnc/internal/session"
)

func (a *app) newCatalogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogs",
		Short: "Manage the defect, area and personnel catalogs",
	}
	cmd.AddCommand(a.newCatalogsListCmd(), a.newCatalogsAddCmd(), a.newCatalogsDeleteCmd())
	return cmd
}

func (a *app) newCatalogsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [categoria]",
		Short: "List catalog items, optionally of one category",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string, _ *session.Session, api *client.Client) error {
			var categoria string
			if len(args) == 1 {
				categoria = args[0]
			}
			items, err := api.ListCatalogs(cmd.Context(), categoria)
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tCATEGORIA\tVALOR")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", it.ID, it.Categoria, it.Valor)
			}
			return tw.Flush()
		}),
	}
}

func (a *app) newCatalogsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <categoria> <valor>",
		Short: "Add a value to a catalog",
		Args:  cobra.ExactArgs(2),
		RunE: a.protected(func(cmd *cobra.Command, args []string, _ *session.Session, api *client.Client) error {
			item, err := api.CreateCatalogItem(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s=%s\n", item.ID, item.Categoria, item.Valor)
			return nil
		}),
	}
}

func (a *app) newCatalogsDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string, _ *session.Session, api *client.Client) error {
			if !yes && !a.confirm(cmd, "¿Eliminar este valor del catálogo?") {
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}
			if err := api.DeleteCatalogItem(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
