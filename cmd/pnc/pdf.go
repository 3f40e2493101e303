package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/macormexico/sistema-pnc/internal/pdfform"
)

func (a *app) newPDFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Work with downloaded forms",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "Print the page count and text of a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			pages, err := pdfform.PageCount(data)
			if err != nil {
				return err
			}
			text, err := pdfform.ExtractText(data)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d page(s)\n\n%s\n", args[0], pages, text)
			return nil
		},
	})
	return cmd
}
