package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/macormexico/sistema-pnc/internal/apps/pnc"
	"github.com/macormexico/sistema-pnc/internal/client"
	"github.com/macormexico/sistema-pnc/internal/metrics"
	"github.com/macormexico/sistema-pnc/internal/session"
)

func (a *app) newReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reports",
		Aliases: []string{"documents", "docs"},
		Short:   "Manage Non-Conforming Product reports",
	}
	cmd.AddCommand(
		a.newReportsListCmd(),
		a.newReportsShowCmd(),
		a.newReportsCreateCmd(),
		a.newReportsEditCmd(),
		a.newReportsDeleteCmd(),
		a.newReportsPDFCmd(),
		a.newReportsBundleCmd(),
		a.newReportsXLSXCmd(),
	)
	return cmd
}

func (a *app) newReportsListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reports, newest first",
		RunE: a.protected(func(cmd *cobra.Command, _ []string, _ *session.Session, api *client.Client) error {
			reports, err := api.ListReports(cmd.Context())
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tFOLIO\tFECHA\tCLIENTE\tDEFECTO\tSTATUS")
			for _, r := range reports {
				if status != "" && r.Status != status {
					continue
				}
				rec := r.MetricsRecord()
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Folio, r.Fecha, r.DisplayTitle(), rec.Value(metrics.FieldDefecto), r.Status)
			}
			return tw.Flush()
		}),
	}
	cmd.Flags().StringVar(&status, "status", "", "Only reports with this status (Activo or Cerrado)")
	return cmd
}

func (a *app) newReportsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string, _ *session.Session, api *client.Client) error {
			report, err := api.GetReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}),
	}
}

func readFields(path string) (pnc.ReportFields, error) {
	var fields pnc.ReportFields
	data, err := os.ReadFile(path)
	if err != nil {
		return fields, fmt.Errorf("read report file: %w", err)
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return fields, fmt.Errorf("decode report file: %w", err)
	}
	return fields, nil
}

func (a *app) newReportsCreateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create --file report.json",
		Short: "Create a report from a JSON file",
		RunE: a.protected(func(cmd *cobra.Command, _ []string, _ *session.Session, api *client.Client) error {
			fields, err := readFields(file)
			if err != nil {
				return err
			}
			report, err := api.CreateReport(cmd.Context(), fields)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", report.ID, report.Title)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Report JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (a *app) newReportsEditCmd() *cobra.Command {
	var (
		file   string
		status string
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a report's fields from a JSON file, or change its status",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string, _ *session.Session, api *client.Client) error {
			if file == "" && status == "" {
				return fmt.Errorf("nothing to change: pass --file or --status")
			}

			var fields pnc.ReportFields
			if file != "" {
				f, err := readFields(file)
				if err != nil {
					return err
				}
				fields = f
			} else {
				current, err := api.GetReport(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fields = current.ReportFields
			}
			if status != "" {
				fields.Status = status
			}

			report, err := api.UpdateReport(cmd.Context(), args[0], fields)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s (%s, %s)\n", report.ID, report.Title, report.Status)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Report JSON file with every field")
	cmd.Flags().StringVar(&status, "status", "", "New status (Activo or Cerrado)")
	return cmd
}

func (a *app) newReportsDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a report",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string, _ *session.Session, api *client.Client) error {
			if !yes && !a.confirm(cmd, "¿Estás seguro de eliminar este reporte?") {
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}
			if err := api.DeleteReport(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (a *app) newReportsPDFCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Download the printable form of a report",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string, _ *session.Session, api *client.Client) error {
			d, err := api.DownloadReportPDF(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeDownload(cmd, out, d)
		}),
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file or directory")
	return cmd
}

func (a *app) newReportsBundleCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "bundle <id>...",
		Short: "Download several forms merged into one PDF",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.protected(func(cmd *cobra.Command, args []string, _ *session.Session, api *client.Client) error {
			d, err := api.DownloadBundlePDF(cmd.Context(), args)
			if err != nil {
				return err
			}
			return writeDownload(cmd, out, d)
		}),
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file or directory")
	return cmd
}

func (a *app) newReportsXLSXCmd() *cobra.Command {
	var out, period string
	cmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Export the reports of a period to a spreadsheet",
		RunE: a.protected(func(cmd *cobra.Command, _ []string, _ *session.Session, api *client.Client) error {
			p, err := metrics.ParsePeriod(period)
			if err != nil {
				return err
			}
			d, err := api.DownloadXLSX(cmd.Context(), p)
			if err != nil {
				return err
			}
			return writeDownload(cmd, out, d)
		}),
	}
	cmd.Flags().StringVar(&period, "period", "all", "all, week, month or quarter")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file or directory")
	return cmd
}
