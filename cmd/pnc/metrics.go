package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macormexico/sistema-pnc/internal/client"
	"github.com/macormexico/sistema-pnc/internal/metrics"
	"github.com/macormexico/sistema-pnc/internal/session"
)

func (a *app) newMetricsCmd() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Print the quality metrics of a period",
		RunE: a.protected(func(cmd *cobra.Command, _ []string, _ *session.Session, api *client.Client) error {
			p, err := metrics.ParsePeriod(period)
			if err != nil {
				return err
			}
			m, err := api.Metrics(cmd.Context(), p)
			if err != nil {
				return err
			}
			return printMetrics(cmd.OutOrStdout(), m)
		}),
	}
	cmd.Flags().StringVarP(&period, "period", "p", "all", "all, week, month or quarter")
	return cmd
}

func printCounts(w io.Writer, title string, counts []metrics.Count) error {
	fmt.Fprintf(w, "\n%s\n", title)
	tw := newTable(w)
	for _, c := range counts {
		fmt.Fprintf(tw, "  %s\t%d\n", c.Name, c.Value)
	}
	return tw.Flush()
}

func printMetrics(w io.Writer, m *metrics.Summary) error {
	fmt.Fprintf(w, "Periodo: %s\n", m.Period)
	fmt.Fprintf(w, "Reportes: %d  Activos: %d  Inspectores: %d  Áreas: %d  Defectos: %d\n",
		m.Total, m.Active, m.Inspectors, m.Areas, m.Defects)

	for _, s := range []struct {
		title  string
		counts []metrics.Count
	}{
		{"Por inspector", m.ByInspector},
		{"Por área", m.ByArea},
		{"Por supervisor", m.BySupervisor},
		{"Tendencia mensual", m.Trend},
	} {
		if err := printCounts(w, s.title, s.counts); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "\nPareto de defectos")
	tw := newTable(w)
	fmt.Fprintln(tw, "  DEFECTO\tTOTAL\tACUM\t%ACUM")
	for _, p := range m.Pareto {
		fmt.Fprintf(tw, "  %s\t%d\t%d\t%d%%\n", p.Name, p.Value, p.Cumulative, p.CumulativePct)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(m.Matrix.Rows) > 0 {
		fmt.Fprintln(w, "\nDefectos por área")
		tw = newTable(w)
		fmt.Fprintf(tw, "  ÁREA\t%s\n", strings.Join(m.Matrix.Defects, "\t"))
		for _, row := range m.Matrix.Rows {
			cells := make([]string, len(m.Matrix.Defects))
			for i, d := range m.Matrix.Defects {
				cells[i] = fmt.Sprint(row.Counts[d])
			}
			fmt.Fprintf(tw, "  %s\t%s\n", row.Area, strings.Join(cells, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(m.Quantities) > 0 {
		fmt.Fprintln(w, "\nCantidad afectada")
		tw = newTable(w)
		for _, q := range m.Quantities {
			fmt.Fprintf(tw, "  %s\t%s\t(%d reportes)\n", q.Unit, q.Total.String(), q.Records)
		}
		return tw.Flush()
	}
	return nil
}

func (a *app) newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard home counters",
		RunE: a.protected(func(cmd *cobra.Command, _ []string, s *session.Session, api *client.Client) error {
			sum, err := api.Summary(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Hola, %s\n", s.Name)
			tw := newTable(out)
			fmt.Fprintf(tw, "Usuarios\t%d\n", sum.TotalUsers)
			fmt.Fprintf(tw, "Documentos\t%d\n", sum.TotalDocuments)
			fmt.Fprintf(tw, "Reportes activos\t%d\n", sum.ActiveReports)
			fmt.Fprintf(tw, "Reportes cerrados\t%d\n", sum.ClosedReports)
			return tw.Flush()
		}),
	}
}
