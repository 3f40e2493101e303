package pnc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/macormexico/sistema-pnc/internal/metrics"
	"github.com/macormexico/sistema-pnc/internal/pdfform"
	"github.com/macormexico/sistema-pnc/internal/spreadsheet"
)

// Archiver keeps a copy of generated documents.
type Archiver interface {
	Put(ctx context.Context, name string, data []byte) error
}

type ExportService struct {
	reports  *ReportService
	renderer *pdfform.Renderer
	archive  Archiver
	now      func() time.Time
}

func NewExportService(reports *ReportService, renderer *pdfform.Renderer, archive Archiver) *ExportService {
	return &ExportService{reports: reports, renderer: renderer, archive: archive, now: time.Now}
}

// ReportPDF renders one report and returns its download name and bytes.
func (s *ExportService) ReportPDF(ctx context.Context, id string) (string, []byte, error) {
	report, err := s.reports.Get(id)
	if err != nil {
		return "", nil, err
	}

	form := report.Form()
	doc, err := s.renderer.Render(form)
	if err != nil {
		return "", nil, fmt.Errorf("failed to render report %s: %w", id, err)
	}

	name := form.FileName()
	s.store(ctx, name, doc)
	return name, doc, nil
}

// BundlePDF renders the given reports, in order, into a single document and
// returns its download name and bytes.
func (s *ExportService) BundlePDF(ctx context.Context, ids []string) (string, []byte, error) {
	if len(ids) == 0 {
		return "", nil, fmt.Errorf("%w: ids are required", ErrValidation)
	}
	reports, err := s.reports.GetMany(ids)
	if err != nil {
		return "", nil, err
	}

	forms := make([]pdfform.Form, len(reports))
	for i := range reports {
		forms[i] = reports[i].Form()
	}
	doc, err := s.renderer.Bundle(ctx, forms)
	if err != nil {
		return "", nil, fmt.Errorf("failed to bundle reports: %w", err)
	}

	name := fmt.Sprintf("PNC_lote_%s.pdf", s.now().Format("20060102_150405"))
	s.store(ctx, name, doc)
	return name, doc, nil
}

func (s *ExportService) store(ctx context.Context, name string, doc []byte) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Put(ctx, name, doc); err != nil {
		slog.Error("pdf archive failed", "file", name, "error", err)
	}
}

var reportHeader = []string{
	"ID", "Folio", "Fecha", "Cliente", "No. Parte", "Modelo o Padre", "Cantidad", "Unidad",
	"Proveedor", "Inspector", "Área", "Defecto", "Supervisor", "Dictamen", "Status",
}

// Workbook exports the reports of a period plus their Pareto and trend series.
func (s *ExportService) Workbook(period metrics.Period) (string, []byte, error) {
	all, err := s.reports.List()
	if err != nil {
		return "", nil, err
	}

	now := s.now()
	keep := make(map[string]bool)
	for _, r := range metrics.Filter(MetricsRecords(all), period, now) {
		keep[r.ID] = true
	}

	rows := make([][]any, 0, len(keep))
	var records []metrics.Record
	for i := range all {
		r := &all[i]
		if !keep[r.ID] {
			continue
		}
		rec := r.MetricsRecord()
		records = append(records, rec)
		rows = append(rows, []any{
			r.ID, r.Folio, r.Fecha, r.Cliente, r.NumParte, r.ModeloPadre, r.Cantidad, r.Unidad,
			r.Proveedor, rec.Value(metrics.FieldInspector), rec.Value(metrics.FieldArea),
			rec.Value(metrics.FieldDefecto), rec.Value(metrics.FieldSupervisor), r.Dictamen, r.Status,
		})
	}

	pareto := metrics.Pareto(records)
	paretoRows := make([][]any, len(pareto))
	for i, p := range pareto {
		paretoRows[i] = []any{p.Name, p.Value, p.Cumulative, p.CumulativePct}
	}

	trend := metrics.MonthlyTrend(records)
	trendRows := make([][]any, len(trend))
	for i, c := range trend {
		trendRows[i] = []any{c.Name, c.Value}
	}

	data, err := spreadsheet.Build(
		spreadsheet.Sheet{Name: "Reportes", Header: reportHeader, Rows: rows, Widths: []float64{38, 14, 12, 30}},
		spreadsheet.Sheet{Name: "Pareto", Header: []string{"Defecto", "Total", "Acumulado", "% Acumulado"}, Rows: paretoRows, Widths: []float64{30}},
		spreadsheet.Sheet{Name: "Tendencia", Header: []string{"Mes", "Reportes"}, Rows: trendRows},
	)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	return fmt.Sprintf("PNC_%s_%s.xlsx", period, now.Format("20060102")), data, nil
}
