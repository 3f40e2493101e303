package pnc

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/macormexico/sistema-pnc/internal/archive"
	"github.com/macormexico/sistema-pnc/internal/metrics"
	"github.com/macormexico/sistema-pnc/internal/models"
	"github.com/macormexico/sistema-pnc/internal/pdfform"
	"github.com/macormexico/sistema-pnc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) *ReportService {
	t.Helper()
	svc := NewReportService(testutil.NewDB(t, &Report{}))
	svc.now = func() time.Time { return testNow }
	return svc
}

func fullFields() ReportFields {
	return ReportFields{
		Folio:           "F-2024-017",
		DetectedIn:      DetectedIn{Recepcion: true, Cliente: true},
		Cliente:         "ACME",
		Fecha:           "2024-03-10",
		NumParte:        "NP-1",
		ModeloPadre:     "MX-9",
		Dimensiones:     "10x20",
		Peso:            "3",
		PesoUnidad:      "LBS",
		Cantidad:        "40",
		Unidad:          "Pza",
		Proveedor:       "Aceros del Norte",
		Remision:        "R-77",
		FechaRemision:   "2024-03-01",
		DescripcionNC:   "Rebaba en barreno",
		Dictamen:        "Rechazado",
		Operador:        "Pedro",
		AreaResponsable: AreaResponsable{Produccion: true, Otros: "Mantenimiento"},
		Disposicion:     Disposicion{Scrap: true, Otro: "Revisar lote"},
		DocsSoporte:     DocsSoporte{Certificado: true},
		Autorizaciones:  Autorizaciones{Calidad: "J. Perez", Direccion: "L. Mora"},
		AccionesTomadas: "Contencion",
		NotificadoA:     NotificadoA{Produccion: true, Otro: "Ventas"},
		Roles:           Roles{Inspector: "Ana", Area: "CNC", Defecto: "Rebaba"},
		Status:          StatusActivo,
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := newService(t)

	r, err := svc.Create(ReportFields{Cliente: "  Globex "})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Globex", r.Cliente)
	assert.Equal(t, "Globex", r.Title)
	assert.Equal(t, DefaultPesoUnidad, r.PesoUnidad)
	assert.Equal(t, DefaultUnidad, r.Unidad)
	assert.Equal(t, StatusActivo, r.Status)
	assert.Equal(t, "2024-03-15", r.Fecha)
	assert.False(t, r.CreatedAt.IsZero())
}

func TestCreateValidation(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(ReportFields{Cliente: "   "})
	assert.ErrorIs(t, err, ErrClienteRequired)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ReportFields{Cliente: "ACME", Status: "Abierto"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestEditWithoutChangesKeepsRecord(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(fullFields())
	require.NoError(t, err)

	stored, err := svc.Get(created.ID)
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, stored.ReportFields)
	require.NoError(t, err)

	reloaded, err := svc.Get(created.ID)
	require.NoError(t, err)

	assert.Equal(t, stored.ID, reloaded.ID)
	assert.Equal(t, stored.Title, reloaded.Title)
	assert.Equal(t, stored.ReportFields, reloaded.ReportFields)
	assert.True(t, stored.CreatedAt.Equal(reloaded.CreatedAt))
	assert.Equal(t, updated.ReportFields, reloaded.ReportFields)
}

func TestUpdateReplacesEveryField(t *testing.T) {
	svc := newService(t)
	created, err := svc.Create(fullFields())
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, ReportFields{Cliente: "Initech", Status: StatusCerrado})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Initech", updated.Title)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Folio)
	assert.Equal(t, DetectedIn{}, got.DetectedIn)
	assert.Equal(t, Roles{}, got.Roles)
	assert.Equal(t, StatusCerrado, got.Status)

	_, err = svc.Update("missing", ReportFields{Cliente: "x"})
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestDelete(t *testing.T) {
	svc := newService(t)
	a, err := svc.Create(ReportFields{Cliente: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ReportFields{Cliente: "B"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(a.ID))
	assert.ErrorIs(t, svc.Delete(a.ID), ErrReportNotFound)

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestGetManyKeepsRequestOrder(t *testing.T) {
	svc := newService(t)
	a, _ := svc.Create(ReportFields{Cliente: "A"})
	b, _ := svc.Create(ReportFields{Cliente: "B"})

	got, err := svc.GetMany([]string{b.ID, a.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, []string{got[0].Cliente, got[1].Cliente})

	_, err = svc.GetMany([]string{a.ID, "nope"})
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestMetricsAndSummary(t *testing.T) {
	svc := newService(t)
	for _, f := range []ReportFields{
		{Cliente: "A", Fecha: "2024-03-14", Roles: Roles{Defecto: "Rebaba", Inspector: "Ana"}},
		{Cliente: "B", Fecha: "2024-03-12", Roles: Roles{Defecto: "Rebaba"}, Status: StatusCerrado},
		{Cliente: "C", Fecha: "2023-11-02", Roles: Roles{Defecto: "Golpe"}},
	} {
		_, err := svc.Create(f)
		require.NoError(t, err)
	}
	require.NoError(t, svc.db.Create(&models.User{Nombre: "Ana", Email: "ana@dae.com", Password: "x"}).Error)

	week, err := svc.Metrics(metrics.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, 2, week.Total)
	assert.ElementsMatch(t, []metrics.Count{{Name: "Ana", Value: 1}, {Name: metrics.Unassigned, Value: 1}}, week.ByInspector)

	all, err := svc.Metrics(metrics.PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	require.Len(t, all.Pareto, 2)
	assert.Equal(t, "Rebaba", all.Pareto[0].Name)

	sum, err := svc.Summary()
	require.NoError(t, err)
	assert.EqualValues(t, 1, sum.TotalUsers)
	assert.EqualValues(t, 3, sum.TotalDocuments)
	assert.EqualValues(t, 2, sum.ActiveReports)
	assert.EqualValues(t, 1, sum.ClosedReports)
}

func TestMetricsCacheIsFlushedByWrites(t *testing.T) {
	svc := newService(t)

	first, err := svc.Metrics(metrics.PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Total)

	r, err := svc.Create(ReportFields{Cliente: "A"})
	require.NoError(t, err)
	second, err := svc.Metrics(metrics.PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Total)

	require.NoError(t, svc.Delete(r.ID))
	third, err := svc.Metrics(metrics.PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 0, third.Total)
}

func TestMetricsRecordFallsBackToReportOperador(t *testing.T) {
	r := Report{ReportFields: ReportFields{Operador: "Pedro"}}
	assert.Equal(t, "Pedro", r.MetricsRecord().Value(metrics.FieldOperador))

	r.Roles.Operador = "Luis"
	assert.Equal(t, "Luis", r.MetricsRecord().Value(metrics.FieldOperador))
}

func TestFormMapsOtherTextsToChecks(t *testing.T) {
	r := Report{ID: "id-1", ReportFields: fullFields()}
	f := r.Form()

	assert.Equal(t, "PNC_F-2024-017.pdf", f.FileName())
	assert.True(t, f.Checks[pdfform.CheckRecepcion])
	assert.True(t, f.Checks[pdfform.CheckAreaOtro])
	assert.True(t, f.Checks[pdfform.CheckDisposOtro])
	assert.False(t, f.Checks[pdfform.CheckSoporteOtro])
	assert.Equal(t, "LBS", f.Fields[pdfform.KeyPesoUnidad])
}

func TestExportReportPDFArchivesCopy(t *testing.T) {
	svc := newService(t)
	mem := archive.NewMemory()
	export := NewExportService(svc, pdfform.NewRenderer(pdfform.Standard()), mem)

	r, err := svc.Create(fullFields())
	require.NoError(t, err)

	name, doc, err := export.ReportPDF(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "PNC_F-2024-017.pdf", name)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))

	stored, ok := mem.Get("reports/PNC_F-2024-017.pdf")
	require.True(t, ok)
	assert.Equal(t, doc, stored)

	_, _, err = export.ReportPDF(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestExportBundleArchivesCopy(t *testing.T) {
	svc := newService(t)
	mem := archive.NewMemory()
	export := NewExportService(svc, pdfform.NewRenderer(pdfform.Standard()), mem)
	export.now = func() time.Time { return testNow }

	a, _ := svc.Create(fullFields())
	b, _ := svc.Create(ReportFields{Cliente: "B"})

	name, doc, err := export.BundlePDF(context.Background(), []string{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, "PNC_lote_20240315_120000.pdf", name)
	pages, err := pdfform.PageCount(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)

	stored, ok := mem.Get("reports/PNC_lote_20240315_120000.pdf")
	require.True(t, ok)
	assert.Equal(t, doc, stored)

	_, _, err = export.BundlePDF(context.Background(), nil)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, mem.Keys(), 1)
}

func TestExportWorkbookFiltersByPeriod(t *testing.T) {
	svc := newService(t)
	export := NewExportService(svc, pdfform.NewRenderer(pdfform.Standard()), nil)
	export.now = func() time.Time { return testNow }

	_, err := svc.Create(ReportFields{Cliente: "Reciente", Fecha: "2024-03-14", Roles: Roles{Defecto: "Rebaba"}})
	require.NoError(t, err)
	_, err = svc.Create(ReportFields{Cliente: "Viejo", Fecha: "2023-01-01", Roles: Roles{Defecto: "Golpe"}})
	require.NoError(t, err)

	name, data, err := export.Workbook(metrics.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, "PNC_week_20240315.xlsx", name)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reportes")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Reciente", rows[1][3])

	pareto, err := f.GetRows("Pareto")
	require.NoError(t, err)
	require.Len(t, pareto, 2)
	assert.Equal(t, "Rebaba", pareto[1][0])
}
