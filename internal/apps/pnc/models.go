package pnc

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/macormexico/sistema-pnc/internal/metrics"
	"github.com/macormexico/sistema-pnc/internal/pdfform"
	"gorm.io/gorm"
)

const (
	StatusActivo  = "Activo"
	StatusCerrado = "Cerrado"

	DefaultPesoUnidad = "Kg"
	DefaultUnidad     = "Pza"

	untitled = "Sin Cliente"
)

// DetectedIn marks where the non-conformance was found.
type DetectedIn struct {
	Recepcion  bool `json:"recepcion"`
	ProcesoCNC bool `json:"procesoCNC"`
	Embarque   bool `json:"embarque"`
	Almacenaje bool `json:"almacenaje"`
	Cliente    bool `json:"cliente"`
}

type AreaResponsable struct {
	Recibo     bool   `json:"recibo"`
	Produccion bool   `json:"produccion"`
	Embarques  bool   `json:"embarques"`
	Otros      string `json:"otros"`
}

type Disposicion struct {
	Devolucion bool   `json:"devolucion"`
	Recuperar  bool   `json:"recuperar"`
	Desviacion bool   `json:"desviacion"`
	Scrap      bool   `json:"scrap"`
	Otro       string `json:"otro"`
}

type DocsSoporte struct {
	Certificado      bool   `json:"certificado"`
	Especificaciones bool   `json:"especificaciones"`
	Queja            bool   `json:"queja"`
	Desviacion       bool   `json:"desviacion"`
	Otro             string `json:"otro"`
}

// Autorizaciones are the signers required to degrade material to scrap.
type Autorizaciones struct {
	Calidad    string `json:"calidad"`
	Ingenieria string `json:"ingenieria"`
	Gerencia   string `json:"gerencia"`
	Direccion  string `json:"direccion"`
}

type NotificadoA struct {
	Produccion bool   `json:"produccion"`
	Comercial  bool   `json:"comercial"`
	Ingenieria bool   `json:"ingenieria"`
	Compras    bool   `json:"compras"`
	Embarques  bool   `json:"embarques"`
	Otro       string `json:"otro"`
}

// Roles holds the catalog-bound people and classifications used by the
// metrics screens. Empty values are reported as "Sin asignar".
type Roles struct {
	Inspector  string `json:"inspector,omitempty"`
	Area       string `json:"area,omitempty"`
	Defecto    string `json:"defecto,omitempty"`
	Supervisor string `json:"supervisor,omitempty"`
	Operador   string `json:"operador,omitempty"`
	Auditor    string `json:"auditor,omitempty"`
}

// ReportFields is everything an edit may replace.
type ReportFields struct {
	Folio           string          `gorm:"size:100;index" json:"folio"`
	DetectedIn      DetectedIn      `gorm:"type:text;serializer:json" json:"detectedIn"`
	Cliente         string          `gorm:"size:255;not null" json:"cliente"`
	Fecha           string          `gorm:"size:40;index" json:"fecha"`
	NumParte        string          `gorm:"size:100" json:"numParte"`
	ModeloPadre     string          `gorm:"size:100" json:"modeloPadre"`
	Dimensiones     string          `gorm:"size:100" json:"dimensiones"`
	Peso            string          `gorm:"size:50" json:"peso"`
	PesoUnidad      string          `gorm:"size:10" json:"pesoUnidad"`
	Cantidad        string          `gorm:"size:50" json:"cantidad"`
	Unidad          string          `gorm:"size:10" json:"unidad"`
	Proveedor       string          `gorm:"size:255" json:"proveedor"`
	Remision        string          `gorm:"size:100" json:"remision"`
	FechaRemision   string          `gorm:"size:40" json:"fechaRemision"`
	DescripcionNC   string          `gorm:"type:text" json:"descripcionNC"`
	Dictamen        string          `gorm:"type:text" json:"dictamen"`
	Operador        string          `gorm:"size:255" json:"operador"`
	AreaResponsable AreaResponsable `gorm:"type:text;serializer:json" json:"areaResponsable"`
	Disposicion     Disposicion     `gorm:"type:text;serializer:json" json:"disposicion"`
	DocsSoporte     DocsSoporte     `gorm:"type:text;serializer:json" json:"docsSoporte"`
	Autorizaciones  Autorizaciones  `gorm:"type:text;serializer:json" json:"autorizaciones"`
	AccionesTomadas string          `gorm:"type:text" json:"accionesTomadas"`
	NotificadoA     NotificadoA     `gorm:"type:text;serializer:json" json:"notificadoA"`
	Roles           Roles           `gorm:"type:text;serializer:json" json:"roles"`
	Status          string          `gorm:"size:20;index" json:"status"`
}

// Report is a Non-Conforming Product report.
type Report struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Title        string `gorm:"size:255" json:"title"`
	ReportFields `gorm:"embedded"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Report) TableName() string {
	return "pnc_reports"
}

func (r *Report) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Normalize applies the form defaults to empty fields and trims the required ones.
func (f *ReportFields) Normalize() {
	f.Cliente = strings.TrimSpace(f.Cliente)
	f.Folio = strings.TrimSpace(f.Folio)
	if f.PesoUnidad == "" {
		f.PesoUnidad = DefaultPesoUnidad
	}
	if f.Unidad == "" {
		f.Unidad = DefaultUnidad
	}
	if f.Status == "" {
		f.Status = StatusActivo
	}
}

// DisplayTitle is the list title: the client, or "Sin Cliente".
func (f ReportFields) DisplayTitle() string {
	if f.Cliente == "" {
		return untitled
	}
	return f.Cliente
}

// MetricsRecord flattens the report for the aggregations. The report-level
// operador is used when the roles group does not name one.
func (r *Report) MetricsRecord() metrics.Record {
	operador := r.Roles.Operador
	if operador == "" {
		operador = r.Operador
	}
	return metrics.Record{
		ID:         r.ID,
		Fecha:      r.Fecha,
		Status:     r.Status,
		Inspector:  r.Roles.Inspector,
		Area:       r.Roles.Area,
		Defecto:    r.Roles.Defecto,
		Supervisor: r.Roles.Supervisor,
		Operador:   operador,
		Auditor:    r.Roles.Auditor,
		Cantidad:   r.Cantidad,
		Unidad:     r.Unidad,
	}
}

func MetricsRecords(reports []Report) []metrics.Record {
	out := make([]metrics.Record, len(reports))
	for i := range reports {
		out[i] = reports[i].MetricsRecord()
	}
	return out
}

// Form maps the report onto the paper form keys.
func (r *Report) Form() pdfform.Form {
	return pdfform.Form{
		ID:    r.ID,
		Folio: r.Folio,
		Fields: map[string]string{
			pdfform.KeyFolio:           r.Folio,
			pdfform.KeyCliente:         r.Cliente,
			pdfform.KeyFecha:           r.Fecha,
			pdfform.KeyNumParte:        r.NumParte,
			pdfform.KeyModeloPadre:     r.ModeloPadre,
			pdfform.KeyDimensiones:     r.Dimensiones,
			pdfform.KeyPeso:            r.Peso,
			pdfform.KeyPesoUnidad:      r.PesoUnidad,
			pdfform.KeyCantidad:        r.Cantidad,
			pdfform.KeyUnidad:          r.Unidad,
			pdfform.KeyProveedor:       r.Proveedor,
			pdfform.KeyRemision:        r.Remision,
			pdfform.KeyFechaRemision:   r.FechaRemision,
			pdfform.KeyDescripcionNC:   r.DescripcionNC,
			pdfform.KeyDictamen:        r.Dictamen,
			pdfform.KeyAreaOtros:       r.AreaResponsable.Otros,
			pdfform.KeyDisposicionOtro: r.Disposicion.Otro,
			pdfform.KeySoporteOtro:     r.DocsSoporte.Otro,
			pdfform.KeyAuthCalidad:     r.Autorizaciones.Calidad,
			pdfform.KeyAuthIngenieria:  r.Autorizaciones.Ingenieria,
			pdfform.KeyAuthGerencia:    r.Autorizaciones.Gerencia,
			pdfform.KeyAuthDireccion:   r.Autorizaciones.Direccion,
			pdfform.KeyAcciones:        r.AccionesTomadas,
			pdfform.KeyNotificadoOtro:  r.NotificadoA.Otro,
		},
		Checks: map[string]bool{
			pdfform.CheckRecepcion:  r.DetectedIn.Recepcion,
			pdfform.CheckProcesoCNC: r.DetectedIn.ProcesoCNC,
			pdfform.CheckEmbarque:   r.DetectedIn.Embarque,
			pdfform.CheckAlmacenaje: r.DetectedIn.Almacenaje,
			pdfform.CheckCliente:    r.DetectedIn.Cliente,

			pdfform.CheckAreaRecibo:     r.AreaResponsable.Recibo,
			pdfform.CheckAreaProduccion: r.AreaResponsable.Produccion,
			pdfform.CheckAreaEmbarques:  r.AreaResponsable.Embarques,
			pdfform.CheckAreaOtro:       r.AreaResponsable.Otros != "",

			pdfform.CheckDevolucion: r.Disposicion.Devolucion,
			pdfform.CheckRecuperar:  r.Disposicion.Recuperar,
			pdfform.CheckDesviacion: r.Disposicion.Desviacion,
			pdfform.CheckScrap:      r.Disposicion.Scrap,
			pdfform.CheckDisposOtro: r.Disposicion.Otro != "",

			pdfform.CheckCertificado: r.DocsSoporte.Certificado,
			pdfform.CheckEspecific:   r.DocsSoporte.Especificaciones,
			pdfform.CheckQueja:       r.DocsSoporte.Queja,
			pdfform.CheckSolDesv:     r.DocsSoporte.Desviacion,
			pdfform.CheckSoporteOtro: r.DocsSoporte.Otro != "",

			pdfform.CheckNotProduccion: r.NotificadoA.Produccion,
			pdfform.CheckNotComercial:  r.NotificadoA.Comercial,
			pdfform.CheckNotIngenieria: r.NotificadoA.Ingenieria,
			pdfform.CheckNotCompras:    r.NotificadoA.Compras,
			pdfform.CheckNotEmbarques:  r.NotificadoA.Embarques,
			pdfform.CheckNotOtro:       r.NotificadoA.Otro != "",
		},
	}
}

// ListResponse and the other envelopes mirror the dashboard API.
type ListResponse struct {
	Success bool     `json:"success"`
	Reports []Report `json:"reports"`
}

type ReportResponse struct {
	Success bool    `json:"success"`
	Report  *Report `json:"report"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type MetricsResponse struct {
	Success bool            `json:"success"`
	Metrics metrics.Summary `json:"metrics"`
}

// Summary is the dashboard home card data.
type Summary struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalDocuments int64 `json:"totalDocuments"`
	ActiveReports  int64 `json:"activeReports"`
	ClosedReports  int64 `json:"closedReports"`
}

type SummaryResponse struct {
	Success bool    `json:"success"`
	Summary Summary `json:"summary"`
}

type BundleRequest struct {
	IDs []string `json:"ids"`
}
