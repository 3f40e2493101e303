// Package pdfform renders the "Reporte de Producto No Conforme" paper form
// (MM-FO-CA-06 REV. 02) as an A4 PDF.
//
// The layout lives in a Template: a table of elements with literal millimetre
// coordinates. The Renderer only knows how to draw each element kind, so the
// paper form can change without touching drawing code.
package pdfform

import (
	"fmt"
	"strings"

	"github.com/macormexico/sistema-pnc/internal/metrics"
)

// Form is the flattened content of one report, addressed by template keys.
type Form struct {
	ID     string
	Folio  string
	Fields map[string]string
	Checks map[string]bool
}

func (f Form) text(key string) string {
	if key == "" {
		return ""
	}
	return f.Fields[key]
}

func (f Form) checked(key string) bool {
	return f.Checks[key]
}

// FileName returns PNC_<folio>.pdf, falling back to the record id.
func FileName(folio, id string) string {
	name := strings.TrimSpace(folio)
	if name == "" {
		name = id
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, name)
	return fmt.Sprintf("PNC_%s.pdf", name)
}

// FileName returns the download name of the rendered form.
func (f Form) FileName() string {
	return FileName(f.Folio, f.ID)
}

// FormatDate renders a report date the way es-MX prints it (d/m/yyyy).
// Values that do not parse are returned unchanged.
func FormatDate(s string) string {
	t, ok := metrics.ParseDate(s)
	if !ok {
		return s
	}
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// Template keys for text values.
const (
	KeyFolio           = "folio"
	KeyCliente         = "cliente"
	KeyFecha           = "fecha"
	KeyNumParte        = "numParte"
	KeyModeloPadre     = "modeloPadre"
	KeyDimensiones     = "dimensiones"
	KeyPeso            = "peso"
	KeyPesoUnidad      = "pesoUnidad"
	KeyCantidad        = "cantidad"
	KeyUnidad          = "unidad"
	KeyProveedor       = "proveedor"
	KeyRemision        = "remision"
	KeyFechaRemision   = "fechaRemision"
	KeyDescripcionNC   = "descripcionNC"
	KeyDictamen        = "dictamen"
	KeyAreaOtros       = "areaResponsable.otros"
	KeyDisposicionOtro = "disposicion.otro"
	KeySoporteOtro     = "docsSoporte.otro"
	KeyAuthCalidad     = "autorizaciones.calidad"
	KeyAuthIngenieria  = "autorizaciones.ingenieria"
	KeyAuthGerencia    = "autorizaciones.gerencia"
	KeyAuthDireccion   = "autorizaciones.direccion"
	KeyAcciones        = "accionesTomadas"
	KeyNotificadoOtro  = "notificadoA.otro"
)

// Template keys for checkboxes.
const (
	CheckRecepcion  = "detectedIn.recepcion"
	CheckProcesoCNC = "detectedIn.procesoCNC"
	CheckEmbarque   = "detectedIn.embarque"
	CheckAlmacenaje = "detectedIn.almacenaje"
	CheckCliente    = "detectedIn.cliente"

	CheckAreaRecibo     = "areaResponsable.recibo"
	CheckAreaProduccion = "areaResponsable.produccion"
	CheckAreaEmbarques  = "areaResponsable.embarques"
	CheckAreaOtro       = "areaResponsable.otro"

	CheckDevolucion  = "disposicion.devolucion"
	CheckRecuperar   = "disposicion.recuperar"
	CheckDesviacion  = "disposicion.desviacion"
	CheckScrap       = "disposicion.scrap"
	CheckDisposOtro  = "disposicion.otro"
	CheckCertificado = "docsSoporte.certificado"
	CheckEspecific   = "docsSoporte.especificaciones"
	CheckQueja       = "docsSoporte.queja"
	CheckSolDesv     = "docsSoporte.desviacion"
	CheckSoporteOtro = "docsSoporte.otro"

	CheckNotProduccion = "notificadoA.produccion"
	CheckNotComercial  = "notificadoA.comercial"
	CheckNotIngenieria = "notificadoA.ingenieria"
	CheckNotCompras    = "notificadoA.compras"
	CheckNotEmbarques  = "notificadoA.embarques"
	CheckNotOtro       = "notificadoA.otro"
)
