package pdfform

// Kind selects how an Element is drawn.
type Kind int

const (
	// KindText draws Label (or the value of Key) at X,Y.
	KindText Kind = iota
	// KindRule draws a line from X,Y to X2,Y2.
	KindRule
	// KindBox draws a bordered rectangle.
	KindBox
	// KindHeader draws a grey filled, bordered band with a bold title.
	KindHeader
	// KindCheckbox draws a 4mm square with an X when Key is checked, then Label.
	KindCheckbox
	// KindField draws Label, a baseline rule from X2 to RuleEnd and the value
	// of Key at ValueX.
	KindField
	// KindWrapped draws the value of Key wrapped to width W.
	KindWrapped
)

// Align is the horizontal anchor of a text element.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Style is a font selection.
type Style struct {
	Size float64
	Bold bool
}

var (
	styleLabel  = Style{Size: 9}
	styleSmall  = Style{Size: 8}
	styleTiny   = Style{Size: 7}
	styleBold8  = Style{Size: 8, Bold: true}
	styleHeader = Style{Size: 9, Bold: true}
)

// Element is one row of the layout table. Coordinates are millimetres from
// the top-left corner of the page; text Y values are baselines.
type Element struct {
	Kind  Kind
	X, Y  float64
	X2    float64
	Y2    float64
	W, H  float64
	Label string
	// Prefix is prepended to the value of Key, and LabelKey, when set,
	// fills the %s verb in Label.
	Prefix   string
	LabelKey string
	Key      string
	ValueX   float64
	RuleEnd  float64
	Style    Style
	Align    Align
	Gray     bool
	Date     bool
}

// Template is a complete page layout.
type Template struct {
	Title    string
	Elements []Element
}

const (
	margin       = 10.0
	contentWidth = 190.0
	pageRight    = margin + contentWidth
	lineHeight   = 3.25
)

func header(y float64, title string) Element {
	return Element{Kind: KindHeader, X: margin, Y: y, W: contentWidth, H: 5, Label: title, Style: styleHeader}
}

func box(x, y, w, h float64) Element {
	return Element{Kind: KindBox, X: x, Y: y, W: w, H: h}
}

func check(x, y float64, key, label string) Element {
	return Element{Kind: KindCheckbox, X: x, Y: y, Key: key, Label: label, Style: styleSmall}
}

func text(x, y float64, label string, style Style) Element {
	return Element{Kind: KindText, X: x, Y: y, Label: label, Style: style}
}

func value(x, y float64, key string, style Style) Element {
	return Element{Kind: KindText, X: x, Y: y, Key: key, Style: style}
}

func centered(x, y float64, key, label string, style Style) Element {
	return Element{Kind: KindText, X: x, Y: y, Key: key, Label: label, Style: style, Align: AlignCenter}
}

func rule(x1, y1, x2, y2 float64, gray bool) Element {
	return Element{Kind: KindRule, X: x1, Y: y1, X2: x2, Y2: y2, Gray: gray}
}

// field is a general-data row entry: label at x, rule from ruleFrom to
// ruleTo on the baseline and the value 2mm after the rule start.
func field(x, y float64, label, key string, ruleFrom, ruleTo float64) Element {
	return Element{
		Kind: KindField, X: x, Y: y, Label: label, Key: key,
		X2: ruleFrom, RuleEnd: ruleTo, ValueX: ruleFrom + 2, Style: styleLabel,
	}
}

// Standard returns the MM-FO-CA-06 REV. 02 layout.
func Standard() Template {
	var e []Element
	add := func(els ...Element) { e = append(e, els...) }

	// Header
	add(
		text(margin+5, 19, "MACOR MÉXICO", Style{Size: 10, Bold: true}),
		centered(105, 18, "", "REPORTE DE PRODUCTO NO CONFORME", Style{Size: 12, Bold: true}),
		Element{Kind: KindText, X: 165, Y: 18, Prefix: "N° FOLIO: ", Key: KeyFolio, Style: Style{Size: 10, Bold: true}},
		rule(185, 18, pageRight, 18, false),
	)

	// Detectado en
	add(header(30, "DETECTADO EN:"), box(margin, 35, contentWidth, 10))
	for i, c := range []struct{ key, label string }{
		{CheckRecepcion, "RECEPCIÓN"},
		{CheckProcesoCNC, "PROCESO CNC"},
		{CheckEmbarque, "EMBARQUE"},
		{CheckAlmacenaje, "ALMACENAJE"},
		{CheckCliente, "CLIENTE"},
	} {
		x := []float64{15, 55, 95, 135, 165}[i]
		add(check(x, 41.5, c.key, c.label))
	}

	// Datos generales
	add(box(margin, 45, contentWidth, 40))
	add(
		field(12, 53, "CLIENTE:", KeyCliente, 30, 140),
		withDate(field(145, 53, "FECHA:", KeyFecha, 160, 198)),
		field(12, 63, "NÚMERO DE PARTE:", KeyNumParte, 45, 105),
		field(110, 63, "MODELO O PADRE:", KeyModeloPadre, 145, 198),
		field(12, 73, "DIMENSIONES:", KeyDimensiones, 40, 105),
		withLabelKey(field(110, 73, "PESO (%s):", KeyPeso, 145, 198), KeyPesoUnidad),
		field(12, 83, "CANTIDAD:", KeyCantidad, 30, 65),
		field(70, 83, "UNIDAD:", KeyUnidad, 85, 105),
		field(110, 83, "PROVEEDOR:", KeyProveedor, 135, 198),
		field(12, 93, "REMISIÓN / TRANSFERENCIA:", KeyRemision, 65, 130),
		withDate(field(135, 93, "FECHA:", KeyFechaRemision, 150, 198)),
	)

	// Descripción
	add(
		header(100, "DESCRIPCIÓN DE NO CONFORMIDAD:"),
		box(margin, 105, contentWidth, 25),
		Element{Kind: KindWrapped, X: 12, Y: 110, W: contentWidth - 4, Key: KeyDescripcionNC, Style: styleSmall},
	)

	// Dictamen
	add(
		box(margin, 130, contentWidth, 10),
		text(12, 136.5, "DICTAMEN DE CALIDAD:", styleBold8),
		value(55, 136.5, KeyDictamen, styleSmall),
		rule(54, 137, contentWidth-20, 137, false),
	)

	// Área responsable
	add(header(140, "ÁREA RESPONSABLE:"), box(margin, 145, contentWidth, 10))
	add(
		check(15, 151.5, CheckAreaRecibo, "RECIBO"),
		check(65, 151.5, CheckAreaProduccion, "PRODUCCIÓN"),
		check(115, 151.5, CheckAreaEmbarques, "EMBARQUES"),
		check(165, 151.5, CheckAreaOtro, "OTRO:"),
		value(182, 151.5, KeyAreaOtros, styleSmall),
		rule(180, 152, 198, 152, false),
	)

	// Disposición y documentos de soporte
	half := contentWidth / 2
	add(
		box(margin, 155, half, 45),
		box(margin+half, 155, half, 45),
		text(12, 160, "DISPOSICIÓN:", styleBold8),
		text(margin+half+2, 160, "DOCUMENTO DE REFERENCIA Y SOPORTE:", styleBold8),
	)
	disp := []struct{ key, label string }{
		{CheckDevolucion, "Devolución a Proveedor"},
		{CheckRecuperar, "Recuperar / Retrabajar"},
		{CheckDesviacion, "Usar c/ desviación"},
		{CheckScrap, "Degradar a SCRAP"},
		{CheckDisposOtro, "Otro"},
	}
	for i, d := range disp {
		add(check(15, 167+float64(i)*7, d.key, d.label))
	}
	add(
		value(30, 195, KeyDisposicionOtro, styleSmall),
		rule(28, 195.5, margin+half-5, 195.5, false),
	)

	sop := []struct{ key, label string }{
		{CheckCertificado, "Certificado de Calidad"},
		{CheckEspecific, "Especificaciones - Dibujo"},
		{CheckQueja, "Reporte de Queja"},
		{CheckSolDesv, "Solicitud de Desviación"},
		{CheckSoporteOtro, "Otro"},
	}
	sopX := margin + half + 5
	for i, s := range sop {
		y := 167 + float64(i)*7
		lineStart := sopX + 60
		if i == len(sop)-1 {
			lineStart = sopX + 15
		}
		add(
			check(sopX, y, s.key, s.label),
			rule(lineStart, y+0.5, pageRight-5, y+0.5, true),
		)
		if i == len(sop)-1 {
			add(value(lineStart+2, y, KeySoporteOtro, styleSmall))
		}
	}

	// Autorizaciones
	add(
		header(200, "PARA DEGRADACIONES A SCRAP REQUIERE LAS SIGUIENTES AUTORIZACIONES:"),
		box(margin, 205, contentWidth, 15),
	)
	quarter := contentWidth / 4
	for i, a := range []struct{ key, label string }{
		{KeyAuthCalidad, "Calidad"},
		{KeyAuthIngenieria, "Ingeniería"},
		{KeyAuthGerencia, "Gerencia de Planta"},
		{KeyAuthDireccion, "Dirección General"},
	} {
		x := margin + float64(i)*quarter
		add(
			rule(x, 205, x, 220, false),
			centered(x+quarter/2, 218, "", a.label, styleTiny),
			centered(x+quarter/2, 212, a.key, "", styleSmall),
		)
	}

	// Acciones tomadas
	add(
		header(220, "ACCIONES TOMADAS:"),
		box(margin, 225, contentWidth, 20),
		Element{Kind: KindWrapped, X: 12, Y: 230, W: contentWidth - 4, Key: KeyAcciones, Style: styleSmall},
	)

	// Notificado a
	add(header(245, "NOTIFICADO A:"), box(margin, 250, contentWidth, 15))
	notify := []struct{ key, label string }{
		{CheckNotProduccion, "PRODUCCIÓN"},
		{CheckNotComercial, "COMERCIAL"},
		{CheckNotIngenieria, "INGENIERÍA"},
		{CheckNotCompras, "COMPRAS"},
		{CheckNotEmbarques, "EMBARQUES"},
		{CheckNotOtro, "OTRO(S):"},
	}
	for i, n := range notify {
		x := 15 + float64(i%2)*95
		y := 254 + float64(i/2)*5
		add(check(x, y, n.key, n.label))
		if i < len(notify)-1 {
			add(rule(x+32, y+0.5, x+88, y+0.5, true))
			continue
		}
		add(
			rule(x+25, y+0.5, x+88, y+0.5, true),
			value(x+27, y, KeyNotificadoOtro, styleSmall),
		)
	}

	// Control de documento
	add(
		text(175, 287, "MM-FO-CA-06", styleSmall),
		text(175, 291, "REV. 02", styleSmall),
	)

	return Template{Title: "REPORTE DE PRODUCTO NO CONFORME", Elements: e}
}

func withDate(el Element) Element {
	el.Date = true
	return el
}

func withLabelKey(el Element, key string) Element {
	el.LabelKey = key
	return el
}
