package pdfform

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// Renderer draws Forms onto a Template. It is safe for concurrent use; every
// call builds its own document.
type Renderer struct {
	tpl Template
}

func NewRenderer(tpl Template) *Renderer {
	return &Renderer{tpl: tpl}
}

// Render produces a single-page PDF. Text that does not fit its box is drawn
// anyway and overlaps whatever follows.
func (r *Renderer) Render(f Form) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(r.tpl.Title, true)
	pdf.SetSubject(f.FileName(), true)
	pdf.SetCreator("sistema-pnc", true)
	pdf.AddPage()

	d := drawer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	for _, el := range r.tpl.Elements {
		d.draw(el, f)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render %s: %w", f.FileName(), err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write %s: %w", f.FileName(), err)
	}
	return buf.Bytes(), nil
}

type drawer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (d drawer) font(s Style) {
	style := ""
	if s.Bold {
		style = "B"
	}
	size := s.Size
	if size == 0 {
		size = styleLabel.Size
	}
	d.pdf.SetFont(fontFamily, style, size)
}

func (d drawer) pen(gray bool) {
	if gray {
		d.pdf.SetLineWidth(0.1)
		d.pdf.SetDrawColor(150, 150, 150)
		return
	}
	d.pdf.SetLineWidth(0.2)
	d.pdf.SetDrawColor(0, 0, 0)
}

func (d drawer) text(x, y float64, s string, align Align) {
	if s == "" {
		return
	}
	s = d.tr(s)
	if align == AlignCenter {
		x -= d.pdf.GetStringWidth(s) / 2
	}
	d.pdf.Text(x, y, s)
}

func (d drawer) draw(el Element, f Form) {
	switch el.Kind {
	case KindText:
		d.font(el.Style)
		s := el.Label
		if el.Key != "" {
			s = el.Prefix + f.text(el.Key)
		}
		d.text(el.X, el.Y, s, el.Align)

	case KindRule:
		d.pen(el.Gray)
		d.pdf.Line(el.X, el.Y, el.X2, el.Y2)

	case KindBox:
		d.pen(false)
		d.pdf.Rect(el.X, el.Y, el.W, el.H, "D")

	case KindHeader:
		d.pen(false)
		d.pdf.SetFillColor(245, 245, 245)
		d.pdf.Rect(el.X, el.Y, el.W, el.H, "FD")
		d.font(el.Style)
		d.text(el.X+2, el.Y+3.8, el.Label, AlignLeft)

	case KindCheckbox:
		d.pen(false)
		d.pdf.Rect(el.X, el.Y-3, 4, 4, "D")
		if f.checked(el.Key) {
			d.font(Style{Size: el.Style.Size, Bold: true})
			d.text(el.X+0.8, el.Y+0.2, "X", AlignLeft)
		}
		d.font(el.Style)
		d.text(el.X+6, el.Y, el.Label, AlignLeft)

	case KindField:
		d.font(el.Style)
		label := el.Label
		if el.LabelKey != "" {
			label = fmt.Sprintf(label, f.text(el.LabelKey))
		}
		d.text(el.X, el.Y, label, AlignLeft)
		d.pen(false)
		d.pdf.Line(el.X2, el.Y, el.RuleEnd, el.Y)
		v := f.text(el.Key)
		if el.Date {
			v = FormatDate(v)
		}
		d.text(el.ValueX, el.Y-0.5, v, AlignLeft)

	case KindWrapped:
		d.font(el.Style)
		for i, line := range d.wrap(f.text(el.Key), el.W) {
			d.pdf.Text(el.X, el.Y+float64(i)*lineHeight, line)
		}
	}
}

// wrap splits s into lines no wider than width. Lines are returned already
// translated to the PDF code page.
func (d drawer) wrap(s string, width float64) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		words := strings.Fields(d.tr(para))
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, w := range words {
			candidate := w
			if line != "" {
				candidate = line + " " + w
			}
			if d.pdf.GetStringWidth(candidate) <= width {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			for len(w) > 1 && d.pdf.GetStringWidth(w) > width {
				n := d.fit(w, width)
				lines = append(lines, w[:n])
				w = w[n:]
			}
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// fit returns how many leading bytes of the single-byte string w fit in width.
func (d drawer) fit(w string, width float64) int {
	n := 1
	for n < len(w) && d.pdf.GetStringWidth(w[:n+1]) <= width {
		n++
	}
	return n
}
