package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/jhoicas/invoicepro/internal/domain/document"
)

const fontFamily = "Helvetica"

// GofpdfWriter reproduce un document.Document sobre gofpdf con coordenadas absolutas.
type GofpdfWriter struct{}

// NewGofpdfWriter construye el writer.
func NewGofpdfWriter() *GofpdfWriter { return &GofpdfWriter{} }

// Write dibuja cada página y devuelve los bytes del PDF.
func (w *GofpdfWriter) Write(ctx context.Context, doc *document.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetSubject(doc.Subject, true)
	pdf.SetCreator(doc.Creator, true)
	pdf.SetFont(fontFamily, "", 10)

	// Las fuentes base son cp1252: se traduce todo texto UTF-8 antes de medirlo o escribirlo.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			switch o := op.(type) {
			case document.FillRect:
				pdf.SetFillColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))
				pdf.Rect(o.X, o.Y, o.W, o.H, "F")
			case document.Line:
				pdf.SetDrawColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))
				pdf.Line(o.X1, o.Y1, o.X2, o.Y2)
			case document.Text:
				drawText(pdf, tr, o)
			default:
				return nil, fmt.Errorf("pdf: operación no soportada %T", op)
			}
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("pdf: generar documento: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: escribir documento: %w", err)
	}
	return buf.Bytes(), nil
}

func drawText(pdf *gofpdf.Fpdf, tr func(string) string, t document.Text) {
	pdf.SetFontSize(t.Size)
	pdf.SetTextColor(int(t.Color.R), int(t.Color.G), int(t.Color.B))
	lh := document.LineHeight(t.Size)
	for i, line := range t.Lines {
		if line == "" {
			continue
		}
		s := tr(line)
		x := t.X
		switch t.Align {
		case document.AlignCenter:
			x -= pdf.GetStringWidth(s) / 2
		case document.AlignRight:
			x -= pdf.GetStringWidth(s)
		}
		pdf.Text(x, t.Y+float64(i)*lh, s)
	}
}
