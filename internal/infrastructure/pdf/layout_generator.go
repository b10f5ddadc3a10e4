package pdf

import (
	"context"
	"fmt"

	"github.com/jhoicas/invoicepro/internal/domain/document"
	"github.com/jhoicas/invoicepro/internal/domain/entity"
)

// LayoutPDFGenerator implementa invoicing.InvoicePDFGenerator en dos pasos:
// document.Build (puro) y GofpdfWriter (bytes).
type LayoutPDFGenerator struct {
	opts   document.Options
	writer *GofpdfWriter
}

// NewLayoutPDFGenerator construye el generador con las opciones de layout.
func NewLayoutPDFGenerator(opts document.Options) *LayoutPDFGenerator {
	return &LayoutPDFGenerator{opts: opts, writer: NewGofpdfWriter()}
}

// GenerateInvoicePDF arma el documento y lo escribe.
func (g *LayoutPDFGenerator) GenerateInvoicePDF(ctx context.Context, inv entity.Invoice) ([]byte, error) {
	doc, err := document.Build(inv, g.opts)
	if err != nil {
		return nil, fmt.Errorf("pdf: layout: %w", err)
	}
	return g.writer.Write(ctx, doc)
}
