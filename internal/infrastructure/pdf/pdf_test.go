package pdf_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicepro/internal/domain"
	"github.com/jhoicas/invoicepro/internal/domain/document"
	"github.com/jhoicas/invoicepro/internal/domain/entity"
	"github.com/jhoicas/invoicepro/internal/infrastructure/pdf"
)

func invoiceWithItems(t *testing.T, n int) entity.Invoice {
	t.Helper()
	inv := entity.NewInvoice(entity.InvoiceOptions{Now: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, inv.SetField(entity.FieldInvoiceNumber, "INV-0007"))
	require.NoError(t, inv.SetField(entity.FieldFromName, "Café Ñandú"))
	require.NoError(t, inv.SetField(entity.FieldNotes, "Pay within 15 days\nBank: XYZ"))
	for i := 1; i < n; i++ {
		inv.AddItem()
	}
	for i, it := range inv.Items {
		require.NoError(t, inv.SetItemField(it.ID, entity.ItemFieldDescription, fmt.Sprintf("Line %d", i+1)))
		require.NoError(t, inv.SetItemField(it.ID, entity.ItemFieldRate, "99.5"))
	}
	return inv.Snapshot()
}

func TestGofpdfWriter_GeneraPDF(t *testing.T) {
	doc, err := document.Build(invoiceWithItems(t, 3), document.Options{})
	require.NoError(t, err)

	out, err := pdf.NewGofpdfWriter().Write(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "cabecera PDF")
	assert.Contains(t, string(out), "%%EOF")
}

func TestGofpdfWriter_ContextoCancelado(t *testing.T) {
	doc, err := document.Build(invoiceWithItems(t, 1), document.Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = pdf.NewGofpdfWriter().Write(ctx, doc)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLayoutPDFGenerator_VariasPaginas(t *testing.T) {
	g := pdf.NewLayoutPDFGenerator(document.Options{})

	one, err := g.GenerateInvoicePDF(context.Background(), invoiceWithItems(t, 1))
	require.NoError(t, err)
	many, err := g.GenerateInvoicePDF(context.Background(), invoiceWithItems(t, 60))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(many, []byte("%PDF-")))
	assert.Greater(t, len(many), len(one))
}

func TestLayoutPDFGenerator_FechaInvalida(t *testing.T) {
	inv := invoiceWithItems(t, 1)
	inv.InvoiceDate = "not-a-date"

	_, err := pdf.NewLayoutPDFGenerator(document.Options{}).GenerateInvoicePDF(context.Background(), inv)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestMarotoPDFGenerator_GeneraPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator(document.Options{Brand: "Acme"})

	out, err := g.GenerateInvoicePDF(context.Background(), invoiceWithItems(t, 5))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestMarotoPDFGenerator_FechaInvalida(t *testing.T) {
	inv := invoiceWithItems(t, 1)
	inv.DueDate = ""

	_, err := pdf.NewMarotoPDFGenerator(document.Options{}).GenerateInvoicePDF(context.Background(), inv)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestGenerators_NotasLargas(t *testing.T) {
	inv := invoiceWithItems(t, 2)
	lines := make([]string, 150)
	for i := range lines {
		lines[i] = fmt.Sprintf("Condition %d", i+1)
	}
	inv.Notes = strings.Join(lines, "\n")

	for name, g := range map[string]interface {
		GenerateInvoicePDF(context.Context, entity.Invoice) ([]byte, error)
	}{
		"layout": pdf.NewLayoutPDFGenerator(document.Options{}),
		"maroto": pdf.NewMarotoPDFGenerator(document.Options{}),
	} {
		out, err := g.GenerateInvoicePDF(context.Background(), inv)
		require.NoError(t, err, name)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), name)
	}
}
