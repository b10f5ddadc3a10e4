// Package pdf implementa los motores de salida PDF de la factura.
//
// El motor "layout" (LayoutPDFGenerator) dibuja el document.Document con
// coordenadas absolutas sobre gofpdf. El motor "maroto" (MarotoPDFGenerator)
// usa filas y columnas de Maroto v2 y pagina solo:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  BANDA: INVOICE + marca                                      │
//	│  N° factura / fecha / vencimiento                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FROM                          │  BILL TO                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | HSN | Cant | Tarifa | Impuesto | Importe│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Tax / Total                             │
//	│  NOTAS                                                       │
//	│  PIE (en cada página)                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/invoicepro/internal/domain/document"
	"github.com/jhoicas/invoicepro/internal/domain/entity"
	"github.com/jhoicas/invoicepro/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorBrand  = &props.Color{Red: 39, Green: 174, Blue: 96}
	colorBand   = &props.Color{Red: 240, Green: 240, Blue: 240}
	colorRule   = &props.Color{Red: 220, Green: 220, Blue: 220}
	colorTotals = &props.Color{Red: 200, Green: 200, Blue: 200}
	colorWhite  = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa invoicing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	brand  string
	footer string
	money  *money.Formatter
}

// NewMarotoPDFGenerator construye el generador. Los campos vacíos toman los valores de document.
func NewMarotoPDFGenerator(opts document.Options) *MarotoPDFGenerator {
	g := &MarotoPDFGenerator{brand: opts.Brand, footer: opts.Footer, money: opts.Money}
	if g.brand == "" {
		g.brand = document.DefaultBrand
	}
	if g.footer == "" {
		g.footer = document.DefaultFooter
	}
	if g.money == nil {
		g.money = money.Default()
	}
	return g
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(ctx context.Context, inv entity.Invoice) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	issued, err := document.FormatDate(inv.InvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("pdf: fecha de emisión: %w", err)
	}
	due, err := document.FormatDate(inv.DueDate)
	if err != nil {
		return nil, fmt.Errorf("pdf: fecha de vencimiento: %w", err)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+inv.Number, true).
		WithSubject("Invoice for "+inv.To.Name, true).
		WithCreator(g.brand, true).
		Build()

	m := maroto.New(cfg)
	if err := m.RegisterFooter(g.footerRow()); err != nil {
		return nil, fmt.Errorf("pdf: registrar pie: %w", err)
	}

	m.AddRows(g.bandRow())
	m.AddRows(metadataRow(inv.Number, issued, due))
	m.AddRows(line.NewRow(1, props.Line{Color: colorTotals, Thickness: 0.3}))
	m.AddRows(partiesRow(inv.From, inv.To))
	m.AddRows(line.NewRow(4))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableDetailRows(inv.Items)...)

	m.AddRows(line.NewRow(2, props.Line{Color: colorTotals, Thickness: 0.3}))
	m.AddRows(g.totalsRow(&inv))
	m.AddRows(notesRows(inv.Notes)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// bandRow: título y marca sobre fondo de color.
func (g *MarotoPDFGenerator) bandRow() core.Row {
	return row.New(22).Add(
		col.New(12).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 22, Align: align.Center, Color: colorWhite, Top: 3,
			}),
			text.New(g.brand, props.Text{
				Size: 12, Align: align.Center, Color: colorWhite, Top: 13,
			}),
		),
	).WithStyle(&props.Cell{BackgroundColor: colorBrand})
}

func metadataRow(number, issued, due string) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("Invoice Number: "+number, props.Text{Size: 10, Top: 3}),
			text.New("Invoice Date: "+issued, props.Text{Size: 10, Top: 8}),
			text.New("Due Date: "+due, props.Text{Size: 10, Top: 13}),
		),
	)
}

// partiesRow: emisor a la izquierda, receptor a la derecha.
func partiesRow(from, to entity.Party) core.Row {
	return row.New(36).Add(
		col.New(6).Add(partyComponents("From:", from)...),
		col.New(6).Add(partyComponents("Bill To:", to)...),
	)
}

func partyComponents(title string, p entity.Party) []core.Component {
	return []core.Component{
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 12, Top: 1}),
		text.New(p.Name, props.Text{Size: 10, Top: 7}),
		text.New(strings.Join(document.SplitLines(p.Address), "\n"), props.Text{Size: 10, Top: 12}),
		text.New("GSTIN: "+p.GSTIN, props.Text{Size: 10, Top: 22}),
		text.New("Email: "+p.Email, props.Text{Size: 10, Top: 27}),
		text.New("Phone: "+p.Phone, props.Text{Size: 10, Top: 32}),
	}
}

// tableHeaderRow: cabecera de la tabla con fondo gris.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 4, align.Left),
		h("HSN", 2, align.Left),
		h("Qty", 1, align.Center),
		h("Rate", 2, align.Right),
		h("Tax", 1, align.Center),
		h("Amount", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorBand})
}

// tableDetailRows: una fila por línea, separadas por una regla salvo tras la última.
func (g *MarotoPDFGenerator) tableDetailRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, 2*len(items))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 2, Left: 1, Right: 1}))
	}
	for i, it := range items {
		result = append(result, row.New(8).Add(
			cell(it.Description, 4, align.Left),
			cell(it.HSNCode, 2, align.Left),
			cell(strconv.Itoa(it.Quantity), 1, align.Center),
			cell(g.money.FormatPlain(it.Rate), 2, align.Right),
			cell(it.TaxLabel(), 1, align.Center),
			cell(g.money.FormatPlain(it.Amount()), 2, align.Right),
		))
		if i < len(items)-1 {
			result = append(result, line.NewRow(1, props.Line{Color: colorRule, Thickness: 0.2}))
		}
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func (g *MarotoPDFGenerator) totalsRow(inv *entity.Invoice) core.Row {
	label := func(s string, top float64, size float64) core.Component {
		return text.New(s, props.Text{Size: size, Top: top, Align: align.Left})
	}
	value := func(s string, top float64, size float64) core.Component {
		return text.New(s, props.Text{Size: size, Top: top, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(7),
		col.New(2).Add(
			label("Subtotal:", 2, 9),
			label("Tax:", 8, 9),
			label("Total:", 14, 11),
		),
		col.New(3).Add(
			value(g.money.FormatPlain(inv.Subtotal()), 2, 9),
			value(g.money.FormatPlain(inv.TaxTotal()), 8, 9),
			value(g.money.FormatPlain(inv.GrandTotal()), 14, 11),
		),
	)
}

// notesRows: un renglón por fila para que Maroto pagine notas largas.
func notesRows(notes string) []core.Row {
	lines := document.SplitLines(notes)
	lh := document.LineHeight(9)
	rows := make([]core.Row, 0, len(lines)+2)
	rows = append(rows,
		row.New(6),
		row.New(6).Add(col.New(12).Add(text.New("Notes:", props.Text{Size: 10}))),
	)
	for _, l := range lines {
		rows = append(rows, row.New(lh).Add(col.New(12).Add(text.New(l, props.Text{Size: 9}))))
	}
	return rows
}

func (g *MarotoPDFGenerator) footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(g.footer, props.Text{Size: 8, Align: align.Center, Top: 2}),
	))
}
