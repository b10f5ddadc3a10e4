package document

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/invoicepro/internal/domain"
	"github.com/jhoicas/invoicepro/internal/domain/entity"
	"github.com/jhoicas/invoicepro/pkg/money"
)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	ColorBrand     = Color{39, 174, 96}
	ColorWhite     = Color{255, 255, 255}
	ColorBlack     = Color{0, 0, 0}
	ColorHeaderRow = Color{240, 240, 240}
	ColorRowRule   = Color{220, 220, 220}
	ColorTotalRule = Color{200, 200, 200}
)

// ── Geometría (mm) ────────────────────────────────────────────────────────────

const (
	marginX     = 15.0
	partyRightX = 120.0
	tableWidth  = 180.0
	tableRight  = marginX + tableWidth

	colDescX   = 17.0
	colHSNX    = 80.0
	colQtyX    = 100.0
	colRateX   = 115.0
	colTaxX    = 135.0
	colAmountX = 175.0
	summaryX   = 140.0

	bandHeight     = 8.0
	firstBandY     = 105.0
	contBandY      = 15.0
	bandTextOffset = 5.0 // línea base de las etiquetas dentro de la banda
	firstRowGap    = 5.0 // de fin de banda a la primera fila
	rowStep        = 8.0

	footerY     = 285.0
	pageLabelY  = 290.0
	contSummary = 25.0
)

// Valores por defecto de Options.
const (
	DefaultBrand         = "InvoicePro"
	DefaultFooter        = "Generated with InvoicePro - www.invoicepro.in"
	DefaultRowLimitY     = 270.0
	DefaultContentLimitY = 278.0
)

// Options parámetros del layout.
type Options struct {
	Brand  string
	Footer string
	Money  *money.Formatter
	// RowLimitY última línea base admitida para una fila de la tabla; más abajo se pagina.
	RowLimitY float64
	// ContentLimitY límite inferior del bloque de totales y notas.
	ContentLimitY float64
}

func (o Options) withDefaults() Options {
	if o.Brand == "" {
		o.Brand = DefaultBrand
	}
	if o.Footer == "" {
		o.Footer = DefaultFooter
	}
	if o.Money == nil {
		o.Money = money.Default()
	}
	if o.RowLimitY <= 0 {
		o.RowLimitY = DefaultRowLimitY
	}
	if o.ContentLimitY <= 0 {
		o.ContentLimitY = DefaultContentLimitY
	}
	return o
}

// FormatDate convierte yyyy-MM-dd en dd/MM/yyyy. Una fecha que no parsea es un error.
func FormatDate(s string) (string, error) {
	t, err := time.Parse(entity.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	return t.Format("02/01/2006"), nil
}

// SplitLines parte un texto libre en renglones, uno por salto de línea.
func SplitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// builder estado mutable del layout mientras se recorren las secciones.
type builder struct {
	opts  Options
	pages []Page
	cur   *Page
}

func (b *builder) newPage() {
	b.pages = append(b.pages, Page{})
	b.cur = &b.pages[len(b.pages)-1]
}

func (b *builder) add(op Op) { b.cur.Ops = append(b.cur.Ops, op) }

func (b *builder) text(x, y, size float64, a Align, c Color, lines ...string) {
	b.add(Text{X: x, Y: y, Lines: lines, Size: size, Color: c, Align: a})
}

// Build transforma una copia de la factura en el documento paginado. Es puro: no
// modifica inv ni tiene efectos secundarios. Falla solo si una fecha no parsea.
func Build(inv entity.Invoice, opts Options) (*Document, error) {
	opts = opts.withDefaults()

	issued, err := FormatDate(inv.InvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("fecha de emisión: %w", err)
	}
	due, err := FormatDate(inv.DueDate)
	if err != nil {
		return nil, fmt.Errorf("fecha de vencimiento: %w", err)
	}

	b := &builder{opts: opts}
	b.newPage()

	b.headerBand()
	b.metadata(inv.Number, issued, due)
	b.party(marginX, "From:", inv.From)
	b.party(partyRightX, "Bill To:", inv.To)
	y := b.table(inv.Items, firstBandY)
	y = b.summary(&inv, y)
	b.notes(inv.Notes, y)
	b.footers()

	return &Document{
		Title:    "Invoice " + inv.Number,
		Subject:  "Invoice for " + inv.To.Name,
		Creator:  opts.Brand,
		Filename: Filename(inv.Number),
		Pages:    b.pages,
	}, nil
}

// headerBand banda de color con título y marca.
func (b *builder) headerBand() {
	b.add(FillRect{X: 0, Y: 0, W: PageWidth, H: 30, Color: ColorBrand})
	b.text(PageWidth/2, 15, 22, AlignCenter, ColorWhite, "INVOICE")
	b.text(PageWidth/2, 22, 12, AlignCenter, ColorWhite, b.opts.Brand)
}

// metadata número y fechas.
func (b *builder) metadata(number, issued, due string) {
	b.text(marginX, 40, 10, AlignLeft, ColorBlack, "Invoice Number: "+number)
	b.text(marginX, 45, 10, AlignLeft, ColorBlack, "Invoice Date: "+issued)
	b.text(marginX, 50, 10, AlignLeft, ColorBlack, "Due Date: "+due)
}

// party bloque de emisor o receptor en la columna x.
func (b *builder) party(x float64, title string, p entity.Party) {
	b.text(x, 65, 12, AlignLeft, ColorBlack, title)
	b.text(x, 70, 10, AlignLeft, ColorBlack, p.Name)
	b.text(x, 75, 10, AlignLeft, ColorBlack, SplitLines(p.Address)...)
	b.text(x, 85, 10, AlignLeft, ColorBlack, "GSTIN: "+p.GSTIN)
	b.text(x, 90, 10, AlignLeft, ColorBlack, "Email: "+p.Email)
	b.text(x, 95, 10, AlignLeft, ColorBlack, "Phone: "+p.Phone)
}

// tableHeader banda gris con las etiquetas de columna; devuelve la línea base de la primera fila.
func (b *builder) tableHeader(bandY float64) float64 {
	b.add(FillRect{X: marginX, Y: bandY, W: tableWidth, H: bandHeight, Color: ColorHeaderRow})
	ty := bandY + bandTextOffset
	b.text(colDescX, ty, 9, AlignLeft, ColorBlack, "Description")
	b.text(colHSNX, ty, 9, AlignLeft, ColorBlack, "HSN")
	b.text(colQtyX, ty, 9, AlignLeft, ColorBlack, "Qty")
	b.text(colRateX, ty, 9, AlignLeft, ColorBlack, "Rate")
	b.text(colTaxX, ty, 9, AlignLeft, ColorBlack, "Tax")
	b.text(colAmountX, ty, 9, AlignRight, ColorBlack, "Amount")
	return bandY + bandHeight + firstRowGap
}

// table cabecera y una fila por línea en el orden original. Cuando una fila quedaría
// por debajo de RowLimitY continúa en una página nueva repitiendo la cabecera.
// Devuelve la Y siguiente a la última fila.
func (b *builder) table(items []entity.LineItem, bandY float64) float64 {
	y := b.tableHeader(bandY)
	fm := b.opts.Money
	for i, it := range items {
		if y > b.opts.RowLimitY {
			b.newPage()
			y = b.tableHeader(contBandY)
		}
		b.text(colDescX, y, 9, AlignLeft, ColorBlack, it.Description)
		b.text(colHSNX, y, 9, AlignLeft, ColorBlack, it.HSNCode)
		b.text(colQtyX, y, 9, AlignLeft, ColorBlack, strconv.Itoa(it.Quantity))
		b.text(colRateX, y, 9, AlignLeft, ColorBlack, fm.FormatPlain(it.Rate))
		b.text(colTaxX, y, 9, AlignLeft, ColorBlack, it.TaxLabel())
		b.text(colAmountX, y, 9, AlignRight, ColorBlack, fm.FormatPlain(it.Amount()))

		y += rowStep
		if i < len(items)-1 {
			b.add(Line{X1: marginX, Y1: y - 4, X2: tableRight, Y2: y - 4, Color: ColorRowRule})
		}
	}
	return y
}

// summaryHeight alto desde la línea base de "Subtotal:" hasta el último renglón de notas.
func summaryHeight(notes string) float64 {
	n := len(SplitLines(notes))
	return 6 + 6 + 15 + 5 + float64(n-1)*LineHeight(9)
}

// summary regla y totales alineados a la derecha. Devuelve la línea base de "Total:".
// El bloque de totales y notas pasa a una página nueva cuando no cabe aquí y sí cabe
// entero en una página nueva, o cuando ni siquiera cabe su primer renglón de notas.
func (b *builder) summary(inv *entity.Invoice, y float64) float64 {
	y += 10
	limit := b.opts.ContentLimitY
	whole, head := summaryHeight(inv.Notes), summaryHeight("")
	if y+whole > limit && (contSummary+whole <= limit || y+head > limit) {
		b.newPage()
		y = contSummary
	}
	fm := b.opts.Money
	b.add(Line{X1: marginX, Y1: y - 5, X2: tableRight, Y2: y - 5, Color: ColorTotalRule})

	b.text(summaryX, y, 9, AlignLeft, ColorBlack, "Subtotal:")
	b.text(colAmountX, y, 9, AlignRight, ColorBlack, fm.FormatPlain(inv.Subtotal()))

	y += 6
	b.text(summaryX, y, 9, AlignLeft, ColorBlack, "Tax:")
	b.text(colAmountX, y, 9, AlignRight, ColorBlack, fm.FormatPlain(inv.TaxTotal()))

	y += 6
	b.text(summaryX, y, 11, AlignLeft, ColorBlack, "Total:")
	b.text(colAmountX, y, 11, AlignRight, ColorBlack, fm.FormatPlain(inv.GrandTotal()))
	return y
}

// notes título y texto libre bajo los totales. Los renglones que no caben antes de
// ContentLimitY siguen en páginas nuevas desde contSummary.
func (b *builder) notes(notes string, y float64) {
	y += 15
	b.text(marginX, y, 10, AlignLeft, ColorBlack, "Notes:")

	limit := b.opts.ContentLimitY
	lh := LineHeight(9)
	lines := SplitLines(notes)
	y += 5
	for len(lines) > 0 {
		if y > limit {
			b.newPage()
			y = contSummary
		}
		n := int((limit-y)/lh) + 1
		if n < 1 {
			n = 1
		}
		if n > len(lines) {
			n = len(lines)
		}
		b.text(marginX, y, 9, AlignLeft, ColorBlack, lines[:n]...)
		lines = lines[n:]
		y = limit + lh
	}
}

// footers pie fijo en cada página y numeración si hay más de una.
func (b *builder) footers() {
	total := len(b.pages)
	for i := range b.pages {
		p := &b.pages[i]
		p.Ops = append(p.Ops, Text{
			X: PageWidth / 2, Y: footerY, Lines: []string{b.opts.Footer},
			Size: 8, Color: ColorBlack, Align: AlignCenter,
		})
		if total > 1 {
			p.Ops = append(p.Ops, Text{
				X: tableRight, Y: pageLabelY, Lines: []string{fmt.Sprintf("Page %d of %d", i+1, total)},
				Size: 8, Color: ColorBlack, Align: AlignRight,
			})
		}
	}
}
