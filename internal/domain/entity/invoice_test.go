package entity_test

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicepro/internal/domain"
	"github.com/jhoicas/invoicepro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

// seqIDs genera IDs deterministas "item-1", "item-2", ...
func seqIDs() entity.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

func newTestInvoice(t *testing.T) *entity.Invoice {
	t.Helper()
	return entity.NewInvoice(entity.InvoiceOptions{Now: testNow, NewID: seqIDs()})
}

// setItem fija cantidad, tarifa y tasa de la línea id.
func setItem(t *testing.T, inv *entity.Invoice, id, qty, rate, taxRate string) {
	t.Helper()
	require.NoError(t, inv.SetItemField(id, entity.ItemFieldQuantity, qty))
	require.NoError(t, inv.SetItemField(id, entity.ItemFieldRate, rate))
	require.NoError(t, inv.SetItemField(id, entity.ItemFieldTaxRate, taxRate))
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: want %s, got %s", msg, want, got.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestNewInvoice_ValoresIniciales(t *testing.T) {
	inv := newTestInvoice(t)

	assert.Regexp(t, regexp.MustCompile(`^INV-\d{4}$`), inv.Number)
	assert.Equal(t, "2024-03-05", inv.InvoiceDate)
	assert.Equal(t, "2024-03-20", inv.DueDate, "vencimiento a 15 días")
	assert.Equal(t, entity.DefaultNotes, inv.Notes)

	require.Len(t, inv.Items, 1, "la factura nace con una línea")
	item := inv.Items[0]
	assert.Equal(t, "item-1", item.ID)
	assert.Empty(t, item.Description)
	assert.Empty(t, item.HSNCode)
	assert.Equal(t, 1, item.Quantity)
	assertDecimal(t, "0", item.Rate, "rate")
	assertDecimal(t, "18", item.TaxRate, "taxRate")
	assert.Equal(t, entity.TaxTypeSplit, item.TaxType)
}

func TestNewInvoice_DueDaysConfigurable(t *testing.T) {
	inv := entity.NewInvoice(entity.InvoiceOptions{Now: testNow, DueDays: 30})
	assert.Equal(t, "2024-04-04", inv.DueDate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoice_Totales(t *testing.T) {
	type line struct{ qty, rate, taxRate string }
	tests := []struct {
		name         string
		lines        []line
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name:         "una línea al 18%",
			lines:        []line{{"2", "100", "18"}},
			wantSubtotal: "200", wantTax: "36", wantTotal: "236",
		},
		{
			name:         "dos líneas con tasas distintas",
			lines:        []line{{"1", "50", "0"}, {"3", "10", "12"}},
			wantSubtotal: "80", wantTax: "3.6", wantTotal: "83.6",
		},
		{
			name:         "cantidad cero produce importe cero",
			lines:        []line{{"0", "999.99", "28"}},
			wantSubtotal: "0", wantTax: "0", wantTotal: "0",
		},
		{
			name:         "tarifas con decimales",
			lines:        []line{{"3", "33.33", "5"}, {"7", "0.1", "12.5"}},
			wantSubtotal: "100.69", wantTax: "5.087", wantTotal: "105.777",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newTestInvoice(t)
			for i, l := range tt.lines {
				id := inv.Items[0].ID
				if i > 0 {
					id = inv.AddItem()
				}
				setItem(t, inv, id, l.qty, l.rate, l.taxRate)
			}
			assertDecimal(t, tt.wantSubtotal, inv.Subtotal(), "subtotal")
			assertDecimal(t, tt.wantTax, inv.TaxTotal(), "taxTotal")
			assertDecimal(t, tt.wantTotal, inv.GrandTotal(), "grandTotal")
			assert.True(t, inv.GrandTotal().Equal(inv.Subtotal().Add(inv.TaxTotal())))
		})
	}
}

func TestInvoice_LecturasIdempotentes(t *testing.T) {
	inv := newTestInvoice(t)
	setItem(t, inv, inv.Items[0].ID, "4", "12.75", "18")

	assert.True(t, inv.Subtotal().Equal(inv.Subtotal()))
	assert.True(t, inv.TaxTotal().Equal(inv.TaxTotal()))
	assert.True(t, inv.GrandTotal().Equal(inv.GrandTotal()))
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoice_AddItem_AgregaAlFinalConIDUnico(t *testing.T) {
	inv := newTestInvoice(t)
	first := inv.Items[0].ID

	id2 := inv.AddItem()
	id3 := inv.AddItem()

	require.Len(t, inv.Items, 3)
	assert.Equal(t, first, inv.Items[0].ID, "agregar nunca reemplaza")
	assert.Equal(t, id2, inv.Items[1].ID)
	assert.Equal(t, id3, inv.Items[2].ID)
	assert.NotEqual(t, id2, id3)
	assert.NotEqual(t, first, id2)
}

func TestInvoice_AddItem_EvitaColisionDeIDs(t *testing.T) {
	calls := 0
	// El generador repite "dup" dos veces antes de dar un valor nuevo.
	gen := func() string {
		calls++
		if calls <= 3 {
			return "dup"
		}
		return fmt.Sprintf("id-%d", calls)
	}
	inv := entity.NewInvoice(entity.InvoiceOptions{Now: testNow, NewID: gen})
	require.Equal(t, "dup", inv.Items[0].ID)

	id := inv.AddItem()
	assert.Equal(t, "id-4", id)
}

func TestInvoice_RemoveItem_UltimaLineaEsNoOp(t *testing.T) {
	inv := newTestInvoice(t)
	only := inv.Items[0]

	inv.RemoveItem(only.ID)

	require.Len(t, inv.Items, 1)
	assert.Equal(t, only, inv.Items[0], "la línea queda intacta")
}

func TestInvoice_RemoveItem_EliminaLaLineaIndicada(t *testing.T) {
	inv := newTestInvoice(t)
	a := inv.Items[0].ID
	b := inv.AddItem()
	c := inv.AddItem()

	inv.RemoveItem(b)

	require.Len(t, inv.Items, 2)
	assert.Equal(t, a, inv.Items[0].ID)
	assert.Equal(t, c, inv.Items[1].ID)

	inv.RemoveItem("no-existe")
	assert.Len(t, inv.Items, 2)
}

func TestInvoice_RemoveItem_NoAfectaSnapshotsPrevios(t *testing.T) {
	inv := newTestInvoice(t)
	b := inv.AddItem()
	snap := inv.Snapshot()

	inv.RemoveItem(inv.Items[0].ID)
	require.NoError(t, inv.SetItemField(b, entity.ItemFieldDescription, "cambiada"))

	require.Len(t, snap.Items, 2)
	assert.Equal(t, "item-1", snap.Items[0].ID)
	assert.Empty(t, snap.Items[1].Description)
}

// ──────────────────────────────────────────────────────────────────────────────
// Campos
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoice_SetField(t *testing.T) {
	inv := newTestInvoice(t)

	require.NoError(t, inv.SetField(entity.FieldInvoiceNumber, "INV-0007"))
	require.NoError(t, inv.SetField(entity.FieldFromAddress, "Line 1\nLine 2"))
	require.NoError(t, inv.SetField(entity.FieldToGSTIN, ""))
	require.NoError(t, inv.SetField(entity.FieldDueDate, "2000-01-01"), "vencimiento anterior a la emisión se acepta")

	assert.Equal(t, "INV-0007", inv.Number)
	assert.Equal(t, "Line 1\nLine 2", inv.From.Address)
	assert.Empty(t, inv.To.GSTIN)
	assert.Equal(t, "2000-01-01", inv.DueDate)
}

func TestInvoice_SetField_CampoDesconocido(t *testing.T) {
	inv := newTestInvoice(t)
	err := inv.SetField("logo", "x")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestInvoice_SetItemField(t *testing.T) {
	inv := newTestInvoice(t)
	id := inv.Items[0].ID

	require.NoError(t, inv.SetItemField(id, entity.ItemFieldDescription, "Consulting"))
	require.NoError(t, inv.SetItemField(id, entity.ItemFieldHSNCode, "9983"))
	require.NoError(t, inv.SetItemField(id, entity.ItemFieldTaxType, "IGST"))

	item, ok := inv.Item(id)
	require.True(t, ok)
	assert.Equal(t, "Consulting", item.Description)
	assert.Equal(t, "9983", item.HSNCode)
	assert.Equal(t, entity.TaxTypeSingle, item.TaxType)
	assert.Equal(t, "18% IGST", item.TaxLabel())
}

func TestInvoice_SetItemField_IDInexistenteEsNoOp(t *testing.T) {
	inv := newTestInvoice(t)
	before := inv.Snapshot()

	require.NoError(t, inv.SetItemField("fantasma", entity.ItemFieldRate, "10"))
	assert.Equal(t, before.Items, inv.Items)
}

func TestInvoice_SetItemField_Errores(t *testing.T) {
	inv := newTestInvoice(t)
	id := inv.Items[0].ID

	assert.ErrorIs(t, inv.SetItemField(id, "discount", "5"), domain.ErrUnknownField)
	assert.ErrorIs(t, inv.SetItemField(id, entity.ItemFieldTaxType, "VAT"), domain.ErrInvalidInput)
}

func TestParseLenient(t *testing.T) {
	ints := map[string]int{"2": 2, "2.7": 2, " 15 ": 15, "abc": 0, "": 0, "-3": -3, "+4": 4, "12abc": 12}
	for in, want := range ints {
		assert.Equal(t, want, entity.ParseIntLenient(in), "int %q", in)
	}

	decs := map[string]string{"12.5": "12.5", "12.5%": "12.5", ".5": "0.5", "5.": "5", "": "0", "x": "0", "+3": "3", "-1.25": "-1.25", "1e2": "100"}
	for in, want := range decs {
		assertDecimal(t, want, entity.ParseDecimalLenient(in), fmt.Sprintf("decimal %q", in))
	}
}

// Exponentes o partes enteras enormes no deben construir el número: valen 0.
func TestParseDecimalLenient_MagnitudAcotada(t *testing.T) {
	longFrac := "0." + strings.Repeat("1", 5000)
	longInt := strings.Repeat("9", 5000)

	cases := map[string]string{
		"1e19":                   "10000000000000000000",
		"1e-20":                  "0.00000000000000000001",
		"2.5e3":                  "2500",
		"0.5e20":                 "50000000000000000000",
		"1e20":                   "0",
		"1e50000000":             "0",
		"1e999999999":            "0",
		"1e-999999999":           "0",
		"1e99999999999999999999": "0",
		"0000000000000000000012": "12",
		longInt:                  "0",
		longFrac:                 "0." + strings.Repeat("1", 20),
	}
	for in, want := range cases {
		start := time.Now()
		got := entity.ParseDecimalLenient(in)
		assertDecimal(t, want, got, fmt.Sprintf("decimal %.30q", in))
		assert.Less(t, time.Since(start), time.Second, "decimal %.30q", in)
	}

	// La línea queda utilizable: los totales se calculan al instante.
	inv := newTestInvoice(t)
	id := inv.Items[0].ID
	require.NoError(t, inv.SetItemField(id, entity.ItemFieldRate, "1e999999999"))
	assert.Equal(t, "0", inv.Subtotal().String())
}
