package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxType categoría de impuesto de una línea. Solo afecta la etiqueta; la tasa se guarda en TaxRate.
type TaxType string

const (
	TaxTypeSplit  TaxType = "CGST/SGST" // intra-estatal
	TaxTypeSingle TaxType = "IGST"      // inter-estatal
)

// Valores por defecto de una línea nueva.
const (
	DefaultQuantity = 1
	DefaultTaxRate  = 18
	DefaultTaxType  = TaxTypeSplit
)

// ParseTaxType convierte la etiqueta del selector en TaxType.
func ParseTaxType(s string) (TaxType, bool) {
	switch TaxType(s) {
	case TaxTypeSplit, TaxTypeSingle:
		return TaxType(s), true
	}
	return "", false
}

// LineItem representa una línea de detalle de la factura.
type LineItem struct {
	ID          string
	Description string
	HSNCode     string // código de clasificación; texto opaco
	Quantity    int
	Rate        decimal.Decimal
	TaxRate     decimal.Decimal // porcentaje, 0–28 por convención (no se valida)
	TaxType     TaxType
}

// newLineItem construye una línea en blanco con los valores por defecto del formulario.
func newLineItem(id string) LineItem {
	return LineItem{
		ID:       id,
		Quantity: DefaultQuantity,
		Rate:     decimal.Zero,
		TaxRate:  decimal.NewFromInt(DefaultTaxRate),
		TaxType:  DefaultTaxType,
	}
}

// Amount importe neto de la línea: cantidad × tarifa.
func (li LineItem) Amount() decimal.Decimal {
	return decimal.NewFromInt(int64(li.Quantity)).Mul(li.Rate)
}

// TaxAmount impuesto de la línea: cantidad × tarifa × tasa / 100.
func (li LineItem) TaxAmount() decimal.Decimal {
	return li.Amount().Mul(li.TaxRate).Div(decimal.NewFromInt(100))
}

// TaxLabel etiqueta "18% CGST/SGST" usada en la tabla del documento.
func (li LineItem) TaxLabel() string {
	return fmt.Sprintf("%s%% %s", li.TaxRate.String(), li.TaxType)
}
