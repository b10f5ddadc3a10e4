package entity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoicepro/internal/domain"
)

// HeaderField nombre de un campo escalar de la cabecera, tal como lo envía el formulario.
type HeaderField string

const (
	FieldInvoiceNumber HeaderField = "invoiceNumber"
	FieldInvoiceDate   HeaderField = "invoiceDate"
	FieldDueDate       HeaderField = "dueDate"
	FieldFromName      HeaderField = "fromName"
	FieldFromAddress   HeaderField = "fromAddress"
	FieldFromGSTIN     HeaderField = "fromGstin"
	FieldFromEmail     HeaderField = "fromEmail"
	FieldFromPhone     HeaderField = "fromPhone"
	FieldToName        HeaderField = "toName"
	FieldToAddress     HeaderField = "toAddress"
	FieldToGSTIN       HeaderField = "toGstin"
	FieldToEmail       HeaderField = "toEmail"
	FieldToPhone       HeaderField = "toPhone"
	FieldNotes         HeaderField = "notes"
)

// ItemField nombre de un campo de línea.
type ItemField string

const (
	ItemFieldDescription ItemField = "description"
	ItemFieldHSNCode     ItemField = "hsnCode"
	ItemFieldQuantity    ItemField = "quantity"
	ItemFieldRate        ItemField = "rate"
	ItemFieldTaxRate     ItemField = "taxRate"
	ItemFieldTaxType     ItemField = "taxType"
)

func (inv *Invoice) headerTarget(field HeaderField) *string {
	switch field {
	case FieldInvoiceNumber:
		return &inv.Number
	case FieldInvoiceDate:
		return &inv.InvoiceDate
	case FieldDueDate:
		return &inv.DueDate
	case FieldFromName:
		return &inv.From.Name
	case FieldFromAddress:
		return &inv.From.Address
	case FieldFromGSTIN:
		return &inv.From.GSTIN
	case FieldFromEmail:
		return &inv.From.Email
	case FieldFromPhone:
		return &inv.From.Phone
	case FieldToName:
		return &inv.To.Name
	case FieldToAddress:
		return &inv.To.Address
	case FieldToGSTIN:
		return &inv.To.GSTIN
	case FieldToEmail:
		return &inv.To.Email
	case FieldToPhone:
		return &inv.To.Phone
	case FieldNotes:
		return &inv.Notes
	}
	return nil
}

// SetField reemplaza un campo de cabecera. No valida el contenido: se aceptan cadenas vacías
// y fechas arbitrarias. Solo falla si el nombre de campo no existe.
func (inv *Invoice) SetField(field HeaderField, value string) error {
	target := inv.headerTarget(field)
	if target == nil {
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
	*target = value
	return nil
}

// SetItemField reemplaza un campo de la línea itemID. Si ninguna línea coincide no hace nada.
// Los numéricos se interpretan como en el formulario: prefijo numérico válido o 0.
func (inv *Invoice) SetItemField(itemID string, field ItemField, value string) error {
	if !field.valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
	i := inv.itemIndex(itemID)
	if i < 0 {
		return nil
	}
	item := &inv.Items[i]
	switch field {
	case ItemFieldDescription:
		item.Description = value
	case ItemFieldHSNCode:
		item.HSNCode = value
	case ItemFieldQuantity:
		item.Quantity = ParseIntLenient(value)
	case ItemFieldRate:
		item.Rate = ParseDecimalLenient(value)
	case ItemFieldTaxRate:
		item.TaxRate = ParseDecimalLenient(value)
	case ItemFieldTaxType:
		tt, ok := ParseTaxType(value)
		if !ok {
			return fmt.Errorf("%w: tipo de impuesto %q", domain.ErrInvalidInput, value)
		}
		item.TaxType = tt
	}
	return nil
}

func (f ItemField) valid() bool {
	switch f {
	case ItemFieldDescription, ItemFieldHSNCode, ItemFieldQuantity,
		ItemFieldRate, ItemFieldTaxRate, ItemFieldTaxType:
		return true
	}
	return false
}

var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^([+-]?)(\d+(?:\.\d+)?|\.\d+)([eE][+-]?\d+)?`)
)

// ParseIntLenient toma el prefijo entero de s ("2.7" → 2, "abc" → 0).
func ParseIntLenient(s string) int {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// maxDecimalDigits cota de cifras enteras, cifras decimales y exponente en ParseDecimalLenient.
// Un importe con más de 20 cifras enteras se toma como 0; las cifras decimales sobrantes se descartan.
const maxDecimalDigits = 20

// ParseDecimalLenient toma el prefijo decimal de s ("12.5%" → 12.5, "" → 0).
// Un exponente o una parte entera fuera de rango devuelve 0 sin construir el número.
func ParseDecimalLenient(s string) decimal.Decimal {
	m := floatPrefix.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return decimal.Zero
	}
	sign, mantissa, exp := m[1], m[2], m[3]

	e := 0
	if exp != "" {
		n, err := strconv.Atoi(exp[1:])
		if err != nil || n > maxDecimalDigits || n < -maxDecimalDigits {
			return decimal.Zero
		}
		e = n
	}

	intPart, frac, _ := strings.Cut(mantissa, ".")
	intPart = strings.TrimLeft(intPart, "0")
	if len(intPart)+e > maxDecimalDigits {
		return decimal.Zero
	}
	if len(frac) > maxDecimalDigits {
		frac = frac[:maxDecimalDigits]
	}
	if intPart == "" {
		intPart = "0"
	}
	if frac != "" {
		intPart += "." + frac
	}
	if sign == "+" {
		sign = ""
	}

	d, err := decimal.NewFromString(sign + intPart)
	if err != nil {
		return decimal.Zero
	}
	return d.Shift(int32(e))
}
