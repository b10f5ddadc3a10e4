// Package money formatea importes con agrupación según el locale y exactamente dos decimales.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Valores por defecto: rupia india con agrupación en-IN.
const (
	DefaultLocale   = "en-IN"
	DefaultCurrency = "INR"
)

// Formatter formatea importes para un locale y una moneda.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter construye el formateador. locale es una etiqueta BCP 47 y code un código ISO 4217.
func NewFormatter(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("money: locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("money: moneda %q: %w", code, err)
	}
	p := message.NewPrinter(tag)
	sym := strings.TrimSpace(p.Sprint(currency.NarrowSymbol(unit)))
	if sym == "" {
		sym = unit.String()
	}
	return &Formatter{printer: p, symbol: sym}, nil
}

// MustFormatter como NewFormatter pero entra en pánico ante un error.
func MustFormatter(locale, code string) *Formatter {
	f, err := NewFormatter(locale, code)
	if err != nil {
		panic(err)
	}
	return f
}

// Default formateador en-IN / INR.
func Default() *Formatter { return MustFormatter(DefaultLocale, DefaultCurrency) }

// Symbol símbolo de la moneda ("₹").
func (f *Formatter) Symbol() string { return f.symbol }

// Format importe con símbolo: "₹1,234.50".
func (f *Formatter) Format(amount decimal.Decimal) string {
	plain := f.FormatPlain(amount)
	if strings.HasPrefix(plain, "-") {
		return "-" + f.symbol + plain[1:]
	}
	return f.symbol + plain
}

// FormatPlain importe sin símbolo: "1,234.50". Es la forma que se imprime en el PDF,
// donde el glifo de la moneda no existe en las fuentes base.
func (f *Formatter) FormatPlain(amount decimal.Decimal) string {
	v := amount.Round(2).InexactFloat64()
	return f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}

// Strip quita el símbolo de un importe ya formateado.
func (f *Formatter) Strip(s string) string {
	return strings.TrimSpace(strings.Replace(s, f.symbol, "", 1))
}
