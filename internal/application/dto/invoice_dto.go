package dto

import "github.com/shopspring/decimal"

// SetFieldRequest body para PATCH /api/sessions/:id/fields y /items/:itemId.
// Field usa los nombres del formulario (invoiceNumber, fromAddress, taxRate, ...).
type SetFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// PartyDTO emisor o receptor.
type PartyDTO struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// LineItemDTO línea con su importe neto.
type LineItemDTO struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxType     string          `json:"tax_type"`
	Amount      decimal.Decimal `json:"amount"`
}

// TotalsResponse totales calculados en el momento de la lectura.
type TotalsResponse struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxTotal   decimal.Decimal `json:"tax_total"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// InvoiceResponse estado completo de la factura de una sesión.
type InvoiceResponse struct {
	SessionID     string         `json:"session_id"`
	InvoiceNumber string         `json:"invoice_number"`
	InvoiceDate   string         `json:"invoice_date"`
	DueDate       string         `json:"due_date"`
	From          PartyDTO       `json:"from"`
	To            PartyDTO       `json:"to"`
	Items         []LineItemDTO  `json:"items"`
	Notes         string         `json:"notes"`
	Totals        TotalsResponse `json:"totals"`
}

// PreviewLineDTO fila de la vista previa con importes formateados con símbolo.
type PreviewLineDTO struct {
	Description string `json:"description"`
	HSNCode     string `json:"hsn_code"`
	Quantity    int    `json:"quantity"`
	Rate        string `json:"rate"`
	Tax         string `json:"tax"`
	Amount      string `json:"amount"`
}

// PreviewPartyDTO parte con la dirección ya partida en renglones.
type PreviewPartyDTO struct {
	Name         string   `json:"name"`
	AddressLines []string `json:"address_lines"`
	GSTIN        string   `json:"gstin"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
}

// PreviewResponse vista previa lista para mostrar. Una fecha que no parsea se muestra tal cual.
type PreviewResponse struct {
	Brand         string           `json:"brand"`
	InvoiceNumber string           `json:"invoice_number"`
	InvoiceDate   string           `json:"invoice_date"`
	DueDate       string           `json:"due_date"`
	From          PreviewPartyDTO  `json:"from"`
	To            PreviewPartyDTO  `json:"to"`
	Lines         []PreviewLineDTO `json:"lines"`
	Subtotal      string           `json:"subtotal"`
	TaxTotal      string           `json:"tax_total"`
	GrandTotal    string           `json:"grand_total"`
	NotesLines    []string         `json:"notes_lines,omitempty"`
	Filename      string           `json:"filename"`
}
