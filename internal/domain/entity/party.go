package entity

// Party datos de emisor o receptor de la factura.
type Party struct {
	Name    string
	Address string // texto libre; una línea por salto de línea
	GSTIN   string
	Email   string
	Phone   string
}
