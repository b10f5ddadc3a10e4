package entity

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout formato en que el formulario entrega las fechas (yyyy-MM-dd).
const DateLayout = "2006-01-02"

// DefaultNotes texto inicial del campo de notas.
const DefaultNotes = "Thank you for your business!"

// DefaultDueDays días entre la fecha de emisión y la de vencimiento al crear la factura.
const DefaultDueDays = 15

// IDGenerator genera identificadores opacos para las líneas.
type IDGenerator func() string

// Invoice es el modelo de la factura en edición. Pertenece a una única sesión;
// todas las mutaciones son métodos sobre la instancia y los totales se recalculan en cada lectura.
type Invoice struct {
	Number      string
	InvoiceDate string // yyyy-MM-dd, sin validar
	DueDate     string // yyyy-MM-dd, puede ser anterior a InvoiceDate
	From        Party
	To          Party
	Items       []LineItem
	Notes       string

	newID IDGenerator
}

// InvoiceOptions parámetros de creación.
type InvoiceOptions struct {
	Now     time.Time
	DueDays int
	NewID   IDGenerator // nil = uuid
}

// NewInvoice crea la factura inicial de una sesión: número aleatorio INV-NNNN,
// fecha de hoy, vencimiento a DueDays días y una línea en blanco.
func NewInvoice(opts InvoiceOptions) *Invoice {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.DueDays <= 0 {
		opts.DueDays = DefaultDueDays
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	inv := &Invoice{
		Number:      RandomInvoiceNumber(),
		InvoiceDate: opts.Now.Format(DateLayout),
		DueDate:     opts.Now.AddDate(0, 0, opts.DueDays).Format(DateLayout),
		Notes:       DefaultNotes,
		newID:       opts.NewID,
	}
	inv.Items = []LineItem{newLineItem(inv.nextID())}
	return inv
}

// RandomInvoiceNumber devuelve "INV-" seguido de 4 dígitos aleatorios.
func RandomInvoiceNumber() string {
	return fmt.Sprintf("INV-%04d", rand.Intn(10000))
}

// nextID genera un ID que no colisiona con ninguna línea existente.
func (inv *Invoice) nextID() string {
	gen := inv.newID
	if gen == nil {
		gen = uuid.NewString
	}
	for {
		id := gen()
		if inv.itemIndex(id) < 0 {
			return id
		}
	}
}

func (inv *Invoice) itemIndex(id string) int {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Item devuelve la línea con ese ID.
func (inv *Invoice) Item(id string) (LineItem, bool) {
	i := inv.itemIndex(id)
	if i < 0 {
		return LineItem{}, false
	}
	return inv.Items[i], true
}

// AddItem agrega al final una línea en blanco con un ID nuevo y devuelve ese ID.
func (inv *Invoice) AddItem() string {
	item := newLineItem(inv.nextID())
	inv.Items = append(inv.Items, item)
	return item.ID
}

// RemoveItem elimina la línea indicada salvo que sea la última (la factura nunca queda vacía).
// Un ID inexistente no hace nada.
func (inv *Invoice) RemoveItem(id string) {
	if len(inv.Items) <= 1 {
		return
	}
	i := inv.itemIndex(id)
	if i < 0 {
		return
	}
	inv.Items = append(inv.Items[:i:i], inv.Items[i+1:]...)
}

// Subtotal Σ(cantidad × tarifa).
func (inv *Invoice) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range inv.Items {
		sum = sum.Add(it.Amount())
	}
	return sum
}

// TaxTotal Σ(cantidad × tarifa × tasa / 100).
func (inv *Invoice) TaxTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range inv.Items {
		sum = sum.Add(it.TaxAmount())
	}
	return sum
}

// GrandTotal subtotal + impuestos.
func (inv *Invoice) GrandTotal() decimal.Decimal {
	return inv.Subtotal().Add(inv.TaxTotal())
}

// Snapshot copia profunda de la factura para el renderizador.
func (inv *Invoice) Snapshot() Invoice {
	cp := *inv
	cp.Items = append([]LineItem(nil), inv.Items...)
	cp.newID = nil
	return cp
}
