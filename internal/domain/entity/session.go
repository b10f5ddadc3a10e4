package entity

import "time"

// Session sesión de edición: dueña exclusiva de una factura en memoria.
type Session struct {
	ID        string
	Invoice   *Invoice
	CreatedAt time.Time
	LastSeen  time.Time
}
