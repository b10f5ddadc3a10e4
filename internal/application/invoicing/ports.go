package invoicing

import (
	"context"
	"time"

	"github.com/jhoicas/invoicepro/internal/domain/entity"
)

// SessionRepository guarda las sesiones de edición en memoria.
// With serializa el acceso a una sesión: fn se ejecuta completa antes que cualquier otra
// operación sobre la misma sesión. Devuelve domain.ErrNotFound si la sesión no existe.
type SessionRepository interface {
	Create(s *entity.Session) error
	With(id string, fn func(s *entity.Session) error) error
	Delete(id string) error
	Count() int
	// DeleteIdle elimina las sesiones sin actividad desde before y devuelve cuántas borró.
	DeleteIdle(before time.Time) int
}

// InvoicePDFGenerator genera los bytes del PDF a partir de una copia de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv entity.Invoice) ([]byte, error)
}

// ExportObserver recibe el resultado de cada exportación (métricas).
type ExportObserver interface {
	ObserveExport(engine string, err error, elapsed time.Duration)
}
