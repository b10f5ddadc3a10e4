package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/invoicepro/internal/domain"
	"github.com/jhoicas/invoicepro/internal/domain/document"
)

// ExportUseCase genera el PDF de la factura de una sesión.
type ExportUseCase struct {
	sessions  *SessionUseCase
	generator InvoicePDFGenerator
	engine    string
	observer  ExportObserver
	log       zerolog.Logger
}

// NewExportUseCase construye el caso de uso. observer puede ser nil.
func NewExportUseCase(
	sessions *SessionUseCase,
	generator InvoicePDFGenerator,
	engine string,
	observer ExportObserver,
	log zerolog.Logger,
) *ExportUseCase {
	return &ExportUseCase{
		sessions:  sessions,
		generator: generator,
		engine:    engine,
		observer:  observer,
		log:       log,
	}
}

// Export toma una copia de la factura y la renderiza. No valida el contenido: se
// imprime lo que haya, incluidas cadenas vacías.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien; filename = Invoice_<número>.pdf sin sanear.
//   - domain.ErrNotFound         si la sesión no existe.
//   - domain.ErrInvalidDate      si una fecha no parsea (envuelto en ErrRenderFailure).
//   - domain.ErrRenderFailure    ante cualquier otro fallo del motor.
func (uc *ExportUseCase) Export(ctx context.Context, sessionID string) (pdfBytes []byte, filename string, err error) {
	snap, err := uc.sessions.Snapshot(sessionID)
	if err != nil {
		return nil, "", err
	}

	start := time.Now()
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, snap)
	elapsed := time.Since(start)
	if uc.observer != nil {
		uc.observer.ObserveExport(uc.engine, err, elapsed)
	}
	if err != nil {
		uc.log.Error().Err(err).
			Str("session_id", sessionID).
			Str("invoice_number", snap.Number).
			Str("engine", uc.engine).
			Msg("exportación de factura fallida")
		return nil, "", fmt.Errorf("%w: %w", domain.ErrRenderFailure, err)
	}

	filename = document.Filename(snap.Number)
	uc.log.Info().
		Str("session_id", sessionID).
		Str("filename", filename).
		Int("items", len(snap.Items)).
		Int("bytes", len(pdfBytes)).
		Dur("elapsed", elapsed).
		Msg("factura exportada")
	return pdfBytes, filename, nil
}
