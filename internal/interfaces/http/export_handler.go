package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoicepro/internal/application/invoicing"
)

// ExportHandler descarga del PDF.
type ExportHandler struct {
	uc *invoicing.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *invoicing.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Download genera el PDF y lo entrega como adjunto.
// GET /api/sessions/:id/export
//
// No se usa c.Attachment porque recorta el nombre con filepath.Base; el número de
// factura viaja tal cual, solo entrecomillado.
func (h *ExportHandler) Download(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Export(c.UserContext(), GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(pdf)
}
