package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoicepro/internal/application/dto"
	"github.com/jhoicas/invoicepro/internal/application/invoicing"
)

// InvoiceHandler maneja la edición de la factura de una sesión.
type InvoiceHandler struct {
	uc *invoicing.SessionUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *invoicing.SessionUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create abre una sesión con una factura nueva.
// POST /api/sessions
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	out, err := h.uc.Create()
	if err != nil {
		return writeError(c, err)
	}
	c.Set("X-Session-ID", out.SessionID)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get devuelve la factura con sus totales.
// GET /api/sessions/:id
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete descarta la sesión.
// DELETE /api/sessions/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetSessionID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetField reemplaza un campo de cabecera.
// PATCH /api/sessions/:id/fields
func (h *InvoiceHandler) SetField(c *fiber.Ctx) error {
	var in dto.SetFieldRequest
	if err := c.BodyParser(&in); err != nil || in.Field == "" {
		return invalidBody(c)
	}
	out, err := h.uc.SetField(GetSessionID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem agrega una línea en blanco.
// POST /api/sessions/:id/items
func (h *InvoiceHandler) AddItem(c *fiber.Ctx) error {
	out, err := h.uc.AddItem(GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetItemField reemplaza un campo de una línea. Un itemId inexistente no cambia nada.
// PATCH /api/sessions/:id/items/:itemId
func (h *InvoiceHandler) SetItemField(c *fiber.Ctx) error {
	var in dto.SetFieldRequest
	if err := c.BodyParser(&in); err != nil || in.Field == "" {
		return invalidBody(c)
	}
	out, err := h.uc.SetItemField(GetSessionID(c), c.Params("itemId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem elimina una línea salvo que sea la única.
// DELETE /api/sessions/:id/items/:itemId
func (h *InvoiceHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(GetSessionID(c), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Totals GET /api/sessions/:id/totals
func (h *InvoiceHandler) Totals(c *fiber.Ctx) error {
	out, err := h.uc.Totals(GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Preview GET /api/sessions/:id/preview
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	out, err := h.uc.Preview(GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
