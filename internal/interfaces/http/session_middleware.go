package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/invoicepro/internal/application/dto"
)

// LocalSessionID key en c.Locals con el id de sesión ya validado.
const LocalSessionID = "session_id"

// SessionMiddleware valida que :id sea un UUID y lo deja en c.Locals.
// Un id mal formado nunca puede existir, así que se responde 404 igual que una sesión expirada.
func SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("id")
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada"})
		}
		c.Locals(LocalSessionID, id.String())
		return c.Next()
	}
}

// GetSessionID devuelve el id de sesión del contexto (después de SessionMiddleware).
func GetSessionID(c *fiber.Ctx) string {
	v := c.Locals(LocalSessionID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// RequestLogger registra método, ruta, estado y latencia de cada petición.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición HTTP")
		return err
	}
}
