package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// MethodOverrideField nombre del campo (form o query) que indica el verbo real.
const MethodOverrideField = "_method"

// LocalRequestID clave en c.Locals del id de petición.
const LocalRequestID = "request_id"

// MethodOverride permite a los formularios HTML enviar PUT, PATCH y DELETE como POST
// con _method en el query string o en el cuerpo. Debe registrarse con app.Use antes
// que cualquier ruta para que Fiber continúe en la pila del nuevo verbo.
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}
		override := c.Query(MethodOverrideField)
		if override == "" {
			override = c.FormValue(MethodOverrideField)
		}
		switch m := strings.ToUpper(strings.TrimSpace(override)); m {
		case fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
			c.Method(m)
		}
		return c.Next()
	}
}

// RequestLogger registra cada petición con método, ruta, status, latencia y request_id.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("request_id", RequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}

// RequestID devuelve el id asignado por el middleware requestid ("" si no hay).
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(LocalRequestID).(string); ok {
		return id
	}
	return ""
}
