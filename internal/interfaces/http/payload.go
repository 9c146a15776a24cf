package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farm-stand/internal/application/dto"
)

// bindProductPayload aplana el cuerpo (urlencoded, multipart o JSON) en campo -> valor.
// Los null de JSON cuentan como ausentes y _method nunca es un campo del producto.
func bindProductPayload(c *fiber.Ctx) (dto.ProductPayload, error) {
	fields := make(map[string]string)
	ctype := strings.ToLower(string(c.Request().Header.ContentType()))

	switch {
	case strings.HasPrefix(ctype, fiber.MIMEApplicationJSON):
		if len(bytes.TrimSpace(c.Body())) == 0 {
			break
		}
		dec := json.NewDecoder(bytes.NewReader(c.Body()))
		dec.UseNumber()
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return dto.ProductPayload{}, fmt.Errorf("cuerpo JSON inválido: %w", err)
		}
		for k, v := range raw {
			switch val := v.(type) {
			case nil:
			case string:
				fields[k] = val
			case json.Number:
				fields[k] = val.String()
			default:
				fields[k] = fmt.Sprint(val)
			}
		}
	case strings.HasPrefix(ctype, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return dto.ProductPayload{}, fmt.Errorf("formulario multipart inválido: %w", err)
		}
		for k, vs := range form.Value {
			if len(vs) > 0 {
				fields[k] = vs[len(vs)-1]
			}
		}
	default:
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			fields[string(k)] = string(v)
		})
	}

	delete(fields, MethodOverrideField)
	return dto.NewProductPayload(fields), nil
}
