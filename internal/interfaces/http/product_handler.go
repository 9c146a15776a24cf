package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/farm-stand/internal/application/dto"
	"github.com/jhoicas/farm-stand/internal/application/usecase"
	"github.com/jhoicas/farm-stand/internal/domain"
	"github.com/jhoicas/farm-stand/internal/domain/catalog"
)

const (
	pathProducts   = "/products"
	pathNewProduct = "/products/new"
)

// ProductHandler maneja las páginas del catálogo. Cualquier fallo termina en una
// redirección a una pantalla segura; el detalle solo queda en el log.
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log zerolog.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

func productPath(id string) string {
	return pathProducts + "/" + id
}

// List GET /products[?category=X]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	category := c.Query("category")
	out, err := h.uc.List(c.UserContext(), category)
	if err != nil {
		h.failure(c, err, "listar productos").Str("category", category).Msg("redirigiendo tras error")
		if category != "" {
			return c.Redirect(pathProducts)
		}
		// Sin filtro, redirigir a la misma URL sería un bucle: se muestra la lista vacía.
		out = &dto.ProductListView{Products: []dto.ProductView{}, Categories: h.uc.Categories("")}
	}
	return c.Render("products/index", fiber.Map{"Title": "All products", "Page": out})
}

// New GET /products/new
func (h *ProductHandler) New(c *fiber.Ctx) error {
	return c.Render("products/new", fiber.Map{
		"Title": "New product",
		"Page":  dto.ProductFormView{Categories: h.uc.Categories("")},
	})
}

// Show GET /products/:id
func (h *ProductHandler) Show(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		h.failure(c, err, "buscar producto").Str("id", id).Msg("redirigiendo tras error")
		return c.Redirect(pathProducts)
	}
	if product == nil {
		h.log.Info().Str("request_id", RequestID(c)).Str("id", id).Msg("producto no encontrado")
		return c.Redirect(pathProducts)
	}
	return c.Render("products/show", fiber.Map{"Title": product.Name, "Page": product})
}

// Edit GET /products/:id/edit
func (h *ProductHandler) Edit(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		h.failure(c, err, "buscar producto").Str("id", id).Msg("redirigiendo tras error")
		return c.Redirect(pathProducts)
	}
	if product == nil {
		h.log.Info().Str("request_id", RequestID(c)).Str("id", id).Msg("producto no encontrado")
		return c.Redirect(pathProducts)
	}
	return c.Render("products/edit", fiber.Map{
		"Title": "Edit " + product.Name,
		"Page":  dto.ProductFormView{Product: product, Categories: h.uc.Categories(product.Category)},
	})
}

// Update PUT|PATCH /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	in, err := bindProductPayload(c)
	if err != nil {
		h.failure(c, err, "leer payload").Str("id", id).Msg("redirigiendo tras error")
		return c.Redirect(pathProducts)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		h.failure(c, err, "actualizar producto").Str("id", id).Msg("redirigiendo tras error")
		return c.Redirect(pathProducts)
	}
	if out == nil {
		h.log.Info().Str("request_id", RequestID(c)).Str("id", id).Msg("producto no encontrado")
		return c.Redirect(pathProducts)
	}
	return c.Redirect(productPath(out.ID))
}

// Create POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, err := bindProductPayload(c)
	if err != nil {
		h.failure(c, err, "leer payload").Msg("redirigiendo tras error")
		return c.Redirect(pathNewProduct)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		h.failure(c, err, "crear producto").Msg("redirigiendo tras error")
		return c.Redirect(pathNewProduct)
	}
	h.log.Info().Str("request_id", RequestID(c)).Str("id", out.ID).Msg("producto creado")
	return c.Redirect(productPath(out.ID))
}

// Delete DELETE /products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		h.failure(c, err, "eliminar producto").Str("id", id).Msg("redirigiendo tras error")
		return c.Redirect(pathProducts)
	}
	h.log.Info().Str("request_id", RequestID(c)).Str("id", id).Msg("producto eliminado")
	return c.Redirect(pathProducts)
}

// failure prepara el evento de log de un error tragado: warn para errores del cliente
// (id mal formado, campos faltantes, validación), error para fallos del almacén.
func (h *ProductHandler) failure(c *fiber.Ctx, err error, action string) *zerolog.Event {
	level := zerolog.ErrorLevel
	var violations map[string]string
	switch {
	case errors.Is(err, domain.ErrInvalidID), errors.Is(err, domain.ErrMissingField):
		level = zerolog.WarnLevel
	case errors.Is(err, domain.ErrValidation):
		level = zerolog.WarnLevel
		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			violations = verr.Fields()
		}
	}
	ev := h.log.WithLevel(level).Err(err).Str("request_id", RequestID(c)).Str("action", action)
	if violations != nil {
		ev = ev.Interface("violations", violations)
	}
	return ev
}
