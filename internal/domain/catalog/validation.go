// Package catalog contiene las reglas de validación de productos del puesto.
// Todo producto pasa por ValidateProduct antes de llegar al almacén, sea cual sea
// el adaptador de persistencia.
package catalog

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farm-stand/internal/domain"
	"github.com/jhoicas/farm-stand/internal/domain/entity"
)

// Draft producto sin validar, con los valores tal como llegaron del formulario.
type Draft struct {
	Name     string
	Price    string
	Category string
	Unknown  []string // campos del payload que no pertenecen al esquema
}

// Violation describe una regla incumplida.
type Violation struct {
	Field   string
	Rule    string // required, number, precision, gte, category, unknown
	Message string
}

// ValidationError resultado negativo de ValidateProduct. errors.Is(err, domain.ErrValidation) es true.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return fmt.Sprintf("%s: %s", domain.ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return domain.ErrValidation }

// Fields devuelve campo -> regla, útil para logs.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Violations))
	for _, v := range e.Violations {
		out[v.Field] = v.Rule
	}
	return out
}

// productRules reglas de esquema aplicadas con validator.
type productRules struct {
	Name     string          `field:"name" validate:"required"`
	Price    decimal.Decimal `field:"price" validate:"gte=0"`
	Category string          `field:"category" validate:"required,category"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// decimal.Decimal se valida como número (min/gte no soportan el struct directamente).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return entity.Category(fl.Field().String()).Valid()
	})
	return v
}

// ValidateProduct normaliza y valida un borrador. Devuelve el producto listo para
// persistir (sin ID) o un *ValidationError con todas las reglas incumplidas.
func ValidateProduct(d Draft) (*entity.Product, error) {
	var violations []Violation

	rules := productRules{
		Name:     d.Name,
		Category: string(entity.NormalizeCategory(d.Category)),
	}

	rawPrice := strings.TrimSpace(d.Price)
	if rawPrice == "" {
		violations = append(violations, Violation{Field: "price", Rule: "required", Message: "es requerido"})
	} else if price, err := decimal.NewFromString(rawPrice); err != nil {
		violations = append(violations, Violation{Field: "price", Rule: "number", Message: fmt.Sprintf("%q no es un número", d.Price)})
	} else if f := price.InexactFloat64(); math.IsInf(f, 0) || math.IsNaN(f) {
		violations = append(violations, Violation{Field: "price", Rule: "number", Message: fmt.Sprintf("%q está fuera de rango", d.Price)})
	} else if !decimal.NewFromFloat(f).Equal(price) {
		// El almacén guarda el precio como double.
		violations = append(violations, Violation{Field: "price", Rule: "precision", Message: fmt.Sprintf("%q tiene más precisión de la que se puede guardar", d.Price)})
	} else {
		rules.Price = price
	}

	if err := validate.Struct(rules); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, fmt.Errorf("validar producto: %w", err)
		}
		for _, fe := range verrs {
			violations = append(violations, Violation{Field: fe.Field(), Rule: fe.Tag(), Message: messageFor(fe)})
		}
	}

	unknown := append([]string(nil), d.Unknown...)
	sort.Strings(unknown)
	for _, f := range unknown {
		violations = append(violations, Violation{Field: f, Rule: "unknown", Message: "no pertenece al esquema"})
	}

	if len(violations) > 0 {
		sort.SliceStable(violations, func(i, j int) bool {
			return fieldOrder(violations[i].Field) < fieldOrder(violations[j].Field)
		})
		return nil, &ValidationError{Violations: violations}
	}

	return &entity.Product{
		Name:     rules.Name,
		Price:    rules.Price,
		Category: entity.Category(rules.Category),
	}, nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "gte":
		return "debe ser mayor o igual a " + fe.Param()
	case "category":
		return fmt.Sprintf("%q no es una de %s", fe.Value(), strings.Join(entity.CategoryValues(), ", "))
	default:
		return "no cumple " + fe.Tag()
	}
}

func fieldOrder(field string) int {
	switch field {
	case "name":
		return 0
	case "price":
		return 1
	case "category":
		return 2
	default:
		return 3
	}
}
