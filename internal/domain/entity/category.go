package entity

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category es el conjunto cerrado de categorías del puesto. La misma lista
// alimenta la validación y los formularios.
type Category string

const (
	CategoryFruit     Category = "fruit"
	CategoryVegetable Category = "vegetable"
	CategoryDairy     Category = "dairy"
)

var categories = []Category{CategoryFruit, CategoryVegetable, CategoryDairy}

// Categories devuelve una copia del conjunto cerrado, en orden de presentación.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryValues devuelve las categorías como strings (para reglas oneof).
func CategoryValues() []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, string(c))
	}
	return out
}

// NormalizeCategory pasa a minúsculas con reglas Unicode; no valida pertenencia.
func NormalizeCategory(s string) Category {
	return Category(cases.Lower(language.Und).String(s))
}

// Valid indica si la categoría pertenece al conjunto cerrado.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label etiqueta para mostrar en vistas ("fruit" -> "Fruit").
func (c Category) Label() string {
	return cases.Title(language.English).String(string(c))
}

func (c Category) String() string { return string(c) }
