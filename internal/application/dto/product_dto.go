package dto

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ProductPayload campos recibidos en el cuerpo de POST/PUT /products. Un puntero nil
// significa que el campo no vino en el payload; Unknown lista los campos ajenos al esquema.
type ProductPayload struct {
	Name     *string
	Price    *string
	Category *string
	Unknown  []string
}

// NewProductPayload clasifica los campos de un formulario o JSON ya aplanado.
func NewProductPayload(fields map[string]string) ProductPayload {
	var p ProductPayload
	for k, v := range fields {
		v := v
		switch k {
		case "name":
			p.Name = &v
		case "price":
			p.Price = &v
		case "category":
			p.Category = &v
		default:
			p.Unknown = append(p.Unknown, k)
		}
	}
	sort.Strings(p.Unknown)
	return p
}

// ProductView producto listo para las plantillas.
type ProductView struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	PriceText     string // dos decimales
	Category      string
	CategoryLabel string
}

// ProductListView datos de products/index.
type ProductListView struct {
	Products   []ProductView
	Categories []CategoryOption
	Selected   string // filtro aplicado ("" = todos)
}

// ProductFormView datos de products/new y products/edit.
type ProductFormView struct {
	Product    *ProductView // nil en el formulario de alta
	Categories []CategoryOption
}
