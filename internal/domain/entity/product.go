package entity

import "github.com/shopspring/decimal"

// Product representa un producto del puesto de la granja.
// ID lo asigna el almacén al crear y no cambia; Category se guarda siempre en minúsculas.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal // precio >= 0
	Category Category
}

// Clone devuelve una copia independiente del producto.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
