package repository

import (
	"context"

	"github.com/jhoicas/farm-stand/internal/domain/entity"
)

// ProductFilter criterios de listado. Category vacío = todos los productos.
// La comparación es exacta contra el valor almacenado (minúsculas).
type ProductFilter struct {
	Category string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// GetByID devuelve (nil, nil) si el producto no existe y domain.ErrInvalidID si el
// identificador no tiene el formato del almacén. Delete no falla si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
