// Package memory implementa el puerto ProductRepository en proceso. Se usa en tests
// y con STORE_DRIVER=memory; los IDs son ObjectID hex para que un id mal formado
// se comporte igual que con MongoDB.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/farm-stand/internal/domain"
	"github.com/jhoicas/farm-stand/internal/domain/entity"
	"github.com/jhoicas/farm-stand/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo almacén en memoria que conserva el orden de inserción.
type ProductRepo struct {
	mu       sync.RWMutex
	products []*entity.Product
	failWith error
}

// NewProductRepository construye un almacén vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{}
}

// FailWith hace que todas las operaciones siguientes devuelvan err (nil lo desactiva).
// Permite simular un almacén caído en tests.
func (r *ProductRepo) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = err
}

// Len número de productos almacenados.
func (r *ProductRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return fmt.Errorf("insert product: %w", r.failWith)
	}
	product.ID = primitive.NewObjectID().Hex()
	r.products = append(r.products, product.Clone())
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.failWith != nil {
		return nil, fmt.Errorf("get product: %w", r.failWith)
	}
	if i := r.indexOf(id); i >= 0 {
		return r.products[i].Clone(), nil
	}
	return nil, nil
}

func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.failWith != nil {
		return nil, fmt.Errorf("list products: %w", r.failWith)
	}
	list := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.Category != "" && string(p.Category) != filter.Category {
			continue
		}
		list = append(list, p.Clone())
	}
	return list, nil
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if err := checkID(product.ID); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return fmt.Errorf("update product: %w", r.failWith)
	}
	i := r.indexOf(product.ID)
	if i < 0 {
		return fmt.Errorf("update product %s: %w", product.ID, domain.ErrNotFound)
	}
	stored := product.Clone()
	stored.ID = r.products[i].ID
	r.products[i] = stored
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return fmt.Errorf("delete product: %w", r.failWith)
	}
	if i := r.indexOf(id); i >= 0 {
		r.products = append(r.products[:i], r.products[i+1:]...)
	}
	return nil
}

func (r *ProductRepo) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.failWith != nil {
		return fmt.Errorf("ping: %w", r.failWith)
	}
	return nil
}

// indexOf requiere el lock tomado. El hex de un ObjectID no distingue mayúsculas.
func (r *ProductRepo) indexOf(id string) int {
	for i, p := range r.products {
		if strings.EqualFold(p.ID, id) {
			return i
		}
	}
	return -1
}

func checkID(id string) error {
	if !primitive.IsValidObjectID(id) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return nil
}
