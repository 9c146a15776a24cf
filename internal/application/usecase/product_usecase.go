package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/farm-stand/internal/application/dto"
	"github.com/jhoicas/farm-stand/internal/domain"
	"github.com/jhoicas/farm-stand/internal/domain/catalog"
	"github.com/jhoicas/farm-stand/internal/domain/entity"
	"github.com/jhoicas/farm-stand/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo del puesto.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Categories devuelve el conjunto cerrado como opciones, marcando selected.
func (uc *ProductUseCase) Categories(selected string) []dto.CategoryOption {
	cats := entity.Categories()
	out := make([]dto.CategoryOption, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryOption{
			Value:    string(c),
			Label:    c.Label(),
			Selected: string(c) == selected,
		})
	}
	return out
}

// List lista todos los productos o solo los de la categoría indicada (comparación exacta).
func (uc *ProductUseCase) List(ctx context.Context, category string) (*dto.ProductListView, error) {
	list, err := uc.repo.List(ctx, repository.ProductFilter{Category: category})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductView, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductView(p))
	}
	return &dto.ProductListView{
		Products:   items,
		Categories: uc.Categories(category),
		Selected:   category,
	}, nil
}

// Get obtiene un producto por ID. (nil, nil) si no existe.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductView, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductView(product), nil
}

// Create valida y persiste un producto nuevo. Antes de validar el esquema exige que
// price y name vengan en el payload (domain.ErrMissingField); el resto de reglas
// las aplica catalog.ValidateProduct.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductPayload) (*dto.ProductView, error) {
	if in.Price == nil || *in.Price == "" {
		return nil, fmt.Errorf("%w: price", domain.ErrMissingField)
	}
	if in.Name == nil || *in.Name == "" {
		return nil, fmt.Errorf("%w: name", domain.ErrMissingField)
	}
	draft := catalog.Draft{
		Name:    *in.Name,
		Price:   *in.Price,
		Unknown: in.Unknown,
	}
	if in.Category != nil {
		draft.Category = *in.Category
	}
	product, err := catalog.ValidateProduct(draft)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductView(product), nil
}

// Update aplica los campos presentes en el payload sobre el producto guardado.
// (nil, nil) si el producto no existe; no escribe nada si la validación falla.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductPayload) (*dto.ProductView, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	draft := catalog.Draft{
		Name:     existing.Name,
		Price:    existing.Price.String(),
		Category: string(existing.Category),
		Unknown:  in.Unknown,
	}
	if in.Name != nil {
		draft.Name = *in.Name
	}
	if in.Price != nil {
		draft.Price = *in.Price
	}
	if in.Category != nil {
		draft.Category = *in.Category
	}
	product, err := catalog.ValidateProduct(draft)
	if err != nil {
		return nil, err
	}
	product.ID = existing.ID
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductView(product), nil
}

// Delete elimina un producto por ID; no falla si no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Ping verifica el almacén (health check).
func (uc *ProductUseCase) Ping(ctx context.Context) error {
	return uc.repo.Ping(ctx)
}

func toProductView(p *entity.Product) *dto.ProductView {
	if p == nil {
		return nil
	}
	return &dto.ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		PriceText:     p.Price.StringFixed(2),
		Category:      string(p.Category),
		CategoryLabel: p.Category.Label(),
	}
}
