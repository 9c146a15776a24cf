package mongodb

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/farm-stand/internal/domain"
	"github.com/jhoicas/farm-stand/internal/domain/entity"
	"github.com/jhoicas/farm-stand/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productDocument forma del documento en la colección products.
type productDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Price    float64            `bson:"price"`
	Category string             `bson:"category"`
}

func toDocument(p *entity.Product) productDocument {
	return productDocument{
		Name:     p.Name,
		Price:    p.Price.InexactFloat64(),
		Category: string(p.Category),
	}
}

// toEntity falla con precios no finitos: decimal.NewFromFloat entra en pánico con ellos.
func (d productDocument) toEntity() (*entity.Product, error) {
	if math.IsInf(d.Price, 0) || math.IsNaN(d.Price) {
		return nil, fmt.Errorf("documento %s: precio %v no es finito", d.ID.Hex(), d.Price)
	}
	return &entity.Product{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Price:    decimal.NewFromFloat(d.Price),
		Category: entity.Category(d.Category),
	}, nil
}

// ProductRepo implementación del puerto ProductRepository sobre una colección MongoDB.
type ProductRepo struct {
	coll *mongo.Collection
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(coll *mongo.Collection) *ProductRepo {
	return &ProductRepo{coll: coll}
}

// Create persiste un nuevo producto y le asigna un ObjectID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	doc := toDocument(product)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return wrapErr("insert product", err)
	}
	product.ID = doc.ID.Hex()
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrapErr("get product", err)
	}
	product, err := doc.toEntity()
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// List lista productos en orden natural, opcionalmente por categoría exacta.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, wrapErr("list products", err)
	}
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrapErr("decode products", err)
	}
	list := make([]*entity.Product, 0, len(docs))
	for _, d := range docs {
		p, err := d.toEntity()
		if err != nil {
			return nil, fmt.Errorf("decode products: %w", err)
		}
		list = append(list, p)
	}
	return list, nil
}

// Update reemplaza name, price y category del producto. domain.ErrNotFound si el ID ya no existe.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	oid, err := parseID(product.ID)
	if err != nil {
		return err
	}
	doc := toDocument(product)
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":     doc.Name,
		"price":    doc.Price,
		"category": doc.Category,
	}})
	if err != nil {
		return wrapErr("update product", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update product %s: %w", product.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina un producto por ID. No es error que no exista.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return wrapErr("delete product", err)
	}
	return nil
}

// Ping verifica que el primario responda.
func (r *ProductRepo) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return wrapErr("ping", err)
	}
	return nil
}
