package mongodb_test

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/jhoicas/farm-stand/internal/domain"
	"github.com/jhoicas/farm-stand/internal/domain/entity"
	"github.com/jhoicas/farm-stand/internal/domain/repository"
	"github.com/jhoicas/farm-stand/internal/infrastructure/mongodb"
)

// ──────────────────────────────────────────────────────────────────────────────
// Las pruebas usan el deployment simulado de mtest: cada operación consume la
// siguiente respuesta encolada con AddMockResponses, sin servidor real.
// ──────────────────────────────────────────────────────────────────────────────

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func productDoc(id primitive.ObjectID, name string, price float64, category string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "price", Value: price},
		{Key: "category", Value: category},
	}
}

func TestProductRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("Create asigna ObjectID", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := mongodb.NewProductRepository(mt.Coll)

		p := &entity.Product{Name: "Organic Celery", Price: decimal.RequireFromString("1.50"), Category: entity.CategoryVegetable}
		require.NoError(mt, repo.Create(ctx, p))

		_, err := primitive.ObjectIDFromHex(p.ID)
		assert.NoError(mt, err, "el ID asignado debe ser un ObjectID hex")
	})

	mt.Run("Create propaga error de escritura", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 121, Message: "Document failed validation"}))
		repo := mongodb.NewProductRepository(mt.Coll)

		p := &entity.Product{Name: "x", Price: decimal.Zero, Category: entity.CategoryFruit}
		err := repo.Create(ctx, p)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "insert product")
		assert.Empty(mt, p.ID)
	})

	mt.Run("GetByID encontrado", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			productDoc(oid, "Chocolate Whole Milk", 2.69, "dairy")))
		repo := mongodb.NewProductRepository(mt.Coll)

		p, err := repo.GetByID(ctx, oid.Hex())
		require.NoError(mt, err)
		require.NotNil(mt, p)
		assert.Equal(mt, oid.Hex(), p.ID)
		assert.Equal(mt, "Chocolate Whole Milk", p.Name)
		assert.True(mt, p.Price.Equal(decimal.RequireFromString("2.69")))
		assert.Equal(mt, entity.CategoryDairy, p.Category)
	})

	mt.Run("GetByID inexistente devuelve nil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		repo := mongodb.NewProductRepository(mt.Coll)

		p, err := repo.GetByID(ctx, primitive.NewObjectID().Hex())
		assert.NoError(mt, err)
		assert.Nil(mt, p)
	})

	mt.Run("GetByID con id mal formado", func(mt *mtest.T) {
		repo := mongodb.NewProductRepository(mt.Coll)

		p, err := repo.GetByID(ctx, "no-es-un-objectid")
		assert.ErrorIs(mt, err, domain.ErrInvalidID)
		assert.Nil(mt, p)
	})

	mt.Run("List por categoría", func(mt *mtest.T) {
		a, b := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			productDoc(a, "Fairy Eggplant", 1, "vegetable"),
			productDoc(b, "Organic Celery", 1.5, "vegetable"),
		))
		repo := mongodb.NewProductRepository(mt.Coll)

		list, err := repo.List(ctx, repository.ProductFilter{Category: "vegetable"})
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		assert.Equal(mt, a.Hex(), list[0].ID)
		assert.Equal(mt, b.Hex(), list[1].ID)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		filter := started.Command.Lookup("filter").Document()
		assert.Equal(mt, "vegetable", filter.Lookup("category").StringValue())
	})

	mt.Run("List sin filtro", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		repo := mongodb.NewProductRepository(mt.Coll)

		list, err := repo.List(ctx, repository.ProductFilter{})
		require.NoError(mt, err)
		assert.Empty(mt, list)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		_, err = started.Command.Lookup("filter").Document().LookupErr("category")
		assert.Error(mt, err, "sin categoría no se filtra")
	})

	mt.Run("GetByID con precio no finito devuelve error", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			productDoc(oid, "Broken Melon", math.Inf(1), "fruit")))
		repo := mongodb.NewProductRepository(mt.Coll)

		var p *entity.Product
		var err error
		require.NotPanics(mt, func() { p, err = repo.GetByID(ctx, oid.Hex()) })
		assert.ErrorContains(mt, err, "get product")
		assert.Nil(mt, p)
	})

	mt.Run("List con precio no finito devuelve error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			productDoc(primitive.NewObjectID(), "Organic Celery", 1.5, "vegetable"),
			productDoc(primitive.NewObjectID(), "Broken Melon", math.NaN(), "fruit"),
		))
		repo := mongodb.NewProductRepository(mt.Coll)

		var list []*entity.Product
		var err error
		require.NotPanics(mt, func() { list, err = repo.List(ctx, repository.ProductFilter{}) })
		assert.ErrorContains(mt, err, "decode products")
		assert.Nil(mt, list)
	})

	mt.Run("List propaga error de comando", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad filter"}))
		repo := mongodb.NewProductRepository(mt.Coll)

		_, err := repo.List(ctx, repository.ProductFilter{Category: "fruit"})
		assert.ErrorContains(mt, err, "list products")
	})

	mt.Run("Update existente", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		repo := mongodb.NewProductRepository(mt.Coll)

		p := &entity.Product{ID: primitive.NewObjectID().Hex(), Name: "x", Price: decimal.NewFromInt(3), Category: entity.CategoryFruit}
		assert.NoError(mt, repo.Update(ctx, p))
	})

	mt.Run("Update sin coincidencias", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		repo := mongodb.NewProductRepository(mt.Coll)

		p := &entity.Product{ID: primitive.NewObjectID().Hex(), Name: "x", Price: decimal.NewFromInt(3), Category: entity.CategoryFruit}
		assert.ErrorIs(mt, repo.Update(ctx, p), domain.ErrNotFound)
	})

	mt.Run("Delete inexistente no es error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := mongodb.NewProductRepository(mt.Coll)

		assert.NoError(mt, repo.Delete(ctx, primitive.NewObjectID().Hex()))
	})

	mt.Run("Delete con id mal formado", func(mt *mtest.T) {
		repo := mongodb.NewProductRepository(mt.Coll)

		assert.ErrorIs(mt, repo.Delete(ctx, "123"), domain.ErrInvalidID)
	})

	mt.Run("Ping", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := mongodb.NewProductRepository(mt.Coll)

		assert.NoError(mt, repo.Ping(ctx))
	})
}
