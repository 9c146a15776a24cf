package catalog_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farm-stand/internal/domain"
	"github.com/jhoicas/farm-stand/internal/domain/catalog"
	"github.com/jhoicas/farm-stand/internal/domain/entity"
)

func TestValidateProduct_Valido(t *testing.T) {
	p, err := catalog.ValidateProduct(catalog.Draft{Name: "Fairy Eggplant", Price: "1.00", Category: "vegetable"})
	require.NoError(t, err)

	assert.Equal(t, "Fairy Eggplant", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("1")))
	assert.Equal(t, entity.CategoryVegetable, p.Category)
	assert.Empty(t, p.ID, "el ID lo asigna el almacén")
}

func TestValidateProduct_CategoriaEnMinusculas(t *testing.T) {
	p, err := catalog.ValidateProduct(catalog.Draft{Name: "Milk", Price: "2.69", Category: "DaIRY"})
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryDairy, p.Category)
}

func TestValidateProduct_PrecioCeroEsValido(t *testing.T) {
	_, err := catalog.ValidateProduct(catalog.Draft{Name: "Gift apple", Price: "0", Category: "fruit"})
	assert.NoError(t, err)
}

func TestValidateProduct_PrecioSobreviveAlDouble(t *testing.T) {
	for _, raw := range []string{"2.69", "0.1", "4.99", "123456.78", "1e10"} {
		p, err := catalog.ValidateProduct(catalog.Draft{Name: "x", Price: raw, Category: "fruit"})
		require.NoError(t, err, raw)
		assert.True(t, decimal.NewFromFloat(p.Price.InexactFloat64()).Equal(p.Price), raw)
	}
}

func TestValidateProduct_Violaciones(t *testing.T) {
	cases := []struct {
		name  string
		draft catalog.Draft
		want  map[string]string
	}{
		{"sin nombre", catalog.Draft{Price: "1", Category: "fruit"}, map[string]string{"name": "required"}},
		{"sin precio", catalog.Draft{Name: "x", Category: "fruit"}, map[string]string{"price": "required"}},
		{"precio no numérico", catalog.Draft{Name: "x", Price: "caro", Category: "fruit"}, map[string]string{"price": "number"}},
		{"precio infinito", catalog.Draft{Name: "x", Price: "1e400", Category: "fruit"}, map[string]string{"price": "number"}},
		{"precio infinito negativo", catalog.Draft{Name: "x", Price: "-1e400", Category: "fruit"}, map[string]string{"price": "number"}},
		{"precio con demasiados dígitos", catalog.Draft{Name: "x", Price: "1.23456789012345678", Category: "fruit"}, map[string]string{"price": "precision"}},
		{"precio demasiado pequeño", catalog.Draft{Name: "x", Price: "1e-400", Category: "fruit"}, map[string]string{"price": "precision"}},
		{"precio negativo", catalog.Draft{Name: "x", Price: "-0.5", Category: "fruit"}, map[string]string{"price": "gte"}},
		{"categoría fuera del conjunto", catalog.Draft{Name: "x", Price: "1", Category: "meat"}, map[string]string{"category": "category"}},
		{"sin categoría", catalog.Draft{Name: "x", Price: "1"}, map[string]string{"category": "required"}},
		{"campo desconocido", catalog.Draft{Name: "x", Price: "1", Category: "fruit", Unknown: []string{"color"}}, map[string]string{"color": "unknown"}},
		{"todo mal", catalog.Draft{Price: "-1", Category: "toys"}, map[string]string{"name": "required", "price": "gte", "category": "category"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := catalog.ValidateProduct(tc.draft)
			assert.Nil(t, p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			var verr *catalog.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.want, verr.Fields())
		})
	}
}

func TestValidateProduct_OrdenDeViolaciones(t *testing.T) {
	_, err := catalog.ValidateProduct(catalog.Draft{Category: "toys", Unknown: []string{"zeta", "alfa"}})

	var verr *catalog.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	assert.Equal(t, []string{"name", "price", "category", "alfa", "zeta"}, fields)
	assert.Contains(t, err.Error(), "category")
}
