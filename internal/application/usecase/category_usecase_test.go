package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catalog-api/internal/application/dto"
	"github.com/tu-usuario/catalog-api/internal/domain"
)

func nullableStr(s string) dto.NullableString {
	return dto.NullableString{Set: true, Valid: true, Value: s}
}

func newCatalogFakes() (*CategoryUseCase, *ProductUseCase, *fakeImageStore) {
	cats := newFakeCategoryRepo()
	prods := newFakeProductRepo(cats)
	store := &fakeImageStore{}
	catUC := NewCategoryUseCase(cats, prods)
	prodUC := NewProductUseCase(prods, cats, &fakeTxRunner{products: prods, categories: cats}, store)
	return catUC, prodUC, store
}

func priceptr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ──────────────────────────────────────────────────────────────

func TestCategoryUseCase_Create(t *testing.T) {
	uc, _, _ := newCatalogFakes()

	root, err := uc.Create(dto.CreateCategoryRequest{Name: "Electrónica y Computación"})
	require.NoError(t, err)
	assert.Equal(t, "electronica-y-computacion", root.Slug)
	assert.True(t, root.IsActive)
	assert.Nil(t, root.ParentID)

	t.Run("nombre duplicado", func(t *testing.T) {
		_, err := uc.Create(dto.CreateCategoryRequest{Name: "Electrónica y Computación"})
		assert.ErrorIs(t, err, domain.ErrCategoryNameTaken)
	})

	t.Run("slug explícito", func(t *testing.T) {
		c, err := uc.Create(dto.CreateCategoryRequest{Name: "Hogar", Slug: strptr("Casa y Jardín")})
		require.NoError(t, err)
		assert.Equal(t, "casa-y-jardin", c.Slug)
	})

	t.Run("padre inexistente", func(t *testing.T) {
		_, err := uc.Create(dto.CreateCategoryRequest{Name: "Laptops", ParentID: strptr("550e8400-e29b-41d4-a716-446655440000")})
		assert.ErrorIs(t, err, domain.ErrParentNotFound)
	})

	t.Run("con padre válido aparece como hija", func(t *testing.T) {
		child, err := uc.Create(dto.CreateCategoryRequest{Name: "Celulares", ParentID: &root.ID})
		require.NoError(t, err)
		require.NotNil(t, child.Parent)
		assert.Equal(t, root.ID, child.Parent.ID)

		parent, err := uc.GetByID(root.ID)
		require.NoError(t, err)
		require.Len(t, parent.Children, 1)
		assert.Equal(t, "Celulares", parent.Children[0].Name)
	})
}

func TestCategoryUseCase_Update(t *testing.T) {
	uc, _, _ := newCatalogFakes()

	cat, _ := uc.Create(dto.CreateCategoryRequest{Name: "Electrónica"})

	t.Run("el rename re-deriva el slug", func(t *testing.T) {
		updated, err := uc.Update(cat.ID, dto.UpdateCategoryRequest{Name: strptr("Tecnología")})
		require.NoError(t, err)
		assert.Equal(t, "tecnologia", updated.Slug)
	})

	t.Run("slug explícito gana sobre el derivado", func(t *testing.T) {
		updated, err := uc.Update(cat.ID, dto.UpdateCategoryRequest{
			Name: strptr("Gadgets"),
			Slug: strptr("tienda-gadgets"),
		})
		require.NoError(t, err)
		assert.Equal(t, "tienda-gadgets", updated.Slug)
	})

	t.Run("no puede ser su propio padre", func(t *testing.T) {
		_, err := uc.Update(cat.ID, dto.UpdateCategoryRequest{ParentID: nullableStr(cat.ID)})
		assert.ErrorIs(t, err, domain.ErrSelfParent)
	})

	t.Run("parentId vacío la vuelve raíz", func(t *testing.T) {
		other, _ := uc.Create(dto.CreateCategoryRequest{Name: "Ofertas", ParentID: &cat.ID})
		updated, err := uc.Update(other.ID, dto.UpdateCategoryRequest{ParentID: nullableStr("")})
		require.NoError(t, err)
		assert.Nil(t, updated.ParentID)
	})

	t.Run("parentId null explícito la vuelve raíz", func(t *testing.T) {
		other, _ := uc.Create(dto.CreateCategoryRequest{Name: "Liquidación", ParentID: &cat.ID})

		var in dto.UpdateCategoryRequest
		require.NoError(t, json.Unmarshal([]byte(`{"parentId": null}`), &in))
		require.True(t, in.ParentID.Set)
		require.False(t, in.ParentID.Valid)

		updated, err := uc.Update(other.ID, in)
		require.NoError(t, err)
		assert.Nil(t, updated.ParentID)
	})

	t.Run("parentId ausente conserva el padre", func(t *testing.T) {
		other, _ := uc.Create(dto.CreateCategoryRequest{Name: "Outlet", ParentID: &cat.ID})

		var in dto.UpdateCategoryRequest
		require.NoError(t, json.Unmarshal([]byte(`{"description": "Rebajas"}`), &in))
		require.False(t, in.ParentID.Set)

		updated, err := uc.Update(other.ID, in)
		require.NoError(t, err)
		require.NotNil(t, updated.ParentID)
		assert.Equal(t, cat.ID, *updated.ParentID)
	})
}

func TestCategoryUseCase_Delete(t *testing.T) {
	catUC, prodUC, _ := newCatalogFakes()

	parent, _ := catUC.Create(dto.CreateCategoryRequest{Name: "Electrónica"})
	child, _ := catUC.Create(dto.CreateCategoryRequest{Name: "Celulares", ParentID: &parent.ID})

	t.Run("con hijas no se elimina", func(t *testing.T) {
		err := catUC.Delete(parent.ID)
		assert.ErrorIs(t, err, domain.ErrCategoryHasChildren)
	})

	t.Run("con productos no se elimina", func(t *testing.T) {
		_, err := prodUC.Create(context.Background(), dto.CreateProductRequest{
			Name:        "Galaxy S23",
			Price:       priceptr("799.99"),
			SKU:         "GAL-S23",
			CategoryIDs: []string{child.ID},
		})
		require.NoError(t, err)
		assert.ErrorIs(t, catUC.Delete(child.ID), domain.ErrCategoryHasProducts)
	})

	t.Run("inexistente", func(t *testing.T) {
		assert.ErrorIs(t, catUC.Delete("no-existe"), domain.ErrCategoryNotFound)
	})
}

func TestCategoryUseCase_TreeAndSlug(t *testing.T) {
	catUC, prodUC, _ := newCatalogFakes()

	root, _ := catUC.Create(dto.CreateCategoryRequest{Name: "Electrónica"})
	child, _ := catUC.Create(dto.CreateCategoryRequest{Name: "Celulares", ParentID: &root.ID})
	hidden, _ := catUC.Create(dto.CreateCategoryRequest{Name: "Oculta"})
	_, err := catUC.ToggleStatus(hidden.ID)
	require.NoError(t, err)

	t.Run("el árbol solo trae raíces activas", func(t *testing.T) {
		tree, err := catUC.Tree()
		require.NoError(t, err)
		require.Len(t, tree, 1)
		assert.Equal(t, "Electrónica", tree[0].Name)
		require.Len(t, tree[0].Children, 1)
		assert.Equal(t, "Celulares", tree[0].Children[0].Name)
	})

	t.Run("por slug trae solo productos activos", func(t *testing.T) {
		active, err := prodUC.Create(context.Background(), dto.CreateProductRequest{
			Name: "Galaxy S23", Price: priceptr("799.99"), SKU: "GAL-S23", CategoryIDs: []string{child.ID},
		})
		require.NoError(t, err)
		inactive, err := prodUC.Create(context.Background(), dto.CreateProductRequest{
			Name: "Descontinuado", Price: priceptr("1"), SKU: "OLD-1", CategoryIDs: []string{child.ID},
		})
		require.NoError(t, err)
		_, err = prodUC.ToggleStatus(inactive.ID)
		require.NoError(t, err)

		got, err := catUC.GetBySlug("celulares")
		require.NoError(t, err)
		require.Len(t, got.Products, 1)
		assert.Equal(t, active.ID, got.Products[0].ID)
	})

	t.Run("slug inexistente", func(t *testing.T) {
		_, err := catUC.GetBySlug("nada")
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})
}
