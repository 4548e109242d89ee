package repository

import "github.com/tu-usuario/catalog-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetBySlug con onlyActive=true es la lectura pública del storefront.
	GetBySlug(slug string, onlyActive bool) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	// List devuelve la página pedida y el total de filas que casan con el filtro.
	List(filter ProductFilter) ([]*entity.Product, int, error)
	ListFeatured(limit int) ([]*entity.Product, error)
	// ListByCategory devuelve los productos asociados a una categoría.
	ListByCategory(categoryID string, onlyActive bool) ([]*entity.Product, error)
	// ReplaceCategories reemplaza por completo el conjunto de categorías del
	// producto (no es un merge incremental).
	ReplaceCategories(productID string, categoryIDs []string) error
	// CategoriesFor devuelve las categorías asociadas a cada producto del lote.
	CategoriesFor(productIDs []string) (map[string][]*entity.Category, error)
}
