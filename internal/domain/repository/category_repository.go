package repository

import "github.com/tu-usuario/catalog-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	GetBySlug(slug string) (*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
	// List devuelve la página pedida y el total de filas que casan con el filtro.
	List(filter CategoryFilter) ([]*entity.Category, int, error)
	// ListRoots devuelve las categorías sin padre, ordenadas por nombre.
	ListRoots(includeInactive bool) ([]*entity.Category, error)
	// ListByParent devuelve los hijos directos de una categoría.
	ListByParent(parentID string, includeInactive bool) ([]*entity.Category, error)
	CountChildren(id string) (int, error)
	CountProducts(id string) (int, error)
}
