package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/catalog-api/internal/domain"
	"github.com/tu-usuario/catalog-api/internal/domain/entity"
	"github.com/tu-usuario/catalog-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, name, description, slug, is_active, parent_id, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	var desc *string
	err := row.Scan(&c.ID, &c.Name, &desc, &c.Slug, &c.IsActive, &c.ParentID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	if desc != nil {
		c.Description = *desc
	}
	return &c, nil
}

// Create persiste una nueva categoría. Choques con los índices únicos de name
// o slug se reportan como ErrCategoryNameTaken.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.Slug,
		category.IsActive, category.ParentID, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCategoryNameTaken
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. Devuelve nil sin error si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return scanCategory(r.q.QueryRow(context.Background(), query, id))
}

// GetByName obtiene una categoría por nombre exacto.
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`
	return scanCategory(r.q.QueryRow(context.Background(), query, name))
}

// GetBySlug obtiene una categoría por slug.
func (r *CategoryRepo) GetBySlug(slug string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`
	return scanCategory(r.q.QueryRow(context.Background(), query, slug))
}

// Update actualiza una categoría existente.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, slug = $4, is_active = $5, parent_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.Slug,
		category.IsActive, category.ParentID, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCategoryNameTaken
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete elimina una categoría por ID. Las guardas (hijos/productos) viven en
// el caso de uso.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// List lista categorías con búsqueda sobre name/description, filtro de activas
// y paginación, ordenadas por nombre. Devuelve además el total.
func (r *CategoryRepo) List(filter repository.CategoryFilter) ([]*entity.Category, int, error) {
	var b queryBuilder
	b.addSearch(filter.Search, "name", "description")
	if !filter.IncludeInactive {
		b.add("is_active = %s", true)
	}
	where := b.whereClause()

	var total int
	countQuery := `SELECT count(*) FROM categories` + where
	if err := r.q.QueryRow(context.Background(), countQuery, b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	query := `SELECT ` + categoryColumns + ` FROM categories` + where +
		` ORDER BY name ASC LIMIT ` + b.addArg(filter.Limit) +
		` OFFSET ` + b.addArg(pageOffset(filter.Page, filter.Limit))
	rows, err := r.q.Query(context.Background(), query, b.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	list, err := collectCategories(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListRoots devuelve las categorías raíz (sin padre) ordenadas por nombre.
func (r *CategoryRepo) ListRoots(includeInactive bool) ([]*entity.Category, error) {
	var b queryBuilder
	b.conds = append(b.conds, "parent_id IS NULL")
	if !includeInactive {
		b.add("is_active = %s", true)
	}
	query := `SELECT ` + categoryColumns + ` FROM categories` + b.whereClause() + ` ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("list root categories: %w", err)
	}
	defer rows.Close()
	return collectCategories(rows)
}

// ListByParent devuelve los hijos directos de una categoría, ordenados por nombre.
func (r *CategoryRepo) ListByParent(parentID string, includeInactive bool) ([]*entity.Category, error) {
	var b queryBuilder
	b.add("parent_id = %s", parentID)
	if !includeInactive {
		b.add("is_active = %s", true)
	}
	query := `SELECT ` + categoryColumns + ` FROM categories` + b.whereClause() + ` ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("list child categories: %w", err)
	}
	defer rows.Close()
	return collectCategories(rows)
}

// CountChildren cuenta los hijos directos de una categoría.
func (r *CategoryRepo) CountChildren(id string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM categories WHERE parent_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count children: %w", err)
	}
	return n, nil
}

// CountProducts cuenta los productos asociados a una categoría.
func (r *CategoryRepo) CountProducts(id string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM product_categories WHERE category_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count category products: %w", err)
	}
	return n, nil
}

func collectCategories(rows pgx.Rows) ([]*entity.Category, error) {
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		var desc *string
		if err := rows.Scan(&c.ID, &c.Name, &desc, &c.Slug, &c.IsActive,
			&c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if desc != nil {
			c.Description = *desc
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
