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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, price, sku, stock, images, options, slug,
	is_active, is_featured, weight, dimensions, meta_title, meta_description, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// images, options y dimensions viajan como JSONB vía el codec JSON de pgx.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p, err := scanProductFields(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return p, nil
}

func scanProductFields(scan func(dest ...any) error) (*entity.Product, error) {
	var p entity.Product
	var desc, metaTitle, metaDesc *string
	err := scan(&p.ID, &p.Name, &desc, &p.Price, &p.SKU, &p.Stock, &p.Images, &p.Options,
		&p.Slug, &p.IsActive, &p.IsFeatured, &p.Weight, &p.Dimensions,
		&metaTitle, &metaDesc, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if desc != nil {
		p.Description = *desc
	}
	if metaTitle != nil {
		p.MetaTitle = *metaTitle
	}
	if metaDesc != nil {
		p.MetaDescription = *metaDesc
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Options == nil {
		p.Options = map[string][]string{}
	}
	return &p, nil
}

// Create persiste un nuevo producto. Choques con los índices únicos de sku o
// slug se reportan como ErrSKUTaken.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.SKU,
		product.Stock, product.Images, product.Options, product.Slug,
		product.IsActive, product.IsFeatured, product.Weight, product.Dimensions,
		product.MetaTitle, product.MetaDescription, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSKUTaken
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil sin error si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.q.QueryRow(context.Background(), query, id))
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return scanProduct(r.q.QueryRow(context.Background(), query, sku))
}

// GetBySlug obtiene un producto por slug; con onlyActive solo devuelve
// productos activos (lectura pública del storefront).
func (r *ProductRepo) GetBySlug(slug string, onlyActive bool) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	if onlyActive {
		query += ` AND is_active = TRUE`
	}
	return scanProduct(r.q.QueryRow(context.Background(), query, slug))
}

// Update actualiza todos los campos mutables del producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, sku = $5, stock = $6, images = $7,
			options = $8, slug = $9, is_active = $10, is_featured = $11, weight = $12,
			dimensions = $13, meta_title = $14, meta_description = $15, updated_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.SKU,
		product.Stock, product.Images, product.Options, product.Slug,
		product.IsActive, product.IsFeatured, product.Weight, product.Dimensions,
		product.MetaTitle, product.MetaDescription, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSKUTaken
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto; las filas del join caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// List lista productos aplicando los filtros opcionales del catálogo
// (búsqueda, rango de precio, flags, categoría, orden) y paginación.
// Devuelve además el total de filas que casan con el filtro.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var b queryBuilder
	b.addSearch(filter.Search, "name", "description", "sku")
	if filter.MinPrice != nil {
		b.add("price >= %s", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		b.add("price <= %s", *filter.MaxPrice)
	}
	if filter.IsActive != nil {
		b.add("is_active = %s", *filter.IsActive)
	}
	if filter.IsFeatured != nil {
		b.add("is_featured = %s", *filter.IsFeatured)
	}
	if filter.CategoryID != "" {
		b.add("EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = products.id AND pc.category_id = %s)", filter.CategoryID)
	}
	where := b.whereClause()

	var total int
	countQuery := `SELECT count(*) FROM products` + where
	if err := r.q.QueryRow(context.Background(), countQuery, b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		` ORDER BY ` + sortColumn(filter.SortBy) + ` ` + sortDirection(filter.SortOrder) +
		` LIMIT ` + b.addArg(filter.Limit) +
		` OFFSET ` + b.addArg(pageOffset(filter.Page, filter.Limit))
	rows, err := r.q.Query(context.Background(), query, b.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListFeatured devuelve los productos activos destacados, los más recientes primero.
func (r *ProductRepo) ListFeatured(limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE is_active = TRUE AND is_featured = TRUE
		ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListByCategory devuelve los productos asociados a una categoría.
func (r *ProductRepo) ListByCategory(categoryID string, onlyActive bool) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = products.id AND pc.category_id = $1)`
	if onlyActive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ReplaceCategories reemplaza por completo el conjunto de categorías del producto.
func (r *ProductRepo) ReplaceCategories(productID string, categoryIDs []string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx,
		`DELETE FROM product_categories WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear product categories: %w", err)
	}
	for _, categoryID := range categoryIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			productID, categoryID)
		if err != nil {
			return fmt.Errorf("insert product category: %w", err)
		}
	}
	return nil
}

// CategoriesFor devuelve, en una sola consulta, las categorías asociadas a
// cada producto del lote (para armar las respuestas de listado sin N+1).
func (r *ProductRepo) CategoriesFor(productIDs []string) (map[string][]*entity.Category, error) {
	result := make(map[string][]*entity.Category, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT pc.product_id, ` + prefixColumns("c", categoryColumns) + `
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id = ANY($1::uuid[])
		ORDER BY c.name ASC`
	rows, err := r.q.Query(context.Background(), query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("categories for products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var c entity.Category
		var desc *string
		if err := rows.Scan(&productID, &c.ID, &c.Name, &desc, &c.Slug, &c.IsActive,
			&c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product category: %w", err)
		}
		if desc != nil {
			c.Description = *desc
		}
		result[productID] = append(result[productID], &c)
	}
	return result, rows.Err()
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProductFields(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
