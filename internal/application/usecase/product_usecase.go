package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/catalog-api/internal/application/dto"
	"github.com/tu-usuario/catalog-api/internal/domain"
	"github.com/tu-usuario/catalog-api/internal/domain/entity"
	"github.com/tu-usuario/catalog-api/internal/domain/repository"
	"github.com/tu-usuario/catalog-api/pkg/slug"
)

// ImageStore borra archivos de imagen ya publicados. Las subidas las resuelve
// el handler antes de llegar al caso de uso.
type ImageStore interface {
	Delete(publicPath string) error
}

// ProductUseCase CRUD, catálogo y gestión de imágenes de productos.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	tx         CatalogTxRunner
	images     ImageStore
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, tx CatalogTxRunner, images ImageStore) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, tx: tx, images: images}
}

// List lista productos con filtros, orden y paginación. Las categorías de
// cada producto se resuelven en una sola consulta por lote.
func (uc *ProductUseCase) List(q dto.ListProductsQuery) ([]dto.ProductResponse, *dto.Pagination, error) {
	q.Defaults()
	products, total, err := uc.repo.List(repository.ProductFilter{
		Search:     q.Search,
		CategoryID: q.CategoryID,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		IsActive:   q.IsActive,
		IsFeatured: q.IsFeatured,
		SortBy:     q.SortBy,
		SortOrder:  q.SortOrder,
		Page:       q.Page,
		Limit:      q.Limit,
	})
	if err != nil {
		return nil, nil, err
	}
	items, err := uc.toResponses(products)
	if err != nil {
		return nil, nil, err
	}
	meta := dto.NewPagination(q.Page, q.Limit, total)
	return items, &meta, nil
}

// Featured devuelve productos destacados activos, los más recientes primero.
func (uc *ProductUseCase) Featured(limit int) ([]dto.ProductResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	products, err := uc.repo.ListFeatured(limit)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(products)
}

// GetByID obtiene un producto con sus categorías.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return uc.toResponse(product)
}

// GetBySlug obtiene un producto activo por slug (vitrina pública).
func (uc *ProductUseCase) GetBySlug(s string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetBySlug(s, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return uc.toResponse(product)
}

// Create crea un producto con sus asociaciones de categoría en una misma
// transacción. El SKU es único; el slug se deriva del nombre salvo que venga
// explícito.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrSKUTaken
	}
	if err := uc.checkCategories(in.CategoryIDs); err != nil {
		return nil, err
	}
	s := slug.Make(in.Name)
	if in.Slug != nil && *in.Slug != "" {
		s = slug.Make(*in.Slug)
	}
	stock := 0
	if in.Stock != nil {
		stock = *in.Stock
	}
	featured := false
	if in.IsFeatured != nil {
		featured = *in.IsFeatured
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}
	options := in.Options
	if options == nil {
		options = map[string][]string{}
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Description:     in.Description,
		Price:           *in.Price,
		SKU:             in.SKU,
		Stock:           stock,
		Images:          images,
		Options:         options,
		Slug:            s,
		IsActive:        true,
		IsFeatured:      featured,
		Weight:          in.Weight,
		Dimensions:      in.Dimensions,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err = uc.tx.Run(ctx, func(products repository.ProductRepository, _ repository.CategoryRepository) error {
		if err := products.Create(product); err != nil {
			return err
		}
		return products.ReplaceCategories(product.ID, in.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(product)
}

// Update actualiza parcialmente un producto. Si la petición trae categoryIds
// el conjunto de asociaciones se reemplaza completo.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		other, err := uc.repo.GetBySKU(*in.SKU)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrSKUTaken
		}
		product.SKU = *in.SKU
	}
	if in.Name != nil && *in.Name != product.Name {
		product.Name = *in.Name
		if in.Slug == nil {
			product.Slug = slug.Make(*in.Name)
		}
	}
	if in.Slug != nil && *in.Slug != "" {
		product.Slug = slug.Make(*in.Slug)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Options != nil {
		product.Options = in.Options
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}
	if in.Weight != nil {
		product.Weight = in.Weight
	}
	if in.Dimensions != nil {
		product.Dimensions = in.Dimensions
	}
	if in.MetaTitle != nil {
		product.MetaTitle = *in.MetaTitle
	}
	if in.MetaDescription != nil {
		product.MetaDescription = *in.MetaDescription
	}
	if in.CategoryIDs != nil {
		if err := uc.checkCategories(in.CategoryIDs); err != nil {
			return nil, err
		}
	}
	product.UpdatedAt = time.Now()
	err = uc.tx.Run(ctx, func(products repository.ProductRepository, _ repository.CategoryRepository) error {
		if err := products.Update(product); err != nil {
			return err
		}
		if in.CategoryIDs != nil {
			return products.ReplaceCategories(product.ID, in.CategoryIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(product)
}

// Delete elimina un producto y sus archivos de imagen en disco. Si un archivo
// no puede borrarse el registro se elimina igual.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	for _, img := range product.Images {
		_ = uc.images.Delete(img)
	}
	return uc.repo.Delete(id)
}

// UploadImages anexa imágenes ya persistidas al producto.
func (uc *ProductUseCase) UploadImages(id string, paths []string) (*dto.ProductResponse, error) {
	if len(paths) == 0 {
		return nil, domain.ErrNoImages
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	product.Images = append(product.Images, paths...)
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product)
}

// RemoveImage quita la imagen en el índice dado y borra el archivo en disco.
func (uc *ProductUseCase) RemoveImage(id string, index int) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if index < 0 || index >= len(product.Images) {
		return nil, domain.ErrImageIndex
	}
	removed := product.Images[index]
	product.Images = append(product.Images[:index], product.Images[index+1:]...)
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	_ = uc.images.Delete(removed)
	return uc.toResponse(product)
}

// ToggleStatus invierte el flag isActive del producto.
func (uc *ProductUseCase) ToggleStatus(id string) (*dto.ProductResponse, error) {
	return uc.toggle(id, func(p *entity.Product) { p.IsActive = !p.IsActive })
}

// ToggleFeatured invierte el flag isFeatured del producto.
func (uc *ProductUseCase) ToggleFeatured(id string) (*dto.ProductResponse, error) {
	return uc.toggle(id, func(p *entity.Product) { p.IsFeatured = !p.IsFeatured })
}

func (uc *ProductUseCase) toggle(id string, flip func(*entity.Product)) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	flip(product)
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product)
}

// checkCategories verifica que todos los IDs existan antes de asociar.
func (uc *ProductUseCase) checkCategories(ids []string) error {
	for _, cid := range ids {
		cat, err := uc.categories.GetByID(cid)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrCategoryNotFound
		}
	}
	return nil
}

func (uc *ProductUseCase) toResponse(p *entity.Product) (*dto.ProductResponse, error) {
	byProduct, err := uc.repo.CategoriesFor([]string{p.ID})
	if err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(p, byProduct[p.ID])
	return &resp, nil
}

func (uc *ProductUseCase) toResponses(products []*entity.Product) ([]dto.ProductResponse, error) {
	if len(products) == 0 {
		return []dto.ProductResponse{}, nil
	}
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	byProduct, err := uc.repo.CategoriesFor(ids)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.ToProductResponse(p, byProduct[p.ID]))
	}
	return items, nil
}
