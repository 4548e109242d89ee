package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catalog-api/internal/domain/entity"
)

// ProductSummary proyección corta de un producto (para el detalle de categoría).
type ProductSummary struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	IsActive bool            `json:"isActive"`
	Images   []string        `json:"images,omitempty"`
}

// ToProductSummaries proyecta un lote; devuelve slice vacío, nunca nil.
func ToProductSummaries(ps []*entity.Product, withImages bool) []ProductSummary {
	out := make([]ProductSummary, 0, len(ps))
	for _, p := range ps {
		s := ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock, IsActive: p.IsActive}
		if withImages {
			s.Images = p.Images
		}
		out = append(out, s)
	}
	return out
}

// ProductResponse salida completa de un producto con sus categorías.
type ProductResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	Price           decimal.Decimal     `json:"price"`
	SKU             string              `json:"sku"`
	Stock           int                 `json:"stock"`
	Images          []string            `json:"images"`
	Options         map[string][]string `json:"options"`
	Slug            string              `json:"slug"`
	IsActive        bool                `json:"isActive"`
	IsFeatured      bool                `json:"isFeatured"`
	Weight          *decimal.Decimal    `json:"weight"`
	Dimensions      *entity.Dimensions  `json:"dimensions"`
	MetaTitle       string              `json:"metaTitle,omitempty"`
	MetaDescription string              `json:"metaDescription,omitempty"`
	Categories      []CategorySummary   `json:"categories"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// ToProductResponse proyecta la entidad con sus categorías asociadas.
func ToProductResponse(p *entity.Product, categories []*entity.Category) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		SKU:             p.SKU,
		Stock:           p.Stock,
		Images:          p.Images,
		Options:         p.Options,
		Slug:            p.Slug,
		IsActive:        p.IsActive,
		IsFeatured:      p.IsFeatured,
		Weight:          p.Weight,
		Dimensions:      p.Dimensions,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		Categories:      ToCategorySummaries(categories),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// CreateProductRequest alta de producto (admin). Images lo completa el
// handler con las rutas de los archivos de un alta multipart; nunca se
// acepta directamente en el body JSON.
type CreateProductRequest struct {
	Name            string              `json:"name" validate:"required,between=2-200"`
	Description     string              `json:"description" validate:"omitempty,max=2000"`
	Price           *decimal.Decimal    `json:"price" validate:"required,gte=0"`
	SKU             string              `json:"sku" validate:"required,between=3-50,sku"`
	Stock           *int                `json:"stock" validate:"omitempty,gte=0"`
	Options         map[string][]string `json:"options"`
	Slug            *string             `json:"slug" validate:"omitempty,between=2-200"`
	IsFeatured      *bool               `json:"isFeatured"`
	Weight          *decimal.Decimal    `json:"weight" validate:"omitempty,gte=0"`
	Dimensions      *entity.Dimensions  `json:"dimensions"`
	MetaTitle       string              `json:"metaTitle" validate:"omitempty,max=60"`
	MetaDescription string              `json:"metaDescription" validate:"omitempty,max=160"`
	CategoryIDs     []string            `json:"categoryIds" validate:"omitempty,dive,uuid"`
	Images          []string            `json:"-"`
}

// UpdateProductRequest actualización parcial de producto (admin). Los campos
// ausentes conservan su valor; las imágenes se gestionan por el endpoint
// dedicado de imágenes.
type UpdateProductRequest struct {
	Name            *string             `json:"name" validate:"omitempty,between=2-200"`
	Description     *string             `json:"description" validate:"omitempty,max=2000"`
	Price           *decimal.Decimal    `json:"price" validate:"omitempty,gte=0"`
	SKU             *string             `json:"sku" validate:"omitempty,between=3-50,sku"`
	Stock           *int                `json:"stock" validate:"omitempty,gte=0"`
	Options         map[string][]string `json:"options"`
	Slug            *string             `json:"slug" validate:"omitempty,between=2-200"`
	IsFeatured      *bool               `json:"isFeatured"`
	Weight          *decimal.Decimal    `json:"weight" validate:"omitempty,gte=0"`
	Dimensions      *entity.Dimensions  `json:"dimensions"`
	MetaTitle       *string             `json:"metaTitle" validate:"omitempty,max=60"`
	MetaDescription *string             `json:"metaDescription" validate:"omitempty,max=160"`
	CategoryIDs     []string            `json:"categoryIds" validate:"omitempty,dive,uuid"`
}

// RemoveImageRequest índice (base 0) de la imagen a eliminar.
type RemoveImageRequest struct {
	ImageIndex *int `json:"imageIndex" validate:"required,gte=0"`
}

// ListProductsQuery parámetros del listado/catálogo de productos.
type ListProductsQuery struct {
	PageQuery
	CategoryID string           `query:"categoryId" validate:"omitempty,uuid"`
	MinPrice   *decimal.Decimal `query:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice   *decimal.Decimal `query:"maxPrice" validate:"omitempty,gte=0"`
	IsActive   *bool            `query:"isActive"`
	IsFeatured *bool            `query:"isFeatured"`
	SortBy     string           `query:"sortBy" validate:"omitempty,oneof=name price stock sku createdAt updatedAt"`
	SortOrder  string           `query:"sortOrder" validate:"omitempty,oneof=asc desc ASC DESC"`
}
