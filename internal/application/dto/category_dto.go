package dto

import (
	"time"

	"github.com/tu-usuario/catalog-api/internal/domain/entity"
)

// CategorySummary proyección corta de una categoría (para padres, hijos y
// asociaciones de producto).
type CategorySummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"isActive"`
}

// ToCategorySummary proyecta la entidad a su resumen.
func ToCategorySummary(c *entity.Category) CategorySummary {
	return CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug, IsActive: c.IsActive}
}

// ToCategorySummaries proyecta un lote; devuelve slice vacío, nunca nil.
func ToCategorySummaries(cs []*entity.Category) []CategorySummary {
	out := make([]CategorySummary, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCategorySummary(c))
	}
	return out
}

// CategoryResponse salida completa de una categoría. Parent y Children se
// completan según el endpoint; Products solo en el detalle.
type CategoryResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Slug        string            `json:"slug"`
	IsActive    bool              `json:"isActive"`
	ParentID    *string           `json:"parentId"`
	Parent      *CategorySummary  `json:"parent,omitempty"`
	Children    []CategorySummary `json:"children,omitempty"`
	Products    []ProductSummary  `json:"products,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ToCategoryResponse proyecta la entidad sin relaciones.
func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Slug:        c.Slug,
		IsActive:    c.IsActive,
		ParentID:    c.ParentID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateCategoryRequest alta de categoría (admin).
// El slug se deriva del nombre si no se entrega explícito.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,between=2-100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Slug        *string `json:"slug" validate:"omitempty,between=2-100"`
	ParentID    *string `json:"parentId" validate:"omitempty,uuid"`
}

// UpdateCategoryRequest actualización parcial de categoría (admin).
// El slug se re-deriva al renombrar solo si no se entrega explícito.
// ParentID distingue null explícito (desanida la categoría) de ausente.
type UpdateCategoryRequest struct {
	Name        *string        `json:"name" validate:"omitempty,between=2-100"`
	Description *string        `json:"description" validate:"omitempty,max=500"`
	Slug        *string        `json:"slug" validate:"omitempty,between=2-100"`
	ParentID    NullableString `json:"parentId" validate:"omitempty,uuid"`
	IsActive    *bool          `json:"isActive"`
}

// ListCategoriesQuery parámetros del listado de categorías.
type ListCategoriesQuery struct {
	PageQuery
	IncludeInactive bool `query:"includeInactive"`
}
