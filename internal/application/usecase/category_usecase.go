package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/catalog-api/internal/application/dto"
	"github.com/tu-usuario/catalog-api/internal/domain"
	"github.com/tu-usuario/catalog-api/internal/domain/entity"
	"github.com/tu-usuario/catalog-api/internal/domain/repository"
	"github.com/tu-usuario/catalog-api/pkg/slug"
)

// CategoryUseCase CRUD y árbol de categorías del catálogo.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, products repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, products: products}
}

// List lista categorías con búsqueda y paginación. Cada elemento incluye el
// resumen de su padre y de sus hijas directas.
func (uc *CategoryUseCase) List(q dto.ListCategoriesQuery) ([]dto.CategoryResponse, *dto.Pagination, error) {
	q.Defaults()
	cats, total, err := uc.repo.List(repository.CategoryFilter{
		Search:          q.Search,
		IncludeInactive: q.IncludeInactive,
		Page:            q.Page,
		Limit:           q.Limit,
	})
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		resp, err := uc.expand(c, q.IncludeInactive, false)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, *resp)
	}
	meta := dto.NewPagination(q.Page, q.Limit, total)
	return items, &meta, nil
}

// Tree devuelve las categorías raíz activas con sus hijas directas.
func (uc *CategoryUseCase) Tree() ([]dto.CategoryResponse, error) {
	roots, err := uc.repo.ListRoots(false)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(roots))
	for _, c := range roots {
		resp, err := uc.expand(c, false, false)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// GetByID obtiene una categoría con padre, hijas y sus productos asociados.
func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrCategoryNotFound
	}
	return uc.expand(cat, true, true)
}

// GetBySlug obtiene una categoría por slug con sus productos activos.
func (uc *CategoryUseCase) GetBySlug(s string) (*dto.CategoryResponse, error) {
	cat, err := uc.repo.GetBySlug(s)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrCategoryNotFound
	}
	resp, err := uc.expand(cat, false, false)
	if err != nil {
		return nil, err
	}
	prods, err := uc.products.ListByCategory(cat.ID, true)
	if err != nil {
		return nil, err
	}
	resp.Products = dto.ToProductSummaries(prods, true)
	return resp, nil
}

// Create crea una categoría. El nombre es único; el slug se deriva del nombre
// salvo que venga explícito. ErrParentNotFound si el padre indicado no existe.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrCategoryNameTaken
	}
	if in.ParentID != nil {
		parent, err := uc.repo.GetByID(*in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrParentNotFound
		}
	}
	s := slug.Make(in.Name)
	if in.Slug != nil && *in.Slug != "" {
		s = slug.Make(*in.Slug)
	}
	now := time.Now()
	cat := &entity.Category{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Slug:        s,
		IsActive:    true,
		ParentID:    in.ParentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(cat); err != nil {
		return nil, err
	}
	return uc.expand(cat, true, false)
}

// Update actualiza parcialmente una categoría. Un rename re-deriva el slug
// salvo que la petición traiga slug explícito; una categoría no puede ser su
// propio padre.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrCategoryNotFound
	}
	if in.Name != nil && *in.Name != cat.Name {
		other, err := uc.repo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrCategoryNameTaken
		}
		cat.Name = *in.Name
		if in.Slug == nil {
			cat.Slug = slug.Make(*in.Name)
		}
	}
	if in.Slug != nil && *in.Slug != "" {
		cat.Slug = slug.Make(*in.Slug)
	}
	if in.Description != nil {
		cat.Description = *in.Description
	}
	if in.ParentID.Set {
		switch {
		case !in.ParentID.Valid || in.ParentID.Value == "":
			// null explícito (o "") convierte la categoría en raíz
			cat.ParentID = nil
		case in.ParentID.Value == id:
			return nil, domain.ErrSelfParent
		default:
			parent, err := uc.repo.GetByID(in.ParentID.Value)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, domain.ErrParentNotFound
			}
			pid := in.ParentID.Value
			cat.ParentID = &pid
		}
	}
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}
	cat.UpdatedAt = time.Now()
	if err := uc.repo.Update(cat); err != nil {
		return nil, err
	}
	return uc.expand(cat, true, false)
}

// Delete elimina una categoría sin hijas y sin productos asociados.
func (uc *CategoryUseCase) Delete(id string) error {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrCategoryNotFound
	}
	children, err := uc.repo.CountChildren(id)
	if err != nil {
		return err
	}
	if children > 0 {
		return domain.ErrCategoryHasChildren
	}
	products, err := uc.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if products > 0 {
		return domain.ErrCategoryHasProducts
	}
	return uc.repo.Delete(id)
}

// ToggleStatus invierte el flag isActive de la categoría.
func (uc *CategoryUseCase) ToggleStatus(id string) (*dto.CategoryResponse, error) {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrCategoryNotFound
	}
	cat.IsActive = !cat.IsActive
	cat.UpdatedAt = time.Now()
	if err := uc.repo.Update(cat); err != nil {
		return nil, err
	}
	return uc.expand(cat, true, false)
}

// expand arma la respuesta con el resumen del padre y de las hijas directas;
// con withProducts también adjunta los productos asociados.
func (uc *CategoryUseCase) expand(cat *entity.Category, includeInactive, withProducts bool) (*dto.CategoryResponse, error) {
	resp := dto.ToCategoryResponse(cat)
	if cat.ParentID != nil {
		parent, err := uc.repo.GetByID(*cat.ParentID)
		if err != nil {
			return nil, err
		}
		if parent != nil {
			s := dto.ToCategorySummary(parent)
			resp.Parent = &s
		}
	}
	children, err := uc.repo.ListByParent(cat.ID, includeInactive)
	if err != nil {
		return nil, err
	}
	resp.Children = dto.ToCategorySummaries(children)
	if withProducts {
		prods, err := uc.products.ListByCategory(cat.ID, !includeInactive)
		if err != nil {
			return nil, err
		}
		resp.Products = dto.ToProductSummaries(prods, true)
	}
	return &resp, nil
}
