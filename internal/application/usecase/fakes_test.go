package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/tu-usuario/catalog-api/internal/domain"
	"github.com/tu-usuario/catalog-api/internal/domain/entity"
	"github.com/tu-usuario/catalog-api/internal/domain/repository"
)

// Repositorios en memoria para probar los casos de uso sin Postgres.

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(f repository.UserFilter) ([]*entity.User, int, error) {
	var all []*entity.User
	for _, u := range r.users {
		if f.Search != "" &&
			!strings.Contains(strings.ToLower(u.Name), strings.ToLower(f.Search)) &&
			!strings.Contains(strings.ToLower(u.Email), strings.ToLower(f.Search)) {
			continue
		}
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	return page(all, f.Page, f.Limit), len(all), nil
}

func (r *fakeUserRepo) Stats() (*repository.UserStats, error) {
	s := &repository.UserStats{}
	for _, u := range r.users {
		s.Total++
		if u.IsActive {
			s.Active++
		} else {
			s.Inactive++
		}
		if u.Role == entity.RoleAdmin {
			s.Admins++
		} else {
			s.Regular++
		}
	}
	return s, nil
}

type fakeCategoryRepo struct {
	cats map[string]*entity.Category
	// asociaciones producto-categoría compartidas con fakeProductRepo
	links map[string][]string
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{cats: map[string]*entity.Category{}, links: map[string][]string{}}
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	for _, existing := range r.cats {
		if existing.Name == c.Name {
			return domain.ErrCategoryNameTaken
		}
	}
	cp := *c
	r.cats[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.cats[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.cats {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) GetBySlug(slug string) (*entity.Category, error) {
	for _, c := range r.cats {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	r.cats[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(id string) error {
	delete(r.cats, id)
	return nil
}

func (r *fakeCategoryRepo) List(f repository.CategoryFilter) ([]*entity.Category, int, error) {
	var all []*entity.Category
	for _, c := range r.cats {
		if !f.IncludeInactive && !c.IsActive {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
			continue
		}
		cp := *c
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, f.Page, f.Limit), len(all), nil
}

func (r *fakeCategoryRepo) ListRoots(includeInactive bool) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.cats {
		if c.ParentID != nil {
			continue
		}
		if !includeInactive && !c.IsActive {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) ListByParent(parentID string, includeInactive bool) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.cats {
		if c.ParentID == nil || *c.ParentID != parentID {
			continue
		}
		if !includeInactive && !c.IsActive {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) CountChildren(id string) (int, error) {
	n := 0
	for _, c := range r.cats {
		if c.ParentID != nil && *c.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (r *fakeCategoryRepo) CountProducts(id string) (int, error) {
	n := 0
	for _, ids := range r.links {
		for _, cid := range ids {
			if cid == id {
				n++
			}
		}
	}
	return n, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
	cats     *fakeCategoryRepo
}

func newFakeProductRepo(cats *fakeCategoryRepo) *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}, cats: cats}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return domain.ErrSKUTaken
		}
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySlug(slug string, onlyActive bool) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Slug != slug {
			continue
		}
		if onlyActive && !p.IsActive {
			continue
		}
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	delete(r.cats.links, id)
	return nil
}

func (r *fakeProductRepo) List(f repository.ProductFilter) ([]*entity.Product, int, error) {
	var all []*entity.Product
	for _, p := range r.products {
		if f.Search != "" {
			term := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Name), term) &&
				!strings.Contains(strings.ToLower(p.Description), term) &&
				!strings.Contains(strings.ToLower(p.SKU), term) {
				continue
			}
		}
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			continue
		}
		if f.IsFeatured != nil && p.IsFeatured != *f.IsFeatured {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if f.CategoryID != "" && !contains(r.cats.links[p.ID], f.CategoryID) {
			continue
		}
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, f.Page, f.Limit), len(all), nil
}

func (r *fakeProductRepo) ListFeatured(limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.IsFeatured && p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProductRepo) ListByCategory(categoryID string, onlyActive bool) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if !contains(r.cats.links[p.ID], categoryID) {
			continue
		}
		if onlyActive && !p.IsActive {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) ReplaceCategories(productID string, categoryIDs []string) error {
	r.cats.links[productID] = append([]string(nil), categoryIDs...)
	return nil
}

func (r *fakeProductRepo) CategoriesFor(productIDs []string) (map[string][]*entity.Category, error) {
	out := map[string][]*entity.Category{}
	for _, pid := range productIDs {
		for _, cid := range r.cats.links[pid] {
			if c, ok := r.cats.cats[cid]; ok {
				cp := *c
				out[pid] = append(out[pid], &cp)
			}
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta fn sin transacción real sobre los mismos fakes.
type fakeTxRunner struct {
	products   *fakeProductRepo
	categories *fakeCategoryRepo
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.CategoryRepository) error) error {
	return fn(t.products, t.categories)
}

// fakeImageStore registra los borrados para inspección.
type fakeImageStore struct {
	deleted []string
}

func (s *fakeImageStore) Delete(path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

func page[T any](all []T, pageNum, limit int) []T {
	if limit <= 0 {
		return all
	}
	start := (pageNum - 1) * limit
	if start >= len(all) {
		return nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
