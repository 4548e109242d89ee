// seed pobla la base con datos de arranque: un admin, un usuario regular,
// un árbol de categorías y productos de muestra ya asociados.
//
// Uso: go run ./cmd/seed
// Idempotente: si el email/nombre/SKU ya existe, el registro se omite.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/catalog-api/internal/domain/entity"
	"github.com/tu-usuario/catalog-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/catalog-api/pkg/config"
	"github.com/tu-usuario/catalog-api/pkg/slug"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		fail("migraciones: %v", err)
	}

	users := postgres.NewUserRepository(pool)
	categories := postgres.NewCategoryRepository(pool)
	products := postgres.NewProductRepository(pool)

	seedUser(users, "Admin", "admin@example.com", "Admin123!", entity.RoleAdmin)
	seedUser(users, "Usuario Demo", "user@example.com", "User1234!", entity.RoleUser)

	electronica := seedCategory(categories, "Electrónica", "Dispositivos y accesorios electrónicos", "")
	celulares := seedCategory(categories, "Celulares", "Smartphones y accesorios", electronica)
	computacion := seedCategory(categories, "Computación", "Laptops, PCs y periféricos", electronica)
	hogar := seedCategory(categories, "Hogar", "Artículos para el hogar", "")

	seedProduct(products, seedProductInput{
		name:        "Smartphone Galaxy S23",
		description: "Pantalla AMOLED de 6.1 pulgadas, 128GB",
		price:       "799.99",
		sku:         "GAL-S23-128",
		stock:       25,
		featured:    true,
		options:     map[string][]string{"color": {"negro", "crema"}, "almacenamiento": {"128GB", "256GB"}},
		categories:  []string{celulares},
	})
	seedProduct(products, seedProductInput{
		name:        "Laptop UltraBook 14",
		description: "Intel i7, 16GB RAM, SSD 512GB",
		price:       "1299.00",
		sku:         "ULTRA-14-512",
		stock:       10,
		featured:    true,
		categories:  []string{computacion},
	})
	seedProduct(products, seedProductInput{
		name:        "Cafetera de filtro",
		description: "Capacidad 1.5L con apagado automático",
		price:       "49.90",
		sku:         "CAF-FILTRO-15",
		stock:       40,
		categories:  []string{hogar},
	})

	fmt.Println("seed completado")
}

func seedUser(repo *postgres.UserRepo, name, email, password, role string) {
	existing, err := repo.GetByEmail(email)
	if err != nil {
		fail("buscar usuario %s: %v", email, err)
	}
	if existing != nil {
		fmt.Printf("usuario %s ya existe, omitido\n", email)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		fail("hashear password: %v", err)
	}
	now := time.Now()
	err = repo.Create(&entity.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		fail("crear usuario %s: %v", email, err)
	}
	fmt.Printf("usuario %s creado (%s)\n", email, role)
}

func seedCategory(repo *postgres.CategoryRepo, name, description, parentID string) string {
	existing, err := repo.GetByName(name)
	if err != nil {
		fail("buscar categoría %s: %v", name, err)
	}
	if existing != nil {
		fmt.Printf("categoría %s ya existe, omitida\n", name)
		return existing.ID
	}
	var parent *string
	if parentID != "" {
		parent = &parentID
	}
	now := time.Now()
	cat := &entity.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Slug:        slug.Make(name),
		IsActive:    true,
		ParentID:    parent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Create(cat); err != nil {
		fail("crear categoría %s: %v", name, err)
	}
	fmt.Printf("categoría %s creada\n", name)
	return cat.ID
}

type seedProductInput struct {
	name        string
	description string
	price       string
	sku         string
	stock       int
	featured    bool
	options     map[string][]string
	categories  []string
}

func seedProduct(repo *postgres.ProductRepo, in seedProductInput) {
	existing, err := repo.GetBySKU(in.sku)
	if err != nil {
		fail("buscar producto %s: %v", in.sku, err)
	}
	if existing != nil {
		fmt.Printf("producto %s ya existe, omitido\n", in.sku)
		return
	}
	options := in.options
	if options == nil {
		options = map[string][]string{}
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.NewString(),
		Name:        in.name,
		Description: in.description,
		Price:       decimal.RequireFromString(in.price),
		SKU:         in.sku,
		Stock:       in.stock,
		Images:      []string{},
		Options:     options,
		Slug:        slug.Make(in.name),
		IsActive:    true,
		IsFeatured:  in.featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Create(p); err != nil {
		fail("crear producto %s: %v", in.sku, err)
	}
	if err := repo.ReplaceCategories(p.ID, in.categories); err != nil {
		fail("asociar categorías de %s: %v", in.sku, err)
	}
	fmt.Printf("producto %s creado\n", in.sku)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
