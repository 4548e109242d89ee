package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/catalog-api/internal/application/auth"
	"github.com/tu-usuario/catalog-api/internal/application/usecase"
	"github.com/tu-usuario/catalog-api/internal/application/validation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	CategoryUC   *usecase.CategoryUseCase
	ProductUC    *usecase.ProductUseCase
	Validator    *validation.Validator
	Images       ImageSaver
	UploadLimits UploadLimits
	JWTSecret    string
}

// Router registra las rutas de la API. La lectura de catálogo es pública;
// las mutaciones y la gestión de usuarios exigen Bearer Token con rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authRequired := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireAdmin()

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Validator)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", authRequired, authHandler.GetProfile)
	authGroup.Put("/profile", authRequired, authHandler.UpdateProfile)
	authGroup.Post("/change-password", authRequired, authHandler.ChangePassword)
	authGroup.Post("/refresh-token", authRequired, authHandler.RefreshToken)

	// Users (solo admin)
	userHandler := NewUserHandler(deps.UserUC, deps.Validator)
	users := api.Group("/users", authRequired, adminOnly)
	users.Get("/", userHandler.List)
	users.Get("/stats", userHandler.Stats)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Patch("/:id/toggle-status", userHandler.ToggleStatus)

	// Categories (lectura pública, mutaciones admin)
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Validator)
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Get("/tree", categoryHandler.Tree)
	categories.Get("/slug/:slug", categoryHandler.GetBySlug)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", authRequired, adminOnly, categoryHandler.Create)
	categories.Put("/:id", authRequired, adminOnly, categoryHandler.Update)
	categories.Delete("/:id", authRequired, adminOnly, categoryHandler.Delete)
	categories.Patch("/:id/toggle-status", authRequired, adminOnly, categoryHandler.ToggleStatus)

	// Products (lectura pública, mutaciones admin)
	productHandler := NewProductHandler(deps.ProductUC, deps.Validator, deps.Images, deps.UploadLimits)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/featured", productHandler.Featured)
	products.Get("/slug/:slug", productHandler.GetBySlug)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authRequired, adminOnly, productHandler.Create)
	products.Put("/:id", authRequired, adminOnly, productHandler.Update)
	products.Delete("/:id", authRequired, adminOnly, productHandler.Delete)
	products.Post("/:id/images", authRequired, adminOnly, productHandler.UploadImages)
	products.Delete("/:id/images", authRequired, adminOnly, productHandler.RemoveImage)
	products.Patch("/:id/toggle-status", authRequired, adminOnly, productHandler.ToggleStatus)
	products.Patch("/:id/toggle-featured", authRequired, adminOnly, productHandler.ToggleFeatured)
}
