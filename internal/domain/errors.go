package domain

import "errors"

// Errores de dominio (sin dependencias externas). El texto es el mensaje que
// llega al cliente; el formateador HTTP central decide el status code.
var (
	// No encontrado (404)
	ErrUserNotFound     = errors.New("User not found")
	ErrCategoryNotFound = errors.New("Category not found")
	ErrProductNotFound  = errors.New("Product not found")
	ErrParentNotFound   = errors.New("Parent category not found")

	// Conflictos de unicidad (409). El pre-chequeo del controlador es
	// best-effort: una carrera puede superar el chequeo y golpear el
	// constraint único del store, que se mapea a estos mismos errores.
	ErrEmailTaken        = errors.New("Email already registered")
	ErrCategoryNameTaken = errors.New("Category with this name already exists")
	ErrSKUTaken          = errors.New("Product with this SKU already exists")
	ErrDuplicate         = errors.New("Resource already exists")

	// Autenticación (401)
	ErrUnauthorized       = errors.New("Authentication required")
	ErrInvalidToken       = errors.New("Invalid token")
	ErrTokenExpired       = errors.New("Token expired")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrAccountDisabled    = errors.New("Account is deactivated")

	// Autorización (403)
	ErrForbidden            = errors.New("Admin access required")
	ErrOwnAccountDelete     = errors.New("Cannot delete your own account")
	ErrOwnAccountDeactivate = errors.New("Cannot deactivate your own account")

	// Reglas de negocio (400)
	ErrCurrentPassword     = errors.New("Current password is incorrect")
	ErrSelfParent          = errors.New("Category cannot be its own parent")
	ErrCategoryHasChildren = errors.New("Cannot delete category with subcategories")
	ErrCategoryHasProducts = errors.New("Cannot delete category with associated products")
	ErrNoImages            = errors.New("No images uploaded")
	ErrImageIndex          = errors.New("Invalid image index")

	// Restricciones de subida de archivos (400)
	ErrFileTooLarge    = errors.New("File too large")
	ErrTooManyFiles    = errors.New("Too many files")
	ErrInvalidFileType = errors.New("Only image files are allowed")
)
