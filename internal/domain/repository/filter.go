package repository

import "github.com/shopspring/decimal"

// Filtros tipados que consumen el query builder de la capa postgres.
// Todos los campos opcionales componen con AND; Search se expande a un OR
// de coincidencia parcial case-insensitive sobre los campos del recurso.

// UserFilter búsqueda y paginación del listado de usuarios.
// Search cubre name y email.
type UserFilter struct {
	Search string
	Page   int
	Limit  int
}

// CategoryFilter búsqueda y paginación del listado de categorías.
// Search cubre name y description.
type CategoryFilter struct {
	Search          string
	IncludeInactive bool
	Page            int
	Limit           int
}

// ProductFilter filtros del catálogo de productos.
// Search cubre name, description y sku.
type ProductFilter struct {
	Search     string
	CategoryID string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	IsActive   *bool
	IsFeatured *bool
	SortBy     string // name | price | stock | sku | createdAt | updatedAt
	SortOrder  string // ASC | DESC
	Page       int
	Limit      int
}

// UserStats agregados del recurso usuarios (solo admin).
type UserStats struct {
	Total               int
	Active              int
	Inactive            int
	Admins              int
	Regular             int
	RecentRegistrations int // últimos 30 días
}
