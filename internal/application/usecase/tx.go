package usecase

import (
	"context"

	"github.com/tu-usuario/catalog-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn con repositorios ligados a una misma transacción.
// Si fn devuelve error la transacción se revierte completa.
type CatalogTxRunner interface {
	Run(ctx context.Context, fn func(products repository.ProductRepository, categories repository.CategoryRepository) error) error
}
