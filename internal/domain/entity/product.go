package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dimensions dimensiones físicas opcionales de un producto.
type Dimensions struct {
	Length decimal.Decimal `json:"length"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
}

// Product representa un producto del catálogo.
// Images es una lista ordenada de rutas públicas (/uploads/<nombre>); los
// archivos viven en disco y se eliminan junto con el producto.
// Options es un mapa libre opción -> valores (ej. color -> [negro, blanco]).
type Product struct {
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal // no negativo
	SKU             string          // único, [A-Za-z0-9-_]
	Stock           int             // no negativo
	Images          []string
	Options         map[string][]string
	Slug            string // único, derivado del nombre si no se da explícito
	IsActive        bool
	IsFeatured      bool
	Weight          *decimal.Decimal
	Dimensions      *Dimensions
	MetaTitle       string
	MetaDescription string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
