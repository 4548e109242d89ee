package entity

import "time"

// Category representa una categoría de productos. Forma un árbol vía ParentID
// (nil = raíz). El sistema solo rechaza el auto-parentesco directo; ciclos
// multinivel no se validan.
type Category struct {
	ID          string
	Name        string // único
	Description string
	Slug        string // único, derivado del nombre si no se da explícito
	IsActive    bool
	ParentID    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
