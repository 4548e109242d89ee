package repository

import "github.com/tu-usuario/catalog-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	// List devuelve la página pedida y el total de filas que casan con el filtro.
	List(filter UserFilter) ([]*entity.User, int, error)
	Stats() (*UserStats, error)
}
