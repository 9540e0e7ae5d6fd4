package repository

import "github.com/phoenixdev100/Sales-Suite/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	// List devuelve todas las categorías ordenadas por nombre, con el número
	// de productos asociados a cada una.
	List() ([]*entity.Category, map[string]int, error)
	Delete(id string) error
	CountProducts(id string) (int, error)
}
