package repository

import "github.com/jhoicas/Panaderia-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	Update(product *entity.Product) error
	Delete(id string) error
	GetByID(id string) (*entity.Product, error)
	List() ([]*entity.Product, error)
}
