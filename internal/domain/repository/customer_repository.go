package repository

import "github.com/jhoicas/cadena-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	GetByID(id string) (*entity.Customer, error)
	// GetByPhone busca por la clave natural usada en find-or-create.
	GetByPhone(phone string) (*entity.Customer, error)
	Create(c *entity.Customer) error
}
