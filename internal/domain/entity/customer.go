package entity

import "time"

// Customer representa un cliente de la cadena. El teléfono es la clave
// natural para buscar o crear clientes desde una venta.
type Customer struct {
	ID        string
	FullName  string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
