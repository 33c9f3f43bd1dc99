package repository

import (
	"context"

	"github.com/jhoicas/clientes-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// FindByID, ReplaceByID y DeleteByID devuelven domain.ErrNotFound si no hay documento.
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]*entity.Customer, error)
	Insert(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id string) (*entity.Customer, error)
	ReplaceByID(ctx context.Context, id string, customer *entity.Customer) (*entity.Customer, error)
	DeleteByID(ctx context.Context, id string) error
}
