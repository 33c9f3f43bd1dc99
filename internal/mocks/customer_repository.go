package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/clientes-api/internal/domain/entity"
	"github.com/jhoicas/clientes-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

// CustomerRepository mock de repository.CustomerRepository.
type CustomerRepository struct {
	mock.Mock
}

func (m *CustomerRepository) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Customer)
	return list, args.Error(1)
}

func (m *CustomerRepository) Insert(ctx context.Context, customer *entity.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *CustomerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepository) ReplaceByID(ctx context.Context, id string, customer *entity.Customer) (*entity.Customer, error) {
	args := m.Called(ctx, id, customer)
	c, _ := args.Get(0).(*entity.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
